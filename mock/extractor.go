package mock

import "github.com/MuhammadAbbas01/unibot"

var _ unibot.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of unibot.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*unibot.ExtractResult, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*unibot.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
