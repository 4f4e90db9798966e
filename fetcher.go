package unibot

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the URL within a bounded timeout and returns the
	// decoded HTML. Network failures and non-success statuses return an
	// error with code EFETCH.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
