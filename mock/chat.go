package mock

import (
	"context"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var (
	_ unibot.Assistant = (*Assistant)(nil)
	_ unibot.Scraper   = (*Scraper)(nil)
)

// Assistant is a mock implementation of unibot.Assistant.
type Assistant struct {
	ChatFn   func(ctx context.Context, query string) (string, error)
	StatsFn  func() unibot.KnowledgeStats
	ReloadFn func(ctx context.Context) error
}

func (a *Assistant) Chat(ctx context.Context, query string) (string, error) {
	return a.ChatFn(ctx, query)
}

func (a *Assistant) Stats() unibot.KnowledgeStats {
	return a.StatsFn()
}

func (a *Assistant) Reload(ctx context.Context) error {
	return a.ReloadFn(ctx)
}

// Scraper is a mock implementation of unibot.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, seed string, maxPages int) (*unibot.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, seed string, maxPages int) (*unibot.ScrapeResult, error) {
	return s.ScrapeFn(ctx, seed, maxPages)
}
