package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var (
	_ unibot.Assistant = (*LoggingAssistant)(nil)
	_ unibot.Scraper   = (*LoggingScraper)(nil)
)

// LoggingAssistant wraps an Assistant with logging.
type LoggingAssistant struct {
	next   unibot.Assistant
	logger *slog.Logger
}

// NewLoggingAssistant creates a new LoggingAssistant.
func NewLoggingAssistant(next unibot.Assistant, logger *slog.Logger) *LoggingAssistant {
	return &LoggingAssistant{next: next, logger: logger}
}

// Chat delegates to the wrapped assistant and logs the exchange size.
// Query text is not logged.
func (a *LoggingAssistant) Chat(ctx context.Context, query string) (reply string, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("chat",
			"query_chars", utf8.RuneCountInString(query),
			"reply_chars", utf8.RuneCountInString(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Chat(ctx, query)
}

// Stats delegates to the wrapped assistant.
func (a *LoggingAssistant) Stats() unibot.KnowledgeStats {
	return a.next.Stats()
}

// Reload delegates to the wrapped assistant and logs the new snapshot size.
func (a *LoggingAssistant) Reload(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			a.logger.Error("reload knowledge base", "duration", time.Since(begin), "err", err)
			return
		}
		s := a.next.Stats()
		a.logger.Info("reload knowledge base",
			"pages", s.Pages,
			"faculty", s.Faculty,
			"departments", s.Departments,
			"notifications", s.Notifications,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Reload(ctx)
}

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   unibot.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next unibot.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the run summary.
func (s *LoggingScraper) Scrape(ctx context.Context, seed string, maxPages int) (res *unibot.ScrapeResult, err error) {
	s.logger.Info("scrape started", "url", seed, "max_pages", maxPages)
	defer func(begin time.Time) {
		attrs := []any{"url", seed, "duration", time.Since(begin), "err", err}
		if res != nil {
			attrs = append(attrs,
				"visited", res.Visited,
				"discovered", res.Discovered,
				"saved", res.Saved,
				"updated", res.Updated,
				"skipped", res.Skipped,
				"failed", res.Failed,
				"pdf_links", len(res.PDFLinks),
			)
		}
		s.logger.Info("scrape finished", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, seed, maxPages)
}
