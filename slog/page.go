package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/MuhammadAbbas01/unibot"
)

// Ensure LoggingPageWriter implements unibot.PageWriter.
var _ unibot.PageWriter = (*LoggingPageWriter)(nil)

// LoggingPageWriter wraps a PageWriter with debug logging.
type LoggingPageWriter struct {
	next   unibot.PageWriter
	logger *slog.Logger
}

// NewLoggingPageWriter creates a new LoggingPageWriter.
func NewLoggingPageWriter(next unibot.PageWriter, logger *slog.Logger) *LoggingPageWriter {
	return &LoggingPageWriter{next: next, logger: logger}
}

// WritePage delegates to the wrapped writer and logs the outcome.
func (w *LoggingPageWriter) WritePage(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (outcome unibot.WriteOutcome, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		w.logger.Log(ctx, level, "write page",
			"url", page.URL,
			"slug", page.Slug,
			"category", page.Category,
			"outcome", outcome.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WritePage(ctx, page, opts)
}
