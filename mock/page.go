package mock

import (
	"context"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var (
	_ unibot.PageWriter   = (*PageWriter)(nil)
	_ unibot.PageService  = (*PageService)(nil)
	_ unibot.DocumentSink = (*DocumentSink)(nil)
)

// PageWriter is a mock implementation of unibot.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error)
}

func (w *PageWriter) WritePage(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error) {
	return w.WritePageFn(ctx, page, opts)
}

// PageService is a mock implementation of unibot.PageService.
type PageService struct {
	WritePageFn func(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error)
	FindPagesFn func(ctx context.Context, filter unibot.PageFilter) ([]*unibot.Page, error)
}

func (s *PageService) WritePage(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error) {
	return s.WritePageFn(ctx, page, opts)
}

func (s *PageService) FindPages(ctx context.Context, filter unibot.PageFilter) ([]*unibot.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

// DocumentSink is a mock implementation of unibot.DocumentSink.
type DocumentSink struct {
	RecordDocumentFn func(ctx context.Context, link *unibot.DocumentLink) error
}

func (s *DocumentSink) RecordDocument(ctx context.Context, link *unibot.DocumentLink) error {
	return s.RecordDocumentFn(ctx, link)
}
