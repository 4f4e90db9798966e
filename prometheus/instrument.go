package prometheus

import (
	"context"
	"time"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var (
	_ unibot.Fetcher    = (*InstrumentedFetcher)(nil)
	_ unibot.PageWriter = (*InstrumentedPageWriter)(nil)
	_ unibot.Assistant  = (*InstrumentedAssistant)(nil)
)

// InstrumentedFetcher counts and times fetches.
type InstrumentedFetcher struct {
	next    unibot.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher wraps next.
func NewInstrumentedFetcher(next unibot.Fetcher, m *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	f.metrics.FetchDuration.Observe(time.Since(begin).Seconds())
	f.metrics.FetchesTotal.WithLabelValues(status(err)).Inc()
	f.metrics.FetchBytesTotal.Add(float64(len(html)))
	return html, err
}

func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}

// InstrumentedPageWriter counts write outcomes.
type InstrumentedPageWriter struct {
	next    unibot.PageWriter
	metrics *Metrics
}

// NewInstrumentedPageWriter wraps next.
func NewInstrumentedPageWriter(next unibot.PageWriter, m *Metrics) *InstrumentedPageWriter {
	return &InstrumentedPageWriter{next: next, metrics: m}
}

func (w *InstrumentedPageWriter) WritePage(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error) {
	outcome, err := w.next.WritePage(ctx, page, opts)
	label := outcome.String()
	if err != nil {
		label = "error"
	}
	w.metrics.PageWritesTotal.WithLabelValues(label).Inc()
	return outcome, err
}

// InstrumentedAssistant counts and times chats and tracks snapshot size.
type InstrumentedAssistant struct {
	next    unibot.Assistant
	metrics *Metrics
}

// NewInstrumentedAssistant wraps next and records its current snapshot size.
func NewInstrumentedAssistant(next unibot.Assistant, m *Metrics) *InstrumentedAssistant {
	m.KnowledgeBasePages.Set(float64(next.Stats().Pages))
	return &InstrumentedAssistant{next: next, metrics: m}
}

func (a *InstrumentedAssistant) Chat(ctx context.Context, query string) (string, error) {
	begin := time.Now()
	reply, err := a.next.Chat(ctx, query)
	a.metrics.ChatDuration.Observe(time.Since(begin).Seconds())
	a.metrics.ChatsTotal.WithLabelValues(status(err)).Inc()
	return reply, err
}

func (a *InstrumentedAssistant) Stats() unibot.KnowledgeStats {
	return a.next.Stats()
}

func (a *InstrumentedAssistant) Reload(ctx context.Context) error {
	err := a.next.Reload(ctx)
	a.metrics.ReloadsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		a.metrics.KnowledgeBasePages.Set(float64(a.next.Stats().Pages))
	}
	return err
}
