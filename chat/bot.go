package chat

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/retrieval"
)

// Ensure Bot implements the interface.
var _ unibot.Assistant = (*Bot)(nil)

// Bot answers queries from the current knowledge base snapshot and keeps a
// conversation log. Chat and Reload may run concurrently.
type Bot struct {
	store     unibot.KnowledgeStore
	cacheSize int
	logLimit  int
	current   atomic.Pointer[Composer]
	log       *Log
}

// Option configures a Bot.
type Option func(*Bot)

// WithCacheSize sets the per-snapshot search cache size.
func WithCacheSize(n int) Option {
	return func(b *Bot) { b.cacheSize = n }
}

// WithHistoryLimit caps the conversation log at n entries.
func WithHistoryLimit(n int) Option {
	return func(b *Bot) { b.logLimit = n }
}

// NewBot loads the knowledge base from store. A missing store yields an
// error with code unibot.ENOSTORE.
func NewBot(ctx context.Context, store unibot.KnowledgeStore, opts ...Option) (*Bot, error) {
	b := &Bot{
		store:     store,
		cacheSize: retrieval.DefaultCacheSize,
		logLimit:  DefaultLogLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = NewLog(b.logLimit)
	if err := b.Reload(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Reload loads a fresh snapshot from the store and swaps it in. On error
// the previous snapshot stays in place.
func (b *Bot) Reload(ctx context.Context) error {
	kb, err := unibot.LoadKnowledgeBase(ctx, b.store)
	if err != nil {
		return err
	}
	return b.Swap(kb)
}

// Swap replaces the current snapshot with one built from kb.
func (b *Bot) Swap(kb *unibot.KnowledgeBase) error {
	c, err := NewComposer(kb, b.cacheSize)
	if err != nil {
		return err
	}
	b.current.Store(c)
	return nil
}

// Chat answers query. It fails only when ctx is done.
func (b *Bot) Chat(ctx context.Context, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	query = strings.TrimSpace(query)
	b.log.Append(RoleUser, query)
	reply := b.current.Load().Answer(query)
	b.log.Append(RoleBot, reply)
	return reply, nil
}

// Stats describes the current snapshot.
func (b *Bot) Stats() unibot.KnowledgeStats {
	return b.current.Load().KB.Stats()
}

// History returns a copy of the conversation log.
func (b *Bot) History() []Entry {
	return b.log.Entries()
}

// Help returns the quick-help text shown by interactive front ends.
func Help() string {
	return `**University of Malakand Assistant - Quick Help**

You can ask me about:
- Faculty members: "Who is Dr. Ahmad?" or "Tell me about professors in Computer Science"
- Departments: "What departments are available?" or "Tell me about the department of physics"
- Admissions: "How do I apply?" or "What are the admission requirements?"
- Notifications: "What are the latest announcements?"
- Research: "What research is happening at the university?"
- Contact: "What is the university's phone number?"

Type 'quit', 'exit' or 'bye' to end the conversation.`
}
