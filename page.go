package unibot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the hex-encoded xxhash of content. Stores compare it
// to decide whether a refresh changed a page.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Page represents a crawled page of the institutional site.
type Page struct {
	ID          string
	URL         string // unique, normalized without fragment
	Slug        string
	Title       string
	Content     string // paragraph text
	Category    string
	ContentHash string
	FetchedAt   time.Time
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page url required")
	}
	if p.Slug == "" {
		return Errorf(EINVALID, "page slug required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return Errorf(EINVALID, "page content required")
	}
	return nil
}

// Slug derives a filesystem-safe name from the path of rawURL.
// The root path maps to "index".
func Slug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid url %q: %v", rawURL, err)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "index", nil
	}

	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		switch {
		case r == '/':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}

// WriteOutcome reports what a PageWriter did with a page.
// Outcomes are ordered so that a larger value means more was written.
type WriteOutcome int

const (
	WriteSkipped WriteOutcome = iota
	WriteUpdated
	WriteCreated
)

func (o WriteOutcome) String() string {
	switch o {
	case WriteSkipped:
		return "skipped"
	case WriteUpdated:
		return "updated"
	case WriteCreated:
		return "created"
	default:
		return "unknown"
	}
}

// WriteOptions controls how a page is persisted.
type WriteOptions struct {
	// Refresh replaces stored content whose hash differs from the new page.
	// Without it an existing slug is never overwritten.
	Refresh bool
}

// PageWriter persists crawled pages keyed by slug.
type PageWriter interface {
	WritePage(ctx context.Context, page *Page, opts WriteOptions) (WriteOutcome, error)
}

// PageWriters fans a page out to several writers.
// The returned outcome is the largest any writer reported.
type PageWriters []PageWriter

// WritePage writes the page to each writer in order, stopping at the first error.
func (ws PageWriters) WritePage(ctx context.Context, page *Page, opts WriteOptions) (WriteOutcome, error) {
	outcome := WriteSkipped
	for _, w := range ws {
		o, err := w.WritePage(ctx, page, opts)
		if err != nil {
			return outcome, err
		}
		if o > outcome {
			outcome = o
		}
	}
	return outcome, nil
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	Category *string
	URL      *string

	// Restrict to subset of range.
	Offset int
	Limit  int
}

// PageService represents a service for managing stored pages.
type PageService interface {
	PageWriter

	// FindPages retrieves pages matching the filter, ordered by URL.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)
}

// DocumentLink is a document URL (PDF) discovered while crawling.
type DocumentLink struct {
	URL          string
	SourceURL    string
	DiscoveredAt time.Time
}

// DocumentSink records discovered document links.
// Fetching and parsing the documents themselves is left to downstream tools.
type DocumentSink interface {
	RecordDocument(ctx context.Context, link *DocumentLink) error
}
