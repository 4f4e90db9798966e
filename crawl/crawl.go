// Package crawl provides the breadth-first site crawler.
// It coordinates the frontier, fetching, extraction, and storage of pages
// for a single host.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MuhammadAbbas01/unibot"
)

var _ unibot.Scraper = (*Crawler)(nil)

// DefaultMaxPages caps the number of pages fetched per run.
const DefaultMaxPages = 500

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the prefilter false positive rate.
	frontierFalsePositiveRate = 0.01
)

// Crawler walks one site breadth-first from a seed URL.
// It holds collaborators only; every run gets its own frontier and PDF list.
type Crawler struct {
	Fetcher   unibot.Fetcher
	Extractor unibot.Extractor
	Pages     unibot.PageWriter

	// Documents receives each newly discovered PDF link. Optional.
	Documents unibot.DocumentSink

	// RateLimiter is waited on before every fetch. Optional.
	RateLimiter unibot.DomainLimiter

	// NewFrontier creates the queue for one run. Defaults to a Bloom-gated
	// FIFO Frontier.
	NewFrontier func() unibot.URLFrontier

	// Refresh replaces stored pages whose content changed.
	Refresh bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Visited int
	Queued  int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisited
	ProgressSaved
	ProgressUpdated
	ProgressSkipped
	ProgressFailed
	ProgressPDF
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Scrape crawls from seed without progress reporting.
func (c *Crawler) Scrape(ctx context.Context, seed string, maxPages int) (*unibot.ScrapeResult, error) {
	return c.Crawl(ctx, seed, maxPages, nil)
}

// Crawl visits every page reachable from seed on the seed's host, up to
// maxPages fetches (DefaultMaxPages when maxPages <= 0). A failing page is
// counted and skipped; only an invalid seed or a canceled context ends the
// run early. On cancellation the partial result is returned with ctx.Err().
func (c *Crawler) Crawl(ctx context.Context, seed string, maxPages int, progress ProgressFunc) (*unibot.ScrapeResult, error) {
	seedURL, err := url.Parse(StripFragment(seed))
	if err != nil || !isHTTP(seedURL) || seedURL.Host == "" {
		return nil, unibot.Errorf(unibot.EINVALID, "invalid seed url %q", seed)
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	r := &run{
		Crawler:  c,
		host:     seedURL.Host,
		frontier: c.newFrontier(),
		pdfSeen:  make(map[string]struct{}),
		progress: progress,
	}
	r.frontier.Push(seedURL.String())
	r.emit(ProgressEvent{Type: ProgressStarted, URL: seedURL.String()})

	err = r.loop(ctx, maxPages)

	r.result.Discovered = r.frontier.Admitted()
	r.emit(ProgressEvent{Type: ProgressFinished})
	return &r.result, err
}

func (c *Crawler) newFrontier() unibot.URLFrontier {
	if c.NewFrontier != nil {
		return c.NewFrontier()
	}
	return NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
}

// run holds the state of one crawl.
type run struct {
	*Crawler
	host     string
	frontier unibot.URLFrontier
	pdfSeen  map[string]struct{}
	result   unibot.ScrapeResult
	progress ProgressFunc
}

func (r *run) loop(ctx context.Context, maxPages int) error {
	for r.result.Visited < maxPages {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL, ok := r.frontier.Pop()
		if !ok {
			return nil
		}
		r.result.Visited++

		if r.RateLimiter != nil {
			if err := r.RateLimiter.Wait(ctx, r.host); err != nil {
				return err
			}
		}

		if err := r.visit(ctx, pageURL); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.result.Failed++
			r.emit(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
		}
	}
	return nil
}

// visit fetches one page, queues its links, records its PDFs and stores
// its text. A returned error degrades only this page.
func (r *run) visit(ctx context.Context, pageURL string) error {
	html, err := r.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	extracted, err := r.Extractor.Extract(html, pageURL)
	if err != nil {
		return fmt.Errorf("extract %s: %w", pageURL, err)
	}
	r.emit(ProgressEvent{Type: ProgressVisited, URL: pageURL})

	for _, link := range extracted.Links {
		if r.admissible(link) {
			r.frontier.Push(link)
		}
	}

	for _, pdf := range extracted.PDFLinks {
		if err := r.recordPDF(ctx, pdf, pageURL); err != nil {
			return err
		}
	}

	text := strings.TrimSpace(extracted.Text)
	if text == "" {
		return nil
	}
	return r.save(ctx, pageURL, extracted.Title, text)
}

// admissible reports whether link is an unseen http(s) URL on the seed host.
func (r *run) admissible(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return isHTTP(u) && u.Host == r.host && !r.frontier.Seen(link)
}

func (r *run) recordPDF(ctx context.Context, pdf, source string) error {
	if _, ok := r.pdfSeen[pdf]; ok {
		return nil
	}
	r.pdfSeen[pdf] = struct{}{}
	r.result.PDFLinks = append(r.result.PDFLinks, pdf)
	r.emit(ProgressEvent{Type: ProgressPDF, URL: pdf})

	if r.Documents == nil {
		return nil
	}
	err := r.Documents.RecordDocument(ctx, &unibot.DocumentLink{
		URL:          pdf,
		SourceURL:    source,
		DiscoveredAt: r.now(),
	})
	if err != nil {
		return fmt.Errorf("record document %s: %w", pdf, err)
	}
	return nil
}

func (r *run) save(ctx context.Context, pageURL, title, text string) error {
	slug, err := unibot.Slug(pageURL)
	if err != nil {
		return err
	}

	page := &unibot.Page{
		URL:         pageURL,
		Slug:        slug,
		Title:       title,
		Content:     text,
		Category:    unibot.CategorizeURL(pageURL, title),
		ContentHash: unibot.ContentHash(text),
		FetchedAt:   r.now(),
	}

	outcome, err := r.Pages.WritePage(ctx, page, unibot.WriteOptions{Refresh: r.Refresh})
	if err != nil {
		return fmt.Errorf("write %s: %w", pageURL, err)
	}

	switch outcome {
	case unibot.WriteCreated:
		r.result.Saved++
		r.emit(ProgressEvent{Type: ProgressSaved, URL: pageURL})
	case unibot.WriteUpdated:
		r.result.Updated++
		r.emit(ProgressEvent{Type: ProgressUpdated, URL: pageURL})
	default:
		r.result.Skipped++
		r.emit(ProgressEvent{Type: ProgressSkipped, URL: pageURL})
	}
	return nil
}

func (r *run) emit(event ProgressEvent) {
	if r.progress == nil {
		return
	}
	event.Visited = r.result.Visited
	event.Queued = r.frontier.Len()
	r.progress(event)
}

func (r *run) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func isHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
