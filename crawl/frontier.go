package crawl

import (
	"net/url"
	"strings"
	"sync"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var _ unibot.URLFrontier = (*Frontier)(nil)

// Frontier is a FIFO crawl queue gated by a VisitedSet.
// A URL is admitted at most once for the life of the frontier.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	visited *VisitedSet
	queue   []string
	head    int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the visited prefilter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{visited: NewVisitedSet(n, fpRate)}
}

// Push adds a URL to the back of the queue.
// Returns false if the URL has already been seen.
// Fragments are stripped first, so URLs differing only by fragment
// are duplicates.
func (f *Frontier) Push(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := StripFragment(rawURL)
	if !f.visited.Add(u) {
		return false
	}
	f.queue = append(f.queue, u)
	return true
}

// Pop removes and returns the oldest queued URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.queue) {
		return "", false
	}
	u := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++
	if f.head == len(f.queue) {
		f.queue = f.queue[:0]
		f.head = 0
	}
	return u, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited.Contains(StripFragment(rawURL))
}

// Admitted returns how many distinct URLs have ever been pushed.
func (f *Frontier) Admitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited.Len()
}

// StripFragment removes the "#..." part of a URL.
func StripFragment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if idx := strings.Index(rawURL, "#"); idx != -1 {
			return rawURL[:idx]
		}
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
