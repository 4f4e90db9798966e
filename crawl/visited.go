package crawl

import "github.com/bits-and-blooms/bloom/v3"

// VisitedSet records normalized URLs seen during one crawl run.
// A Bloom filter answers the common "never seen" case without touching
// the map; the map is authoritative, so false positives never drop a URL.
type VisitedSet struct {
	filter *bloom.BloomFilter
	urls   map[string]struct{}
}

// NewVisitedSet creates a set sized for n expected URLs with the given
// Bloom filter false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{
		filter: bloom.NewWithEstimates(n, fpRate),
		urls:   make(map[string]struct{}),
	}
}

// Add inserts url. Returns false if it was already present.
func (s *VisitedSet) Add(url string) bool {
	if s.Contains(url) {
		return false
	}
	s.filter.AddString(url)
	s.urls[url] = struct{}{}
	return true
}

// Contains reports whether url has been added.
func (s *VisitedSet) Contains(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s *VisitedSet) Len() int {
	return len(s.urls)
}
