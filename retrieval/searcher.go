package retrieval

import (
	"slices"
	"strconv"
	"strings"

	"github.com/MuhammadAbbas01/unibot"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct queries a Searcher remembers.
const DefaultCacheSize = 256

// Searcher searches one fixed page set and memoises results per query.
// It is bound to a single snapshot; build a new one after a reload.
// It is safe for concurrent use.
type Searcher struct {
	pages []*unibot.Page
	cache *lru.Cache[string, []Result]
}

// NewSearcher creates a Searcher over pages holding up to size queries.
// A size <= 0 selects DefaultCacheSize.
func NewSearcher(pages []*unibot.Page, size int) (*Searcher, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []Result](size)
	if err != nil {
		return nil, err
	}
	return &Searcher{pages: pages, cache: cache}, nil
}

// Search behaves like the package-level Search. Queries that preprocess
// to the same tokens share a cache entry.
func (s *Searcher) Search(query string, limit int) []Result {
	tokens := Preprocess(query)
	key := strconv.Itoa(limit) + "|" + strings.Join(tokens, " ")

	if cached, ok := s.cache.Get(key); ok {
		return slices.Clone(cached)
	}

	results := searchTokens(s.pages, tokens, limit)
	s.cache.Add(key, results)
	return slices.Clone(results)
}

// Len returns the number of cached queries.
func (s *Searcher) Len() int {
	return s.cache.Len()
}
