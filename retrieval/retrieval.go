// Package retrieval ranks stored pages against a free-text query using a
// lexical frequency-coverage score and cuts a query-relevant snippet from
// each hit.
package retrieval

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/MuhammadAbbas01/unibot"
)

// SnippetLength is the default snippet size in characters.
const SnippetLength = 200

// nonWord matches anything that is not a letter, mark, digit, underscore or space.
var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
}

// Result is a scored page. Scores are transient and never persisted.
type Result struct {
	Page    *unibot.Page
	Score   float64
	Snippet string
}

// Preprocess lowercases text, turns punctuation into spaces, splits on
// whitespace and drops stop words and tokens of two characters or fewer.
func Preprocess(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Score rates document against queryTokens as the sum of each query
// token's relative frequency in the document multiplied by the fraction
// of distinct query tokens present in it. The term-frequency sum runs over
// queryTokens as given; the coverage denominator is len(queryTokens).
func Score(queryTokens []string, document string) float64 {
	return scoreTokens(queryTokens, Preprocess(document))
}

func scoreTokens(queryTokens, docTokens []string) float64 {
	n := len(docTokens)
	if n == 0 || len(queryTokens) == 0 {
		return 0
	}

	counts := make(map[string]int, n)
	for _, t := range docTokens {
		counts[t]++
	}

	var tf float64
	present := make(map[string]struct{}, len(queryTokens))
	for _, q := range queryTokens {
		c := counts[q]
		tf += float64(c) / float64(n)
		if c > 0 {
			present[q] = struct{}{}
		}
	}
	coverage := float64(len(present)) / float64(len(queryTokens))
	return tf * coverage
}

// Search scores every page against query and returns up to limit results
// with a positive score, best first. Equal scores keep page order.
func Search(pages []*unibot.Page, query string, limit int) []Result {
	return searchTokens(pages, Preprocess(query), limit)
}

func searchTokens(pages []*unibot.Page, tokens []string, limit int) []Result {
	if len(tokens) == 0 || limit <= 0 {
		return nil
	}

	var results []Result
	for _, p := range pages {
		if s := Score(tokens, p.Content); s > 0 {
			results = append(results, Result{Page: p, Score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].Snippet = Snippet(results[i].Page.Content, tokens, SnippetLength)
	}
	return results
}

// Snippet returns the first sentence of text sharing the most distinct
// tokens with queryTokens, cut to maxLen characters. When no sentence
// shares a token it returns the start of text instead.
func Snippet(text string, queryTokens []string, maxLen int) string {
	query := make(map[string]struct{}, len(queryTokens))
	for _, q := range queryTokens {
		query[q] = struct{}{}
	}

	best, bestScore := "", 0
	for _, sentence := range strings.Split(text, ".") {
		seen := make(map[string]struct{})
		score := 0
		for _, t := range Preprocess(sentence) {
			if _, ok := query[t]; !ok {
				continue
			}
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				score++
			}
		}
		if score > bestScore {
			best, bestScore = strings.TrimSpace(sentence), score
		}
	}

	if bestScore == 0 {
		return unibot.Truncate(text, maxLen)
	}
	return unibot.Truncate(best, maxLen)
}

// Filter keeps the results whose page category is one of categories.
func Filter(results []Result, categories ...string) []Result {
	var out []Result
	for _, r := range results {
		for _, c := range categories {
			if r.Page.Category == c {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
