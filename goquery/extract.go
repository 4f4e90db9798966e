// Package goquery implements unibot.Extractor on top of goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/PuerkitoBio/goquery"
)

var _ unibot.Extractor = (*Extractor)(nil)

// Extractor pulls paragraph text, page links and PDF links from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html fetched from pageURL.
//
// Text is the text of every <p> element joined by spaces with whitespace
// runs collapsed. Links are same-host http(s) URLs with fragments stripped,
// excluding PDFs and the page itself. PDFLinks are every anchor whose
// resolved URL ends in ".pdf" regardless of host.
func (e *Extractor) Extract(html string, pageURL string) (*unibot.ExtractResult, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, unibot.Errorf(unibot.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, unibot.Errorf(unibot.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &unibot.ExtractResult{
		Title: extractTitle(doc),
		Text:  extractText(doc),
	}

	seenLinks := make(map[string]struct{})
	seenPDFs := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}
		link := resolved.String()

		if isPDF(resolved) {
			if _, ok := seenPDFs[link]; !ok {
				seenPDFs[link] = struct{}{}
				result.PDFLinks = append(result.PDFLinks, link)
			}
			return
		}

		if resolved.Host != base.Host || isSelf(base, link) {
			return
		}
		if _, ok := seenLinks[link]; !ok {
			seenLinks[link] = struct{}{}
			result.Links = append(result.Links, link)
		}
	})

	return result, nil
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func extractText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		parts = append(parts, sel.Text())
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// resolveURL resolves href against base and strips the fragment.
// Returns nil if href cannot be parsed.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved
}

// isSelf reports whether link points back at the page it was found on.
func isSelf(base *url.URL, link string) bool {
	b := *base
	b.Fragment = ""
	b.RawFragment = ""
	return link == b.String()
}

func isPDF(u *url.URL) bool {
	return strings.HasSuffix(strings.ToLower(u.String()), ".pdf")
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
