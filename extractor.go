package unibot

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the document title, or the first heading when absent.
	Title string

	// Text is all paragraph text joined with single spaces.
	Text string

	// Links are absolute, fragment-free, same-host page URLs.
	Links []string

	// PDFLinks are absolute document URLs ending in ".pdf", in page order.
	PDFLinks []string
}

// Extractor extracts text and links from HTML pages.
type Extractor interface {
	// Extract parses html fetched from pageURL.
	// Relative references are resolved against pageURL.
	Extract(html string, pageURL string) (*ExtractResult, error)
}
