package main

import (
	"fmt"
	"io"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.MaxPages <= 0 {
		return unibot.Errorf(unibot.EINVALID, "--max-pages must be positive")
	}

	fmt.Fprintf(deps.Stdout, "Scraping %s (up to %d pages)...\n", c.URL, c.MaxPages)
	res, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.MaxPages, printProgress(deps.Stdout))
	if res != nil {
		printSummary(deps.Stdout, res)
	}
	return err
}

func printProgress(w io.Writer) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressSaved:
			fmt.Fprintf(w, "  [%d] saved    %s\n", e.Visited, e.URL)
		case crawl.ProgressUpdated:
			fmt.Fprintf(w, "  [%d] updated  %s\n", e.Visited, e.URL)
		case crawl.ProgressSkipped:
			fmt.Fprintf(w, "  [%d] skipped  %s\n", e.Visited, e.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "  [%d] failed   %s: %s\n", e.Visited, e.URL, errorMessage(e.Error))
		case crawl.ProgressPDF:
			fmt.Fprintf(w, "  pdf      %s\n", e.URL)
		}
	}
}

func printSummary(w io.Writer, res *unibot.ScrapeResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Visited:    %d\n", res.Visited)
	fmt.Fprintf(w, "Discovered: %d\n", res.Discovered)
	fmt.Fprintf(w, "Saved:      %d\n", res.Saved)
	fmt.Fprintf(w, "Updated:    %d\n", res.Updated)
	fmt.Fprintf(w, "Skipped:    %d\n", res.Skipped)
	fmt.Fprintf(w, "Failed:     %d\n", res.Failed)
	fmt.Fprintf(w, "PDF links:  %d\n", len(res.PDFLinks))
}
