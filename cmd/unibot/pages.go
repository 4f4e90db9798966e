package main

import (
	"fmt"
	"strings"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/mattn/go-runewidth"
)

// titleWidth is the display width of the title column.
const titleWidth = 40

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	filter := unibot.PageFilter{Limit: c.Limit}
	if c.Category != "" {
		if !unibot.IsCategory(c.Category) {
			return unibot.Errorf(unibot.EINVALID, "unknown category %q (want one of %s)", c.Category, strings.Join(unibot.Categories, ", "))
		}
		filter.Category = &c.Category
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'unibot scrape' to crawl the website.")
		return nil
	}

	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		title = runewidth.Truncate(title, titleWidth, "...")
		fmt.Fprintf(deps.Stdout, "%-13s  %s  %s\n", p.Category, runewidth.FillRight(title, titleWidth), p.URL)
	}
	return nil
}
