package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MuhammadAbbas01/unibot"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	stats := deps.Assistant.Stats()

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(deps.Stdout, "Pages:         %d\n", stats.Pages)
	fmt.Fprintf(deps.Stdout, "Faculty:       %d\n", stats.Faculty)
	fmt.Fprintf(deps.Stdout, "Departments:   %d\n", stats.Departments)
	fmt.Fprintf(deps.Stdout, "Notifications: %d\n", stats.Notifications)

	if len(stats.Categories) == 0 {
		return nil
	}
	fmt.Fprintln(deps.Stdout, "\nPages by category:")
	for _, cat := range categoryOrder(stats.Categories) {
		fmt.Fprintf(deps.Stdout, "  %-14s %d\n", cat, stats.Categories[cat])
	}
	return nil
}

// categoryOrder lists known categories first, then any others sorted.
func categoryOrder(counts map[string]int) []string {
	var out, extra []string
	for _, cat := range unibot.Categories {
		if _, ok := counts[cat]; ok {
			out = append(out, cat)
		}
	}
	for cat := range counts {
		if !unibot.IsCategory(cat) {
			extra = append(extra, cat)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
