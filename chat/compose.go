// Package chat turns a classified query into a templated reply drawn from a
// knowledge base snapshot, and serves those replies through a Bot whose
// snapshot can be swapped while queries are in flight.
package chat

import (
	"fmt"
	"strings"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/intent"
	"github.com/MuhammadAbbas01/unibot/retrieval"
)

// Fallback replies used when nothing in the knowledge base matches.
const (
	FacultyGuidance       = "I couldn't find specific faculty information. Could you provide more details or check the faculty directory on the university website?"
	AdmissionsGuidance    = "For detailed admission information, please visit the university's official website or contact the admissions office directly."
	DepartmentGuidance    = "I couldn't find specific department information. Please provide more details about which department you're interested in."
	NotificationsGuidance = "Please check the university's official website for the latest notifications and announcements."
	GeneralGuidance       = "I'm sorry, I couldn't find specific information about that. Could you please rephrase your question or be more specific?"

	suggestion = "\nYou can ask me about faculty members, departments, admissions, research, or recent notifications."
)

// Relevance bands for general answers.
const (
	highRelevance   = 0.1
	mediumRelevance = 0.05
)

// Composer answers queries from one knowledge base snapshot.
// Its output uses **bold** spans and newlines only.
type Composer struct {
	KB       *unibot.KnowledgeBase
	Searcher *retrieval.Searcher
}

// NewComposer builds a Composer with its own search cache over kb.
func NewComposer(kb *unibot.KnowledgeBase, cacheSize int) (*Composer, error) {
	s, err := retrieval.NewSearcher(kb.Pages(), cacheSize)
	if err != nil {
		return nil, err
	}
	return &Composer{KB: kb, Searcher: s}, nil
}

// Compose answers query for a classified intent against kb, using s for
// free-text search. A nil s searches kb without caching.
func Compose(query string, in unibot.Intent, ents unibot.Entities, kb *unibot.KnowledgeBase, s *retrieval.Searcher) string {
	c := Composer{KB: kb, Searcher: s}
	return c.Respond(query, in, ents)
}

func (c *Composer) search(query string, limit int) []retrieval.Result {
	if c.Searcher == nil {
		return retrieval.Search(c.KB.Pages(), query, limit)
	}
	return c.Searcher.Search(query, limit)
}

// Answer classifies query, extracts its entities and responds.
func (c *Composer) Answer(query string) string {
	return c.Respond(query, intent.Classify(query), intent.ExtractEntities(query))
}

// Respond picks the handler for in. Structured lookups run first, then a
// category-filtered search, then a fixed guidance string.
func (c *Composer) Respond(query string, in unibot.Intent, ents unibot.Entities) string {
	switch in {
	case unibot.IntentFaculty:
		return c.faculty(query, ents)
	case unibot.IntentAdmissions:
		return c.admissions(query)
	case unibot.IntentDepartments:
		return c.departments(query, ents)
	case unibot.IntentNotifications:
		return c.notifications(query)
	default:
		return c.general(query)
	}
}

func (c *Composer) faculty(query string, ents unibot.Entities) string {
	if ents.Person != "" {
		if f, ok := c.KB.FindFaculty(ents.Person); ok {
			return formatFaculty(f)
		}
	}

	results := retrieval.Filter(c.search(query, 3), unibot.CategoryFaculty)
	if len(results) > 0 {
		return "Here's what I found about faculty:\n\n" + formatResults(results, 2, true)
	}
	return FacultyGuidance
}

func (c *Composer) admissions(query string) string {
	var results []retrieval.Result
	for _, r := range c.search(query, 5) {
		if r.Page.Category == unibot.CategoryAdmissions || strings.Contains(strings.ToLower(r.Page.Title), "admission") {
			results = append(results, r)
		}
	}
	if len(results) > 0 {
		return "**Admissions Information:**\n\n" + formatResults(results, 3, true) +
			"\nFor the most current admission requirements and deadlines, please visit the university's official admissions page."
	}

	if general := c.search(query, 2); len(general) > 0 {
		return "Here's what I found about admissions:\n\n" + formatResults(general, 2, false)
	}
	return AdmissionsGuidance
}

func (c *Composer) departments(query string, ents unibot.Entities) string {
	if ents.Department != "" {
		if d, ok := c.KB.FindDepartment(ents.Department); ok {
			return formatDepartment(d)
		}
	}

	results := retrieval.Filter(c.search(query, 3), unibot.CategoryDepartment)
	if len(results) > 0 {
		return "Here's information about departments:\n\n" + formatResults(results, 3, true)
	}
	return DepartmentGuidance
}

func (c *Composer) notifications(query string) string {
	if recent := c.KB.RecentNotifications(5); len(recent) > 0 {
		var b strings.Builder
		b.WriteString("**Recent University Notifications:**\n\n")
		for _, n := range recent {
			fmt.Fprintf(&b, "• **%s**\n", n.Title)
			if n.Date != "" {
				fmt.Fprintf(&b, "  Date: %s\n", n.Date)
			}
			if n.Content != "" {
				fmt.Fprintf(&b, "  %s\n", unibot.Truncate(n.Content, 100))
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	results := retrieval.Filter(c.search(query, 3), unibot.CategoryNotifications)
	if len(results) > 0 {
		return "**University Updates:**\n\n" + formatResults(results, 3, true)
	}
	return NotificationsGuidance
}

func (c *Composer) general(query string) string {
	results := c.search(query, 5)
	if len(results) == 0 {
		return GeneralGuidance
	}

	var high, medium []retrieval.Result
	for _, r := range results {
		switch {
		case r.Score > highRelevance:
			high = append(high, r)
		case r.Score > mediumRelevance:
			medium = append(medium, r)
		}
	}

	var b strings.Builder
	if len(high) > 0 {
		b.WriteString("Here's what I found:\n\n")
		b.WriteString(formatResults(high, 2, true))
	}
	if len(medium) > 0 && len(high) < 2 {
		b.WriteString("Additional information:\n\n")
		b.WriteString(formatResults(medium, 1, true))
	}
	b.WriteString(suggestion)
	return b.String()
}

func formatFaculty(f *unibot.Faculty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", f.Name)
	if f.Designation != "" {
		fmt.Fprintf(&b, "Position: %s\n", f.Designation)
	}
	if f.Department != "" {
		fmt.Fprintf(&b, "Department: %s\n", f.Department)
	}
	if f.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", f.Email)
	}
	if f.ResearchInterests != "" {
		fmt.Fprintf(&b, "Research Interests: %s\n", f.ResearchInterests)
	}
	if f.Bio != "" {
		fmt.Fprintf(&b, "\nBio: %s", unibot.Truncate(f.Bio, 200))
	}
	return b.String()
}

func formatDepartment(d *unibot.Department) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", d.Name)
	if d.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", d.Description)
	}
	if d.Head != "" {
		fmt.Fprintf(&b, "Department Head: %s\n", d.Head)
	}
	if d.FacultyCount > 0 {
		fmt.Fprintf(&b, "Faculty Members: %d\n", d.FacultyCount)
	}
	if d.Programs != "" {
		fmt.Fprintf(&b, "Programs: %s\n", d.Programs)
	}
	return b.String()
}

// formatResults renders up to n results, each as an optional bold title
// line followed by its snippet and a blank line.
func formatResults(results []retrieval.Result, n int, titles bool) string {
	var b strings.Builder
	for i, r := range results {
		if i == n {
			break
		}
		if titles {
			fmt.Fprintf(&b, "**%s**\n", title(r.Page))
		}
		b.WriteString(r.Snippet)
		b.WriteString("\n\n")
	}
	return b.String()
}

func title(p *unibot.Page) string {
	if p.Title != "" {
		return p.Title
	}
	return p.URL
}
