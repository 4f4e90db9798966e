package unibot

import (
	"net/url"
	"strings"
)

// Page categories assigned at ingestion.
const (
	CategoryFaculty       = "faculty"
	CategoryAdmissions    = "admissions"
	CategoryDepartment    = "department"
	CategoryNotifications = "notifications"
	CategoryAcademics     = "academics"
	CategoryResearch      = "research"
	CategoryContact       = "contact"
	CategoryGeneral       = "general"
)

// Categories lists every category in rule order, ending with the default.
var Categories = []string{
	CategoryNotifications,
	CategoryAdmissions,
	CategoryDepartment,
	CategoryFaculty,
	CategoryResearch,
	CategoryAcademics,
	CategoryContact,
	CategoryGeneral,
}

type categoryRule struct {
	category string
	keywords []string
}

// Department runs before faculty so that "faculty-of-science" is not
// mistaken for a staff page.
var categoryRules = []categoryRule{
	{CategoryNotifications, []string{"news", "notification", "announcement", "notice", "event", "tender"}},
	{CategoryAdmissions, []string{"admission", "apply", "prospectus", "merit", "entry-test"}},
	{CategoryDepartment, []string{"department", "dept", "school", "institute", "faculty-of", "faculties"}},
	{CategoryFaculty, []string{"faculty", "staff", "professor", "profile", "teacher"}},
	{CategoryResearch, []string{"research", "publication", "journal", "oric"}},
	{CategoryAcademics, []string{"program", "course", "degree", "semester", "exam", "result", "academic", "syllabus"}},
	{CategoryContact, []string{"contact", "location", "address"}},
}

// CategorizeURL assigns a category from the page URL path and title.
// The first rule with a keyword in either wins; otherwise CategoryGeneral.
func CategorizeURL(rawURL, title string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	haystack := strings.ToLower(path + " " + title)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// IsCategory reports whether s names a known category.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
