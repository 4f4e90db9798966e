// Package intent classifies user queries into intents and pulls out the
// person and department names they mention.
package intent

import (
	"regexp"
	"strings"

	"github.com/MuhammadAbbas01/unibot"
)

// Rule maps an intent to the keywords that vote for it.
type Rule struct {
	Intent   unibot.Intent
	Keywords []string
}

// Rules lists intents in priority order. Earlier rules win ties.
// General has no keywords; it is what a query with no hits falls back to.
var Rules = []Rule{
	{unibot.IntentFaculty, []string{"faculty", "professor", "teacher", "dr.", "dr ", "staff"}},
	{unibot.IntentAdmissions, []string{"admission", "apply", "application", "entry", "requirement"}},
	{unibot.IntentDepartments, []string{"department", "dept", "school", "faculty of"}},
	{unibot.IntentNotifications, []string{"notification", "news", "announcement", "notice", "update"}},
	{unibot.IntentAcademics, []string{"course", "program", "degree", "semester", "exam", "result"}},
	{unibot.IntentResearch, []string{"research", "publication", "journal", "paper", "study"}},
	{unibot.IntentContact, []string{"contact", "phone", "email", "address", "location"}},
}

// Classify returns the intent whose keywords occur most often in query.
// Each keyword counts once when it appears as a substring of the
// lowercased query.
func Classify(query string) unibot.Intent {
	return ClassifyWith(Rules, query)
}

// ClassifyWith classifies query against rules.
func ClassifyWith(rules []Rule, query string) unibot.Intent {
	q := strings.ToLower(query)

	best, bestScore := unibot.IntentGeneral, 0
	for _, rule := range rules {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = rule.Intent, score
		}
	}
	return best
}

// Entity patterns in scan order. The first pattern that matches wins.
var (
	personPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(dr\.?\s+[a-z\s]+)`),
		regexp.MustCompile(`(?i)\b(prof\.?\s+[a-z\s]+)`),
		regexp.MustCompile(`(?i)\b(professor\s+[a-z\s]+)`),
	}
	departmentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)department of\s+([a-z\s]+)`),
		regexp.MustCompile(`(?i)dept of\s+([a-z\s]+)`),
		regexp.MustCompile(`(?i)faculty of\s+([a-z\s]+)`),
	}
)

// ExtractEntities finds at most one person (introduced by an honorific)
// and at most one department (introduced by "department of" and similar)
// in query.
func ExtractEntities(query string) unibot.Entities {
	return unibot.Entities{
		Person:     firstMatch(personPatterns, query),
		Department: firstMatch(departmentPatterns, query),
	}
}

func firstMatch(patterns []*regexp.Regexp, s string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
