package unibot

import "context"

// Intent is the classified purpose of a user query.
type Intent string

// Intents in classification priority order.
const (
	IntentFaculty       Intent = "faculty_info"
	IntentAdmissions    Intent = "admissions"
	IntentDepartments   Intent = "departments"
	IntentNotifications Intent = "notifications"
	IntentAcademics     Intent = "academics"
	IntentResearch      Intent = "research"
	IntentContact       Intent = "contact"
	IntentGeneral       Intent = "general"
)

// Entities holds the spans extracted from a query.
// At most one of each kind is extracted; empty means not found.
type Entities struct {
	Person     string `json:"person,omitempty"`
	Department string `json:"department,omitempty"`
}

// Chatter answers free-text questions.
type Chatter interface {
	// Chat returns a reply for query. It fails only when ctx is done;
	// every other condition resolves to guidance text.
	Chat(ctx context.Context, query string) (string, error)
}

// Assistant is a Chatter backed by a reloadable knowledge base snapshot.
type Assistant interface {
	Chatter

	// Stats describes the snapshot currently serving queries.
	Stats() KnowledgeStats

	// Reload loads a new snapshot and swaps it in atomically.
	Reload(ctx context.Context) error
}

// ScrapeResult summarises a crawl run.
type ScrapeResult struct {
	Visited    int      `json:"visited"`    // pages dequeued and fetched
	Discovered int      `json:"discovered"` // URLs admitted to the frontier
	Saved      int      `json:"saved"`
	Updated    int      `json:"updated"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	PDFLinks   []string `json:"pdf_links"`
}

// Scraper crawls a site from a seed URL.
type Scraper interface {
	Scrape(ctx context.Context, seed string, maxPages int) (*ScrapeResult, error)
}
