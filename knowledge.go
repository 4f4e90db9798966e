package unibot

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Records holds the four collections of the knowledge store.
type Records struct {
	Pages         []*Page
	Faculty       []*Faculty
	Departments   []*Department
	Notifications []*Notification
}

// KnowledgeStore reads the persisted collections in bulk.
type KnowledgeStore interface {
	// LoadRecords returns every record from a single consistent read.
	// Returns ErrStoreAbsent if the store was never populated.
	LoadRecords(ctx context.Context) (*Records, error)
}

// KnowledgeStats summarises a loaded snapshot.
type KnowledgeStats struct {
	Pages         int            `json:"pages"`
	Faculty       int            `json:"faculty"`
	Departments   int            `json:"departments"`
	Notifications int            `json:"notifications"`
	Categories    map[string]int `json:"categories"`
	LoadedAt      time.Time      `json:"loaded_at"`
}

// KnowledgeBase is an immutable in-memory snapshot of the store with
// case-folded name indexes. Refreshing means building a new one.
type KnowledgeBase struct {
	pages         []*Page
	notifications []*Notification

	faculty      map[string]*Faculty
	facultyNames []string

	departments     map[string]*Department
	departmentNames []string

	stats KnowledgeStats
}

// LoadKnowledgeBase builds a snapshot from store.
// Store absence is returned unchanged so callers can direct the user to crawl.
func LoadKnowledgeBase(ctx context.Context, store KnowledgeStore) (*KnowledgeBase, error) {
	recs, err := store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	return NewKnowledgeBase(recs), nil
}

// NewKnowledgeBase indexes recs. A nil recs yields an empty snapshot.
func NewKnowledgeBase(recs *Records) *KnowledgeBase {
	if recs == nil {
		recs = &Records{}
	}

	kb := &KnowledgeBase{
		pages:         slices.Clone(recs.Pages),
		notifications: slices.Clone(recs.Notifications),
		faculty:       make(map[string]*Faculty, len(recs.Faculty)),
		departments:   make(map[string]*Department, len(recs.Departments)),
	}

	for _, f := range recs.Faculty {
		key := strings.ToLower(f.Name)
		if _, ok := kb.faculty[key]; !ok {
			kb.facultyNames = append(kb.facultyNames, key)
		}
		kb.faculty[key] = f
	}
	for _, d := range recs.Departments {
		key := strings.ToLower(d.Name)
		if _, ok := kb.departments[key]; !ok {
			kb.departmentNames = append(kb.departmentNames, key)
		}
		kb.departments[key] = d
	}

	kb.stats = KnowledgeStats{
		Pages:         len(kb.pages),
		Faculty:       len(recs.Faculty),
		Departments:   len(recs.Departments),
		Notifications: len(kb.notifications),
		Categories:    make(map[string]int),
		LoadedAt:      time.Now(),
	}
	for _, p := range kb.pages {
		kb.stats.Categories[p.Category]++
	}
	return kb
}

// Pages returns the pages in load order.
func (kb *KnowledgeBase) Pages() []*Page {
	return slices.Clone(kb.pages)
}

// Stats returns counts for the snapshot.
func (kb *KnowledgeBase) Stats() KnowledgeStats {
	s := kb.stats
	s.Categories = make(map[string]int, len(kb.stats.Categories))
	for k, v := range kb.stats.Categories {
		s.Categories[k] = v
	}
	return s
}

// FindFaculty looks up a faculty member by name. An exact case-insensitive
// match wins; otherwise the first name in load order containing the query,
// or containing any word of it, is returned.
func (kb *KnowledgeBase) FindFaculty(name string) (*Faculty, bool) {
	key, ok := lookup(name, kb.facultyNames, func(k string) bool {
		_, ok := kb.faculty[k]
		return ok
	})
	if !ok {
		return nil, false
	}
	return kb.faculty[key], true
}

// FindDepartment looks up a department by name using the same rules as FindFaculty.
func (kb *KnowledgeBase) FindDepartment(name string) (*Department, bool) {
	key, ok := lookup(name, kb.departmentNames, func(k string) bool {
		_, ok := kb.departments[k]
		return ok
	})
	if !ok {
		return nil, false
	}
	return kb.departments[key], true
}

func lookup(name string, names []string, exists func(string) bool) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return "", false
	}
	if exists(q) {
		return q, true
	}

	parts := strings.Fields(q)
	for _, n := range names {
		if strings.Contains(n, q) {
			return n, true
		}
		for _, part := range parts {
			if strings.Contains(n, part) {
				return n, true
			}
		}
	}
	return "", false
}

// RecentNotifications returns up to limit notifications, newest first.
// Dates that cannot be parsed sort after all parsed dates, in load order.
func (kb *KnowledgeBase) RecentNotifications(limit int) []*Notification {
	type dated struct {
		n  *Notification
		t  time.Time
		ok bool
	}

	items := make([]dated, len(kb.notifications))
	for i, n := range kb.notifications {
		items[i] = dated{n: n}
		if d := strings.TrimSpace(n.Date); d != "" {
			t, err := dateparse.ParseAny(d)
			items[i].t, items[i].ok = t, err == nil
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.t.After(b.t)
	})

	if limit < 0 || limit > len(items) {
		limit = len(items)
	}
	out := make([]*Notification, 0, limit)
	for _, it := range items[:limit] {
		out = append(out, it.n)
	}
	return out
}
