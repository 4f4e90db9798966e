package chat

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a log entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Entry is one turn of a conversation.
type Entry struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
	Role Role      `json:"role"`
	Text string    `json:"text"`
}

// DefaultLogLimit is the number of entries a Log keeps by default.
const DefaultLogLimit = 1000

// Log is a conversation record safe for concurrent use. It keeps at most
// limit entries, dropping the oldest first.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
	now     func() time.Time
}

// NewLog returns an empty Log holding up to limit entries.
// A limit <= 0 selects DefaultLogLimit.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	return &Log{limit: limit, now: time.Now}
}

// Append records text under role and returns the stored entry.
func (l *Log) Append(role Role, text string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		ID:   uuid.New().String(),
		Time: l.now(),
		Role: role,
		Text: text,
	}
	if len(l.entries) == l.limit {
		l.entries = slices.Delete(l.entries, 0, 1)
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
