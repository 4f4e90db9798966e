package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var _ unibot.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore implements unibot.KnowledgeStore using SQLite.
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a new KnowledgeStore.
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// LoadRecords reads all four collections inside one transaction so the
// result is a consistent snapshot. Rows come back in insertion order.
func (s *KnowledgeStore) LoadRecords(ctx context.Context) (*unibot.Records, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var recs unibot.Records

	if recs.Pages, err = loadAll(ctx, tx, "SELECT "+pageColumns+" FROM pages ORDER BY rowid ASC", scanPage); err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	if recs.Faculty, err = loadAll(ctx, tx, "SELECT "+facultyColumns+" FROM faculty ORDER BY id ASC", scanFaculty); err != nil {
		return nil, fmt.Errorf("load faculty: %w", err)
	}
	if recs.Departments, err = loadAll(ctx, tx, "SELECT "+departmentColumns+" FROM departments ORDER BY id ASC", scanDepartment); err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	if recs.Notifications, err = loadAll(ctx, tx, "SELECT "+notificationColumns+" FROM notifications ORDER BY id ASC", scanNotification); err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}

	return &recs, tx.Commit()
}

func loadAll[T any](ctx context.Context, tx *sql.Tx, query string, scan func(scanner) (*T, error)) ([]*T, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
