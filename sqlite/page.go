package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ unibot.PageService = (*PageService)(nil)

const pageColumns = "id, url, slug, title, content, category, content_hash, fetched_at"

// PageService implements unibot.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// WritePage stores page under its slug. A new slug is inserted with a fresh
// ID. An existing slug is left alone unless opts.Refresh is set and the
// content hash differs, in which case the row is updated in place.
func (s *PageService) WritePage(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error) {
	if err := page.Validate(); err != nil {
		return unibot.WriteSkipped, err
	}

	if page.ContentHash == "" {
		page.ContentHash = unibot.ContentHash(page.Content)
	}
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	if page.Category == "" {
		page.Category = unibot.CategoryGeneral
	}
	fetchedAt := page.FetchedAt.UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unibot.WriteSkipped, err
	}
	defer func() { _ = tx.Rollback() }()

	var id, hash string
	err = tx.QueryRowContext(ctx, `SELECT id, content_hash FROM pages WHERE slug = ?`, page.Slug).Scan(&id, &hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		page.ID = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (`+pageColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, page.ID, page.URL, page.Slug, page.Title, page.Content, page.Category, page.ContentHash, fetchedAt)
		if err != nil {
			return unibot.WriteSkipped, fmt.Errorf("insert page %s: %w", page.Slug, err)
		}
		return unibot.WriteCreated, tx.Commit()

	case err != nil:
		return unibot.WriteSkipped, err
	}

	page.ID = id
	if !opts.Refresh || hash == page.ContentHash {
		return unibot.WriteSkipped, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pages
		SET url = ?, title = ?, content = ?, category = ?, content_hash = ?, fetched_at = ?
		WHERE id = ?
	`, page.URL, page.Title, page.Content, page.Category, page.ContentHash, fetchedAt, id)
	if err != nil {
		return unibot.WriteSkipped, fmt.Errorf("update page %s: %w", page.Slug, err)
	}
	return unibot.WriteUpdated, tx.Commit()
}

// FindPages retrieves pages matching the filter, ordered by URL.
func (s *PageService) FindPages(ctx context.Context, filter unibot.PageFilter) ([]*unibot.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")

	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*unibot.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPage maps one pageColumns row onto a Page.
func scanPage(row scanner) (*unibot.Page, error) {
	var p unibot.Page
	var fetchedAt string
	if err := row.Scan(&p.ID, &p.URL, &p.Slug, &p.Title, &p.Content, &p.Category, &p.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if p.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
