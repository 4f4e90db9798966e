package sqlite

import (
	"context"
	"time"

	"github.com/MuhammadAbbas01/unibot"
)

// Compile-time interface verification.
var _ unibot.DocumentSink = (*DocumentLinkService)(nil)

// DocumentLinkService records discovered PDF links using SQLite.
type DocumentLinkService struct {
	db *DB
}

// NewDocumentLinkService creates a new DocumentLinkService.
func NewDocumentLinkService(db *DB) *DocumentLinkService {
	return &DocumentLinkService{db: db}
}

// RecordDocument stores link unless its URL is already recorded.
func (s *DocumentLinkService) RecordDocument(ctx context.Context, link *unibot.DocumentLink) error {
	if link.URL == "" {
		return unibot.Errorf(unibot.EINVALID, "document url required")
	}
	if link.DiscoveredAt.IsZero() {
		link.DiscoveredAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO documents (url, source_url, discovered_at)
		VALUES (?, ?, ?)
	`, link.URL, link.SourceURL, link.DiscoveredAt.UTC().Format(time.RFC3339))
	return err
}

// FindDocuments returns every recorded link in discovery order.
func (s *DocumentLinkService) FindDocuments(ctx context.Context) ([]*unibot.DocumentLink, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, source_url, discovered_at FROM documents ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*unibot.DocumentLink
	for rows.Next() {
		var l unibot.DocumentLink
		var discoveredAt string
		if err := rows.Scan(&l.URL, &l.SourceURL, &discoveredAt); err != nil {
			return nil, err
		}
		if l.DiscoveredAt, err = parseRFC3339(discoveredAt, "discovered_at"); err != nil {
			return nil, err
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}
