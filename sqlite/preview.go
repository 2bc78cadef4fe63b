package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ unfurl.PreviewService = (*PreviewService)(nil)

// PreviewService implements unfurl.PreviewService using SQLite.
type PreviewService struct {
	db *DB
}

// NewPreviewService creates a new PreviewService.
func NewPreviewService(db *DB) *PreviewService {
	return &PreviewService{db: db}
}

// FindPreviewByURL retrieves the cached preview for a URL.
func (s *PreviewService) FindPreviewByURL(ctx context.Context, url string) (*unfurl.Preview, error) {
	var p unfurl.Preview
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, description, image, fetched_at
		FROM previews
		WHERE url_hash = ? AND url = ?
	`, hashURL(url), url).Scan(&p.ID, &p.URL, &p.Title, &p.Description, &p.Image, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, unfurl.Errorf(unfurl.ENOTFOUND, "preview not found")
	}
	if err != nil {
		return nil, err
	}

	p.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// SavePreview stores a preview, replacing any existing preview for its URL.
// The ID of a replaced preview is kept.
func (s *PreviewService) SavePreview(ctx context.Context, preview *unfurl.Preview) error {
	if err := preview.Validate(); err != nil {
		return err
	}

	if preview.FetchedAt.IsZero() {
		preview.FetchedAt = time.Now()
	}
	preview.FetchedAt = preview.FetchedAt.UTC().Truncate(time.Second)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO previews (id, url, url_hash, title, description, image, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			image = excluded.image,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), preview.URL, hashURL(preview.URL), preview.Title, preview.Description,
		preview.Image, formatTime(preview.FetchedAt)).Scan(&preview.ID)
}

// FindPreviewURLs returns the URLs of previews fetched at or after since.
func (s *PreviewService) FindPreviewURLs(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url FROM previews WHERE fetched_at >= ? ORDER BY fetched_at
	`, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// DeletePreview removes the cached preview for a URL.
func (s *PreviewService) DeletePreview(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM previews WHERE url_hash = ? AND url = ?
	`, hashURL(url), url)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return unfurl.Errorf(unfurl.ENOTFOUND, "preview not found")
	}
	return nil
}

// DeletePreviewsBefore removes previews fetched before t.
func (s *PreviewService) DeletePreviewsBefore(ctx context.Context, t time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM previews WHERE fetched_at < ?
	`, formatTime(t))
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
