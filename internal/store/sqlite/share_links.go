package sqlite

import (
	"context"
	"fmt"

	"github.com/secondbrain/brain-server/internal/domain"
)

const shareLinkColumns = `hash, user_id, created_at`

func scanShareLink(scanner interface{ Scan(dest ...any) error }) (*domain.ShareLink, error) {
	var (
		l         domain.ShareLink
		createdAt string
	)
	if err := scanner.Scan(&l.Hash, &l.UserID, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateShareLink inserts a share link. The hash is the primary key, so a
// collision surfaces as store.ErrAlreadyExists and nothing is written.
func (s *Store) CreateShareLink(ctx context.Context, l *domain.ShareLink) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO share_links (hash, user_id, created_at) VALUES (?, ?, ?)`,
		l.Hash, l.UserID, formatTime(l.CreatedAt),
	)
	return mapConstraint(err)
}

// GetShareLink retrieves a share link by hash.
func (s *Store) GetShareLink(ctx context.Context, hash string) (*domain.ShareLink, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shareLinkColumns+` FROM share_links WHERE hash = ?`, hash)
	l, err := scanShareLink(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return l, nil
}

// ListShareLinks returns the user's share links newest first.
func (s *Store) ListShareLinks(ctx context.Context, userID string) ([]*domain.ShareLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+shareLinkColumns+` FROM share_links
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}
	defer rows.Close()

	var links []*domain.ShareLink
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan share link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
