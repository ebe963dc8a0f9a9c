package storage

import (
	"context"
	"database/sql"

	"github.com/meur/pinboard/internal/models"
)

// GetUser returns a user profile, or nil if none was saved
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.queryRow(ctx, s.db, `
		SELECT id, first_name, last_name, email, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Initials = models.Initials(&u)
	return &u, nil
}

// UpsertUser creates or replaces the profile for id
func (s *Store) UpsertUser(ctx context.Context, id string, p *models.ProfileUpdate) (*models.User, error) {
	ts := now()
	_, err := s.exec(ctx, s.db, `
		INSERT INTO users (id, first_name, last_name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			updated_at = excluded.updated_at
	`, id, p.FirstName, p.LastName, p.Email, ts, ts)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}
