package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/meur/pinboard/internal/models"
)

const pinColumns = `p.id, p.user_id, p.title, p.description, p.image_url, p.source_url, p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPin(row scanner) (models.Pin, error) {
	var p models.Pin
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description,
		&p.ImageURL, &p.SourceURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectPins(rows *sql.Rows) ([]models.Pin, error) {
	defer rows.Close()

	pins := []models.Pin{}
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			return nil, err
		}
		pins = append(pins, p)
	}
	return pins, rows.Err()
}

// CreatePin creates a new pin owned by userID
func (s *Store) CreatePin(ctx context.Context, userID string, req *models.PinCreate) (*models.Pin, error) {
	pin := newPin(userID, req)
	if err := s.insertPin(ctx, s.db, &pin); err != nil {
		return nil, err
	}
	return &pin, nil
}

// BulkCreatePins creates multiple pins in a transaction
func (s *Store) BulkCreatePins(ctx context.Context, userID string, reqs []models.PinCreate) ([]models.Pin, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	pins := make([]models.Pin, 0, len(reqs))
	for i := range reqs {
		pin := newPin(userID, &reqs[i])
		if err := s.insertPin(ctx, tx, &pin); err != nil {
			return nil, fmt.Errorf("pin %d: %w", i, err)
		}
		pins = append(pins, pin)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pins, nil
}

func newPin(userID string, req *models.PinCreate) models.Pin {
	ts := now()
	return models.Pin{
		ID:          newID(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SourceURL:   req.SourceURL,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func (s *Store) insertPin(ctx context.Context, q querier, p *models.Pin) error {
	_, err := s.exec(ctx, q, `
		INSERT INTO pins (id, user_id, title, description, image_url, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Title, p.Description, p.ImageURL, p.SourceURL, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetPins returns all pins, newest first
func (s *Store) GetPins(ctx context.Context) ([]models.Pin, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT `+pinColumns+`
		FROM pins p ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectPins(rows)
}

// GetPin returns a pin by ID, or nil if it does not exist
func (s *Store) GetPin(ctx context.Context, id string) (*models.Pin, error) {
	p, err := scanPin(s.queryRow(ctx, s.db, `
		SELECT `+pinColumns+`
		FROM pins p WHERE p.id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetUserPins returns the pins created by userID, newest first
func (s *Store) GetUserPins(ctx context.Context, userID string) ([]models.Pin, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT `+pinColumns+`
		FROM pins p WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectPins(rows)
}
