package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/meur/pinboard/internal/models"
)

// PreviewPinLimit caps the preview pins returned with collection listings
const PreviewPinLimit = 4

const collectionColumns = `c.id, c.user_id, c.name, c.description, c.is_private, c.share_code, c.created_at, c.updated_at`

func scanCollection(row scanner, extra ...any) (models.Collection, error) {
	var c models.Collection
	dest := []any{&c.ID, &c.UserID, &c.Name, &c.Description,
		&c.IsPrivate, &c.ShareCode, &c.CreatedAt, &c.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return c, err
}

// CreateCollection creates a new collection owned by userID
func (s *Store) CreateCollection(ctx context.Context, userID string, req *models.CollectionCreate) (*models.Collection, error) {
	ts := now()
	c := models.Collection{
		ID:          newID(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		ShareCode:   generateShareCode(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := s.exec(ctx, s.db, `
		INSERT INTO collections (id, user_id, name, description, is_private, share_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Name, c.Description, c.IsPrivate, c.ShareCode, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCollection returns a collection by ID, or nil if it does not exist
func (s *Store) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	return s.getCollectionWhere(ctx, "c.id = ?", id)
}

// GetCollectionByShareCode returns a collection by share code
func (s *Store) GetCollectionByShareCode(ctx context.Context, code string) (*models.Collection, error) {
	return s.getCollectionWhere(ctx, "c.share_code = ?", code)
}

func (s *Store) getCollectionWhere(ctx context.Context, where string, arg any) (*models.Collection, error) {
	var count int
	c, err := scanCollection(s.queryRow(ctx, s.db, `
		SELECT `+collectionColumns+`, (SELECT COUNT(*) FROM collection_pins cp WHERE cp.collection_id = c.id)
		FROM collections c WHERE `+where, arg), &count)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.PinsCount = count
	return &c, nil
}

// GetUserCollections returns userID's collections, most recently updated
// first, each with its pin count and a few preview pins.
func (s *Store) GetUserCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT `+collectionColumns+`, COUNT(cp.pin_id)
		FROM collections c
		LEFT JOIN collection_pins cp ON cp.collection_id = c.id
		WHERE c.user_id = ?
		GROUP BY c.id
		ORDER BY c.updated_at DESC, c.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}

	collections := []models.Collection{}
	for rows.Next() {
		var count int
		c, err := scanCollection(rows, &count)
		if err != nil {
			rows.Close()
			return nil, err
		}
		c.PinsCount = count
		collections = append(collections, c)
	}
	// Close before issuing preview queries; SQLite runs on one connection
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range collections {
		if collections[i].PinsCount == 0 {
			continue
		}
		preview, err := s.collectionPins(ctx, collections[i].ID, PreviewPinLimit)
		if err != nil {
			return nil, err
		}
		collections[i].PreviewPins = preview
	}
	return collections, nil
}

// UpdateCollection applies a partial update
func (s *Store) UpdateCollection(ctx context.Context, id string, update *models.CollectionUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{now()}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.IsPrivate != nil {
		sets = append(sets, "is_private = ?")
		args = append(args, *update.IsPrivate)
	}

	args = append(args, id)
	_, err := s.exec(ctx, s.db, "UPDATE collections SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// DeleteCollection deletes a collection and its pin memberships
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	_, err := s.exec(ctx, s.db, `DELETE FROM collections WHERE id = ?`, id)
	return err
}

// AddPinToCollection saves a pin into a collection. Saving the same pin
// twice is a no-op.
func (s *Store) AddPinToCollection(ctx context.Context, collectionID, pinID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := now()
	res, err := s.exec(ctx, tx, `
		INSERT INTO collection_pins (collection_id, pin_id, added_at)
		VALUES (?, ?, ?)
		ON CONFLICT (collection_id, pin_id) DO NOTHING
	`, collectionID, pinID, ts)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if err := s.touchCollection(ctx, tx, collectionID, ts); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RemovePinFromCollection removes a pin from a collection and reports
// whether it was a member.
func (s *Store) RemovePinFromCollection(ctx context.Context, collectionID, pinID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := s.exec(ctx, tx, `
		DELETE FROM collection_pins WHERE collection_id = ? AND pin_id = ?
	`, collectionID, pinID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if err := s.touchCollection(ctx, tx, collectionID, now()); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (s *Store) touchCollection(ctx context.Context, q querier, id string, ts any) error {
	_, err := s.exec(ctx, q, `UPDATE collections SET updated_at = ? WHERE id = ?`, ts, id)
	return err
}

// GetCollectionPins returns a collection's pins, most recently added first
func (s *Store) GetCollectionPins(ctx context.Context, collectionID string) ([]models.Pin, error) {
	return s.collectionPins(ctx, collectionID, 0)
}

func (s *Store) collectionPins(ctx context.Context, collectionID string, limit int) ([]models.Pin, error) {
	query := `
		SELECT ` + pinColumns + `
		FROM pins p
		JOIN collection_pins cp ON cp.pin_id = p.id
		WHERE cp.collection_id = ?
		ORDER BY cp.added_at DESC, p.id DESC`
	args := []any{collectionID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, err
	}
	return collectPins(rows)
}
