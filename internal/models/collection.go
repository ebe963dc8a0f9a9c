package models

import (
	"time"
)

// Collection represents a user's board of saved pins
type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPrivate   bool      `json:"is_private"`
	ShareCode   string    `json:"share_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Listing extras, filled by GetUserCollections
	PinsCount   int   `json:"pins_count"`
	PreviewPins []Pin `json:"preview_pins,omitempty"`
}

// VisibleTo reports whether userID may read the collection.
// Public collections are visible to everyone, including anonymous callers.
func (c *Collection) VisibleTo(userID string) bool {
	return !c.IsPrivate || (userID != "" && c.UserID == userID)
}

// CollectionDetail is a collection together with its pins
type CollectionDetail struct {
	Collection
	Pins []Pin `json:"pins"`
}

// CollectionCreate is the request body for creating a collection
type CollectionCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

// CollectionUpdate is the request body for updating a collection
type CollectionUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
}

// AddPinRequest is the request body for saving a pin into a collection
type AddPinRequest struct {
	PinID string `json:"pin_id"`
}
