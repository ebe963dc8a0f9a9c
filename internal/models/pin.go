package models

import "time"

// Pin represents a single image card in the feed
type Pin struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	SourceURL   string    `json:"source_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PinCreate is the request body for creating a pin
type PinCreate struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
	SourceURL   string `json:"source_url" yaml:"source_url"`
}

// Valid reports whether the required fields are present
func (p PinCreate) Valid() bool {
	return p.Title != "" && p.ImageURL != ""
}

// MockPinsResult is returned after seeding mock pins
type MockPinsResult struct {
	Message     string `json:"message"`
	Count       int    `json:"count"`
	CreatedPins []Pin  `json:"created_pins"`
}
