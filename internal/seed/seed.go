// Package seed provides starter pins for empty boards and loads pin files.
package seed

import (
	"fmt"
	"os"

	"github.com/meur/pinboard/internal/models"
	"gopkg.in/yaml.v3"
)

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?auto=format&fit=crop&w=560&q=80"
}

// MockPins returns the built-in sample pins used to populate an empty feed.
func MockPins() []models.PinCreate {
	return []models.PinCreate{
		{Title: "Beautiful Nature", Description: "Nature landscape", ImageURL: unsplash("photo-1540575861501-7cf05a4b125a"), SourceURL: "https://unsplash.com"},
		{Title: "Modern Design", Description: "Modern architecture", ImageURL: unsplash("photo-1668906093328-99601a1aa584"), SourceURL: "https://unsplash.com"},
		{Title: "Delicious Food", Description: "Food photography", ImageURL: unsplash("photo-1567016526105-22da7c13161a"), SourceURL: "https://unsplash.com"},
		{Title: "City Vibes", Description: "Urban landscape", ImageURL: unsplash("photo-1668584054131-d5721c515211"), SourceURL: "https://unsplash.com"},
		{Title: "Creative Art", Description: "Art and design", ImageURL: unsplash("photo-1664574654529-b60630f33fdb"), SourceURL: "https://unsplash.com"},
		{Title: "Architecture Wonder", Description: "Building architecture", ImageURL: unsplash("photo-1486406146926-c627a92ad1ab"), SourceURL: "https://unsplash.com"},
		{Title: "Travel Dreams", Description: "Travel destination", ImageURL: unsplash("photo-1586232702178-f044c5f4d4b7"), SourceURL: "https://unsplash.com"},
		{Title: "Natural Beauty", Description: "Nature scene", ImageURL: unsplash("photo-1542125387-c71274d94f0a"), SourceURL: "https://unsplash.com"},
		{Title: "Home Design", Description: "Interior design", ImageURL: unsplash("photo-1668869713519-9bcbb0da7171"), SourceURL: "https://unsplash.com"},
		{Title: "Lifestyle Moments", Description: "Lifestyle photography", ImageURL: unsplash("photo-1668584054035-f5ba7d426401"), SourceURL: "https://unsplash.com"},
		{Title: "Fashion Style", Description: "Fashion", ImageURL: unsplash("photo-1544717297-fa95b6ee9643"), SourceURL: "https://unsplash.com"},
		{Title: "Mountain View", Description: "Mountain landscape", ImageURL: unsplash("photo-1506905925346-21bda4d32df4"), SourceURL: "https://unsplash.com"},
		{Title: "Tech Innovation", Description: "Technology", ImageURL: unsplash("photo-1571019613454-1cb2f99b2d8b"), SourceURL: "https://unsplash.com"},
		{Title: "Creative Object", Description: "Random object", ImageURL: unsplash("photo-1493612276216-ee3925520721"), SourceURL: "https://unsplash.com"},
		{Title: "Galaxy Dreams", Description: "Space", ImageURL: unsplash("photo-1518837695005-2083093ee35b"), SourceURL: "https://unsplash.com"},
	}
}

// File is the YAML layout accepted by LoadFile
type File struct {
	Pins []models.PinCreate `yaml:"pins"`
}

// LoadFile reads pins from a YAML seed file.
func LoadFile(path string) ([]models.PinCreate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, p := range f.Pins {
		if !p.Valid() {
			return nil, fmt.Errorf("pin %d: title and image_url are required", i)
		}
	}
	return f.Pins, nil
}
