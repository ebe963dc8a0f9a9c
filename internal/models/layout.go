package models

import "github.com/meur/pinboard/internal/masonry"

// GridLayout is the masonry column set for one breakpoint
type GridLayout struct {
	Breakpoint masonry.Breakpoint `json:"breakpoint"`
	Columns    [][]Pin            `json:"columns"`
}

// FeedLayout is a pin list laid out for one or more breakpoints
type FeedLayout struct {
	TotalCount int          `json:"total_count"`
	Grids      []GridLayout `json:"grids"`
}
