// Package masonry splits an ordered feed into the columns of a masonry grid.
//
// Items are dealt round-robin, so reading the columns left to right, top to
// bottom gives back the original order.
package masonry

import (
	"fmt"
	"sort"
)

// Distribute deals items into columns buckets. Item i lands in bucket
// i%columns at position i/columns. A non-positive column count returns nil.
func Distribute[T any](items []T, columns int) [][]T {
	if columns < 1 {
		return nil
	}

	buckets := make([][]T, columns)
	for i := range buckets {
		buckets[i] = make([]T, 0, (len(items)+columns-1-i)/columns)
	}
	for i, item := range items {
		buckets[i%columns] = append(buckets[i%columns], item)
	}
	return buckets
}

// Flatten reads columns back in display order (row by row, left to right).
func Flatten[T any](columns [][]T) []T {
	total, rows := 0, 0
	for _, col := range columns {
		total += len(col)
		if len(col) > rows {
			rows = len(col)
		}
	}

	out := make([]T, 0, total)
	for row := 0; row < rows; row++ {
		for _, col := range columns {
			if row < len(col) {
				out = append(out, col[row])
			}
		}
	}
	return out
}

// Breakpoint is a viewport width threshold with its column count
type Breakpoint struct {
	Name     string `json:"name" yaml:"name"`
	MinWidth int    `json:"min_width" yaml:"min_width"`
	Columns  int    `json:"columns" yaml:"columns"`
}

// DefaultBreakpoints returns the standard 2/3/4/6 column grid
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "sm", MinWidth: 0, Columns: 2},
		{Name: "md", MinWidth: 768, Columns: 3},
		{Name: "lg", MinWidth: 1024, Columns: 4},
		{Name: "2xl", MinWidth: 1536, Columns: 6},
	}
}

// ValidateBreakpoints checks that a breakpoint set is usable for layout.
func ValidateBreakpoints(bps []Breakpoint) error {
	if len(bps) == 0 {
		return fmt.Errorf("at least one breakpoint is required")
	}

	seen := make(map[string]bool, len(bps))
	for i, bp := range bps {
		if bp.Name == "" {
			return fmt.Errorf("breakpoint %d: name is required", i)
		}
		if seen[bp.Name] {
			return fmt.Errorf("breakpoint %q: duplicate name", bp.Name)
		}
		seen[bp.Name] = true
		if bp.Columns < 1 {
			return fmt.Errorf("breakpoint %q: columns must be >= 1, got %d", bp.Name, bp.Columns)
		}
		if i > 0 && bp.MinWidth <= bps[i-1].MinWidth {
			return fmt.Errorf("breakpoint %q: min_width must be greater than %q's", bp.Name, bps[i-1].Name)
		}
	}
	return nil
}

// ForWidth returns the widest breakpoint whose MinWidth fits in width.
// Widths below every threshold get the narrowest breakpoint.
func ForWidth(bps []Breakpoint, width int) Breakpoint {
	sorted := sortedByWidth(bps)
	if len(sorted) == 0 {
		return Breakpoint{}
	}

	chosen := sorted[0]
	for _, bp := range sorted[1:] {
		if bp.MinWidth <= width {
			chosen = bp
		}
	}
	return chosen
}

// Grid is one breakpoint's precomputed column set
type Grid[T any] struct {
	Breakpoint Breakpoint
	Columns    [][]T
}

// Layout distributes items once per breakpoint, narrowest first.
func Layout[T any](items []T, bps []Breakpoint) []Grid[T] {
	sorted := sortedByWidth(bps)
	grids := make([]Grid[T], 0, len(sorted))
	for _, bp := range sorted {
		grids = append(grids, Grid[T]{
			Breakpoint: bp,
			Columns:    Distribute(items, bp.Columns),
		})
	}
	return grids
}

func sortedByWidth(bps []Breakpoint) []Breakpoint {
	sorted := make([]Breakpoint, len(bps))
	copy(sorted, bps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinWidth < sorted[j].MinWidth
	})
	return sorted
}
