package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/meur/pinboard/internal/masonry"
	"github.com/meur/pinboard/internal/models"
)

// handleGetFeedLayout returns all pins distributed into masonry columns
func (s *Server) handleGetFeedLayout(w http.ResponseWriter, r *http.Request) {
	pins, err := s.store.GetPins(r.Context())
	if err != nil {
		s.internalError(w, r, "Failed to fetch pins", err)
		return
	}
	s.respondLayout(w, r, pins)
}

// handleGetCollectionLayout returns a collection's pins distributed into
// masonry columns
func (s *Server) handleGetCollectionLayout(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.readableCollection(w, r, s.store.GetCollection, "id")
	if !ok {
		return
	}

	pins, err := s.store.GetCollectionPins(r.Context(), collection.ID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch collection pins", err)
		return
	}
	s.respondLayout(w, r, pins)
}

func (s *Server) respondLayout(w http.ResponseWriter, r *http.Request, pins []models.Pin) {
	bps, err := s.layoutBreakpoints(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	layout := models.FeedLayout{
		TotalCount: len(pins),
		Grids:      make([]models.GridLayout, 0, len(bps)),
	}
	for _, grid := range masonry.Layout(pins, bps) {
		layout.Grids = append(layout.Grids, models.GridLayout{
			Breakpoint: grid.Breakpoint,
			Columns:    grid.Columns,
		})
	}
	respondJSON(w, http.StatusOK, layout)
}

// layoutBreakpoints picks the breakpoints requested by the query string.
// ?columns=N yields one ad-hoc grid, ?width=W the matching configured
// breakpoint, and no parameters every configured breakpoint.
func (s *Server) layoutBreakpoints(r *http.Request) ([]masonry.Breakpoint, error) {
	query := r.URL.Query()

	if raw := query.Get("columns"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > s.maxColumns {
			return nil, fmt.Errorf("columns must be an integer between 1 and %d", s.maxColumns)
		}
		return []masonry.Breakpoint{{Name: "custom", Columns: n}}, nil
	}

	if raw := query.Get("width"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil || width < 0 {
			return nil, fmt.Errorf("width must be a non-negative integer")
		}
		return []masonry.Breakpoint{masonry.ForWidth(s.breakpoints, width)}, nil
	}

	return s.breakpoints, nil
}
