package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meur/pinboard/internal/models"
	"github.com/meur/pinboard/internal/seed"
	"go.uber.org/zap"
)

// handleGetPins returns all pins, newest first
func (s *Server) handleGetPins(w http.ResponseWriter, r *http.Request) {
	pins, err := s.store.GetPins(r.Context())
	if err != nil {
		s.internalError(w, r, "Failed to fetch pins", err)
		return
	}
	respondJSON(w, http.StatusOK, pins)
}

// handleGetPin returns a single pin by ID
func (s *Server) handleGetPin(w http.ResponseWriter, r *http.Request) {
	pin, err := s.store.GetPin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, r, "Failed to fetch pin", err)
		return
	}
	if pin == nil {
		respondError(w, http.StatusNotFound, "Pin not found")
		return
	}
	respondJSON(w, http.StatusOK, pin)
}

// handleCreatePin creates a pin owned by the caller
func (s *Server) handleCreatePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.PinCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Valid() {
		respondError(w, http.StatusBadRequest, "Title and image URL are required")
		return
	}

	pin, err := s.store.CreatePin(r.Context(), userID, &req)
	if err != nil {
		s.internalError(w, r, "Failed to create pin", err)
		return
	}

	s.logger.Debug("pin created", zap.String("pin_id", pin.ID), zap.String("user_id", userID))
	respondJSON(w, http.StatusCreated, pin)
}

// handleCreateMockPins fills the caller's feed with the sample pins
func (s *Server) handleCreateMockPins(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	pins, err := s.store.BulkCreatePins(r.Context(), userID, seed.MockPins())
	if err != nil {
		s.internalError(w, r, "Failed to create mock pins", err)
		return
	}

	s.logger.Info("mock pins created", zap.String("user_id", userID), zap.Int("count", len(pins)))
	respondJSON(w, http.StatusOK, models.MockPinsResult{
		Message:     "Mock pins created successfully",
		Count:       len(pins),
		CreatedPins: pins,
	})
}

// handleGetMyPins returns the pins created by the caller
func (s *Server) handleGetMyPins(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	pins, err := s.store.GetUserPins(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch user pins", err)
		return
	}
	respondJSON(w, http.StatusOK, pins)
}
