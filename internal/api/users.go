package api

import (
	"net/http"
	"strings"

	"github.com/meur/pinboard/internal/models"
)

// handleGetMe returns the caller's profile
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch profile", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleUpdateMe creates or replaces the caller's profile
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.ProfileUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "Invalid email")
		return
	}

	user, err := s.store.UpsertUser(r.Context(), userID, &req)
	if err != nil {
		s.internalError(w, r, "Failed to save profile", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
