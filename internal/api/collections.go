package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meur/pinboard/internal/models"
	"go.uber.org/zap"
)

type collectionLookup func(ctx context.Context, key string) (*models.Collection, error)

// readableCollection loads the collection named by URL param and applies the
// privacy rule: private collections answer 401 to anonymous callers and 403
// to everyone but the owner. On failure the response is already written.
func (s *Server) readableCollection(w http.ResponseWriter, r *http.Request, lookup collectionLookup, param string) (*models.Collection, bool) {
	collection, err := lookup(r.Context(), chi.URLParam(r, param))
	if err != nil {
		s.internalError(w, r, "Failed to fetch collection", err)
		return nil, false
	}
	if collection == nil {
		respondError(w, http.StatusNotFound, "Collection not found")
		return nil, false
	}

	userID := userIDFrom(r.Context())
	if !collection.VisibleTo(userID) {
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
		} else {
			respondError(w, http.StatusForbidden, "Access denied")
		}
		return nil, false
	}
	return collection, true
}

// ownedCollection loads the collection in {id} for a mutation by its owner.
func (s *Server) ownedCollection(w http.ResponseWriter, r *http.Request) (*models.Collection, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return nil, false
	}

	collection, err := s.store.GetCollection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, r, "Failed to fetch collection", err)
		return nil, false
	}
	if collection == nil {
		respondError(w, http.StatusNotFound, "Collection not found")
		return nil, false
	}
	if collection.UserID != userID {
		respondError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return collection, true
}

// handleCreateCollection creates a collection owned by the caller
func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.CollectionCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Collection name is required")
		return
	}

	collection, err := s.store.CreateCollection(r.Context(), userID, &req)
	if err != nil {
		s.internalError(w, r, "Failed to create collection", err)
		return
	}

	respondJSON(w, http.StatusCreated, collection)
}

// handleGetUserCollections returns the caller's collections
func (s *Server) handleGetUserCollections(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	collections, err := s.store.GetUserCollections(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch collections", err)
		return
	}
	respondJSON(w, http.StatusOK, collections)
}

// handleGetCollection returns a collection together with its pins
func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.readableCollection(w, r, s.store.GetCollection, "id")
	if !ok {
		return
	}
	s.respondCollectionDetail(w, r, collection)
}

// handleGetCollectionByCode resolves a share link
func (s *Server) handleGetCollectionByCode(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.readableCollection(w, r, s.store.GetCollectionByShareCode, "code")
	if !ok {
		return
	}
	s.respondCollectionDetail(w, r, collection)
}

func (s *Server) respondCollectionDetail(w http.ResponseWriter, r *http.Request, collection *models.Collection) {
	pins, err := s.store.GetCollectionPins(r.Context(), collection.ID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch collection pins", err)
		return
	}
	respondJSON(w, http.StatusOK, models.CollectionDetail{
		Collection: *collection,
		Pins:       pins,
	})
}

// handleGetCollectionPins returns only the pins of a collection
func (s *Server) handleGetCollectionPins(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.readableCollection(w, r, s.store.GetCollection, "id")
	if !ok {
		return
	}

	pins, err := s.store.GetCollectionPins(r.Context(), collection.ID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch collection pins", err)
		return
	}
	respondJSON(w, http.StatusOK, pins)
}

// handleUpdateCollection applies a partial update to the caller's collection
func (s *Server) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.ownedCollection(w, r)
	if !ok {
		return
	}

	var update models.CollectionUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			respondError(w, http.StatusBadRequest, "Collection name cannot be empty")
			return
		}
		update.Name = &name
	}

	if err := s.store.UpdateCollection(r.Context(), collection.ID, &update); err != nil {
		s.internalError(w, r, "Failed to update collection", err)
		return
	}

	updated, err := s.store.GetCollection(r.Context(), collection.ID)
	if err != nil || updated == nil {
		s.internalError(w, r, "Failed to fetch collection", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteCollection deletes the caller's collection
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.ownedCollection(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteCollection(r.Context(), collection.ID); err != nil {
		s.internalError(w, r, "Failed to delete collection", err)
		return
	}

	s.logger.Info("collection deleted", zap.String("collection_id", collection.ID))
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAddPinToCollection saves an existing pin into the caller's collection
func (s *Server) handleAddPinToCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.ownedCollection(w, r)
	if !ok {
		return
	}

	var req models.AddPinRequest
	if err := decodeJSON(r, &req); err != nil || req.PinID == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pin, err := s.store.GetPin(r.Context(), req.PinID)
	if err != nil {
		s.internalError(w, r, "Failed to fetch pin", err)
		return
	}
	if pin == nil {
		respondError(w, http.StatusNotFound, "Pin not found")
		return
	}

	if err := s.store.AddPinToCollection(r.Context(), collection.ID, pin.ID); err != nil {
		s.internalError(w, r, "Failed to add pin to collection", err)
		return
	}
	respondMessage(w, "Pin added to collection")
}

// handleRemovePinFromCollection takes a pin out of the caller's collection
func (s *Server) handleRemovePinFromCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := s.ownedCollection(w, r)
	if !ok {
		return
	}

	removed, err := s.store.RemovePinFromCollection(r.Context(), collection.ID, chi.URLParam(r, "pinID"))
	if err != nil {
		s.internalError(w, r, "Failed to remove pin from collection", err)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "Pin not in collection")
		return
	}
	respondMessage(w, "Pin removed from collection")
}
