package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/pinboard/internal/masonry"
	"github.com/meur/pinboard/internal/storage"
	"go.uber.org/zap"
)

// Options configures the API server. Zero values fall back to defaults.
type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	Breakpoints    []masonry.Breakpoint
	MaxColumns     int
}

// Server holds the HTTP server dependencies
type Server struct {
	store       *storage.Store
	router      chi.Router
	logger      *zap.Logger
	origins     []string
	breakpoints []masonry.Breakpoint
	maxColumns  int
}

// New creates a new API server
func New(store *storage.Store, opts Options) *Server {
	s := &Server{
		store:       store,
		router:      chi.NewRouter(),
		logger:      opts.Logger,
		origins:     opts.AllowedOrigins,
		breakpoints: opts.Breakpoints,
		maxColumns:  opts.MaxColumns,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if len(s.origins) == 0 {
		s.origins = []string{"http://localhost:*"}
	}
	if len(s.breakpoints) == 0 {
		s.breakpoints = masonry.DefaultBreakpoints()
	}
	if s.maxColumns < 1 {
		s.maxColumns = 12
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the underlying router so callers can mount extra handlers
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(identify)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", UserIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Pins
		r.Get("/pins", s.handleGetPins)
		r.Post("/pins", s.handleCreatePin)
		r.Post("/pins/create-mock", s.handleCreateMockPins)
		r.Get("/pins/{id}", s.handleGetPin)

		// Feed layout
		r.Get("/feed/layout", s.handleGetFeedLayout)

		// Current user
		r.Get("/me", s.handleGetMe)
		r.Put("/me", s.handleUpdateMe)
		r.Get("/me/pins", s.handleGetMyPins)

		// Collections
		r.Get("/collections", s.handleGetUserCollections)
		r.Post("/collections", s.handleCreateCollection)
		r.Route("/collections/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetCollection)
			r.Put("/", s.handleUpdateCollection)
			r.Delete("/", s.handleDeleteCollection)
			r.Get("/pins", s.handleGetCollectionPins)
			r.Post("/pins", s.handleAddPinToCollection)
			r.Delete("/pins/{pinID}", s.handleRemovePinFromCollection)
			r.Get("/layout", s.handleGetCollectionLayout)
		})

		// Share links
		r.Get("/s/{code}", s.handleGetCollectionByCode)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondMessage(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// internalError logs err and answers with a generic 500
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	s.logger.Error(message,
		zap.Error(err),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
	)
	respondError(w, http.StatusInternalServerError, message)
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
