package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/torgen/internal/config"
	"github.com/dgallion1/torgen/internal/schema"
	"github.com/dgallion1/torgen/internal/session"
	"github.com/dgallion1/torgen/internal/store"
)

// Server is the HTTP front end over the assembly engine. It owns no engine
// semantics: every handler translates a request into one of the engine entry
// points (create, edit, validate, render) plus project persistence.
type Server struct {
	router   chi.Router
	schema   *schema.Schema
	store    *store.Store
	sessions *session.Registry
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(s *schema.Schema, st *store.Store, sessions *session.Registry, log *slog.Logger, cfg config.Config) *Server {
	srv := &Server{
		schema:   s,
		store:    st,
		sessions: sessions,
		log:      log,
		cfg:      cfg,
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/schema", s.handleSchema)

		r.Post("/api/sessions", s.handleOpenSession)
		r.Get("/api/sessions/{sessionID}", s.handleGetSession)
		r.Delete("/api/sessions/{sessionID}", s.handleCloseSession)
		r.Post("/api/sessions/{sessionID}/save", s.handleSaveSession)

		r.Post("/api/sessions/{sessionID}/fields", s.handleSetField)
		r.Post("/api/sessions/{sessionID}/presence", s.handleSetPresent)
		r.Post("/api/sessions/{sessionID}/children", s.handleAddChild)
		r.Delete("/api/sessions/{sessionID}/children", s.handleRemoveChild)
		r.Post("/api/sessions/{sessionID}/references", s.handleAddReference)
		r.Delete("/api/sessions/{sessionID}/references", s.handleRemoveReference)

		r.Get("/api/sessions/{sessionID}/validate", s.handleValidate)
		r.Get("/api/sessions/{sessionID}/numbering", s.handleNumbering)
		r.Get("/api/sessions/{sessionID}/render", s.handleRender)

		r.Post("/api/import", s.handleImport)

		r.Get("/api/projects", s.handleListProjects)
		r.Get("/api/projects/{projectID}", s.handleGetProject)
		r.Delete("/api/projects/{projectID}", s.handleDeleteProject)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleSchema exposes the loaded section tree so front ends can build forms.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.schema)
}
