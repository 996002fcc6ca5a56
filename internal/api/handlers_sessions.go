package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/render"
	"github.com/dgallion1/torgen/internal/session"
	"github.com/dgallion1/torgen/internal/store"
)

// handleOpenSession starts an authoring session: over a fresh document, or
// over a stored project when project_id is given.
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string `json:"project_id"`
		Prefill   bool   `json:"prefill"`
	}
	if r.Body != nil {
		// An empty body means a fresh, unprefilled document.
		json.NewDecoder(r.Body).Decode(&req)
	}

	var doc *document.Document
	projectID := ""
	if req.ProjectID != "" {
		p, err := s.store.Load(r.Context(), req.ProjectID)
		if err != nil {
			jsonError(w, err.Error(), storeStatus(err))
			return
		}
		doc, err = document.Restore(s.schema, p.Snapshot)
		if err != nil {
			jsonError(w, "restore snapshot: "+err.Error(), http.StatusInternalServerError)
			return
		}
		projectID = p.ID
	} else {
		doc = document.CreateEmpty(s.schema)
		if req.Prefill {
			document.Prefill(doc)
		}
	}

	sess := s.sessions.Open(doc, projectID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sess.ID,
		"project_id": sess.Project(),
	})
}

// session resolves the sessionID URL parameter, writing the error response
// itself when the session does not exist.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
	}
	return sess
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var snap document.Snapshot
	sess.View(func(d *document.Document) error {
		snap = d.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"project_id": sess.Project(),
		"snapshot":   snap,
	})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	s.sessions.Close(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// handleSaveSession persists the session's document as a project.
func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	p := &store.Project{ID: sess.Project(), Name: req.Name}
	sess.View(func(d *document.Document) error {
		p.Snapshot = d.Snapshot()
		if p.Name == "" {
			p.Name = render.Title(d)
		}
		return nil
	})

	if err := s.store.Save(r.Context(), p); err != nil {
		jsonError(w, "save project: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.SetProject(p.ID)

	s.log.Info("project saved", "project_id", p.ID, "name", p.Name)
	writeJSON(w, http.StatusOK, map[string]string{
		"project_id": p.ID,
		"name":       p.Name,
	})
}
