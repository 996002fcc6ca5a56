package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/torgen/internal/store"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		jsonError(w, "list projects: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": infos})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	p, err := s.store.Load(r.Context(), id)
	if err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if err := s.store.Delete(r.Context(), id); err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	s.log.Info("project deleted", "project_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
