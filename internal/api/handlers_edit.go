package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/schema"
	"github.com/dgallion1/torgen/internal/store"
)

// editStatus maps engine errors to HTTP statuses: unknown targets are 404,
// every other caller mistake is 400.
func editStatus(err error) int {
	switch {
	case errors.Is(err, document.ErrUnknownSection),
		errors.Is(err, document.ErrUnknownField):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func storeStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func parsePath(w http.ResponseWriter, raw string) (document.Path, bool) {
	p, err := document.ParsePath(raw)
	if err != nil {
		jsonError(w, "invalid path: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return p, true
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		Path  string       `json:"path"`
		Field string       `json:"field"`
		Value schema.Value `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p, ok := parsePath(w, req.Path)
	if !ok {
		return
	}
	err := sess.Do(func(d *document.Document) error {
		return d.SetField(p, req.Field, req.Value)
	})
	if err != nil {
		jsonError(w, err.Error(), editStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetPresent(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		Path    string `json:"path"`
		Present bool   `json:"present"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p, ok := parsePath(w, req.Path)
	if !ok {
		return
	}
	err := sess.Do(func(d *document.Document) error {
		return d.SetPresent(p, req.Present)
	})
	if err != nil {
		jsonError(w, err.Error(), editStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddChild(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		ParentPath string `json:"parent_path"`
		SectionID  string `json:"section_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p, ok := parsePath(w, req.ParentPath)
	if !ok {
		return
	}
	var childPath document.Path
	err := sess.Do(func(d *document.Document) error {
		var err error
		childPath, err = d.AddChild(p, req.SectionID)
		return err
	})
	if err != nil {
		jsonError(w, err.Error(), editStatus(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": childPath.String()})
}

func (s *Server) handleRemoveChild(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	p, ok := parsePath(w, r.URL.Query().Get("path"))
	if !ok {
		return
	}
	err := sess.Do(func(d *document.Document) error {
		return d.RemoveChild(p)
	})
	if err != nil {
		jsonError(w, err.Error(), editStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleAddReference(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		Path   string `json:"path"`
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p, ok := parsePath(w, req.Path)
	if !ok {
		return
	}
	err := sess.Do(func(d *document.Document) error {
		return d.AddReference(p, req.Target)
	})
	if err != nil {
		jsonError(w, err.Error(), editStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveReference(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	p, ok := parsePath(w, r.URL.Query().Get("path"))
	if !ok {
		return
	}
	target := r.URL.Query().Get("target")
	err := sess.Do(func(d *document.Document) error {
		return d.RemoveReference(p, target)
	})
	if err != nil {
		jsonError(w, err.Error(), editStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
