package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/numbering"
	"github.com/dgallion1/torgen/internal/render"
	"github.com/dgallion1/torgen/internal/validate"
)

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var res validate.Result
	sess.View(func(d *document.Document) error {
		res = validate.Check(s.schema, d)
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     res.OK(),
		"issues": res.Issues,
	})
}

func (s *Server) handleNumbering(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var table numbering.Table
	sess.View(func(d *document.Document) error {
		table = numbering.Compute(d)
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{"labels": table})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}
	backend, err := render.ForFormat(format)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var out []byte
	var title string
	var issues []validate.Issue
	renderErr := sess.View(func(d *document.Document) error {
		// Refuse to render invalid documents; return the issues so the
		// caller can fix them instead of a bare error.
		if res := validate.Check(s.schema, d); !res.OK() {
			issues = res.Issues
			return render.ErrUnrenderable
		}
		title = render.Title(d)
		var err error
		out, err = render.Render(d, backend)
		return err
	})
	if errors.Is(renderErr, render.ErrUnrenderable) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "document does not pass validation",
			"issues": issues,
		})
		return
	}
	if renderErr != nil {
		jsonError(w, "render: "+renderErr.Error(), http.StatusInternalServerError)
		return
	}

	filename := render.OutputFilename(title, format, time.Now())
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(out)
}
