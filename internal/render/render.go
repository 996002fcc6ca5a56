// Package render turns a validated document into an output artifact through
// a pluggable format backend. The traversal is format-agnostic: backends
// receive a flat stream of labeled section records in document order.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/numbering"
	"github.com/dgallion1/torgen/internal/schema"
	"github.com/dgallion1/torgen/internal/validate"
)

// ErrUnrenderable is returned when a document fails validation; rendering an
// invalid document is refused, not attempted best-effort.
var ErrUnrenderable = errors.New("document does not pass validation")

// Placeholder texts substituted for empty required fields, as the standard
// profile's original forms do.
const (
	placeholderOne  = "Не указано"
	placeholderMany = "Не указаны"
)

// Field is one rendered content slot.
type Field struct {
	Name      string
	Value     string
	Multiline bool
}

// Section is one present section in document order, ready for a backend.
type Section struct {
	ID     string
	Label  string
	Title  string
	Depth  int
	Path   string
	Fields []Field
	// RefLabels are the resolved labels of this section's cross-references.
	RefLabels []string
}

// Backend produces the output bytes for a section stream.
type Backend interface {
	// Write renders the document title and its section stream.
	Write(title string, sections []Section) ([]byte, error)
}

// Stream flattens the document's present sections into backend records.
// The numbering table must match the document's current shape.
func Stream(d *document.Document, table numbering.Table) []Section {
	var out []Section
	s := d.Schema()

	var walk func(prefix document.Path, depth int, nodes []*document.Node)
	walk = func(prefix document.Path, depth int, nodes []*document.Node) {
		for i, n := range nodes {
			if !n.Present {
				continue
			}
			def, ok := s.Lookup(n.SectionID)
			if !ok {
				continue
			}
			p := append(append(document.Path{}, prefix...), i)
			label, _ := table.Label(p)

			sec := Section{
				ID:    n.SectionID,
				Label: label,
				Title: sectionTitle(def, n),
				Depth: depth,
				Path:  p.String(),
			}
			for _, f := range def.Fields {
				v, set := n.Content[f.Name]
				switch {
				case set && !v.IsZero():
					sec.Fields = append(sec.Fields, Field{Name: f.Name, Value: v.String(), Multiline: f.Multiline})
				case f.Required:
					ph := placeholderOne
					if f.Multiline {
						ph = placeholderMany
					}
					sec.Fields = append(sec.Fields, Field{Name: f.Name, Value: ph, Multiline: f.Multiline})
				}
			}
			for _, target := range n.Refs {
				if refLabel, err := numbering.Resolve(table, d, target); err == nil {
					sec.RefLabels = append(sec.RefLabels, refLabel)
				}
			}
			out = append(out, sec)
			walk(p, depth+1, n.Children)
		}
	}
	walk(nil, 1, d.Sections)
	return out
}

// sectionTitle prefers an author-supplied heading (repeatable sections carry
// one) over the schema title.
func sectionTitle(def *schema.SectionDef, n *document.Node) string {
	if h, ok := n.Content["heading"]; ok && !h.IsZero() {
		return h.String()
	}
	return def.Title
}

// Title returns the document's display name from the general section, or the
// standard's generic document name when unset.
func Title(d *document.Document) string {
	for _, n := range d.Sections {
		if n.SectionID != "general" {
			continue
		}
		if v, ok := n.Content["name"]; ok && !v.IsZero() {
			return v.String()
		}
	}
	return "Техническое задание"
}

// Render validates the document, numbers it and hands the section stream to
// the backend. Fails with ErrUnrenderable when validation reports issues.
func Render(d *document.Document, b Backend) ([]byte, error) {
	res := validate.Check(d.Schema(), d)
	if !res.OK() {
		return nil, fmt.Errorf("%w: %d issue(s)", ErrUnrenderable, len(res.Issues))
	}
	table := numbering.Compute(d)
	return b.Write(Title(d), Stream(d, table))
}

// Lines splits a multiline field value into its non-empty items.
func Lines(value string) []string {
	var items []string
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}
