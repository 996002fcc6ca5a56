// Package numbering derives section labels ("1", "2.1", …) from a
// document's tree shape and resolves cross-references against them.
// Labels are computed over present sections only, so excluding an optional
// section consumes no number and later siblings shift up gaplessly.
package numbering

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dgallion1/torgen/internal/document"
)

// ErrDanglingReference is returned when a cross-reference target is not a
// present section of the document.
var ErrDanglingReference = errors.New("reference target is not present in the document")

// Table maps a node path (document.Path.String) to its rendered label.
// Derived data: recomputed after any structural edit, never persisted.
type Table map[string]string

// Compute builds the numbering table for the document's current shape.
// Deterministic: depends on tree shape and presence flags only.
func Compute(d *document.Document) Table {
	t := make(Table)
	number(t, nil, "", d.Sections)
	return t
}

func number(t Table, prefix document.Path, parentLabel string, nodes []*document.Node) {
	seq := 0
	for i, n := range nodes {
		if !n.Present {
			continue
		}
		seq++
		label := strconv.Itoa(seq)
		if parentLabel != "" {
			label = parentLabel + "." + label
		}
		p := append(append(document.Path{}, prefix...), i)
		t[p.String()] = label
		number(t, p, label, n.Children)
	}
}

// Label returns the label assigned to the node at path.
func (t Table) Label(p document.Path) (string, bool) {
	label, ok := t[p.String()]
	return label, ok
}

// Resolve returns the label of the first present section with the target id,
// in document order. Absent or unknown targets fail with ErrDanglingReference.
func Resolve(t Table, d *document.Document, targetID string) (string, error) {
	var found string
	var walk func(prefix document.Path, nodes []*document.Node) bool
	walk = func(prefix document.Path, nodes []*document.Node) bool {
		for i, n := range nodes {
			if !n.Present {
				continue
			}
			p := append(append(document.Path{}, prefix...), i)
			if n.SectionID == targetID {
				found = t[p.String()]
				return true
			}
			if walk(p, n.Children) {
				return true
			}
		}
		return false
	}
	if !walk(nil, d.Sections) || found == "" {
		return "", fmt.Errorf("%w: %q", ErrDanglingReference, targetID)
	}
	return found, nil
}
