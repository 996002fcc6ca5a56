// Package validate checks a document against its schema's structural
// invariants. Check is a pure function: it collects every violation in one
// pass (no short-circuit) and mutates nothing.
package validate

import (
	"fmt"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/numbering"
	"github.com/dgallion1/torgen/internal/schema"
)

// Kind classifies a validation issue.
type Kind string

const (
	KindMissingMandatory  Kind = "missing_mandatory"
	KindUnknownSection    Kind = "unknown_section"
	KindInvalidChild      Kind = "invalid_child"
	KindDuplicateSection  Kind = "duplicate_section"
	KindDanglingReference Kind = "dangling_reference"
)

// Issue is one structural defect. Issues are data for the caller to fix,
// not errors: an invalid document is a normal mid-authoring state.
type Issue struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Result is the full issue set of one validation pass.
type Result struct {
	Issues []Issue `json:"issues"`
}

// OK reports whether the document satisfied every invariant.
func (r Result) OK() bool { return len(r.Issues) == 0 }

func (r *Result) add(p document.Path, kind Kind, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Path:    p.String(),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// Check validates the document against the schema.
func Check(s *schema.Schema, d *document.Document) Result {
	var res Result

	checkLevel(&res, s, d.Sections, nil, s.Sections, "")

	// Cross-references resolve against the numbering of the current shape.
	table := numbering.Compute(d)
	d.Walk(func(p document.Path, n *document.Node) {
		if !n.Present {
			return
		}
		for _, target := range n.Refs {
			if _, err := numbering.Resolve(table, d, target); err != nil {
				res.add(p, KindDanglingReference,
					"reference to section %q does not resolve", target)
			}
		}
	})

	return res
}

// checkLevel compares one sibling level of the document against the allowed
// definitions for that level, then recurses into present nodes.
func checkLevel(res *Result, s *schema.Schema, nodes []*document.Node, prefix document.Path, allowed []*schema.SectionDef, parentID string) {
	allowedByID := make(map[string]*schema.SectionDef, len(allowed))
	for _, def := range allowed {
		allowedByID[def.ID] = def
	}

	presentCount := make(map[string]int)
	for i, n := range nodes {
		p := append(append(document.Path{}, prefix...), i)

		def, known := s.Lookup(n.SectionID)
		if !known {
			res.add(p, KindUnknownSection, "section %q is not in the schema", n.SectionID)
			continue
		}
		if _, ok := allowedByID[n.SectionID]; !ok {
			if parentID == "" {
				res.add(p, KindInvalidChild, "section %q is not allowed at the top level", n.SectionID)
			} else {
				res.add(p, KindInvalidChild, "section %q is not allowed under %q", n.SectionID, parentID)
			}
			continue
		}
		if n.Present {
			presentCount[n.SectionID]++
			if presentCount[n.SectionID] > 1 && !def.Repeatable {
				res.add(p, KindDuplicateSection, "section %q occurs more than once", n.SectionID)
			}
			checkLevel(res, s, n.Children, p, def.Children, def.ID)
		}
	}

	// Invariant 1: every mandatory definition at this level has a present node.
	for _, def := range allowed {
		if def.Mandatory && presentCount[def.ID] == 0 {
			res.add(prefix, KindMissingMandatory, "mandatory section %q is missing", def.ID)
		}
	}
}
