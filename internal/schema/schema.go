// Package schema defines the immutable section tree a technical
// specification (TOR) document must follow per GOST 34.602-89.
//
// A Schema is loaded once at process start and shared read-only by every
// document; alternate standard revisions are data (LoadJSON), not code.
package schema

import (
	"encoding/json"
	"fmt"
	"io"
)

// FieldType is the closed set of value types a field slot accepts.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldEnum   FieldType = "enum"
)

// FieldDef declares one content slot of a section.
type FieldDef struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
	// Required fields always render; when empty the renderer substitutes
	// a placeholder instead of dropping the slot.
	Required bool `json:"required,omitempty"`
	// Options lists the allowed values for enum fields.
	Options []string `json:"options,omitempty"`
	// Multiline fields hold one item per line (requirement lists, work stages).
	Multiline bool `json:"multiline,omitempty"`
}

// SectionDef is one node of the standard's section tree.
type SectionDef struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Mandatory bool          `json:"mandatory,omitempty"`
	// Repeatable sections (appendices) may occur several times under one parent.
	Repeatable bool          `json:"repeatable,omitempty"`
	Fields     []FieldDef    `json:"fields,omitempty"`
	Children   []*SectionDef `json:"children,omitempty"`
}

// Field returns the field slot with the given name.
func (d *SectionDef) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Child returns the allowed child definition with the given id.
func (d *SectionDef) Child(id string) (*SectionDef, bool) {
	for _, c := range d.Children {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Schema is a loaded, verified section tree. Read-only after load.
type Schema struct {
	Version  string        `json:"version"`
	Sections []*SectionDef `json:"sections"`

	index map[string]*SectionDef
}

// Load returns the built-in GOST 34.602-89 schema.
func Load() (*Schema, error) {
	return build(gost34602())
}

// LoadJSON loads an alternate schema revision from JSON.
func LoadJSON(r io.Reader) (*Schema, error) {
	var s Schema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return build(&s)
}

// build indexes the tree and verifies internal consistency.
func build(s *Schema) (*Schema, error) {
	s.index = make(map[string]*SectionDef)
	for _, sec := range s.Sections {
		if err := verify(s.index, sec, nil); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Version, err)
		}
	}
	if len(s.Sections) == 0 {
		return nil, fmt.Errorf("schema %q: no sections", s.Version)
	}
	return s, nil
}

func verify(index map[string]*SectionDef, d *SectionDef, parent *SectionDef) error {
	if d.ID == "" {
		return fmt.Errorf("section with empty id (title %q)", d.Title)
	}
	if d.Title == "" {
		return fmt.Errorf("section %q: empty title", d.ID)
	}
	if _, dup := index[d.ID]; dup {
		return fmt.Errorf("duplicate section id %q", d.ID)
	}
	if d.Mandatory && d.Repeatable {
		return fmt.Errorf("section %q: mandatory sections cannot be repeatable", d.ID)
	}
	if d.Mandatory && parent != nil && !parent.Mandatory {
		return fmt.Errorf("section %q: mandatory child under optional parent %q", d.ID, parent.ID)
	}
	index[d.ID] = d

	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("section %q: field with empty name", d.ID)
		}
		if seen[f.Name] {
			return fmt.Errorf("section %q: duplicate field %q", d.ID, f.Name)
		}
		seen[f.Name] = true
		switch f.Type {
		case FieldText, FieldNumber, FieldDate:
			if len(f.Options) > 0 {
				return fmt.Errorf("section %q, field %q: options on non-enum field", d.ID, f.Name)
			}
		case FieldEnum:
			if len(f.Options) == 0 {
				return fmt.Errorf("section %q, field %q: enum field without options", d.ID, f.Name)
			}
		default:
			return fmt.Errorf("section %q, field %q: unknown type %q", d.ID, f.Name, f.Type)
		}
	}

	for _, c := range d.Children {
		if err := verify(index, c, d); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the definition for a section id.
func (s *Schema) Lookup(id string) (*SectionDef, bool) {
	d, ok := s.index[id]
	return d, ok
}

// IsMandatory reports whether the section id exists and is mandatory.
func (s *Schema) IsMandatory(id string) bool {
	d, ok := s.index[id]
	return ok && d.Mandatory
}
