package document

import (
	"fmt"

	"github.com/dgallion1/torgen/internal/schema"
)

// NodeSnapshot is the serializable form of one section node.
type NodeSnapshot struct {
	SectionID string                  `json:"section_id"`
	Present   bool                    `json:"present"`
	Content   map[string]schema.Value `json:"content,omitempty"`
	Refs      []string                `json:"refs,omitempty"`
	Children  []NodeSnapshot          `json:"children,omitempty"`
}

// Snapshot is a lossless, JSON-serializable copy of a whole document.
// It is the persistence representation; numbering and validation results
// are derived data and never part of it.
type Snapshot struct {
	SchemaVersion string         `json:"schema_version"`
	Sections      []NodeSnapshot `json:"sections"`
}

// Snapshot captures the current document state.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{SchemaVersion: d.schema.Version}
	for _, n := range d.Sections {
		s.Sections = append(s.Sections, snapNode(n))
	}
	return s
}

func snapNode(n *Node) NodeSnapshot {
	ns := NodeSnapshot{
		SectionID: n.SectionID,
		Present:   n.Present,
	}
	if len(n.Content) > 0 {
		ns.Content = make(map[string]schema.Value, len(n.Content))
		for k, v := range n.Content {
			ns.Content[k] = v
		}
	}
	ns.Refs = append(ns.Refs, n.Refs...)
	for _, c := range n.Children {
		ns.Children = append(ns.Children, snapNode(c))
	}
	return ns
}

// Restore rebuilds a document from a snapshot, verifying every node against
// the schema so a stale or hand-edited snapshot cannot produce a tree the
// edit operations could not have built.
func Restore(s *schema.Schema, snap Snapshot) (*Document, error) {
	if snap.SchemaVersion != "" && snap.SchemaVersion != s.Version {
		return nil, fmt.Errorf("snapshot schema %q does not match loaded schema %q",
			snap.SchemaVersion, s.Version)
	}
	d := &Document{schema: s}
	for _, ns := range snap.Sections {
		def, ok := s.Lookup(ns.SectionID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, ns.SectionID)
		}
		n, err := restoreNode(s, def, ns)
		if err != nil {
			return nil, err
		}
		d.Sections = append(d.Sections, n)
	}
	return d, nil
}

func restoreNode(s *schema.Schema, def *schema.SectionDef, ns NodeSnapshot) (*Node, error) {
	n := &Node{
		SectionID: ns.SectionID,
		Present:   ns.Present,
		Content:   make(map[string]schema.Value),
	}
	// A mandatory section marked absent is tolerated here; the validator
	// reports it as a missing-mandatory issue.
	for name, v := range ns.Content {
		f, ok := def.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: section %q has no field %q", ErrUnknownField, def.ID, name)
		}
		if err := f.Check(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		n.Content[name] = v
	}
	n.Refs = append(n.Refs, ns.Refs...)
	for _, cs := range ns.Children {
		childDef, ok := def.Child(cs.SectionID)
		if !ok {
			return nil, fmt.Errorf("%w: %q under %q", ErrInvalidChild, cs.SectionID, def.ID)
		}
		c, err := restoreNode(s, childDef, cs)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
