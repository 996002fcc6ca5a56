// Package document holds the mutable in-memory model of one TOR document:
// a tree of section nodes mirroring the schema, with author-supplied field
// content. One instance belongs to exactly one authoring session; callers
// must not share an instance between concurrent writers.
package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/torgen/internal/schema"
)

// Path identifies a node by child indices from the document root.
// Indices count all sibling nodes, present or not.
type Path []int

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// ParsePath parses a dot-separated index path, e.g. "3.0".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(s, ".")
	p := make(Path, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid path segment %q", part)
		}
		p[i] = n
	}
	return p, nil
}

// Node is one section instance in a document.
type Node struct {
	SectionID string
	Present   bool
	Content   map[string]schema.Value
	// Refs lists section ids this section's text refers to ("см. раздел N").
	// Targets are resolved to labels at validation/render time, never while
	// editing, so a reference may point at a not-yet-added section.
	Refs     []string
	Children []*Node
}

// Document is a mutable TOR document instance bound to one schema.
type Document struct {
	schema   *schema.Schema
	Sections []*Node
}

// Schema returns the schema this document was created against.
func (d *Document) Schema() *schema.Schema { return d.schema }

// CreateEmpty instantiates a document with every schema section in place:
// mandatory sections present with empty content, optional sections as
// absent placeholders.
func CreateEmpty(s *schema.Schema) *Document {
	d := &Document{schema: s}
	for _, def := range s.Sections {
		d.Sections = append(d.Sections, newNode(def))
	}
	return d
}

func newNode(def *schema.SectionDef) *Node {
	n := &Node{
		SectionID: def.ID,
		Present:   def.Mandatory,
		Content:   make(map[string]schema.Value),
	}
	for _, c := range def.Children {
		n.Children = append(n.Children, newNode(c))
	}
	return n
}

// Prefill sets the standard's default content on empty fields of a fresh
// document (work stages, acceptance procedure).
func Prefill(d *Document) {
	d.Walk(func(p Path, n *Node) {
		switch n.SectionID {
		case "works":
			if n.Content["stages"].IsZero() {
				n.Content["stages"] = schema.Text(schema.DefaultStages)
			}
		case "acceptance":
			if n.Content["text"].IsZero() {
				n.Content["text"] = schema.Text(schema.DefaultAcceptance)
			}
		}
	})
}

// Node resolves a path to its node.
func (d *Document) Node(p Path) (*Node, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrUnknownSection)
	}
	siblings := d.Sections
	var n *Node
	for _, idx := range p {
		if idx < 0 || idx >= len(siblings) {
			return nil, fmt.Errorf("%w: path %s out of range", ErrUnknownSection, p)
		}
		n = siblings[idx]
		siblings = n.Children
	}
	return n, nil
}

// Walk visits every node depth-first in document order, present or not.
func (d *Document) Walk(fn func(Path, *Node)) {
	var rec func(Path, []*Node)
	rec = func(prefix Path, nodes []*Node) {
		for i, n := range nodes {
			p := append(append(Path{}, prefix...), i)
			fn(p, n)
			rec(p, n.Children)
		}
	}
	rec(nil, d.Sections)
}

// SetField sets one field value on the section at path.
func (d *Document) SetField(p Path, name string, v schema.Value) error {
	n, err := d.Node(p)
	if err != nil {
		return err
	}
	def, ok := d.schema.Lookup(n.SectionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, n.SectionID)
	}
	f, ok := def.Field(name)
	if !ok {
		return fmt.Errorf("%w: section %q has no field %q", ErrUnknownField, def.ID, name)
	}
	if err := f.Check(v); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	n.Content[name] = v
	return nil
}

// SetPresent includes or excludes an optional section.
func (d *Document) SetPresent(p Path, present bool) error {
	n, err := d.Node(p)
	if err != nil {
		return err
	}
	if !present && d.schema.IsMandatory(n.SectionID) {
		return fmt.Errorf("%w: %q", ErrMandatorySection, n.SectionID)
	}
	n.Present = present
	return nil
}

// AddChild appends a new instance of an allowed child section and returns
// its path. Non-repeatable sections may occur once per parent; the new
// node's own subtree is instantiated the same way CreateEmpty does.
func (d *Document) AddChild(parent Path, sectionID string) (Path, error) {
	n, err := d.Node(parent)
	if err != nil {
		return nil, err
	}
	def, ok := d.schema.Lookup(n.SectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, n.SectionID)
	}
	childDef, ok := def.Child(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q under %q", ErrInvalidChild, sectionID, def.ID)
	}
	if !childDef.Repeatable {
		for _, c := range n.Children {
			if c.SectionID == sectionID {
				return nil, fmt.Errorf("%w: %q already exists under %q", ErrInvalidChild, sectionID, def.ID)
			}
		}
	}
	child := newNode(childDef)
	child.Present = true
	n.Children = append(n.Children, child)
	return append(append(Path{}, parent...), len(n.Children)-1), nil
}

// RemoveChild deletes the node at path. Mandatory sections are not removable.
func (d *Document) RemoveChild(p Path) error {
	n, err := d.Node(p)
	if err != nil {
		return err
	}
	if d.schema.IsMandatory(n.SectionID) {
		return fmt.Errorf("%w: %q", ErrNotRemovable, n.SectionID)
	}
	idx := p[len(p)-1]
	siblings := &d.Sections
	if len(p) > 1 {
		parent, err := d.Node(p[:len(p)-1])
		if err != nil {
			return err
		}
		siblings = &parent.Children
	}
	*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	return nil
}

// AddReference records a cross-reference from the section at path to a
// target section id. The target must exist in the schema but need not be
// present yet; resolution happens at validation/render time.
func (d *Document) AddReference(p Path, targetID string) error {
	n, err := d.Node(p)
	if err != nil {
		return err
	}
	if _, ok := d.schema.Lookup(targetID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, targetID)
	}
	for _, r := range n.Refs {
		if r == targetID {
			return nil
		}
	}
	n.Refs = append(n.Refs, targetID)
	return nil
}

// RemoveReference drops a recorded cross-reference.
func (d *Document) RemoveReference(p Path, targetID string) error {
	n, err := d.Node(p)
	if err != nil {
		return err
	}
	for i, r := range n.Refs {
		if r == targetID {
			n.Refs = append(n.Refs[:i], n.Refs[i+1:]...)
			return nil
		}
	}
	return nil
}
