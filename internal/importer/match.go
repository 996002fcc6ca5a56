package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/schema"
)

// keywords maps section ids to title fragments commonly seen in existing TOR
// documents. Matching is tried after exact/prefix title comparison. Order
// matters: "нефункциональные требования" must be tried before the
// "функциональные требования" fragment it contains.
var keywords = []struct {
	id    string
	words []string
}{
	{"nonfunctional", []string{"нефункциональные требования"}},
	{"functional", []string{"функциональные требования", "требования к функциям"}},
	{"general", []string{"общие сведения"}},
	{"purpose", []string{"назначение", "цели создания"}},
	{"object", []string{"характеристика объекта"}},
	{"preparation", []string{"подготовке объекта автоматизации"}},
	{"documentation", []string{"требования к документированию"}},
	{"requirements", []string{"требования к системе"}},
	{"works", []string{"состав и содержание работ"}},
	{"acceptance", []string{"порядок контроля", "приемки", "приёмки"}},
	{"sources", []string{"источники разработки"}},
	{"appendix", []string{"приложение"}},
}

var leadingNumber = regexp.MustCompile(`^\s*\d+(\.\d+)*\.?\s+`)

func normalizeTitle(s string) string {
	s = leadingNumber.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// matchSection finds the schema section a source heading refers to.
func matchSection(s *schema.Schema, heading string) (string, bool) {
	norm := normalizeTitle(heading)
	if norm == "" {
		return "", false
	}

	var found string
	var walk func(defs []*schema.SectionDef)
	walk = func(defs []*schema.SectionDef) {
		for _, def := range defs {
			if found != "" {
				return
			}
			defNorm := normalizeTitle(def.Title)
			if norm == defNorm || strings.HasPrefix(norm, defNorm) {
				found = def.ID
				return
			}
			walk(def.Children)
		}
	}
	walk(s.Sections)
	if found != "" {
		return found, true
	}

	for _, kw := range keywords {
		for _, w := range kw.words {
			if strings.Contains(norm, w) {
				return kw.id, true
			}
		}
	}
	return "", false
}

// Map distributes an outline's content over a fresh document.
func Map(s *schema.Schema, outline *Outline) (*document.Document, error) {
	doc := document.CreateEmpty(s)
	var leftover []string

	var place func(nodes []*OutlineNode)
	place = func(nodes []*OutlineNode) {
		for _, n := range nodes {
			id, ok := matchSection(s, n.Title)
			switch {
			case ok && id == "appendix":
				if err := placeAppendix(doc, n); err != nil {
					leftover = append(leftover, n.Title, n.Text)
				}
			case ok:
				if err := placeInto(doc, id, n.Text); err != nil {
					leftover = append(leftover, n.Text)
				}
			case strings.TrimSpace(n.Text) != "":
				leftover = append(leftover, strings.TrimSpace(n.Text))
			}
			place(n.Children)
		}
	}
	place(outline.Sections)

	// Unmatched content goes to the purpose section for manual triage.
	if len(leftover) > 0 {
		if err := placeInto(doc, "purpose", strings.Join(leftover, "\n\n")); err != nil {
			return nil, err
		}
	}

	if outline.Title != "" {
		if p, ok := pathOf(doc, "general"); ok {
			if err := doc.SetField(p, "name", schema.Text(outline.Title)); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// pathOf finds the first node with the given section id, present or not.
func pathOf(d *document.Document, id string) (document.Path, bool) {
	var found document.Path
	d.Walk(func(p document.Path, n *document.Node) {
		if found == nil && n.SectionID == id {
			found = p
		}
	})
	return found, found != nil
}

// placeInto marks the section present and appends text to its primary field.
func placeInto(d *document.Document, id, text string) error {
	text = strings.TrimSpace(text)
	p, ok := pathOf(d, id)
	if !ok {
		return fmt.Errorf("section %q has no placeholder", id)
	}
	if err := d.SetPresent(p, true); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	n, err := d.Node(p)
	if err != nil {
		return err
	}
	def, _ := d.Schema().Lookup(id)
	f, ok := primaryField(def)
	if !ok {
		return nil
	}
	if prev := n.Content[f.Name]; !prev.IsZero() {
		text = prev.Text + "\n\n" + text
	}
	return d.SetField(p, f.Name, schema.Text(text))
}

// placeAppendix adds one appendix instance under requirements.
func placeAppendix(d *document.Document, n *OutlineNode) error {
	reqPath, ok := pathOf(d, "requirements")
	if !ok {
		return fmt.Errorf("no requirements section in schema")
	}
	p, err := d.AddChild(reqPath, "appendix")
	if err != nil {
		return err
	}
	if t := strings.TrimSpace(n.Title); t != "" {
		if err := d.SetField(p, "heading", schema.Text(t)); err != nil {
			return err
		}
	}
	if t := strings.TrimSpace(n.Text); t != "" {
		if err := d.SetField(p, "body", schema.Text(t)); err != nil {
			return err
		}
	}
	return nil
}

// primaryField picks the field free text should land in: the first required
// text field, else the first text field.
func primaryField(def *schema.SectionDef) (schema.FieldDef, bool) {
	for _, f := range def.Fields {
		if f.Type == schema.FieldText && f.Required {
			return f, true
		}
	}
	for _, f := range def.Fields {
		if f.Type == schema.FieldText {
			return f, true
		}
	}
	return schema.FieldDef{}, false
}
