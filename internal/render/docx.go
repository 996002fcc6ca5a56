package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
)

// DOCXBackend emits a Word document laid out the way the standard profile's
// paper form looks: centered document title, general-info table, numbered
// headings, one list paragraph per requirement line.
type DOCXBackend struct {
	// Now supplies the "дата создания ТЗ" cell; defaults to time.Now.
	Now func() time.Time
}

// generalLabels maps general-section field names to their table row labels.
var generalLabels = map[string]string{
	"doc_type":    "Тип документации:",
	"system_type": "Тип системы:",
	"deadline":    "Срок выполнения:",
	"basis":       "Основание для разработки:",
}

func (b DOCXBackend) Write(title string, sections []Section) ([]byte, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	w := docx.New().WithDefaultTheme()

	head := w.AddParagraph().Justification("center")
	head.AddText("ТЕХНИЧЕСКОЕ ЗАДАНИЕ").Size("40").Bold()
	sub := w.AddParagraph().Justification("center")
	sub.AddText(title).Size("32").Bold()
	w.AddParagraph()

	for _, sec := range sections {
		h := w.AddParagraph()
		size := "28"
		heading := sec.Title
		if sec.Depth == 1 {
			size = "32"
			heading = strings.ToUpper(heading)
		}
		h.AddText(sec.Label + ". " + heading).Size(size).Bold()

		if sec.ID == "general" {
			if err := writeGeneralTable(w, sec, now()); err != nil {
				return nil, err
			}
		} else {
			for _, f := range sec.Fields {
				if f.Multiline {
					for _, item := range Lines(f.Value) {
						w.AddParagraph().AddText("• " + item)
					}
				} else {
					w.AddParagraph().AddText(f.Value)
				}
			}
		}
		for _, ref := range sec.RefLabels {
			w.AddParagraph().AddText("(см. раздел " + ref + ")").Italic()
		}
		w.AddParagraph()
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// writeGeneralTable renders the general-info fields as a two-column table,
// plus a creation-date row.
func writeGeneralTable(w *docx.Docx, sec Section, now time.Time) error {
	type row struct{ label, value string }
	var rows []row
	for _, f := range sec.Fields {
		if f.Name == "name" {
			continue // already the document subtitle
		}
		label, ok := generalLabels[f.Name]
		if !ok {
			label = f.Name + ":"
		}
		rows = append(rows, row{label, f.Value})
	}
	rows = append(rows, row{"Дата создания ТЗ:", now.Format("02.01.2006")})

	tbl := w.AddTable(len(rows), 2, 8100, nil)
	for i, r := range rows {
		cells := tbl.TableRows[i].TableCells
		if len(cells) < 2 {
			return fmt.Errorf("docx table row %d has %d cells", i, len(cells))
		}
		cells[0].AddParagraph().AddText(r.label).Bold()
		cells[1].AddParagraph().AddText(r.value)
	}
	return nil
}
