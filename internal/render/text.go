package render

import (
	"strings"
)

// TextBackend emits a plain structured-text rendition. This is the minimum
// backend every deployment carries.
type TextBackend struct{}

func (TextBackend) Write(title string, sections []Section) ([]byte, error) {
	var b strings.Builder

	b.WriteString("ТЕХНИЧЕСКОЕ ЗАДАНИЕ\n")
	b.WriteString(title + "\n\n")

	for _, sec := range sections {
		indent := strings.Repeat("  ", sec.Depth-1)
		heading := sec.Title
		if sec.Depth == 1 {
			heading = strings.ToUpper(heading)
		}
		b.WriteString(indent + sec.Label + ". " + heading + "\n")

		for _, f := range sec.Fields {
			if f.Multiline {
				for _, item := range Lines(f.Value) {
					b.WriteString(indent + "  - " + item + "\n")
				}
			} else {
				b.WriteString(indent + "  " + f.Value + "\n")
			}
		}
		for _, ref := range sec.RefLabels {
			b.WriteString(indent + "  (см. раздел " + ref + ")\n")
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
