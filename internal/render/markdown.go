package render

import (
	"strings"
)

// MarkdownBackend emits a Markdown rendition. Heading depth follows section
// depth; multiline fields become bullet lists.
type MarkdownBackend struct{}

func (MarkdownBackend) Write(title string, sections []Section) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# " + title + "\n\n")

	for _, sec := range sections {
		level := sec.Depth + 1
		if level > 6 {
			level = 6
		}
		b.WriteString(strings.Repeat("#", level) + " " + sec.Label + ". " + sec.Title + "\n\n")

		for _, f := range sec.Fields {
			if f.Multiline {
				for _, item := range Lines(f.Value) {
					b.WriteString("- " + item + "\n")
				}
				b.WriteString("\n")
			} else {
				b.WriteString(f.Value + "\n\n")
			}
		}
		for _, ref := range sec.RefLabels {
			b.WriteString("*См. раздел " + ref + ".*\n\n")
		}
	}

	return []byte(b.String()), nil
}
