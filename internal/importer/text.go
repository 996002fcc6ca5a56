package importer

import (
	"io"
	"regexp"
	"strings"
)

// TextParser handles plain-text sources. Numbered lines ("4.2 Требования…")
// are treated as headings; everything else is body text.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Outline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSuffix(filename, ".txt")
	return outlineFromText(title, string(data)), nil
}

// numberedHeading matches "1 Общие сведения", "4.2. Требования" etc. at the
// start of a line; the digit run gives the nesting depth.
var numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)

// outlineFromText applies the numbered-heading heuristic shared by the text
// and PDF parsers.
func outlineFromText(title, text string) *Outline {
	out := &Outline{Title: title}

	type stackEntry struct {
		node  *OutlineNode
		level int
	}
	root := &OutlineNode{Title: title}
	stack := []stackEntry{{node: root, level: 0}}
	var currentText strings.Builder

	flushText := func() {
		t := strings.TrimSpace(currentText.String())
		if t != "" {
			top := stack[len(stack)-1].node
			if top.Text != "" {
				top.Text += "\n\n" + t
			} else {
				top.Text = t
			}
		}
		currentText.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r\f")
		m := numberedHeading.FindStringSubmatch(strings.TrimSpace(line))
		// Long numbered lines are list items, not headings.
		if m != nil && len(m[2]) <= 80 {
			flushText()
			level := strings.Count(m[1], ".") + 1
			newNode := &OutlineNode{Title: m[2]}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, newNode)
			stack = append(stack, stackEntry{node: newNode, level: level})
			continue
		}
		if strings.TrimSpace(line) == "" {
			if currentText.Len() > 0 {
				currentText.WriteString("\n")
			}
			continue
		}
		if currentText.Len() > 0 {
			currentText.WriteString("\n")
		}
		currentText.WriteString(strings.TrimSpace(line))
	}
	flushText()

	out.Sections = root.Children
	if len(out.Sections) == 0 && root.Text != "" {
		out.Sections = []*OutlineNode{{Text: root.Text}}
	}
	return out
}
