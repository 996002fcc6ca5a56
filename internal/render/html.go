package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
)

// HTMLBackend emits an HTML rendition. Section content is produced as
// Markdown first and converted with goldmark, so authors may use Markdown
// inline markup in text fields.
type HTMLBackend struct{}

func (HTMLBackend) Write(title string, sections []Section) ([]byte, error) {
	md, err := (MarkdownBackend{}).Write(title, sections)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := goldmark.New().Convert(md, &body); err != nil {
		return nil, fmt.Errorf("convert to html: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"ru\">\n<head>\n")
	out.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
