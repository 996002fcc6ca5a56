package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SupportedFormats lists the output formats this build can produce.
var SupportedFormats = map[string]bool{
	"text":     true,
	"markdown": true,
	"html":     true,
	"docx":     true,
}

// ForFormat returns the backend for an output format name.
func ForFormat(format string) (Backend, error) {
	switch strings.ToLower(format) {
	case "text", "txt":
		return TextBackend{}, nil
	case "markdown", "md":
		return MarkdownBackend{}, nil
	case "html":
		return HTMLBackend{}, nil
	case "docx":
		return DOCXBackend{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension for a format name.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "text", "txt":
		return ".txt"
	case "markdown", "md":
		return ".md"
	case "html":
		return ".html"
	case "docx":
		return ".docx"
	}
	return ".txt"
}

// ContentType returns the MIME type for a format name.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return "text/markdown; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "text/plain; charset=utf-8"
}

// OutputFilename builds "<safe document name>_<timestamp><ext>".
func OutputFilename(title, format string, now time.Time) string {
	safe := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, title))
	if safe == "" {
		safe = "document"
	}
	return fmt.Sprintf("%s_%s%s", safe, now.Format("20060102_150405"), Extension(format))
}
