// Package importer pre-fills a draft TOR document from an existing file.
// Source headings are matched against the schema's section titles (or their
// leading GOST numbers); matched content lands in the corresponding section,
// everything else is collected into the purpose section for the author to
// redistribute.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/schema"
)

// Outline is the format-independent shape of a source document.
type Outline struct {
	Title    string
	Sections []*OutlineNode
}

// OutlineNode is one heading of a source document with its body text.
type OutlineNode struct {
	Title    string
	Text     string
	Children []*OutlineNode
}

// SourceParser converts raw document bytes into an Outline.
type SourceParser interface {
	Parse(r io.Reader, filename string) (*Outline, error)
}

// Options tune format-specific behavior.
type Options struct {
	// PDFFallbackPdftotext enables shelling out to pdftotext when the Go
	// PDF library cannot extract text.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions the importer can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (SourceParser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// Import parses the source and maps it onto a fresh document.
func Import(s *schema.Schema, r io.Reader, filename string, opts Options) (*document.Document, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	outline, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return Map(s, outline)
}
