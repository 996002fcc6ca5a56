// Package cli implements the torgen command line front end. It operates on
// local snapshot files and calls the same engine entry points the HTTP API
// does: create, edit, validate, render, import.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/schema"
)

var rootCmd = &cobra.Command{
	Use:   "torgen",
	Short: "Assemble technical specification (TOR) documents per GOST 34.602-89",
	Long: `torgen assembles, validates and renders technical specification documents
structured after GOST 34.602-89. Documents are edited as JSON snapshot files
and rendered to text, Markdown, HTML or DOCX.`,
}

func init() {
	rootCmd.Version = "1.0.0"
	rootCmd.SetVersionTemplate(fmt.Sprintf("torgen %s\n", rootCmd.Version))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDocument reads a snapshot file and restores it against the built-in schema.
func loadDocument(path string) (*schema.Schema, *document.Document, error) {
	s, err := schema.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load schema: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var snap document.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	doc, err := document.Restore(s, snap)
	if err != nil {
		return nil, nil, fmt.Errorf("restore %s: %w", path, err)
	}
	return s, doc, nil
}

// saveDocument writes a document snapshot as indented JSON.
func saveDocument(path string, doc *document.Document) error {
	data, err := json.MarshalIndent(doc.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
