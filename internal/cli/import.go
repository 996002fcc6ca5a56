package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/torgen/internal/importer"
	"github.com/dgallion1/torgen/internal/schema"
)

var importOut string
var importNoPdftotext bool

var importCmd = &cobra.Command{
	Use:   "import <document>",
	Short: "Build a draft snapshot from an existing document",
	Long: `Parse an existing document (.docx, .pdf, .md, .html, .txt or a .csv
requirement list), match its headings to GOST 34.602-89 sections and write
the result as a snapshot file for further editing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.Load()
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}

		filename := filepath.Base(args[0])
		if !importer.IsSupportedExtension(filename) {
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := importer.Import(s, f, filename, importer.Options{
			PDFFallbackPdftotext: !importNoPdftotext,
		})
		if err != nil {
			return err
		}

		if err := saveDocument(importOut, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", okStyle.Render("imported"), args[0], importOut)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "tor.json", "Output snapshot file")
	importCmd.Flags().BoolVar(&importNoPdftotext, "no-pdftotext", false, "Disable the pdftotext fallback for PDF input")
	rootCmd.AddCommand(importCmd)
}
