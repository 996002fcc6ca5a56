package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/torgen/internal/render"
	"github.com/dgallion1/torgen/internal/validate"
)

var renderFormat string
var renderOutDir string

var renderCmd = &cobra.Command{
	Use:   "render <snapshot.json>",
	Short: "Render a valid snapshot to an output document",
	Long: `Render a snapshot to the chosen format. The document must pass validation
first; issues are printed and rendering is refused otherwise. The output file
is named after the document ("<name>_<timestamp>.<ext>").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		backend, err := render.ForFormat(renderFormat)
		if err != nil {
			return err
		}

		out, err := render.Render(doc, backend)
		if errors.Is(err, render.ErrUnrenderable) {
			FormatResult(cmd.OutOrStdout(), validate.Check(s, doc))
			return err
		}
		if err != nil {
			return err
		}

		if err := os.MkdirAll(renderOutDir, 0o755); err != nil {
			return err
		}
		name := render.OutputFilename(render.Title(doc), renderFormat, time.Now())
		path := filepath.Join(renderOutDir, name)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("rendered"), path)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "docx", "Output format (text, markdown, html, docx)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", "output", "Output directory")
	rootCmd.AddCommand(renderCmd)
}
