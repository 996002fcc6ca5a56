package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/schema"
)

var newOut string
var newPrefill bool

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty TOR snapshot file",
	Long: `Create a snapshot with every mandatory GOST 34.602-89 section present and
optional sections as absent placeholders. With --prefill the standard's
default work stages and acceptance text are filled in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.Load()
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
		doc := document.CreateEmpty(s)
		if newPrefill {
			document.Prefill(doc)
		}
		if err := saveDocument(newOut, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", newOut, s.Version)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newOut, "out", "o", "tor.json", "Output snapshot file")
	newCmd.Flags().BoolVar(&newPrefill, "prefill", false, "Fill in default work stages and acceptance text")
	rootCmd.AddCommand(newCmd)
}
