package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/torgen/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <snapshot.json>",
	Short: "Check a snapshot against the schema's structural invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		res := validate.Check(s, doc)
		FormatResult(cmd.OutOrStdout(), res)
		if !res.OK() {
			return fmt.Errorf("%d validation issue(s)", len(res.Issues))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
