package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/torgen/internal/schema"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the schema's section tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.Load()
		if err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(s.Version))

		var walk func(defs []*schema.SectionDef, depth int)
		walk = func(defs []*schema.SectionDef, depth int) {
			for _, def := range defs {
				marker := "optional"
				if def.Mandatory {
					marker = "mandatory"
				}
				if def.Repeatable {
					marker += ", repeatable"
				}
				fmt.Fprintf(out, "%s%s  %s %s\n",
					strings.Repeat("  ", depth),
					headerStyle.Render(def.ID),
					def.Title,
					dimStyle.Render("("+marker+")"),
				)
				for _, f := range def.Fields {
					req := ""
					if f.Required {
						req = ", required"
					}
					fmt.Fprintf(out, "%s  %s\n",
						strings.Repeat("  ", depth),
						dimStyle.Render(fmt.Sprintf("- %s (%s%s)", f.Name, f.Type, req)),
					)
				}
				walk(def.Children, depth+1)
			}
		}
		walk(s.Sections, 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
