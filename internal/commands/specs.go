package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSpecsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "specs",
		Short: "List configured specs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SPEC\tNAME\tCLASS\tDEFAULT GEAR\tEP STATS")
			for _, s := range a.specs.Specs() {
				sc, err := a.specs.Lookup(s)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					s.Key(), s.Name(), sc.Class().Name(), sc.Defaults.Gear, len(sc.EPUnitStats()))
			}
			return w.Flush()
		},
	}
}
