package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/game/player"
)

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List export targets",
		Example: `  # List targets
  epexport targets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables := export.DefaultTables()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TARGET\tTITLE\tSTYLE\tDOWNLOAD")
			// Producers are never invoked here, so an empty player suffices.
			for _, e := range export.Exporters(export.Source{Player: &player.Player{}, Tables: tables}) {
				style := "-"
				if n, ok := tables.Table(export.Target(e.Key)); ok {
					style = string(n.Style)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", e.Key, e.Title, style, e.AllowDownload)
			}
			return w.Flush()
		},
	}
}
