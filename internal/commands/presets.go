package commands

import (
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/epexport/internal/game/preset"
)

type presetsOptions struct {
	player  playerOptions
	verbose bool
}

func newPresetsCmd(a *app) *cobra.Command {
	opts := &presetsOptions{}

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List gear, rotation, and talent presets of a spec",
		Long: `List the presets of a spec and whether each applies to the described character.
Presets with conditions (talent tree, faction, custom script) are enabled only when every condition holds.`,
		Example: `  # Presets available to a Horde Retribution Paladin
  epexport presets --spec retribution_paladin --faction horde --talent-tree 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPresets(cmd, a, opts)
		},
	}

	opts.player.register(cmd.Flags())
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Include rotation definitions")

	return cmd
}

func runPresets(cmd *cobra.Command, a *app, opts *presetsOptions) error {
	sc, p, err := a.buildPlayer(&opts.player)
	if err != nil {
		return err
	}
	set := sc.Presets

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "GEAR\tENABLED\tITEMS\tTOOLTIP")
	for _, g := range set.Gear {
		_, _ = fmt.Fprintf(w, "%s\t%t\t%d\t%s\n", g.Name, g.Enabled(p), g.Gear.Equipped(), truncate(g.Tooltip, 48))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "ROTATION\tENABLED\tTYPE")
	for _, r := range set.Rotations {
		_, _ = fmt.Fprintf(w, "%s\t%t\t%s\n", r.Name, r.Enabled(p), r.Rotation.Type)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "TALENTS\tBUILD\tGLYPHS")
	for _, t := range set.Talents {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", t.Name, t.Talents, len(t.Glyphs))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if opts.verbose {
		for _, r := range set.Rotations {
			def, err := preset.MarshalRotation(r.Rotation)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n%s\n", r.Name, def)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
