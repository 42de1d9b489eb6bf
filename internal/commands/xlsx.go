package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/prompts"
)

type xlsxOptions struct {
	player playerOptions
	out    string
}

func newXLSXCmd(a *app) *cobra.Command {
	opts := &xlsxOptions{}

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write the EP weights of a spec as a spreadsheet, one sheet per target",
		Example: `  # Default Retribution weights
  epexport xlsx --spec retribution_paladin --out ret.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runXLSX(cmd, a, opts)
		},
	}

	opts.player.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.out, "out", "o", "weights.xlsx", "Output file")

	return cmd
}

func runXLSX(cmd *cobra.Command, a *app, opts *xlsxOptions) error {
	sc, p, err := a.buildPlayer(&opts.player)
	if err != nil {
		return err
	}

	fh, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.out, err)
	}
	if err := export.WeightsXLSX(fh, export.DefaultTables(), p.ClassName(), p.SpecName(), p.GetEPWeights()); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", opts.out, err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Spec", Value: p.SpecName()},
		{Label: "Sheets", Value: fmt.Sprint(len(export.DefaultTables().Targets()))},
		{Label: "File", Value: opts.out},
	}, "Weights written")
	a.logger.Info("weights sheet written",
		zap.String("spec", sc.Spec.Key()),
		zap.String("path", opts.out),
	)
	return nil
}
