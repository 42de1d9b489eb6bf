package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/game/stats"
	"github.com/cory-johannsen/epexport/internal/modal"
	"github.com/cory-johannsen/epexport/internal/prompts"
)

type exportOptions struct {
	player   playerOptions
	target   string
	copy     bool
	download bool
	suffix   string
	outDir   string
	raw      bool
}

func newExportCmd(a *app) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a character or its EP weights",
		Long: `Export a character built from its spec defaults.

Targets: link, json, and one per weight tool (see "epexport targets").`,
		Example: `  # Interactive mode
  epexport export

  # Pawn string for the default Retribution weights, copied to the clipboard
  epexport export --spec retribution_paladin --target pawn --copy

  # Custom weights, downloaded as JSON settings
  epexport export -s retribution_paladin -t json -w weights.yaml --download`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, a, opts)
		},
	}

	opts.player.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Export target key")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the export to the clipboard")
	cmd.Flags().BoolVar(&opts.download, "download", false, "Write the export to the download file")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "Weight set label suffix (default from config)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Download directory (default from config)")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the exported text")

	return cmd
}

func runExport(cmd *cobra.Command, a *app, opts *exportOptions) error {
	sc, p, err := a.buildPlayer(&opts.player)
	if err != nil {
		return err
	}

	suffix := opts.suffix
	if suffix == "" {
		suffix = a.cfg.Export.WeightsSuffix
	}
	src := export.Source{
		Player:      p,
		Tables:      export.DefaultTables(),
		LinkBaseURL: a.cfg.Export.LinkBaseURL,
		Options:     export.Options{Suffix: suffix},
	}

	target := opts.target
	if target == "" {
		if !a.interactive() {
			return fmt.Errorf("--target is required")
		}
		var actions []string
		if err := prompts.RunExportForm(&target, &actions, export.Exporters(src)); err != nil {
			return err
		}
		for _, act := range actions {
			switch act {
			case prompts.ActionCopy:
				opts.copy = true
			case prompts.ActionDownload:
				opts.download = true
			}
		}
	}

	e, err := export.Find(src, target)
	if err != nil {
		return err
	}

	dir := opts.outDir
	if dir == "" {
		dir = a.cfg.Export.DownloadDir
	}
	out := cmd.OutOrStdout()
	m := modal.New(e.Title, e.AllowDownload, e.Produce,
		modal.WithClipboard(a.clipboard),
		modal.WithLogger(a.logger),
		modal.WithOutput(out),
		modal.WithDownloadDir(dir),
		modal.WithFilename(a.cfg.Export.DownloadFilename),
		modal.WithCopiedFeedback(a.cfg.Export.CopiedFeedback),
	)
	if err := m.Open(); err != nil {
		return err
	}

	if opts.raw {
		fmt.Fprintln(out, m.Text())
	} else {
		fmt.Fprintln(out, m.Render())
	}

	var results []prompts.ResultField
	if opts.copy {
		res, err := m.Copy(cmd.Context())
		if err != nil {
			return err
		}
		if !res.Fallback {
			results = append(results, prompts.ResultField{Label: "Clipboard", Value: m.Feedback(time.Now())})
		}
	}
	if opts.download {
		path, err := m.Download()
		if errors.Is(err, modal.ErrDownloadDisabled) {
			return fmt.Errorf("%s cannot be downloaded: %w", e.Title, err)
		}
		if err != nil {
			return err
		}
		results = append(results, prompts.ResultField{Label: "Downloaded", Value: path})
	}
	if len(results) > 0 && !opts.raw {
		prompts.PrintResult(out, results, "")
	}

	a.logger.Info("export completed",
		zap.String("target", e.Key),
		zap.String("spec", sc.Spec.Key()),
		zap.Int("fields", len(src.Tables.Fields(export.Target(e.Key), p.GetEPWeights(), stats.AllUnitStats()))),
		zap.Int("bytes", len(m.Text())),
	)
	return nil
}
