package prompts

import (
	"github.com/charmbracelet/huh"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/game/player"
)

// Export actions offered by RunExportForm.
const (
	ActionCopy     = "copy"
	ActionDownload = "download"
)

// RunSpecSelect prompts for one of specs. The value is the spec key.
func RunSpecSelect(value *string, specs []player.Spec) error {
	options := make([]huh.Option[string], 0, len(specs))
	for _, s := range specs {
		options = append(options, huh.NewOption(s.Name(), s.Key()))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select spec").
				Options(options...).
				Value(value),
		),
	).WithTheme(Theme()).Run()
}

// RunExportForm prompts for the exporter and the actions to run on its result.
// Only exporters that allow downloads offer the download action.
func RunExportForm(target *string, actions *[]string, exporters []export.Exporter) error {
	options := make([]huh.Option[string], 0, len(exporters))
	downloadable := make(map[string]bool, len(exporters))
	for _, e := range exporters {
		options = append(options, huh.NewOption(e.Title, e.Key))
		downloadable[e.Key] = e.AllowDownload
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export").
				Options(options...).
				Value(target),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Actions").
				OptionsFunc(func() []huh.Option[string] {
					opts := []huh.Option[string]{huh.NewOption("Copy to Clipboard", ActionCopy)}
					if downloadable[*target] {
						opts = append(opts, huh.NewOption("Download", ActionDownload))
					}
					return opts
				}, target).
				Value(actions),
		),
	).WithTheme(Theme()).Run()
}
