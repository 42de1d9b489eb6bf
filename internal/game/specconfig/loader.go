package specconfig

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/preset"
	"github.com/cory-johannsen/epexport/internal/game/stats"
	"github.com/cory-johannsen/epexport/internal/scripting"
)

//go:embed specs/*.yaml
var specsFS embed.FS

type defaultsFile struct {
	Gear        string            `yaml:"gear"`
	Rotation    string            `yaml:"rotation"`
	Talents     string            `yaml:"talents"`
	EPWeights   stats.WeightsFile `yaml:"ep_weights"`
	Consumes    map[string]int32  `yaml:"consumes"`
	SpecOptions map[string]any    `yaml:"spec_options"`
	Buffs       player.Buffs      `yaml:",inline"`
}

type raidSimPresetFile struct {
	Spec                string                            `yaml:"spec"`
	Talents             string                            `yaml:"talents"`
	DefaultFactionRaces map[player.Faction]player.Race    `yaml:"default_faction_races"`
	DefaultGear         map[player.Faction]map[int]string `yaml:"default_gear"`
}

// file is the YAML form of a SpecConfig.
type file struct {
	Spec                    string              `yaml:"spec"`
	KnownIssues             []string            `yaml:"known_issues"`
	EPStats                 []string            `yaml:"ep_stats"`
	EPPseudoStats           []string            `yaml:"ep_pseudo_stats"`
	EPReferenceStat         string              `yaml:"ep_reference_stat"`
	DisplayStats            []string            `yaml:"display_stats"`
	Defaults                defaultsFile        `yaml:"defaults"`
	Presets                 preset.File         `yaml:"presets"`
	RaidSimPresets          []raidSimPresetFile `yaml:"raid_sim_presets"`
	PlayerInputs            []string            `yaml:"player_inputs"`
	OtherInputs             []string            `yaml:"other_inputs"`
	IncludeBuffDebuffInputs []string            `yaml:"include_buff_debuff_inputs"`
	ExcludeBuffDebuffInputs []string            `yaml:"exclude_buff_debuff_inputs"`
	ShowExecuteProportion   bool                `yaml:"show_execute_proportion"`
}

// Load decodes, builds, and validates one spec configuration from r.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a validated SpecConfig, or a non-nil error.
func Load(r io.Reader, ev *scripting.Evaluator, logger *zap.Logger) (*SpecConfig, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("specconfig: empty document")
		}
		return nil, fmt.Errorf("specconfig: decoding: %w", err)
	}
	c, err := build(f, ev, logger)
	if err != nil {
		return nil, fmt.Errorf("specconfig %s: %w", f.Spec, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadFS(fsys fs.FS, reg *Registry, ev *scripting.Evaluator, logger *zap.Logger) (int, error) {
	paths, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return 0, err
	}
	more, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return 0, err
	}
	paths = append(paths, more...)
	sort.Strings(paths)

	for _, path := range paths {
		fh, err := fsys.Open(path)
		if err != nil {
			return 0, fmt.Errorf("specconfig: opening %s: %w", path, err)
		}
		c, err := Load(fh, ev, logger)
		fh.Close()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		reg.Register(c)
		logger.Debug("spec config loaded",
			zap.String("spec", c.Spec.Key()),
			zap.String("file", path),
		)
	}
	return len(paths), nil
}

// LoadEmbedded builds a Registry holding the built-in spec configurations.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Registry with every embedded spec registered, or a non-nil error.
func LoadEmbedded(ev *scripting.Evaluator, logger *zap.Logger) (*Registry, error) {
	sub, err := fs.Sub(specsFS, "specs")
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	n, err := loadFS(sub, reg, ev, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("built-in spec configs loaded", zap.Int("count", n))
	return reg, nil
}

// LoadDir loads every *.yaml and *.yml file in dir into reg. A file for a spec
// that is already registered replaces it.
//
// Precondition: dir must be a readable directory; reg and logger must be non-nil.
// Postcondition: Returns nil when every file loaded; on error reg may hold the files loaded before it.
func LoadDir(reg *Registry, dir string, ev *scripting.Evaluator, logger *zap.Logger) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("specconfig: reading directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("specconfig: %s is not a directory", dir)
	}
	n, err := loadFS(os.DirFS(dir), reg, ev, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", strings.TrimSuffix(dir, string(filepath.Separator)), err)
	}
	logger.Info("spec config overrides loaded", zap.String("dir", dir), zap.Int("count", n))
	return nil
}
