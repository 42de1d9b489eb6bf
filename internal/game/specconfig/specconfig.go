// Package specconfig holds the declarative per-spec configuration record:
// EP stat lists, defaults, presets, and raid-sim presets.
package specconfig

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/preset"
	"github.com/cory-johannsen/epexport/internal/game/stats"
	"github.com/cory-johannsen/epexport/internal/scripting"
)

// ErrUnknownSpec is returned when no configuration is registered for a spec.
var ErrUnknownSpec = errors.New("specconfig: unknown spec")

// Defaults are the settings a new character of the spec starts with.
type Defaults struct {
	Gear        string
	Rotation    string
	Talents     string
	EPWeights   stats.Weights
	Consumes    map[string]int32
	SpecOptions map[string]any
	Buffs       player.Buffs
}

// RaidSimPreset describes how the raid sim adds a character of this spec.
type RaidSimPreset struct {
	Spec                player.Spec
	Talents             string
	DefaultFactionRaces map[player.Faction]player.Race
	// DefaultGear maps faction and content phase to a gear preset name.
	DefaultGear map[player.Faction]map[int]string
}

// SpecConfig is the configuration record of one playable spec.
type SpecConfig struct {
	Spec                    player.Spec
	KnownIssues             []string
	EPStats                 []stats.Stat
	EPPseudoStats           []stats.PseudoStat
	EPReferenceStat         stats.Stat
	DisplayStats            []stats.Stat
	Defaults                Defaults
	Presets                 *preset.Set
	RaidSimPresets          []RaidSimPreset
	PlayerInputs            []string
	OtherInputs             []string
	IncludeBuffDebuffInputs []string
	ExcludeBuffDebuffInputs []string
	ShowExecuteProportion   bool
}

// Class returns the class of c's spec.
func (c *SpecConfig) Class() player.Class { return c.Spec.Class() }

// EPUnitStats returns EPStats followed by EPPseudoStats.
func (c *SpecConfig) EPUnitStats() []stats.UnitStat {
	out := make([]stats.UnitStat, 0, len(c.EPStats)+len(c.EPPseudoStats))
	for _, s := range c.EPStats {
		out = append(out, stats.FromStat(s))
	}
	for _, p := range c.EPPseudoStats {
		out = append(out, stats.FromPseudoStat(p))
	}
	return out
}

// Validate checks that c is internally consistent.
//
// Postcondition: Returns nil, or one error listing every violation.
func (c *SpecConfig) Validate() error {
	var errs []error
	if c.Spec == player.SpecUnknown {
		errs = append(errs, fmt.Errorf("spec must be set"))
	}
	if !contains(c.EPStats, c.EPReferenceStat) {
		errs = append(errs, fmt.Errorf("ep_reference_stat %s is not among ep_stats", c.EPReferenceStat.Key()))
	}
	if c.Presets == nil {
		errs = append(errs, fmt.Errorf("presets must be set"))
	} else {
		if _, ok := c.Presets.FindGear(c.Defaults.Gear); !ok {
			errs = append(errs, fmt.Errorf("default gear %q is not a gear preset", c.Defaults.Gear))
		}
		if _, ok := c.Presets.FindRotation(c.Defaults.Rotation); !ok {
			errs = append(errs, fmt.Errorf("default rotation %q is not a rotation preset", c.Defaults.Rotation))
		}
		if _, ok := c.Presets.FindTalents(c.Defaults.Talents); !ok {
			errs = append(errs, fmt.Errorf("default talents %q is not a talent preset", c.Defaults.Talents))
		}
		for i, rs := range c.RaidSimPresets {
			if rs.Spec != c.Spec {
				errs = append(errs, fmt.Errorf("raid_sim_presets[%d]: spec %s does not match %s", i, rs.Spec.Key(), c.Spec.Key()))
			}
			if _, ok := c.Presets.FindTalents(rs.Talents); !ok {
				errs = append(errs, fmt.Errorf("raid_sim_presets[%d]: talents %q is not a talent preset", i, rs.Talents))
			}
			for _, faction := range sortedFactions(rs.DefaultGear) {
				phases := rs.DefaultGear[faction]
				for _, phase := range sortedPhases(phases) {
					if _, ok := c.Presets.FindGear(phases[phase]); !ok {
						errs = append(errs, fmt.Errorf("raid_sim_presets[%d]: %s phase %d gear %q is not a gear preset",
							i, faction.Key(), phase, phases[phase]))
					}
				}
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("specconfig %s: %w", c.Spec.Key(), errors.Join(errs...))
}

// NewPlayer builds a character of c's spec from its defaults.
//
// Precondition: c must have passed Validate.
// Postcondition: The player's race comes from the first raid-sim preset's faction races,
// its gear from the default gear preset, its talents from the default talent preset.
func (c *SpecConfig) NewPlayer(faction player.Faction) *player.Player {
	p := player.New(c.Spec, faction)
	if len(c.RaidSimPresets) > 0 {
		p.Race = c.RaidSimPresets[0].DefaultFactionRaces[faction]
	}
	if c.Presets != nil {
		if g, ok := c.Presets.FindGear(c.Defaults.Gear); ok {
			p.Gear = g.Gear.Clone()
		}
		if t, ok := c.Presets.FindTalents(c.Defaults.Talents); ok {
			p.Talents = t.Talents
		}
	}
	p.Consumes = copyMap(c.Defaults.Consumes)
	p.Buffs = player.Buffs{
		Raid:       copyMap(c.Defaults.Buffs.Raid),
		Party:      copyMap(c.Defaults.Buffs.Party),
		Individual: copyMap(c.Defaults.Buffs.Individual),
		Debuffs:    copyMap(c.Defaults.Buffs.Debuffs),
	}
	p.SetEPWeights(c.Defaults.EPWeights)
	return p
}

// build resolves the keyed fields of f.
func build(f file, ev *scripting.Evaluator, logger *zap.Logger) (*SpecConfig, error) {
	spec, err := player.ParseSpec(f.Spec)
	if err != nil {
		return nil, err
	}
	c := &SpecConfig{
		Spec:                    spec,
		KnownIssues:             f.KnownIssues,
		PlayerInputs:            f.PlayerInputs,
		OtherInputs:             f.OtherInputs,
		IncludeBuffDebuffInputs: f.IncludeBuffDebuffInputs,
		ExcludeBuffDebuffInputs: f.ExcludeBuffDebuffInputs,
		ShowExecuteProportion:   f.ShowExecuteProportion,
	}
	if c.EPStats, err = parseStats(f.EPStats); err != nil {
		return nil, fmt.Errorf("ep_stats: %w", err)
	}
	for _, k := range f.EPPseudoStats {
		p, err := stats.ParsePseudoStat(k)
		if err != nil {
			return nil, fmt.Errorf("ep_pseudo_stats: %w", err)
		}
		c.EPPseudoStats = append(c.EPPseudoStats, p)
	}
	if c.EPReferenceStat, err = stats.ParseStat(f.EPReferenceStat); err != nil {
		return nil, fmt.Errorf("ep_reference_stat: %w", err)
	}
	if c.DisplayStats, err = parseStats(f.DisplayStats); err != nil {
		return nil, fmt.Errorf("display_stats: %w", err)
	}

	weights, err := f.Defaults.EPWeights.Weights()
	if err != nil {
		return nil, fmt.Errorf("defaults.ep_weights: %w", err)
	}
	c.Defaults = Defaults{
		Gear:        f.Defaults.Gear,
		Rotation:    f.Defaults.Rotation,
		Talents:     f.Defaults.Talents,
		EPWeights:   weights,
		Consumes:    f.Defaults.Consumes,
		SpecOptions: f.Defaults.SpecOptions,
		Buffs:       f.Defaults.Buffs,
	}

	if c.Presets, err = f.Presets.Build(spec, ev, logger); err != nil {
		return nil, err
	}

	for _, rs := range f.RaidSimPresets {
		rsSpec, err := player.ParseSpec(rs.Spec)
		if err != nil {
			return nil, fmt.Errorf("raid_sim_presets: %w", err)
		}
		c.RaidSimPresets = append(c.RaidSimPresets, RaidSimPreset{
			Spec:                rsSpec,
			Talents:             rs.Talents,
			DefaultFactionRaces: rs.DefaultFactionRaces,
			DefaultGear:         rs.DefaultGear,
		})
	}
	return c, nil
}

func parseStats(keys []string) ([]stats.Stat, error) {
	out := make([]stats.Stat, 0, len(keys))
	for _, k := range keys {
		s, err := stats.ParseStat(k)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func contains(list []stats.Stat, s stats.Stat) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedFactions(m map[player.Faction]map[int]string) []player.Faction {
	out := make([]player.Faction, 0, len(m))
	for f := range m {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedPhases(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
