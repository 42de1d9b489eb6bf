package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/epexport/internal/game/inventory"
	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/scripting"
)

// GearEntry is the YAML form of a gear preset.
type GearEntry struct {
	Name            string                  `yaml:"name"`
	Tooltip         string                  `yaml:"tooltip"`
	TalentTree      *int                    `yaml:"talent_tree"`
	TalentTrees     []int                   `yaml:"talent_trees"`
	Faction         *player.Faction         `yaml:"faction"`
	CustomCondition string                  `yaml:"custom_condition"`
	Gear            inventory.EquipmentSpec `yaml:"gear"`
}

// RotationEntry is the YAML form of a rotation preset. Exactly one of APL and Simple is set.
type RotationEntry struct {
	Name       string         `yaml:"name"`
	TalentTree *int           `yaml:"talent_tree"`
	APL        string         `yaml:"apl"`
	Simple     map[string]any `yaml:"simple"`
}

// File is the YAML form of a preset collection.
type File struct {
	Gear      []GearEntry     `yaml:"gear"`
	Rotations []RotationEntry `yaml:"rotations"`
	Talents   []PresetTalents `yaml:"talents"`
}

// Set is a built preset collection in declaration order.
type Set struct {
	Gear      []PresetGear
	Rotations []PresetRotation
	Talents   []PresetTalents
}

// FindGear returns the gear preset named name.
func (s *Set) FindGear(name string) (PresetGear, bool) {
	for _, g := range s.Gear {
		if g.Name == name {
			return g, true
		}
	}
	return PresetGear{}, false
}

// FindRotation returns the rotation preset named name.
func (s *Set) FindRotation(name string) (PresetRotation, bool) {
	for _, r := range s.Rotations {
		if r.Name == name {
			return r, true
		}
	}
	return PresetRotation{}, false
}

// FindTalents returns the talent preset named name.
func (s *Set) FindTalents(name string) (PresetTalents, bool) {
	for _, t := range s.Talents {
		if t.Name == name {
			return t, true
		}
	}
	return PresetTalents{}, false
}

// EnabledGear returns the gear presets that apply to p.
func (s *Set) EnabledGear(p Player) []PresetGear {
	var out []PresetGear
	for _, g := range s.Gear {
		if g.Enabled(p) {
			out = append(out, g)
		}
	}
	return out
}

// Build turns f into a Set for spec. A custom_condition is compiled with ev; a condition that
// fails at evaluation is logged at Warn and treated as false.
//
// Precondition: ev must be non-nil when any entry sets custom_condition; logger must be non-nil.
// Postcondition: Returns the Set, or an error naming the first invalid or duplicate entry.
func (f File) Build(spec player.Spec, ev *scripting.Evaluator, logger *zap.Logger) (*Set, error) {
	set := &Set{}
	seen := make(map[string]bool)
	for _, e := range f.Gear {
		if seen["gear/"+e.Name] {
			return nil, fmt.Errorf("preset: duplicate gear preset %q", e.Name)
		}
		seen["gear/"+e.Name] = true

		opts := GearOptions{
			TalentTree:  e.TalentTree,
			TalentTrees: e.TalentTrees,
			Faction:     e.Faction,
			Tooltip:     e.Tooltip,
		}
		if e.CustomCondition != "" {
			if ev == nil {
				return nil, fmt.Errorf("preset: gear %q: custom_condition requires a script evaluator", e.Name)
			}
			cond, err := ev.CompileCondition(e.CustomCondition)
			if err != nil {
				return nil, fmt.Errorf("preset: gear %q: %w", e.Name, err)
			}
			opts.CustomCondition = scriptCondition(e.Name, cond, logger)
		}
		g, err := newPresetGear(e.Name, e.Gear, opts)
		if err != nil {
			return nil, err
		}
		set.Gear = append(set.Gear, g)
	}

	for _, e := range f.Rotations {
		if seen["rotation/"+e.Name] {
			return nil, fmt.Errorf("preset: duplicate rotation preset %q", e.Name)
		}
		seen["rotation/"+e.Name] = true

		opts := RotationOptions{TalentTree: e.TalentTree}
		var (
			r   PresetRotation
			err error
		)
		switch {
		case e.APL != "" && e.Simple != nil:
			return nil, fmt.Errorf("preset: rotation %q sets both apl and simple", e.Name)
		case e.APL != "":
			r, err = MakePresetAPLRotation(e.Name, []byte(e.APL), opts)
		case e.Simple != nil:
			r, err = MakePresetSimpleRotation(e.Name, spec, e.Simple, opts)
		default:
			return nil, fmt.Errorf("preset: rotation %q sets neither apl nor simple", e.Name)
		}
		if err != nil {
			return nil, err
		}
		set.Rotations = append(set.Rotations, r)
	}

	for _, t := range f.Talents {
		if t.Name == "" {
			return nil, fmt.Errorf("preset: talent preset name must not be empty")
		}
		if seen["talents/"+t.Name] {
			return nil, fmt.Errorf("preset: duplicate talent preset %q", t.Name)
		}
		seen["talents/"+t.Name] = true
		set.Talents = append(set.Talents, t)
	}
	return set, nil
}

// scriptCondition adapts a compiled Lua condition to a Condition.
func scriptCondition(name string, cond scripting.ConditionFunc, logger *zap.Logger) Condition {
	return func(p Player) bool {
		ok, err := cond(Vars(p))
		if err != nil {
			logger.Warn("preset condition failed",
				zap.String("preset", name),
				zap.Error(err),
			)
			return false
		}
		return ok
	}
}

// Vars returns the script globals describing p: a "player" table with
// talent_tree, faction, spec, and class.
func Vars(p Player) map[string]any {
	return map[string]any{
		"player": map[string]any{
			"talent_tree": p.GetTalentTree(),
			"faction":     p.GetFaction().Key(),
			"spec":        p.GetSpec().Key(),
			"class":       p.Class().Key(),
		},
	}
}

// Load decodes a preset YAML document from r and builds it for spec.
//
// Postcondition: An empty document yields an empty Set.
func Load(r io.Reader, spec player.Spec, ev *scripting.Evaluator, logger *zap.Logger) (*Set, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("preset: decoding presets: %w", err)
	}
	return f.Build(spec, ev, logger)
}

// LoadFile reads and builds the preset file at path.
func LoadFile(path string, spec player.Spec, ev *scripting.Evaluator, logger *zap.Logger) (*Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: opening %s: %w", path, err)
	}
	defer fh.Close()
	set, err := Load(fh, spec, ev, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// MarshalRotation renders r as compact JSON.
func MarshalRotation(r Rotation) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("preset: encoding rotation: %w", err)
	}
	return string(data), nil
}
