// Package preset builds named gear, rotation, and talent presets and the
// predicates that decide which presets apply to a given player.
package preset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/epexport/internal/game/inventory"
	"github.com/cory-johannsen/epexport/internal/game/player"
)

// BasicBISDisclaimer is the tooltip of gear presets that do not set their own.
const BasicBISDisclaimer = "Preset gear follows community best-in-slot lists. " +
	"It is a starting point and may not be optimal for every character."

// namespace seeds the deterministic preset IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/cory-johannsen/epexport/preset"))

func presetID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(kind+"/"+name))
}

// Player is the read-only view of a character that preset conditions evaluate.
// *player.Player implements it.
type Player interface {
	GetTalentTree() int
	GetFaction() player.Faction
	GetSpec() player.Spec
	Class() player.Class
}

// Condition reports whether a preset applies to p.
type Condition func(p Player) bool

// all returns the conjunction of conds, or nil when conds is empty.
func all(conds []Condition) Condition {
	if len(conds) == 0 {
		return nil
	}
	return func(p Player) bool {
		for _, c := range conds {
			if !c(p) {
				return false
			}
		}
		return true
	}
}

func talentTreeIs(tree int) Condition {
	return func(p Player) bool { return p.GetTalentTree() == tree }
}

// GearOptions restricts when a gear preset is offered. Nil and empty fields impose no condition.
type GearOptions struct {
	TalentTree      *int
	TalentTrees     []int
	Faction         *player.Faction
	CustomCondition Condition
	Tooltip         string
}

// PresetGear is a named equipment set.
type PresetGear struct {
	ID         uuid.UUID
	Name       string
	Tooltip    string
	Gear       inventory.EquipmentSpec
	EnableWhen Condition
}

// Enabled reports whether g applies to p. A preset without conditions applies to every player.
func (g PresetGear) Enabled(p Player) bool {
	return g.EnableWhen == nil || g.EnableWhen(p)
}

// MakePresetGear parses gearJSON as an equipment spec and builds the preset.
//
// Precondition: name must be non-empty.
// Postcondition: Tooltip is opts.Tooltip or BasicBISDisclaimer; EnableWhen is nil iff
// opts sets no condition, otherwise it holds iff every set condition holds.
func MakePresetGear(name string, gearJSON []byte, opts GearOptions) (PresetGear, error) {
	gear, err := inventory.ParseEquipmentSpec(gearJSON)
	if err != nil {
		return PresetGear{}, fmt.Errorf("preset: gear %q: %w", name, err)
	}
	return newPresetGear(name, gear, opts)
}

func newPresetGear(name string, gear inventory.EquipmentSpec, opts GearOptions) (PresetGear, error) {
	if name == "" {
		return PresetGear{}, fmt.Errorf("preset: gear name must not be empty")
	}
	var conds []Condition
	if opts.TalentTree != nil {
		conds = append(conds, talentTreeIs(*opts.TalentTree))
	}
	if opts.TalentTrees != nil {
		trees := append([]int(nil), opts.TalentTrees...)
		conds = append(conds, func(p Player) bool {
			for _, t := range trees {
				if p.GetTalentTree() == t {
					return true
				}
			}
			return false
		})
	}
	if opts.Faction != nil {
		faction := *opts.Faction
		conds = append(conds, func(p Player) bool { return p.GetFaction() == faction })
	}
	if opts.CustomCondition != nil {
		conds = append(conds, opts.CustomCondition)
	}

	tooltip := opts.Tooltip
	if tooltip == "" {
		tooltip = BasicBISDisclaimer
	}
	return PresetGear{
		ID:         presetID("gear", name),
		Name:       name,
		Tooltip:    tooltip,
		Gear:       gear,
		EnableWhen: all(conds),
	}, nil
}

// RotationType distinguishes priority-list rotations from simple spec rotations.
type RotationType string

const (
	RotationTypeAPL    RotationType = "apl"
	RotationTypeSimple RotationType = "simple"
)

// Cooldowns holds the cooldown settings of a simple rotation.
type Cooldowns struct {
	HPPercentForDefensives float64 `json:"hpPercentForDefensives"`
}

// SimpleRotation is a spec rotation stored as its JSON encoding.
type SimpleRotation struct {
	SpecRotationJSON string    `json:"specRotationJson"`
	Cooldowns        Cooldowns `json:"cooldowns"`
}

// Rotation is a saved rotation. APL is set for RotationTypeAPL, Simple for RotationTypeSimple.
type Rotation struct {
	Type   RotationType    `json:"type"`
	APL    json.RawMessage `json:"apl,omitempty"`
	Simple *SimpleRotation `json:"simple,omitempty"`
}

// RotationOptions restricts when a rotation preset is offered.
type RotationOptions struct {
	TalentTree *int
}

// PresetRotation is a named rotation.
type PresetRotation struct {
	ID         uuid.UUID
	Name       string
	Rotation   Rotation
	EnableWhen Condition
}

// Enabled reports whether r applies to p. A preset without conditions applies to every player.
func (r PresetRotation) Enabled(p Player) bool {
	return r.EnableWhen == nil || r.EnableWhen(p)
}

// MakePresetAPLRotation wraps rotationJSON, a JSON object, as an APL rotation.
//
// Precondition: name must be non-empty.
// Postcondition: Rotation.APL holds the compacted JSON; a non-object document is an error.
func MakePresetAPLRotation(name string, rotationJSON []byte, opts RotationOptions) (PresetRotation, error) {
	var obj map[string]any
	if err := json.Unmarshal(rotationJSON, &obj); err != nil {
		return PresetRotation{}, fmt.Errorf("preset: rotation %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, rotationJSON); err != nil {
		return PresetRotation{}, fmt.Errorf("preset: rotation %q: %w", name, err)
	}
	return newPresetRotation(name, Rotation{Type: RotationTypeAPL, APL: buf.Bytes()}, opts)
}

// MakePresetSimpleRotation encodes simpleRotation as a simple rotation for spec. Tank specs
// use defensives below 40% health; every other spec leaves the threshold at 0.
//
// Precondition: name must be non-empty; simpleRotation must be JSON-encodable.
func MakePresetSimpleRotation(name string, spec player.Spec, simpleRotation any, opts RotationOptions) (PresetRotation, error) {
	data, err := json.Marshal(simpleRotation)
	if err != nil {
		return PresetRotation{}, fmt.Errorf("preset: rotation %q: %w", name, err)
	}
	hp := 0.0
	if spec.IsTank() {
		hp = 0.4
	}
	return newPresetRotation(name, Rotation{
		Type: RotationTypeSimple,
		Simple: &SimpleRotation{
			SpecRotationJSON: string(data),
			Cooldowns:        Cooldowns{HPPercentForDefensives: hp},
		},
	}, opts)
}

func newPresetRotation(name string, rot Rotation, opts RotationOptions) (PresetRotation, error) {
	if name == "" {
		return PresetRotation{}, fmt.Errorf("preset: rotation name must not be empty")
	}
	var conds []Condition
	if opts.TalentTree != nil {
		conds = append(conds, talentTreeIs(*opts.TalentTree))
	}
	return PresetRotation{
		ID:         presetID("rotation", name),
		Name:       name,
		Rotation:   rot,
		EnableWhen: all(conds),
	}, nil
}

// PresetTalents is a named talent build.
type PresetTalents struct {
	Name    string  `yaml:"name"`
	Talents string  `yaml:"talents"`
	Glyphs  []int32 `yaml:"glyphs"`
}
