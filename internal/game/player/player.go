// Package player defines the character being simulated and the enumerations
// identifying its class, spec, race, and faction.
package player

import (
	"github.com/cory-johannsen/epexport/internal/game/inventory"
	"github.com/cory-johannsen/epexport/internal/game/stats"
)

// Buffs groups the raid, party, individual, and debuff toggles applied to a player.
// Keys are the buff identifiers used by spec configurations (e.g. "blessing_of_kings").
type Buffs struct {
	Raid       map[string]bool `yaml:"raid_buffs"`
	Party      map[string]bool `yaml:"party_buffs"`
	Individual map[string]bool `yaml:"individual_buffs"`
	Debuffs    map[string]bool `yaml:"debuffs"`
}

// Player is the character snapshot read by exporters and preset conditions.
//
// Precondition: Spec must be set; Class is derived from Spec by New.
type Player struct {
	Name       string
	Spec       Spec
	Race       Race
	Faction    Faction
	Level      int
	TalentTree int
	Talents    string
	Gear       inventory.EquipmentSpec
	Consumes   map[string]int32
	Buffs      Buffs

	epWeights stats.Weights
}

// New returns a level 85 Player for spec with no gear and zero EP weights.
//
// Postcondition: p.Spec == spec and p.Level == 85.
func New(spec Spec, faction Faction) *Player {
	return &Player{
		Spec:    spec,
		Faction: faction,
		Level:   85,
	}
}

// Class returns the player's class, derived from its spec.
func (p *Player) Class() Class { return p.Spec.Class() }

// ClassName returns the class display name (e.g. "Paladin").
func (p *Player) ClassName() string { return p.Spec.Class().Name() }

// SpecName returns the spec display name (e.g. "Retribution Paladin").
func (p *Player) SpecName() string { return p.Spec.Name() }

// GetTalentTree returns the index of the talent tree the player specialized in.
func (p *Player) GetTalentTree() int { return p.TalentTree }

// GetFaction returns the player's faction.
func (p *Player) GetFaction() Faction { return p.Faction }

// GetSpec returns the player's spec.
func (p *Player) GetSpec() Spec { return p.Spec }

// GetEPWeights returns a copy of the player's EP weights.
func (p *Player) GetEPWeights() stats.Weights { return p.epWeights }

// SetEPWeights replaces the player's EP weights.
func (p *Player) SetEPWeights(w stats.Weights) { p.epWeights = w }
