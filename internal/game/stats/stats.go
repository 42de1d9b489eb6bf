// Package stats defines the closed stat taxonomy used by characters and the
// EP weights computed over it.
package stats

import (
	"errors"
	"fmt"
)

// ErrUnknownStat is returned when a stat key does not name any Stat or PseudoStat.
var ErrUnknownStat = errors.New("stats: unknown stat")

// Stat is a primary character attribute. Values are in canonical order.
type Stat int32

const (
	Strength Stat = iota
	Agility
	Stamina
	Intellect
	Spirit
	SpellPower
	MP5
	SpellHit
	SpellCrit
	SpellHaste
	SpellPenetration
	AttackPower
	MeleeHit
	MeleeCrit
	MeleeHaste
	ArmorPenetration
	Expertise
	Mana
	Energy
	Rage
	Armor
	RangedAttackPower
	Defense
	Block
	BlockValue
	Dodge
	Parry
	Resilience
	Health
	ArcaneResistance
	FireResistance
	FrostResistance
	NatureResistance
	ShadowResistance
	BonusArmor

	// NumStats is the number of Stat values.
	NumStats = int(iota)
)

// PseudoStat is a derived stat such as weapon DPS. Values are in canonical order.
type PseudoStat int32

const (
	MainHandDps PseudoStat = iota
	OffHandDps
	RangedDps
	BlockValueMultiplier
	DodgePercent
	ParryPercent
	BlockPercent
	MeleeSpeedMultiplier
	RangedSpeedMultiplier
	CastSpeedMultiplier
	MeleeHastePercent
	RangedHastePercent
	SpellHastePercent

	// NumPseudoStats is the number of PseudoStat values.
	NumPseudoStats = int(iota)
)

var statKeys = [NumStats]string{
	Strength:          "strength",
	Agility:           "agility",
	Stamina:           "stamina",
	Intellect:         "intellect",
	Spirit:            "spirit",
	SpellPower:        "spell_power",
	MP5:               "mp5",
	SpellHit:          "spell_hit",
	SpellCrit:         "spell_crit",
	SpellHaste:        "spell_haste",
	SpellPenetration:  "spell_penetration",
	AttackPower:       "attack_power",
	MeleeHit:          "melee_hit",
	MeleeCrit:         "melee_crit",
	MeleeHaste:        "melee_haste",
	ArmorPenetration:  "armor_penetration",
	Expertise:         "expertise",
	Mana:              "mana",
	Energy:            "energy",
	Rage:              "rage",
	Armor:             "armor",
	RangedAttackPower: "ranged_attack_power",
	Defense:           "defense",
	Block:             "block",
	BlockValue:        "block_value",
	Dodge:             "dodge",
	Parry:             "parry",
	Resilience:        "resilience",
	Health:            "health",
	ArcaneResistance:  "arcane_resistance",
	FireResistance:    "fire_resistance",
	FrostResistance:   "frost_resistance",
	NatureResistance:  "nature_resistance",
	ShadowResistance:  "shadow_resistance",
	BonusArmor:        "bonus_armor",
}

var pseudoStatKeys = [NumPseudoStats]string{
	MainHandDps:           "main_hand_dps",
	OffHandDps:            "off_hand_dps",
	RangedDps:             "ranged_dps",
	BlockValueMultiplier:  "block_value_multiplier",
	DodgePercent:          "dodge_percent",
	ParryPercent:          "parry_percent",
	BlockPercent:          "block_percent",
	MeleeSpeedMultiplier:  "melee_speed_multiplier",
	RangedSpeedMultiplier: "ranged_speed_multiplier",
	CastSpeedMultiplier:   "cast_speed_multiplier",
	MeleeHastePercent:     "melee_haste_percent",
	RangedHastePercent:    "ranged_haste_percent",
	SpellHastePercent:     "spell_haste_percent",
}

// Valid reports whether s is a member of the enumeration.
func (s Stat) Valid() bool { return s >= 0 && int(s) < NumStats }

// Key returns the snake_case identifier of s, or "" if s is out of range.
func (s Stat) Key() string {
	if !s.Valid() {
		return ""
	}
	return statKeys[s]
}

func (s Stat) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stat(%d)", int32(s))
	}
	return statKeys[s]
}

// Valid reports whether p is a member of the enumeration.
func (p PseudoStat) Valid() bool { return p >= 0 && int(p) < NumPseudoStats }

// Key returns the snake_case identifier of p, or "" if p is out of range.
func (p PseudoStat) Key() string {
	if !p.Valid() {
		return ""
	}
	return pseudoStatKeys[p]
}

func (p PseudoStat) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PseudoStat(%d)", int32(p))
	}
	return pseudoStatKeys[p]
}

// ParseStat resolves a snake_case key to a Stat.
//
// Postcondition: Returns the Stat and nil, or an error wrapping ErrUnknownStat.
func ParseStat(key string) (Stat, error) {
	for i, k := range statKeys {
		if k == key {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, key)
}

// ParsePseudoStat resolves a snake_case key to a PseudoStat.
//
// Postcondition: Returns the PseudoStat and nil, or an error wrapping ErrUnknownStat.
func ParsePseudoStat(key string) (PseudoStat, error) {
	for i, k := range pseudoStatKeys {
		if k == key {
			return PseudoStat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, key)
}
