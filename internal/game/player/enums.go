package player

import (
	"fmt"
	"strings"
)

// Class is a playable character class.
type Class int

const (
	ClassUnknown Class = iota
	ClassDeathKnight
	ClassDruid
	ClassHunter
	ClassMage
	ClassPaladin
	ClassPriest
	ClassRogue
	ClassShaman
	ClassWarlock
	ClassWarrior
)

var classInfo = map[Class]struct{ key, name string }{
	ClassUnknown:     {"unknown", "Unknown"},
	ClassDeathKnight: {"death_knight", "Death Knight"},
	ClassDruid:       {"druid", "Druid"},
	ClassHunter:      {"hunter", "Hunter"},
	ClassMage:        {"mage", "Mage"},
	ClassPaladin:     {"paladin", "Paladin"},
	ClassPriest:      {"priest", "Priest"},
	ClassRogue:       {"rogue", "Rogue"},
	ClassShaman:      {"shaman", "Shaman"},
	ClassWarlock:     {"warlock", "Warlock"},
	ClassWarrior:     {"warrior", "Warrior"},
}

// Key returns the snake_case identifier of c.
func (c Class) Key() string { return classInfo[c].key }

// Name returns the display name of c as used by third-party tools (e.g. "Paladin").
func (c Class) Name() string { return classInfo[c].name }

func (c Class) String() string { return c.Key() }

// Spec is a talent specialization of a class.
type Spec int

const (
	SpecUnknown Spec = iota
	SpecBloodDeathKnight
	SpecFrostDeathKnight
	SpecUnholyDeathKnight
	SpecBalanceDruid
	SpecFeralDruid
	SpecGuardianDruid
	SpecRestorationDruid
	SpecArcaneMage
	SpecFireMage
	SpecFrostMage
	SpecHolyPaladin
	SpecProtectionPaladin
	SpecRetributionPaladin
	SpecArmsWarrior
	SpecFuryWarrior
	SpecProtectionWarrior
)

type specMeta struct {
	key   string
	name  string
	class Class
}

var specInfo = map[Spec]specMeta{
	SpecUnknown:            {"unknown", "Unknown", ClassUnknown},
	SpecBloodDeathKnight:   {"blood_death_knight", "Blood Death Knight", ClassDeathKnight},
	SpecFrostDeathKnight:   {"frost_death_knight", "Frost Death Knight", ClassDeathKnight},
	SpecUnholyDeathKnight:  {"unholy_death_knight", "Unholy Death Knight", ClassDeathKnight},
	SpecBalanceDruid:       {"balance_druid", "Balance Druid", ClassDruid},
	SpecFeralDruid:         {"feral_druid", "Feral Druid", ClassDruid},
	SpecGuardianDruid:      {"guardian_druid", "Guardian Druid", ClassDruid},
	SpecRestorationDruid:   {"restoration_druid", "Restoration Druid", ClassDruid},
	SpecArcaneMage:         {"arcane_mage", "Arcane Mage", ClassMage},
	SpecFireMage:           {"fire_mage", "Fire Mage", ClassMage},
	SpecFrostMage:          {"frost_mage", "Frost Mage", ClassMage},
	SpecHolyPaladin:        {"holy_paladin", "Holy Paladin", ClassPaladin},
	SpecProtectionPaladin:  {"protection_paladin", "Protection Paladin", ClassPaladin},
	SpecRetributionPaladin: {"retribution_paladin", "Retribution Paladin", ClassPaladin},
	SpecArmsWarrior:        {"arms_warrior", "Arms Warrior", ClassWarrior},
	SpecFuryWarrior:        {"fury_warrior", "Fury Warrior", ClassWarrior},
	SpecProtectionWarrior:  {"protection_warrior", "Protection Warrior", ClassWarrior},
}

// Key returns the snake_case identifier of s.
func (s Spec) Key() string { return specInfo[s].key }

// Name returns the display name of s (e.g. "Retribution Paladin").
func (s Spec) Name() string { return specInfo[s].name }

// Class returns the class that owns s.
func (s Spec) Class() Class { return specInfo[s].class }

// IsTank reports whether s is a tanking specialization.
func (s Spec) IsTank() bool {
	switch s {
	case SpecBloodDeathKnight, SpecGuardianDruid, SpecProtectionPaladin, SpecProtectionWarrior:
		return true
	}
	return false
}

func (s Spec) String() string { return s.Key() }

// ParseSpec resolves a snake_case spec key.
//
// Postcondition: Returns the Spec, or SpecUnknown and a non-nil error.
func ParseSpec(key string) (Spec, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for s, m := range specInfo {
		if s != SpecUnknown && m.key == key {
			return s, nil
		}
	}
	return SpecUnknown, fmt.Errorf("player: unknown spec %q", key)
}

// UnmarshalYAML decodes a spec from its key.
func (s *Spec) UnmarshalYAML(unmarshal func(any) error) error {
	var key string
	if err := unmarshal(&key); err != nil {
		return err
	}
	v, err := ParseSpec(key)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Faction is a player allegiance.
type Faction int

const (
	FactionUnknown Faction = iota
	FactionAlliance
	FactionHorde
)

var factionKeys = map[Faction]string{
	FactionUnknown:  "unknown",
	FactionAlliance: "alliance",
	FactionHorde:    "horde",
}

// Key returns the snake_case identifier of f.
func (f Faction) Key() string { return factionKeys[f] }

func (f Faction) String() string { return f.Key() }

// ParseFaction resolves a faction key. The empty string resolves to FactionUnknown.
//
// Postcondition: Returns the Faction, or FactionUnknown and a non-nil error.
func ParseFaction(key string) (Faction, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return FactionUnknown, nil
	}
	for f, k := range factionKeys {
		if k == key {
			return f, nil
		}
	}
	return FactionUnknown, fmt.Errorf("player: unknown faction %q", key)
}

// UnmarshalYAML decodes a faction from its key.
func (f *Faction) UnmarshalYAML(unmarshal func(any) error) error {
	var key string
	if err := unmarshal(&key); err != nil {
		return err
	}
	v, err := ParseFaction(key)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Race is a playable character race.
type Race int

const (
	RaceUnknown Race = iota
	RaceBloodElf
	RaceDraenei
	RaceDwarf
	RaceGnome
	RaceGoblin
	RaceHuman
	RaceNightElf
	RaceOrc
	RaceTauren
	RaceTroll
	RaceUndead
	RaceWorgen
)

var raceKeys = map[Race]string{
	RaceUnknown:  "unknown",
	RaceBloodElf: "blood_elf",
	RaceDraenei:  "draenei",
	RaceDwarf:    "dwarf",
	RaceGnome:    "gnome",
	RaceGoblin:   "goblin",
	RaceHuman:    "human",
	RaceNightElf: "night_elf",
	RaceOrc:      "orc",
	RaceTauren:   "tauren",
	RaceTroll:    "troll",
	RaceUndead:   "undead",
	RaceWorgen:   "worgen",
}

// Key returns the snake_case identifier of r.
func (r Race) Key() string { return raceKeys[r] }

func (r Race) String() string { return r.Key() }

// UnmarshalYAML decodes a race from its key.
func (r *Race) UnmarshalYAML(unmarshal func(any) error) error {
	var key string
	if err := unmarshal(&key); err != nil {
		return err
	}
	for race, k := range raceKeys {
		if k == key {
			*r = race
			return nil
		}
	}
	return fmt.Errorf("player: unknown race %q", key)
}
