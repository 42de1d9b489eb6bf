package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cory-johannsen/epexport/internal/game/inventory"
	"github.com/cory-johannsen/epexport/internal/game/player"
)

// DownloadFilename is the file name offered when an export is downloaded.
const DownloadFilename = "wowsims.json"

// PlayerSettings is the exported view of one character.
type PlayerSettings struct {
	Name            string                  `json:"name,omitempty"`
	Class           string                  `json:"class"`
	Spec            string                  `json:"spec"`
	Race            string                  `json:"race"`
	Faction         string                  `json:"faction"`
	Level           int                     `json:"level"`
	TalentTree      int                     `json:"talentTree"`
	TalentsString   string                  `json:"talentsString,omitempty"`
	Equipment       inventory.EquipmentSpec `json:"equipment"`
	Consumes        map[string]int32        `json:"consumes,omitempty"`
	IndividualBuffs map[string]bool         `json:"buffs,omitempty"`
}

// Settings is the full character snapshot written by the JSON and link exporters.
type Settings struct {
	Player     PlayerSettings     `json:"player"`
	RaidBuffs  map[string]bool    `json:"raidBuffs,omitempty"`
	PartyBuffs map[string]bool    `json:"partyBuffs,omitempty"`
	Debuffs    map[string]bool    `json:"debuffs,omitempty"`
	EPWeights  map[string]float64 `json:"epWeights,omitempty"`
}

// SettingsFromPlayer snapshots p.
//
// Precondition: p must be non-nil.
// Postcondition: The returned Settings shares no mutable state with p.
func SettingsFromPlayer(p *player.Player) Settings {
	return Settings{
		Player: PlayerSettings{
			Name:            p.Name,
			Class:           p.Class().Key(),
			Spec:            p.Spec.Key(),
			Race:            p.Race.Key(),
			Faction:         p.Faction.Key(),
			Level:           p.Level,
			TalentTree:      p.TalentTree,
			TalentsString:   p.Talents,
			Equipment:       p.Gear.Clone(),
			Consumes:        copyMap(p.Consumes),
			IndividualBuffs: copyMap(p.Buffs.Individual),
		},
		RaidBuffs:  copyMap(p.Buffs.Raid),
		PartyBuffs: copyMap(p.Buffs.Party),
		Debuffs:    copyMap(p.Buffs.Debuffs),
		EPWeights:  p.GetEPWeights().ToMap(),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	if len(m) == 0 {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// JSONExport renders s as JSON indented by two spaces. Map keys are sorted, so
// identical settings always render identical bytes.
//
// Postcondition: Returns the document without a trailing newline, or a non-nil error.
func JSONExport(s Settings) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("export: encoding settings: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
