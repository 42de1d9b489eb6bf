package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/stats"
)

func TestNew_DerivesClassFromSpec(t *testing.T) {
	p := player.New(player.SpecRetributionPaladin, player.FactionHorde)
	assert.Equal(t, player.ClassPaladin, p.Class())
	assert.Equal(t, "Paladin", p.ClassName())
	assert.Equal(t, "Retribution Paladin", p.SpecName())
	assert.Equal(t, player.FactionHorde, p.GetFaction())
	assert.Equal(t, 85, p.Level)
}

func TestPlayer_EPWeightsAreCopied(t *testing.T) {
	p := player.New(player.SpecRetributionPaladin, player.FactionAlliance)
	w := stats.WeightsFromMap(map[stats.Stat]float64{stats.Strength: 2.53}, nil)
	p.SetEPWeights(w)
	got := p.GetEPWeights()
	_ = got.With(stats.FromStat(stats.Strength), 0)
	assert.Equal(t, 2.53, p.GetEPWeights().Get(stats.FromStat(stats.Strength)))
}

func TestParseSpec(t *testing.T) {
	s, err := player.ParseSpec("Retribution_Paladin")
	require.NoError(t, err)
	assert.Equal(t, player.SpecRetributionPaladin, s)

	_, err = player.ParseSpec("unknown")
	require.Error(t, err)
	_, err = player.ParseSpec("bard")
	require.Error(t, err)
}

func TestParseFaction(t *testing.T) {
	f, err := player.ParseFaction("")
	require.NoError(t, err)
	assert.Equal(t, player.FactionUnknown, f)

	f, err = player.ParseFaction("Horde")
	require.NoError(t, err)
	assert.Equal(t, player.FactionHorde, f)

	_, err = player.ParseFaction("scourge")
	require.Error(t, err)
}

func TestSpec_IsTank(t *testing.T) {
	assert.True(t, player.SpecProtectionPaladin.IsTank())
	assert.True(t, player.SpecBloodDeathKnight.IsTank())
	assert.False(t, player.SpecRetributionPaladin.IsTank())
}

func TestEnums_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Spec  player.Spec                    `yaml:"spec"`
		Races map[player.Faction]player.Race `yaml:"races"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`
spec: retribution_paladin
races:
  alliance: human
  horde: blood_elf
`), &doc))
	assert.Equal(t, player.SpecRetributionPaladin, doc.Spec)
	assert.Equal(t, player.RaceHuman, doc.Races[player.FactionAlliance])
	assert.Equal(t, player.RaceBloodElf, doc.Races[player.FactionHorde])

	require.Error(t, yaml.Unmarshal([]byte("spec: bard\n"), &doc))
}
