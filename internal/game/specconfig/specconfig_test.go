package specconfig_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/specconfig"
	"github.com/cory-johannsen/epexport/internal/game/stats"
	"github.com/cory-johannsen/epexport/internal/scripting"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func embedded(t *testing.T) *specconfig.Registry {
	t.Helper()
	reg, err := specconfig.LoadEmbedded(scripting.NewEvaluator(0), zap.NewNop())
	require.NoError(t, err)
	return reg
}

func TestLoadEmbedded_Retribution(t *testing.T) {
	reg := embedded(t)
	assert.Equal(t, []player.Spec{player.SpecRetributionPaladin}, reg.Specs())

	c, err := reg.Lookup(player.SpecRetributionPaladin)
	require.NoError(t, err)
	assert.Equal(t, player.ClassPaladin, c.Class())
	assert.Equal(t, stats.AttackPower, c.EPReferenceStat)
	assert.Len(t, c.EPStats, 14)
	assert.Equal(t, []stats.PseudoStat{stats.MainHandDps}, c.EPPseudoStats)
	assert.Len(t, c.DisplayStats, 16)
	assert.Equal(t, 2.53, c.Defaults.EPWeights.Get(stats.FromStat(stats.Strength)))
	assert.Equal(t, 1.96, c.Defaults.EPWeights.Get(stats.FromStat(stats.MeleeHit)))
	assert.Equal(t, 7.33, c.Defaults.EPWeights.Get(stats.FromPseudoStat(stats.MainHandDps)))
	assert.True(t, c.Defaults.Buffs.Raid["blessing_of_kings"])
	assert.True(t, c.Defaults.Buffs.Debuffs["blood_frenzy"])
	assert.Equal(t, []string{"replenishment"}, c.IncludeBuffDebuffInputs)
	assert.False(t, c.ShowExecuteProportion)

	require.Len(t, c.Presets.Gear, 6)
	assert.Equal(t, "PRERAID", c.Presets.Gear[0].Name)
	require.Len(t, c.Presets.Talents, 2)
	require.Len(t, c.Presets.Rotations, 1)

	require.Len(t, c.RaidSimPresets, 1)
	assert.Equal(t, player.RaceBloodElf, c.RaidSimPresets[0].DefaultFactionRaces[player.FactionHorde])
	assert.Equal(t, "P3", c.RaidSimPresets[0].DefaultGear[player.FactionAlliance][3])
}

func TestRetribution_EPUnitStats(t *testing.T) {
	c, err := embedded(t).Lookup(player.SpecRetributionPaladin)
	require.NoError(t, err)
	us := c.EPUnitStats()
	require.Len(t, us, 15)
	assert.Equal(t, stats.FromStat(stats.Strength), us[0])
	assert.Equal(t, stats.FromPseudoStat(stats.MainHandDps), us[14])
}

func TestRetribution_DefaultWeightsProducePawnString(t *testing.T) {
	c, err := embedded(t).Lookup(player.SpecRetributionPaladin)
	require.NoError(t, err)
	p := c.NewPlayer(player.FactionHorde)
	got := export.Format(export.TargetPawn, p.ClassName(), p.SpecName(), p.GetEPWeights(), stats.AllUnitStats())
	want, err := os.ReadFile(filepath.Join("..", "..", "export", "testdata", "retribution_pawn.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), got)
}

func TestNewPlayer(t *testing.T) {
	c, err := embedded(t).Lookup(player.SpecRetributionPaladin)
	require.NoError(t, err)

	p := c.NewPlayer(player.FactionAlliance)
	assert.Equal(t, player.SpecRetributionPaladin, p.Spec)
	assert.Equal(t, player.RaceHuman, p.Race)
	assert.Equal(t, "203002-02-23203213211113002311", p.Talents)
	assert.Equal(t, int32(60325), p.Gear.Items[0].ID)
	assert.Equal(t, int32(58088), p.Consumes["flask"])

	p.Buffs.Raid["bloodlust"] = false
	p.Gear.Items[0].ID = 1
	again := c.NewPlayer(player.FactionAlliance)
	assert.True(t, again.Buffs.Raid["bloodlust"])
	assert.Equal(t, int32(60325), again.Gear.Items[0].ID)
}

func TestLookup_Unknown(t *testing.T) {
	reg := embedded(t)
	_, err := reg.Lookup(player.SpecFireMage)
	require.ErrorIs(t, err, specconfig.ErrUnknownSpec)
	_, err = reg.LookupKey("not_a_spec")
	require.ErrorIs(t, err, specconfig.ErrUnknownSpec)
	c, err := reg.LookupKey("Retribution_Paladin")
	require.NoError(t, err)
	assert.Equal(t, player.SpecRetributionPaladin, c.Spec)
}

func TestRegistry_RegisterPanics(t *testing.T) {
	reg := specconfig.NewRegistry()
	assert.Panics(t, func() { reg.Register(nil) })
	assert.Panics(t, func() { reg.Register(&specconfig.SpecConfig{}) })
}

func TestRegistry_SpecsSorted(t *testing.T) {
	reg := specconfig.NewRegistry()
	reg.Register(&specconfig.SpecConfig{Spec: player.SpecRetributionPaladin})
	reg.Register(&specconfig.SpecConfig{Spec: player.SpecArmsWarrior})
	reg.Register(&specconfig.SpecConfig{Spec: player.SpecFireMage})
	assert.Equal(t, []player.Spec{player.SpecArmsWarrior, player.SpecFireMage, player.SpecRetributionPaladin}, reg.Specs())
}

const minimalSpec = `
spec: fire_mage
ep_stats: [intellect, spell_power, spell_hit]
ep_reference_stat: spell_power
defaults:
  gear: P1
  rotation: Default
  talents: Standard
  ep_weights:
    stats: {intellect: 1.2, spell_power: 1, spell_hit: 0.9}
presets:
  gear:
    - name: P1
      gear: {items: [{id: 1}]}
  rotations:
    - name: Default
      simple: {use_pyroblast: true}
  talents:
    - name: Standard
      talents: "-3033-"
`

func TestLoad_Minimal(t *testing.T) {
	c, err := specconfig.Load(strings.NewReader(minimalSpec), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, player.SpecFireMage, c.Spec)
	assert.Equal(t, player.ClassMage, c.Class())
	p := c.NewPlayer(player.FactionHorde)
	assert.Equal(t, player.RaceUnknown, p.Race)
	assert.Equal(t, 1.2, p.GetEPWeights().Get(stats.FromStat(stats.Intellect)))
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]struct {
		from, to string
		want     string
	}{
		"reference stat":  {"ep_reference_stat: spell_power", "ep_reference_stat: strength", "ep_reference_stat"},
		"default gear":    {"  gear: P1\n  rotation", "  gear: P9\n  rotation", "default gear"},
		"default talents": {"  talents: Standard", "  talents: Other", "default talents"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			doc := strings.Replace(minimalSpec, tc.from, tc.to, 1)
			require.NotEqual(t, minimalSpec, doc)
			_, err := specconfig.Load(strings.NewReader(doc), nil, zap.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_DecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"unknown spec":   "spec: bard\n",
		"unknown stat":   strings.Replace(minimalSpec, "spell_hit]", "luck]", 1),
		"unknown weight": strings.Replace(minimalSpec, "spell_hit: 0.9", "luck: 0.9", 1),
		"bad yaml":       "spec: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := specconfig.Load(strings.NewReader(doc), nil, zap.NewNop())
			require.Error(t, err)
		})
	}
}

func TestLoad_RaidSimPhaseMustResolve(t *testing.T) {
	doc := minimalSpec + `
raid_sim_presets:
  - spec: fire_mage
    talents: Standard
    default_gear:
      horde: {1: P1, 2: P2}
`
	_, err := specconfig.Load(strings.NewReader(doc), nil, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `horde phase 2 gear "P2"`)
}

func TestLoadDir_OverridesAndAdds(t *testing.T) {
	reg := embedded(t)
	dir := t.TempDir()
	writeFile(t, dir, "fire.yaml", minimalSpec)
	writeFile(t, dir, "notes.txt", "ignored")

	require.NoError(t, specconfig.LoadDir(reg, dir, nil, zap.NewNop()))
	assert.Equal(t, []player.Spec{player.SpecFireMage, player.SpecRetributionPaladin}, reg.Specs())
}

func TestLoadDir_Errors(t *testing.T) {
	reg := specconfig.NewRegistry()
	require.Error(t, specconfig.LoadDir(reg, filepath.Join(t.TempDir(), "missing"), nil, zap.NewNop()))

	dir := t.TempDir()
	writeFile(t, dir, "bad.yml", "spec: bard\n")
	require.Error(t, specconfig.LoadDir(reg, dir, nil, zap.NewNop()))
}
