package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/game/inventory"
	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/stats"
)

func retributionPlayer() *player.Player {
	p := player.New(player.SpecRetributionPaladin, player.FactionHorde)
	p.Race = player.RaceBloodElf
	p.Talents = "203502-302-2030013"
	p.Gear = inventory.EquipmentSpec{Items: []inventory.ItemSpec{{ID: 65088, Enchant: 4208, Gems: []int32{68780}}}}
	p.Buffs.Raid = map[string]bool{"blessing_of_kings": true, "bloodlust": true}
	p.Buffs.Debuffs = map[string]bool{"blood_frenzy": true}
	p.SetEPWeights(retributionWeights())
	return p
}

func TestExporters_MenuOrderAndFlags(t *testing.T) {
	menu := export.Exporters(export.Source{Player: retributionPlayer()})
	require.Len(t, menu, 4)
	titles := make([]string, len(menu))
	for i, e := range menu {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"Sharable Link", "JSON Export", "80Upgrades EP Export", "Pawn EP Export"}, titles)
	assert.False(t, menu[0].AllowDownload)
	assert.True(t, menu[1].AllowDownload)
	assert.True(t, menu[2].AllowDownload)
	assert.True(t, menu[3].AllowDownload)
}

func TestExporters_PawnProducesGolden(t *testing.T) {
	e, err := export.Find(export.Source{Player: retributionPlayer()}, "PAWN")
	require.NoError(t, err)
	got, err := e.Produce()
	require.NoError(t, err)
	assert.Equal(t, golden(t, "retribution_pawn.golden"), got)
}

func TestExporters_ProducerReadsPlayerLazily(t *testing.T) {
	p := retributionPlayer()
	e, err := export.Find(export.Source{Player: p}, export.KeyJSON)
	require.NoError(t, err)
	p.Name = "Renamed"
	got, err := e.Produce()
	require.NoError(t, err)
	assert.Contains(t, got, `"name": "Renamed"`)
}

func TestFind_Unknown(t *testing.T) {
	_, err := export.Find(export.Source{Player: retributionPlayer()}, "csv")
	require.ErrorIs(t, err, export.ErrUnknownTarget)
}

func TestJSONExport_Stable(t *testing.T) {
	s := export.SettingsFromPlayer(retributionPlayer())
	a, err := export.JSONExport(s)
	require.NoError(t, err)
	b, err := export.JSONExport(s)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "{\n  \"player\": {\n"))
	assert.False(t, strings.HasSuffix(a, "\n"))
	assert.Contains(t, a, `"spec": "retribution_paladin"`)
	assert.Contains(t, a, `"class": "paladin"`)
	assert.Contains(t, a, `"strength": 2.53`)
	assert.Contains(t, a, `"blessing_of_kings": true`)
}

func TestSettingsFromPlayer_DoesNotAlias(t *testing.T) {
	p := retributionPlayer()
	s := export.SettingsFromPlayer(p)
	s.RaidBuffs["bloodlust"] = false
	s.Player.Equipment.Items[0].Gems[0] = 1
	assert.True(t, p.Buffs.Raid["bloodlust"])
	assert.Equal(t, int32(68780), p.Gear.Items[0].Gems[0])
}

func TestLinkExport_RoundTrip(t *testing.T) {
	s := export.SettingsFromPlayer(retributionPlayer())
	link, err := export.LinkExport("https://wowsims.github.io/cata", s)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wowsims.github.io/cata/retribution_paladin/#"))

	doc, err := export.DecodeLink(link)
	require.NoError(t, err)
	pl := doc["player"].(map[string]any)
	assert.Equal(t, "retribution_paladin", pl["spec"])
	assert.Equal(t, "blood_elf", pl["race"])
	assert.Equal(t, 85.0, pl["level"])
	weights := doc["epWeights"].(map[string]any)
	assert.Equal(t, 7.33, weights["main_hand_dps"])
}

func TestLinkExport_Deterministic(t *testing.T) {
	s := export.SettingsFromPlayer(retributionPlayer())
	a, err := export.LinkExport("https://example.test/", s)
	require.NoError(t, err)
	b, err := export.LinkExport("https://example.test/", s)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeLink_Errors(t *testing.T) {
	_, err := export.DecodeLink("https://example.test/ret/")
	require.Error(t, err)
	_, err = export.DecodeLink("https://example.test/ret/#!!notbase64")
	require.Error(t, err)
	_, err = export.DecodeLink("https://example.test/ret/#aGVsbG8=")
	require.Error(t, err)
}

// Property: any weight map survives a link round trip.
func TestLinkExport_Property_WeightsRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := player.New(player.SpecRetributionPaladin, player.FactionAlliance)
		w := stats.Weights{}
		all := stats.AllUnitStats()
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		for i := 0; i < n; i++ {
			u := all[rapid.IntRange(0, len(all)-1).Draw(rt, "stat")]
			w = w.With(u, rapid.Float64Range(0.01, 20).Draw(rt, "w"))
		}
		p.SetEPWeights(w)
		link, err := export.LinkExport("https://example.test/", export.SettingsFromPlayer(p))
		if err != nil {
			rt.Fatal(err)
		}
		doc, err := export.DecodeLink(link)
		if err != nil {
			rt.Fatal(err)
		}
		got := doc["epWeights"].(map[string]any)
		for k, v := range w.ToMap() {
			if got[k] != v {
				rt.Fatalf("weight %s: got %v want %v", k, got[k], v)
			}
		}
	})
}

func TestWeightsXLSX(t *testing.T) {
	w := stats.WeightsFromMap(map[stats.Stat]float64{stats.MeleeHit: 1.5, stats.SpellHit: 0.25, stats.Strength: 2}, nil)
	var buf bytes.Buffer
	require.NoError(t, export.WeightsXLSX(&buf, export.DefaultTables(), "Paladin", "Retribution Paladin", w))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"80upgrades", "pawn"}, f.GetSheetList())

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Pawn EP Export", cell("pawn", "B1"))
	assert.Equal(t, "Paladin", cell("pawn", "B2"))
	assert.Equal(t, "Retribution Paladin WoWSims Weights", cell("pawn", "B3"))
	assert.Equal(t, "Field", cell("pawn", "A5"))
	assert.Equal(t, "Strength", cell("pawn", "A6"))
	assert.Equal(t, "2", cell("pawn", "B6"))
	assert.Equal(t, "HitRating", cell("pawn", "A7"))
	assert.Equal(t, "1.75", cell("pawn", "B7"))
	assert.Equal(t, "", cell("pawn", "A8"))
	assert.Equal(t, "hitRating", cell("80upgrades", "A7"))
}
