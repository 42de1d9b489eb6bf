package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cory-johannsen/epexport/internal/export"
	"github.com/cory-johannsen/epexport/internal/modal"
)

type recordingClipboard struct {
	unsupported bool
	got         []string
}

func (c *recordingClipboard) WriteAll(text string) error {
	c.got = append(c.got, text)
	return nil
}

func (c *recordingClipboard) Unsupported() bool { return c.unsupported }

func run(t *testing.T, clip modal.Clipboard, args ...string) (string, error) {
	t.Helper()
	t.Setenv("EPEXPORT_LOGGING_LEVEL", "error")
	if clip == nil {
		clip = &recordingClipboard{}
	}
	cmd := newRootCmd(deps{clipboard: clip, interactive: func() bool { return false }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func pawnGolden(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "export", "testdata", "retribution_pawn.golden"))
	require.NoError(t, err)
	return string(data)
}

func TestTargets(t *testing.T) {
	out, err := run(t, nil, "targets")
	require.NoError(t, err)
	for _, want := range []string{"TARGET", "link", "Sharable Link", "json", "80upgrades", "url_query", "pawn", "Pawn EP Export", "bracketed"} {
		assert.Contains(t, out, want)
	}
}

func TestSpecs(t *testing.T) {
	out, err := run(t, nil, "specs")
	require.NoError(t, err)
	assert.Contains(t, out, "retribution_paladin")
	assert.Contains(t, out, "Retribution Paladin")
	assert.Contains(t, out, "Paladin")
}

func TestExport_RawPawn(t *testing.T) {
	out, err := run(t, nil, "export", "--spec", "retribution_paladin", "--target", "pawn", "--raw")
	require.NoError(t, err)
	assert.Equal(t, pawnGolden(t)+"\n", out)
}

func TestExport_RenderedPanel(t *testing.T) {
	out, err := run(t, nil, "export", "-s", "retribution_paladin", "-t", "80upgrades")
	require.NoError(t, err)
	assert.Contains(t, out, "80Upgrades EP Export")
	assert.Contains(t, out, "https://eightyupgrades.com/ep/import?name=Retribution%20Paladin%20WoWSims%20Weights")
	assert.Contains(t, out, "[Download]")
}

func TestExport_Copy(t *testing.T) {
	clip := &recordingClipboard{}
	out, err := run(t, clip, "export", "-s", "retribution_paladin", "-t", "pawn", "--copy")
	require.NoError(t, err)
	assert.Equal(t, []string{pawnGolden(t)}, clip.got)
	assert.Contains(t, out, "Copied")
}

func TestExport_CopyFallback(t *testing.T) {
	clip := &recordingClipboard{unsupported: true}
	out, err := run(t, clip, "export", "-s", "retribution_paladin", "-t", "pawn", "--copy", "--raw")
	require.NoError(t, err)
	assert.Empty(t, clip.got)
	assert.Equal(t, pawnGolden(t)+"\n"+pawnGolden(t)+"\n", out)
}

func TestExport_CustomSuffixAndWeights(t *testing.T) {
	dir := t.TempDir()
	weights := filepath.Join(dir, "w.yaml")
	require.NoError(t, os.WriteFile(weights, []byte("stats:\n  strength: 2\n  melee_hit: 1.5\n  spell_hit: 0.25\n"), 0644))

	out, err := run(t, nil, "export", "-s", "retribution_paladin", "-t", "pawn", "-w", weights, "--suffix", "Mine", "--raw")
	require.NoError(t, err)
	assert.Equal(t, `( Pawn: v1: "Retribution Paladin Mine": Class=Paladin,Strength=2.000,HitRating=1.750 )`+"\n", out)
}

func TestExport_DownloadJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, nil, "export", "-s", "retribution_paladin", "-t", "json", "--download", "--out-dir", dir, "--faction", "horde")
	require.NoError(t, err)
	path := filepath.Join(dir, "wowsims.json")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"race": "blood_elf"`)
	assert.Contains(t, string(data), `"faction": "horde"`)
}

func TestExport_DownloadLinkRejected(t *testing.T) {
	_, err := run(t, nil, "export", "-s", "retribution_paladin", "-t", "link", "--download", "--out-dir", t.TempDir())
	require.ErrorIs(t, err, modal.ErrDownloadDisabled)
}

func TestExport_LinkDecodes(t *testing.T) {
	out, err := run(t, nil, "export", "-s", "retribution_paladin", "-t", "link", "--raw")
	require.NoError(t, err)
	doc, err := export.DecodeLink(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "retribution_paladin", doc["player"].(map[string]any)["spec"])
}

func TestExport_Errors(t *testing.T) {
	cases := map[string][]string{
		"missing target":  {"export", "-s", "retribution_paladin"},
		"missing spec":    {"export", "-t", "pawn"},
		"unknown spec":    {"export", "-s", "bard", "-t", "pawn"},
		"unknown target":  {"export", "-s", "retribution_paladin", "-t", "csv"},
		"unknown faction": {"export", "-s", "retribution_paladin", "-t", "pawn", "--faction", "pirates"},
		"missing weights": {"export", "-s", "retribution_paladin", "-t", "pawn", "-w", "/nonexistent/w.yaml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, nil, args...)
			require.Error(t, err)
		})
	}
}

func TestPresets(t *testing.T) {
	out, err := run(t, nil, "presets", "-s", "retribution_paladin", "--faction", "horde", "--talent-tree", "2", "-v")
	require.NoError(t, err)
	for _, want := range []string{"PRERAID", "P5", "Default", "apl", "Aura Mastery", "Divine Sacrifice", `"priorityList"`} {
		assert.Contains(t, out, want)
	}
}

func TestXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ret.xlsx")
	out, err := run(t, nil, "xlsx", "-s", "retribution_paladin", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Weights written")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"80upgrades", "pawn"}, f.GetSheetList())
	v, err := f.GetCellValue("pawn", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Strength", v)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	cmd := newRootCmd(deps{clipboard: &recordingClipboard{}, interactive: func() bool { return false }})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "trace", "specs"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestRoot_ConfigSpecDir(t *testing.T) {
	specDir := t.TempDir()
	src, err := os.ReadFile(filepath.Join("..", "game", "specconfig", "specs", "retribution_paladin.yaml"))
	require.NoError(t, err)
	doc := strings.Replace(string(src), "strength: 2.53", "strength: 3.5", 1)
	require.NoError(t, os.WriteFile(filepath.Join(specDir, "ret.yaml"), []byte(doc), 0644))

	cfgPath := filepath.Join(t.TempDir(), "epexport.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("content:\n  spec_dir: "+specDir+"\n"), 0644))

	out, err := run(t, nil, "--config", cfgPath, "export", "-s", "retribution_paladin", "-t", "pawn", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "Strength=3.500")
}
