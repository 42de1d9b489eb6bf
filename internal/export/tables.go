package export

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/epexport/internal/game/stats"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// NameTable maps UnitStats to the field names of one export target.
// Several stats may share one name; their weights are summed on export.
//
// NameTable is immutable after loading.
type NameTable struct {
	Target  Target
	Title   string
	Style   Style
	BaseURL string
	Tool    string

	stats  map[stats.Stat]string
	pseudo map[stats.PseudoStat]string
}

// Lookup returns the field name for u, or "" when the target does not export u.
func (n *NameTable) Lookup(u stats.UnitStat) string {
	switch {
	case u.IsStat():
		return n.stats[u.Stat()]
	case u.IsPseudoStat():
		return n.pseudo[u.PseudoStat()]
	}
	return ""
}

// Tables is the set of name tables for every known target.
type Tables struct {
	byTarget map[Target]*NameTable
	order    []Target
}

// Table returns the name table for target.
func (t *Tables) Table(target Target) (*NameTable, bool) {
	n, ok := t.byTarget[target]
	return n, ok
}

// Targets returns all targets in load order.
func (t *Tables) Targets() []Target {
	return append([]Target(nil), t.order...)
}

type tableFile struct {
	Target      Target            `yaml:"target"`
	Title       string            `yaml:"title"`
	Style       Style             `yaml:"style"`
	BaseURL     string            `yaml:"base_url"`
	Tool        string            `yaml:"tool"`
	Stats       map[string]string `yaml:"stats"`
	PseudoStats map[string]string `yaml:"pseudo_stats"`
}

func (f tableFile) build() (*NameTable, error) {
	if f.Target == "" {
		return nil, fmt.Errorf("target must not be empty")
	}
	if !f.Style.valid() {
		return nil, fmt.Errorf("target %q: unknown style %q", f.Target, f.Style)
	}
	if f.Style == StyleURLQuery && f.BaseURL == "" {
		return nil, fmt.Errorf("target %q: base_url is required for style %s", f.Target, f.Style)
	}
	if f.Style == StyleBracketed && f.Tool == "" {
		return nil, fmt.Errorf("target %q: tool is required for style %s", f.Target, f.Style)
	}
	n := &NameTable{
		Target:  f.Target,
		Title:   f.Title,
		Style:   f.Style,
		BaseURL: f.BaseURL,
		Tool:    f.Tool,
		stats:   make(map[stats.Stat]string, len(f.Stats)),
		pseudo:  make(map[stats.PseudoStat]string, len(f.PseudoStats)),
	}
	for key, name := range f.Stats {
		s, err := stats.ParseStat(key)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", f.Target, err)
		}
		n.stats[s] = name
	}
	for key, name := range f.PseudoStats {
		p, err := stats.ParsePseudoStat(key)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", f.Target, err)
		}
		n.pseudo[p] = name
	}
	return n, nil
}

// LoadTables parses every *.yaml file at the root of fsys as a NameTable.
// Files are read in lexical order, which is also the order of Targets().
//
// Precondition: fsys must be non-nil.
// Postcondition: Returns the loaded tables, or a non-nil error on the first invalid
// or duplicate table.
func LoadTables(fsys fs.FS) (*Tables, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("export: listing tables: %w", err)
	}
	sort.Strings(files)
	t := &Tables{byTarget: make(map[Target]*NameTable, len(files))}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("export: reading %s: %w", name, err)
		}
		var f tableFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("export: parsing table %s: %w", name, err)
		}
		n, err := f.build()
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", name, err)
		}
		if _, dup := t.byTarget[n.Target]; dup {
			return nil, fmt.Errorf("export: %s: duplicate target %q", name, n.Target)
		}
		t.byTarget[n.Target] = n
		t.order = append(t.order, n.Target)
	}
	return t, nil
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// DefaultTables returns the built-in name tables, parsed once on first use.
//
// Postcondition: Returns a non-nil *Tables; panics if the embedded tables are invalid.
func DefaultTables() *Tables {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(tablesFS, "tables")
		if err != nil {
			panic(fmt.Sprintf("export: embedded tables: %v", err))
		}
		t, err := LoadTables(sub)
		if err != nil {
			panic(fmt.Sprintf("export: embedded tables: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}
