package export

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/stats"
)

// Keys of the non-weight exporters.
const (
	KeyLink = "link"
	KeyJSON = "json"
)

// Exporter is one entry of the export menu: a title, whether the result may be
// downloaded, and the producer of the exported text.
type Exporter struct {
	Key           string
	Title         string
	AllowDownload bool
	Produce       func() (string, error)
}

// Source is everything the exporters read from.
type Source struct {
	Player      *player.Player
	Tables      *Tables
	LinkBaseURL string
	Options     Options
}

func (s Source) tables() *Tables {
	if s.Tables == nil {
		return DefaultTables()
	}
	return s.Tables
}

// Exporters returns the export menu for src: the sharable link, the JSON
// settings, then one entry per weight target in table order.
//
// Precondition: src.Player must be non-nil.
// Postcondition: Producers read src.Player when invoked, not when Exporters is called.
func Exporters(src Source) []Exporter {
	p := src.Player
	out := []Exporter{
		{
			Key:   KeyLink,
			Title: "Sharable Link",
			Produce: func() (string, error) {
				return LinkExport(src.LinkBaseURL, SettingsFromPlayer(p))
			},
		},
		{
			Key:           KeyJSON,
			Title:         "JSON Export",
			AllowDownload: true,
			Produce: func() (string, error) {
				return JSONExport(SettingsFromPlayer(p))
			},
		},
	}
	tables := src.tables()
	for _, target := range tables.Targets() {
		target := target
		n, _ := tables.Table(target)
		out = append(out, Exporter{
			Key:           string(target),
			Title:         n.Title,
			AllowDownload: true,
			Produce: func() (string, error) {
				return tables.FormatWith(src.Options, target, p.ClassName(), p.SpecName(), p.GetEPWeights(), stats.AllUnitStats()), nil
			},
		})
	}
	return out
}

// Find returns the exporter of src with the given key. Matching is case-insensitive.
//
// Postcondition: Returns the Exporter, or an error wrapping ErrUnknownTarget.
func Find(src Source, key string) (Exporter, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, e := range Exporters(src) {
		if e.Key == key {
			return e, nil
		}
	}
	return Exporter{}, fmt.Errorf("%w: %q", ErrUnknownTarget, key)
}
