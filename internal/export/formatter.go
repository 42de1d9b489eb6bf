package export

import (
	"math"
	"strings"

	"github.com/cory-johannsen/epexport/internal/game/stats"
)

// DefaultSuffix is appended to the spec name to label exported weight sets.
const DefaultSuffix = "WoWSims Weights"

// Field is one emitted name/weight pair.
type Field struct {
	Name   string
	Weight float64
}

// Options tunes rendering. The zero value renders with DefaultSuffix.
type Options struct {
	Suffix string
}

func (o Options) suffix() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}

type renderFunc func(n *NameTable, className, label string, fields []Field) string

var renderers = map[Style]renderFunc{
	StyleURLQuery:  renderURLQuery,
	StyleBracketed: renderBracketed,
}

// Format renders weights for target using the built-in name tables.
// It never fails: an unknown target renders as "".
func Format(target Target, className, specName string, weights stats.Weights, allUnitStats []stats.UnitStat) string {
	return DefaultTables().Format(target, className, specName, weights, allUnitStats)
}

// Format renders weights for target with the default Options.
func (t *Tables) Format(target Target, className, specName string, weights stats.Weights, allUnitStats []stats.UnitStat) string {
	return t.FormatWith(Options{}, target, className, specName, weights, allUnitStats)
}

// FormatWith renders weights for target.
//
// Fields are emitted in the order their name is first reached while walking
// allUnitStats. Stats with a zero weight or no name are skipped, and stats
// sharing a name are summed into one field.
//
// Postcondition: Returns the target's import string, or "" if target is unknown.
func (t *Tables) FormatWith(opts Options, target Target, className, specName string, weights stats.Weights, allUnitStats []stats.UnitStat) string {
	n, ok := t.byTarget[target]
	if !ok {
		return ""
	}
	label := specName + " " + opts.suffix()
	return renderers[n.Style](n, className, label, collect(n, weights, allUnitStats))
}

// Fields returns the deduplicated fields FormatWith would emit for target.
//
// Postcondition: Returns nil if target is unknown.
func (t *Tables) Fields(target Target, weights stats.Weights, allUnitStats []stats.UnitStat) []Field {
	n, ok := t.byTarget[target]
	if !ok {
		return nil
	}
	return collect(n, weights, allUnitStats)
}

func collect(n *NameTable, weights stats.Weights, allUnitStats []stats.UnitStat) []Field {
	var fields []Field
	index := make(map[string]int)
	for _, u := range allUnitStats {
		name := n.Lookup(u)
		w := weights.Get(u)
		if w == 0 || name == "" || !finite(w) {
			continue
		}
		if i, ok := index[name]; ok {
			fields[i].Weight += w
			continue
		}
		index[name] = len(fields)
		fields = append(fields, Field{Name: name, Weight: w})
	}
	// A sum can still overflow.
	out := fields[:0]
	for _, f := range fields {
		if finite(f.Weight) {
			out = append(out, f)
		}
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func renderURLQuery(n *NameTable, _ string, label string, fields []Field) string {
	var b strings.Builder
	b.WriteString(n.BaseURL)
	b.WriteString("?name=")
	b.WriteString(encodeURIComponent(label))
	for _, f := range fields {
		b.WriteByte('&')
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(toFixed3(f.Weight))
	}
	return b.String()
}

// renderBracketed interpolates label unescaped; a quote in the spec name ends up
// inside the quoted segment as-is.
func renderBracketed(n *NameTable, className, label string, fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + "=" + toFixed3(f.Weight)
	}
	return "( " + n.Tool + `: v1: "` + label + `": Class=` + className + "," + strings.Join(parts, ",") + " )"
}
