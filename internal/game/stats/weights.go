package stats

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Weights holds one EP weight per UnitStat. Missing entries are zero.
//
// Weights is a value type; copies never alias.
type Weights struct {
	stats  [NumStats]float64
	pseudo [NumPseudoStats]float64
}

// WeightsFromMap builds Weights from sparse maps. Out-of-range keys are ignored.
func WeightsFromMap(statWeights map[Stat]float64, pseudoWeights map[PseudoStat]float64) Weights {
	var w Weights
	for s, v := range statWeights {
		if s.Valid() {
			w.stats[s] = v
		}
	}
	for p, v := range pseudoWeights {
		if p.Valid() {
			w.pseudo[p] = v
		}
	}
	return w
}

// Get returns the weight for u, or 0 when u is invalid.
func (w Weights) Get(u UnitStat) float64 {
	switch {
	case u.IsStat():
		return w.stats[u.Stat()]
	case u.IsPseudoStat():
		return w.pseudo[u.PseudoStat()]
	}
	return 0
}

// With returns a copy of w with u set to v. Invalid u leaves the copy unchanged.
func (w Weights) With(u UnitStat, v float64) Weights {
	switch {
	case u.IsStat():
		w.stats[u.Stat()] = v
	case u.IsPseudoStat():
		w.pseudo[u.PseudoStat()] = v
	}
	return w
}

// NonZero returns the UnitStats with a non-zero weight, in canonical order.
func (w Weights) NonZero() []UnitStat {
	var out []UnitStat
	for _, u := range AllUnitStats() {
		if w.Get(u) != 0 {
			out = append(out, u)
		}
	}
	return out
}

// ToMap returns the non-zero weights keyed by stat key.
func (w Weights) ToMap() map[string]float64 {
	out := make(map[string]float64)
	for _, u := range w.NonZero() {
		out[u.Key()] = w.Get(u)
	}
	return out
}

// WeightsFile is the YAML shape of a weights document.
type WeightsFile struct {
	Stats       map[string]float64 `yaml:"stats"`
	PseudoStats map[string]float64 `yaml:"pseudo_stats"`
}

// Weights resolves the keyed maps.
//
// Postcondition: Returns the Weights or an error wrapping ErrUnknownStat for the first bad key.
func (f WeightsFile) Weights() (Weights, error) {
	sw := make(map[Stat]float64, len(f.Stats))
	for k, v := range f.Stats {
		s, err := ParseStat(k)
		if err != nil {
			return Weights{}, err
		}
		sw[s] = v
	}
	pw := make(map[PseudoStat]float64, len(f.PseudoStats))
	for k, v := range f.PseudoStats {
		p, err := ParsePseudoStat(k)
		if err != nil {
			return Weights{}, err
		}
		pw[p] = v
	}
	return WeightsFromMap(sw, pw), nil
}

// LoadWeights parses a YAML weights document from r.
//
// Precondition: r must be non-nil.
// Postcondition: Returns parsed Weights or a non-nil error.
func LoadWeights(r io.Reader) (Weights, error) {
	var f WeightsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return Weights{}, fmt.Errorf("stats: decoding weights: %w", err)
	}
	return f.Weights()
}
