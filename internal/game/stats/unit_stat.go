package stats

import "fmt"

type unitKind uint8

const (
	kindInvalid unitKind = iota
	kindStat
	kindPseudo
)

// UnitStat identifies exactly one Stat or one PseudoStat.
// UnitStat is comparable; equality is by (kind, value).
// The zero value identifies nothing and is never produced by FromStat or FromPseudoStat.
type UnitStat struct {
	kind  unitKind
	value int32
}

// FromStat wraps a primary stat.
func FromStat(s Stat) UnitStat { return UnitStat{kind: kindStat, value: int32(s)} }

// FromPseudoStat wraps a pseudo stat.
func FromPseudoStat(p PseudoStat) UnitStat { return UnitStat{kind: kindPseudo, value: int32(p)} }

// IsStat reports whether u wraps a valid primary stat.
func (u UnitStat) IsStat() bool { return u.kind == kindStat && Stat(u.value).Valid() }

// IsPseudoStat reports whether u wraps a valid pseudo stat.
func (u UnitStat) IsPseudoStat() bool { return u.kind == kindPseudo && PseudoStat(u.value).Valid() }

// Stat returns the wrapped primary stat.
//
// Precondition: u.IsStat().
func (u UnitStat) Stat() Stat { return Stat(u.value) }

// PseudoStat returns the wrapped pseudo stat.
//
// Precondition: u.IsPseudoStat().
func (u UnitStat) PseudoStat() PseudoStat { return PseudoStat(u.value) }

// Key returns the snake_case identifier of the wrapped stat, or "" for an invalid UnitStat.
func (u UnitStat) Key() string {
	switch {
	case u.IsStat():
		return u.Stat().Key()
	case u.IsPseudoStat():
		return u.PseudoStat().Key()
	}
	return ""
}

func (u UnitStat) String() string {
	if k := u.Key(); k != "" {
		return k
	}
	return fmt.Sprintf("UnitStat(%d,%d)", u.kind, u.value)
}

// ParseUnitStat resolves a key against primary stats first, then pseudo stats.
//
// Postcondition: Returns the UnitStat and nil, or an error wrapping ErrUnknownStat.
func ParseUnitStat(key string) (UnitStat, error) {
	if s, err := ParseStat(key); err == nil {
		return FromStat(s), nil
	}
	p, err := ParsePseudoStat(key)
	if err != nil {
		return UnitStat{}, err
	}
	return FromPseudoStat(p), nil
}

// AllUnitStats returns every UnitStat in canonical order: all primary stats in
// enumeration order followed by all pseudo stats in enumeration order.
//
// Postcondition: len(result) == NumStats+NumPseudoStats; the slice is freshly allocated.
func AllUnitStats() []UnitStat {
	out := make([]UnitStat, 0, NumStats+NumPseudoStats)
	for i := 0; i < NumStats; i++ {
		out = append(out, FromStat(Stat(i)))
	}
	for i := 0; i < NumPseudoStats; i++ {
		out = append(out, FromPseudoStat(PseudoStat(i)))
	}
	return out
}
