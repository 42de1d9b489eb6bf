// Package export serializes a character's EP weights and settings into the
// text formats accepted by third-party gear tools.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTarget is returned when a target name is not present in the name tables.
var ErrUnknownTarget = errors.New("export: unknown target")

// Target identifies a third-party tool that imports stat weights.
type Target string

const (
	// TargetEightyUpgrades is the eightyupgrades.com EP import URL.
	TargetEightyUpgrades Target = "80upgrades"
	// TargetPawn is the Pawn addon import string.
	TargetPawn Target = "pawn"
)

// Style selects how collected fields are rendered.
type Style string

const (
	// StyleURLQuery renders "<base>?name=<encoded>&field=w&...".
	StyleURLQuery Style = "url_query"
	// StyleBracketed renders `( Tool: v1: "<name>": Class=<class>,field=w,... )`.
	StyleBracketed Style = "bracketed"
)

func (s Style) valid() bool {
	_, ok := renderers[s]
	return ok
}

// Resolve looks up a target by name in the default tables. Matching is case-insensitive.
//
// Postcondition: Returns the Target, or an error wrapping ErrUnknownTarget.
func Resolve(name string) (Target, error) {
	return DefaultTables().Resolve(name)
}

// Resolve looks up a target by name in t. Matching is case-insensitive.
//
// Postcondition: Returns the Target, or an error wrapping ErrUnknownTarget.
func (t *Tables) Resolve(name string) (Target, error) {
	key := Target(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := t.byTarget[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
	return key, nil
}
