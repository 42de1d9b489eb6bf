package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/cory-johannsen/epexport/internal/game/player"
	"github.com/cory-johannsen/epexport/internal/game/specconfig"
	"github.com/cory-johannsen/epexport/internal/game/stats"
	"github.com/cory-johannsen/epexport/internal/prompts"
)

// playerOptions are the flags shared by commands that build a character.
type playerOptions struct {
	spec       string
	faction    string
	talentTree int
	weights    string
}

func (o *playerOptions) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.spec, "spec", "s", "", "Spec key, e.g. retribution_paladin")
	fs.StringVar(&o.faction, "faction", "alliance", "Faction (alliance, horde)")
	fs.IntVar(&o.talentTree, "talent-tree", -1, "Talent tree index; negative keeps the spec default")
	fs.StringVarP(&o.weights, "weights", "w", "", "YAML file of EP weights replacing the spec defaults")
}

// resolveSpec returns the configuration named by opts.spec, prompting for it
// when the flag is empty and the session is interactive.
func (a *app) resolveSpec(opts *playerOptions) (*specconfig.SpecConfig, error) {
	if opts.spec == "" {
		if !a.interactive() {
			return nil, fmt.Errorf("--spec is required")
		}
		if err := prompts.RunSpecSelect(&opts.spec, a.specs.Specs()); err != nil {
			return nil, err
		}
	}
	return a.specs.LookupKey(opts.spec)
}

// buildPlayer creates the character described by opts from its spec defaults.
// A weights file replaces the default EP weights.
func (a *app) buildPlayer(opts *playerOptions) (*specconfig.SpecConfig, *player.Player, error) {
	sc, err := a.resolveSpec(opts)
	if err != nil {
		return nil, nil, err
	}
	faction, err := player.ParseFaction(opts.faction)
	if err != nil {
		return nil, nil, err
	}
	p := sc.NewPlayer(faction)
	if opts.talentTree >= 0 {
		p.TalentTree = opts.talentTree
	}

	if opts.weights != "" {
		fh, err := os.Open(opts.weights)
		if err != nil {
			return nil, nil, fmt.Errorf("opening weights file: %w", err)
		}
		defer fh.Close()
		w, err := stats.LoadWeights(fh)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opts.weights, err)
		}
		p.SetEPWeights(w)
	}
	return sc, p, nil
}
