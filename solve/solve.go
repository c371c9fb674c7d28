/*
Package solve implements the Two-Phase Solver (component C5): it composes
the path enumerator (pathenum) and the Bateman kernel (bateman) into an
irradiation phase followed by an optional cooling phase, and aggregates the
resulting per-isotope activity.

During cooling, zero flux collapses every activation edge, so new daughters
can only appear by decay. Rather than integrate a piecewise-constant-flux
Bateman equation, the solver re-enumerates from each irradiation-phase
terminal with flux 0 and evaluates a second, independent analytic chain
(spec §4.5).
*/
package solve

import (
	"sort"

	"github.com/AbelV22/naa-engine/bateman"
	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
	"github.com/AbelV22/naa-engine/pathenum"
	"github.com/AbelV22/naa-engine/units"
)

// Contribution classifies how a terminal isotope was reached.
type Contribution string

const (
	// Direct means every edge on the combined irradiation+cooling
	// pathway was an activation edge (or the pathway is trivial): the
	// isotope is a neutron-capture product of the irradiated material,
	// possibly just decayed in place during cooling.
	Direct Contribution = "direct"
	// Secondary means at least one decay edge appears anywhere on the
	// combined pathway: the isotope was produced by the decay of some
	// other nuclide, not by direct neutron capture.
	Secondary Contribution = "secondary"
)

// Default tuning parameters (spec §4.5's "[abundance]" and "[depth]"
// optional solve() parameters).
const (
	DefaultAbundance = 1.0
	DefaultDepth     = 6
)

// Options carries the optional solve() parameters. The zero value resolves
// to the spec's defaults.
type Options struct {
	Abundance float64
	Depth     int
}

func (o Options) resolved() Options {
	if o.Abundance <= 0 {
		o.Abundance = DefaultAbundance
	}
	if o.Depth <= 0 {
		o.Depth = DefaultDepth
	}
	return o
}

// Result is one row of a solve() output: a terminal isotope's accumulated
// activity and atom count, plus reporting metadata (spec §6).
type Result struct {
	Isotope       isotope.ID
	ActivityBq    float64
	Atoms         float64
	FirstXSBarn   float64
	FirstReaction nucdata.ReactionType
	Pathway       string
	Contribution  Contribution
}

// activityFloor is the minimum activity a Result must carry to be
// reported (spec §4.5 step 4).
const activityFloor = 1e-20

type candidate struct {
	terminal      isotope.ID
	atoms         float64
	firstXSBarn   float64
	firstReaction nucdata.ReactionType
	pathway       string
	hasDecayEdge  bool
}

// Solve computes the activation inventory of one starting isotope after
// irradiation for tIrrS seconds at fluxNPerCm2S followed by cooling for
// tCoolS seconds (spec §4.5).
func Solve(store *nucdata.Store, start isotope.ID, massG, fluxNPerCm2S, tIrrS, tCoolS float64, opts Options) []Result {
	opts = opts.resolved()
	if !start.Valid() {
		return nil
	}

	n0 := massG * opts.Abundance * units.Avogadro / float64(start.A)

	irrPaths := pathenum.Enumerate(store, start, fluxNPerCm2S, opts.Depth)

	var candidates []candidate
	for _, p := range irrPaths {
		atoms, ok := bateman.Evaluate(p.NodeRates, p.EdgeRates, tIrrS, n0)
		if !ok {
			continue
		}

		if tCoolS <= 0 {
			candidates = append(candidates, candidate{
				terminal:      p.Terminal(),
				atoms:         atoms,
				firstXSBarn:   p.FirstActivationSigma(),
				firstReaction: p.FirstActivationReaction(),
				pathway:       p.Descriptor(),
				hasDecayEdge:  p.HasDecayEdge(),
			})
			continue
		}

		coolPaths := pathenum.Enumerate(store, p.Terminal(), 0, opts.Depth)
		for _, cp := range coolPaths {
			coolAtoms, ok := bateman.Evaluate(cp.NodeRates, cp.EdgeRates, tCoolS, atoms)
			if !ok {
				continue
			}
			candidates = append(candidates, candidate{
				terminal:      cp.Terminal(),
				atoms:         coolAtoms,
				firstXSBarn:   p.FirstActivationSigma(),
				firstReaction: p.FirstActivationReaction(),
				pathway:       p.Descriptor() + " | cool: " + cp.Descriptor(),
				hasDecayEdge:  p.HasDecayEdge() || cp.HasDecayEdge(),
			})
		}
	}

	return aggregate(store, candidates)
}

// aggregate sums atoms across every candidate that resolves to the same
// terminal isotope (spec §9 Open Question 2: converging paths are summed,
// not deduplicated), computes activity, drops sub-floor records, and sorts
// descending by activity.
func aggregate(store *nucdata.Store, candidates []candidate) []Result {
	order := make([]isotope.ID, 0, len(candidates))
	byTerminal := make(map[isotope.ID]*Result)

	for _, c := range candidates {
		r, ok := byTerminal[c.terminal]
		if !ok {
			r = &Result{
				Isotope:       c.terminal,
				FirstXSBarn:   c.firstXSBarn,
				FirstReaction: c.firstReaction,
				Pathway:       c.pathway,
				Contribution:  contributionOf(c.hasDecayEdge),
			}
			byTerminal[c.terminal] = r
			order = append(order, c.terminal)
		}
		r.Atoms += c.atoms
		if c.hasDecayEdge {
			r.Contribution = Secondary
		}
	}

	results := make([]Result, 0, len(order))
	for _, id := range order {
		r := byTerminal[id]
		r.ActivityBq = r.Atoms * store.Lambda(id)
		if r.ActivityBq <= activityFloor {
			continue
		}
		results = append(results, *r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ActivityBq > results[j].ActivityBq
	})
	return results
}

func contributionOf(hasDecayEdge bool) Contribution {
	if hasDecayEdge {
		return Secondary
	}
	return Direct
}
