/*
Package element implements the Element Solver (component C6): it expands a
chemical element into its naturally occurring isotopes using the nuclear
data store's abundance table, delegates each isotope to the two-phase
solver, and optionally merges results that converge on the same terminal
nuclide.
*/
package element

import (
	"sort"

	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
	"github.com/AbelV22/naa-engine/solve"
)

// Result is one row of a Solve output, tagged with the natural isotope of
// the element that produced it. Parent is isotope.Unknown() on a merged
// row, since merging discards parent provenance (spec §4.6).
type Result struct {
	Isotope       isotope.ID
	Parent        isotope.ID
	ActivityBq    float64
	Atoms         float64
	FirstXSBarn   float64
	FirstReaction nucdata.ReactionType
	Pathway       string
	Contribution  solve.Contribution
}

// Options carries the optional solve_element() parameters.
type Options struct {
	Depth int
	Merge bool
}

// Solve expands symbol into its natural isotopes and runs the two-phase
// solver on each, scaling totalMassG by each isotope's natural abundance.
// An element absent from the abundance table returns nil, not an error
// (spec §4.6).
func Solve(store *nucdata.Store, symbol string, totalMassG, fluxNPerCm2S, tIrrS, tCoolS float64, opts Options) []Result {
	isotopes := store.IsotopesOf(symbol)
	if len(isotopes) == 0 {
		return nil
	}

	var rows []Result
	for _, ab := range isotopes {
		parent := isotope.New(symbol, ab.A, "")
		mass := totalMassG * ab.Theta
		for _, r := range solve.Solve(store, parent, mass, fluxNPerCm2S, tIrrS, tCoolS, solve.Options{Abundance: 1, Depth: opts.Depth}) {
			rows = append(rows, Result{
				Isotope:       r.Isotope,
				Parent:        parent,
				ActivityBq:    r.ActivityBq,
				Atoms:         r.Atoms,
				FirstXSBarn:   r.FirstXSBarn,
				FirstReaction: r.FirstReaction,
				Pathway:       r.Pathway,
				Contribution:  r.Contribution,
			})
		}
	}

	if opts.Merge {
		rows = mergeByTerminal(rows)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ActivityBq > rows[j].ActivityBq
	})
	return rows
}

// mergeByTerminal sums atoms and activity across rows that share a
// terminal isotope, discarding parent provenance (spec §4.6).
func mergeByTerminal(rows []Result) []Result {
	order := make([]isotope.ID, 0, len(rows))
	byTerminal := make(map[isotope.ID]*Result)

	for _, r := range rows {
		m, ok := byTerminal[r.Isotope]
		if !ok {
			merged := Result{
				Isotope:       r.Isotope,
				Parent:        isotope.Unknown(),
				FirstXSBarn:   r.FirstXSBarn,
				FirstReaction: r.FirstReaction,
				Pathway:       r.Pathway,
				Contribution:  r.Contribution,
			}
			byTerminal[r.Isotope] = &merged
			order = append(order, r.Isotope)
			m = &merged
		}
		m.Atoms += r.Atoms
		m.ActivityBq += r.ActivityBq
		if r.Contribution == solve.Secondary {
			m.Contribution = solve.Secondary
		}
	}

	merged := make([]Result, 0, len(order))
	for _, id := range order {
		merged = append(merged, *byTerminal[id])
	}
	return merged
}
