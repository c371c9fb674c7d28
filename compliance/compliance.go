/*
Package compliance implements the Compliance Evaluator (component C7): it
sums the per-isotope specific activity of a waste sample's impurities
divided by a regulatory limit, decides whether the sample clears that
limit, and estimates how long it must cool if it does not.
*/
package compliance

import (
	"math"
	"sort"

	"github.com/AbelV22/naa-engine/element"
	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
	"github.com/AbelV22/naa-engine/units"
)

// NeverClearsDays is the sentinel days-to-clear value reported when the
// dominant isotope has no decay constant (stable) or the estimate is
// non-finite: "effectively infinite", spec §4.7 step 5 and §7's generic
// sentinel. It is always negative, so callers can never mistake it for a
// real duration.
const NeverClearsDays = -1.0

// Row is one regulated isotope's contribution to the compliance sum.
type Row struct {
	Isotope        isotope.ID
	ActivityBq     float64
	SpecificBqPerG float64
	LimitBqPerG    float64
	Fraction       float64
}

// Summary is the overall verdict of a compliance evaluation.
type Summary struct {
	SumIndex        float64
	IsCompliant     bool
	DaysToClear     float64
	DominantIsotope isotope.ID
}

// Report is the full output of Evaluate.
type Report struct {
	Rows    []Row
	Summary Summary
}

// Options carries tuning parameters shared with the underlying solver.
type Options struct {
	Depth int
}

// Evaluate computes the waste-compliance report for a sample whose
// impurities are given as element-symbol -> ppm (by mass of mainMassG),
// optionally including the main element itself at full concentration
// (spec §4.7 step 1: "added at an effective 10^6 ppm").
func Evaluate(store *nucdata.Store, impurityPPM map[string]float64, mainElement string, mainMassG, fluxNPerCm2S, tIrrS, tCoolS, wasteMassG float64, kind nucdata.LimitKind, opts Options) Report {
	inventory := buildInventory(store, impurityPPM, mainElement, mainMassG, fluxNPerCm2S, tIrrS, tCoolS, opts)

	ids := make([]isotope.ID, 0, len(inventory))
	for id := range inventory {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var rows []Row
	var sumIndex float64
	var dominant isotope.ID
	var dominantFraction float64

	for _, id := range ids {
		limit := store.Limit(id, kind)
		if math.IsInf(limit, 1) {
			continue // no limit recorded: excluded from compliance sums (spec §3)
		}
		activity := inventory[id]
		specific := activity / wasteMassG
		fraction := specific / limit
		sumIndex += fraction

		rows = append(rows, Row{
			Isotope:        id,
			ActivityBq:     activity,
			SpecificBqPerG: specific,
			LimitBqPerG:    limit,
			Fraction:       fraction,
		})

		if fraction > dominantFraction {
			dominantFraction = fraction
			dominant = id
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Fraction > rows[j].Fraction })

	summary := Summary{
		SumIndex:        sumIndex,
		IsCompliant:     sumIndex <= 1,
		DominantIsotope: dominant,
	}
	summary.DaysToClear = timeToClear(store, summary, dominant)

	return Report{Rows: rows, Summary: summary}
}

// timeToClear approximates the cooling time required for sumIndex to drop
// to 1, assuming decay is governed by the dominant isotope's decay
// constant (spec §4.7 step 5). Already-compliant samples need no cooling.
func timeToClear(store *nucdata.Store, summary Summary, dominant isotope.ID) float64 {
	if summary.IsCompliant {
		return 0
	}
	lambdaDom := store.Lambda(dominant)
	if lambdaDom <= 0 {
		return NeverClearsDays
	}
	seconds := math.Log(summary.SumIndex) / lambdaDom
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return NeverClearsDays
	}
	return seconds / units.SecondsPerDay
}

func buildInventory(store *nucdata.Store, impurityPPM map[string]float64, mainElement string, mainMassG, fluxNPerCm2S, tIrrS, tCoolS float64, opts Options) map[isotope.ID]float64 {
	symbols := make([]string, 0, len(impurityPPM))
	for s := range impurityPPM {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	inventory := make(map[isotope.ID]float64)
	addElement := func(symbol string, massG float64) {
		for _, r := range element.Solve(store, symbol, massG, fluxNPerCm2S, tIrrS, tCoolS, element.Options{Merge: true, Depth: opts.Depth}) {
			inventory[r.Isotope] += r.ActivityBq
		}
	}

	for _, symbol := range symbols {
		ppm := impurityPPM[symbol]
		massG := ppm * mainMassG * 1e-6
		addElement(symbol, massG)
	}
	if mainElement != "" {
		addElement(mainElement, mainMassG)
	}
	return inventory
}
