/*
Package maxppm implements the Max-PPM Evaluator (component C8), the
inverse of the compliance evaluator: for each candidate impurity element it
derives the highest concentration, in parts per million, that keeps a waste
sample's regulatory sum index at or below 1.
*/
package maxppm

import (
	"math"
	"sort"

	"github.com/AbelV22/naa-engine/element"
	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
)

// inertThreshold is the smallest aggregated fraction-of-limit an element
// must produce to be reported at all (spec §4.8 step 3: "inert" below
// this is skipped).
const inertThreshold = 1e-30

// minSharePct is the smallest per-row share of an element's total risk
// that survives into the report (spec §4.8 step 7).
const minSharePct = 0.001

// Row is one reported pathway's contribution to an element's ppm ceiling.
type Row struct {
	Element         string
	Parent          isotope.ID
	Reaction        nucdata.ReactionType
	TerminalIsotope isotope.ID
	LimitBqPerG     float64
	IsoMaxPPM       float64
	SharePct        float64
	FracPct         float64
	LimitingIsotope isotope.ID
	ElemMaxPPM      float64
	// ElementFractionPct and WasteFractionPct report the caller-supplied
	// elem_fraction_map/waste_fraction_map values as percentages. The
	// elemental fraction is reporting metadata only and never enters the
	// ceiling formula (§9 Open Question 1); the waste fraction divides both
	// IsoMaxPPM and ElemMaxPPM.
	ElementFractionPct float64
	WasteFractionPct   float64
}

// Options carries tuning parameters shared with the underlying solver.
type Options struct {
	Depth int
}

// Evaluate computes ppm ceilings for each of elements, grouped by element
// (ascending) with rows sorted by share descending within each group
// (spec §4.8).
func Evaluate(store *nucdata.Store, elements []string, fluxNPerCm2S, tIrrS, tCoolS, wasteMassG, sampleMassG float64, kind nucdata.LimitKind, elemFractions, wasteFractions map[string]float64, opts Options) []Row {
	sorted := append([]string(nil), elements...)
	sort.Strings(sorted)

	var out []Row
	for _, elementSymbol := range sorted {
		out = append(out, evaluateElement(store, elementSymbol, fluxNPerCm2S, tIrrS, tCoolS, wasteMassG, sampleMassG, kind, fractionOrDefault(elemFractions, elementSymbol), fractionOrDefault(wasteFractions, elementSymbol), opts)...)
	}
	return out
}

func fractionOrDefault(m map[string]float64, key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 1.0
}

type rowCandidate struct {
	parent      isotope.ID
	reaction    nucdata.ReactionType
	terminal    isotope.ID
	limitBqPerG float64
	activity    float64 // Bq per gram of element
	fraction    float64 // F_i = activity / limit
}

func evaluateElement(store *nucdata.Store, elementSymbol string, fluxNPerCm2S, tIrrS, tCoolS, wasteMassG, sampleMassG float64, kind nucdata.LimitKind, fE, fW float64, opts Options) []Row {
	perParentRows := element.Solve(store, elementSymbol, 1.0, fluxNPerCm2S, tIrrS, tCoolS, element.Options{Merge: false, Depth: opts.Depth})

	var candidates []rowCandidate
	var sumF float64
	perTerminalF := make(map[isotope.ID]float64)

	for _, r := range perParentRows {
		limit := store.Limit(r.Isotope, kind)
		if math.IsInf(limit, 1) {
			continue
		}
		f := r.ActivityBq / limit
		candidates = append(candidates, rowCandidate{
			parent:      r.Parent,
			reaction:    r.FirstReaction,
			terminal:    r.Isotope,
			limitBqPerG: limit,
			activity:    r.ActivityBq,
			fraction:    f,
		})
		sumF += f
		perTerminalF[r.Isotope] += f
	}

	if sumF <= inertThreshold {
		return nil
	}

	limitingIsotope := isotope.Unknown()
	var bestF float64
	terminalsInOrder := make([]isotope.ID, 0, len(perTerminalF))
	seen := map[isotope.ID]bool{}
	for _, c := range candidates {
		if !seen[c.terminal] {
			seen[c.terminal] = true
			terminalsInOrder = append(terminalsInOrder, c.terminal)
		}
	}
	for _, t := range terminalsInOrder {
		if perTerminalF[t] > bestF {
			bestF = perTerminalF[t]
			limitingIsotope = t
		}
	}

	elemMaxPPM := 1e6 * wasteMassG / (sampleMassG * fW * sumF)

	rows := make([]Row, 0, len(candidates))
	for _, c := range candidates {
		sharePct := c.fraction / sumF * 100
		if sharePct < minSharePct {
			continue
		}
		rows = append(rows, Row{
			Element:            elementSymbol,
			Parent:             c.parent,
			Reaction:           c.reaction,
			TerminalIsotope:    c.terminal,
			LimitBqPerG:        c.limitBqPerG,
			IsoMaxPPM:          1e6 * wasteMassG / (sampleMassG * fW * c.fraction),
			SharePct:           sharePct,
			FracPct:            c.fraction * 100,
			LimitingIsotope:    limitingIsotope,
			ElemMaxPPM:         elemMaxPPM,
			ElementFractionPct: fE * 100,
			WasteFractionPct:   fW * 100,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SharePct > rows[j].SharePct })
	return rows
}
