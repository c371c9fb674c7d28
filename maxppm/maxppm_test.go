package maxppm

import (
	"math"
	"testing"

	"github.com/AbelV22/naa-engine/compliance"
	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
	"github.com/AbelV22/naa-engine/units"
)

func coTestStore(t *testing.T) *nucdata.Store {
	t.Helper()
	activation := []nucdata.ActivationRecord{
		{ParentSymbol: "Co", ParentA: 59, DaughterText: "Co-60", Reaction: nucdata.NGamma, SigmaBarn: 37.2, ParentAbundance: 1.0},
	}
	decay := []nucdata.DecayRecord{
		{ParentText: "Co-60", DaughterText: "Ni-60", Beta: 1.0, ParentLambda: 4.167e-9},
	}
	limits := []nucdata.LimitRecord{
		{IsotopeText: "Co-60", ClearanceBqPerG: 0.1, ExemptionBqPerG: 10},
	}
	store, err := nucdata.BuildStore(activation, decay, limits, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	return store
}

func TestEvaluateInertElementSkipped(t *testing.T) {
	activation := []nucdata.ActivationRecord{
		{ParentSymbol: "Au", ParentA: 197, DaughterText: "Au-198", Reaction: nucdata.NGamma, SigmaBarn: 98.7, ParentAbundance: 1.0},
	}
	store, err := nucdata.BuildStore(activation, nil, nil, nil) // no limits: Au-198 has no regulatory limit
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	rows := Evaluate(store, []string{"Au"}, 2.2e14, 10*units.SecondsPerDay, 0, 35000, 10, nucdata.Clearance, nil, nil, Options{})
	if rows != nil {
		t.Errorf("expected no rows for an element with no limited isotopes, got %v", rows)
	}
}

func TestEvaluateOrderingElementAscendingShareDescending(t *testing.T) {
	store := coTestStore(t)
	rows := Evaluate(store, []string{"Co"}, 2.2e14, 10*units.SecondsPerDay, 0, 35000, 10, nucdata.Clearance, nil, nil, Options{})
	if len(rows) == 0 {
		t.Fatalf("expected at least one row")
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Element > rows[i].Element {
			t.Errorf("rows not ascending by element: %v before %v", rows[i-1].Element, rows[i].Element)
		}
		if rows[i-1].Element == rows[i].Element && rows[i-1].SharePct < rows[i].SharePct {
			t.Errorf("rows not descending by share within element: %v before %v", rows[i-1].SharePct, rows[i].SharePct)
		}
	}
}

func TestEvaluateShareDropThreshold(t *testing.T) {
	store := coTestStore(t)
	rows := Evaluate(store, []string{"Co"}, 2.2e14, 10*units.SecondsPerDay, 0, 35000, 10, nucdata.Clearance, nil, nil, Options{})
	for _, r := range rows {
		if r.SharePct < minSharePct {
			t.Errorf("row with share %v should have been dropped (threshold %v)", r.SharePct, minSharePct)
		}
	}
}

// TestRoundTripWithCompliance checks that feeding an element's ElemMaxPPM
// back into compliance.Evaluate produces a sum index of approximately 1
// (spec §8 property 8).
func TestRoundTripWithCompliance(t *testing.T) {
	store := coTestStore(t)
	flux := 2.2e14
	tIrr := 10 * units.SecondsPerDay
	wasteMassG := 35000.0
	sampleMassG := 10.0

	rows := Evaluate(store, []string{"Co"}, flux, tIrr, 0, wasteMassG, sampleMassG, nucdata.Clearance, nil, nil, Options{})
	if len(rows) == 0 {
		t.Fatalf("expected at least one row to round-trip")
	}
	elemMaxPPM := rows[0].ElemMaxPPM

	report := compliance.Evaluate(store, map[string]float64{"Co": elemMaxPPM}, "", sampleMassG, flux, tIrr, 0, wasteMassG, nucdata.Clearance, compliance.Options{})
	if math.Abs(report.Summary.SumIndex-1) > 1e-6 {
		t.Errorf("round trip sum_index = %v, want ~1", report.Summary.SumIndex)
	}
}

func TestEvaluateLimitingIsotopeSet(t *testing.T) {
	store := coTestStore(t)
	rows := Evaluate(store, []string{"Co"}, 2.2e14, 10*units.SecondsPerDay, 0, 35000, 10, nucdata.Clearance, nil, nil, Options{})
	for _, r := range rows {
		if !r.LimitingIsotope.Valid() {
			t.Errorf("expected a valid limiting isotope, got %v", r.LimitingIsotope)
		}
	}
	if rows[0].LimitingIsotope != isotope.New("Co", 60, "") {
		t.Errorf("expected Co-60 to be the limiting isotope, got %v", rows[0].LimitingIsotope)
	}
}
