package solve

import (
	"math"
	"testing"

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
	store, err := nucdata.BuildStore(activation, decay, nil, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	return store
}

func TestSolveCo59ProducesCo60(t *testing.T) {
	store := coTestStore(t)
	flux := 2.2e14
	results := Solve(store, isotope.New("Co", 59, ""), 1.0, flux, 14*units.SecondsPerDay, 0, Options{})

	var co60 *Result
	for i := range results {
		if results[i].Isotope == isotope.New("Co", 60, "") {
			co60 = &results[i]
		}
	}
	if co60 == nil {
		t.Fatalf("expected Co-60 in results, got %v", results)
	}
	if co60.ActivityBq <= 0 {
		t.Errorf("expected positive activity, got %v", co60.ActivityBq)
	}
	if co60.FirstXSBarn != 37.2 {
		t.Errorf("expected first edge sigma 37.2, got %v", co60.FirstXSBarn)
	}
	if co60.Contribution != Direct {
		t.Errorf("Co-60 should be a Direct activation product, got %v", co60.Contribution)
	}
}

func TestSolveCoolingDecaysTerminal(t *testing.T) {
	store := coTestStore(t)
	flux := 2.2e14
	lambdaCo60 := store.Lambda(isotope.New("Co", 60, ""))

	noCool := Solve(store, isotope.New("Co", 59, ""), 1.0, flux, 30*units.SecondsPerDay, 0, Options{})
	cooled := Solve(store, isotope.New("Co", 59, ""), 1.0, flux, 30*units.SecondsPerDay, 30*units.SecondsPerDay, Options{})

	var before, after *Result
	for i := range noCool {
		if noCool[i].Isotope == isotope.New("Co", 60, "") {
			before = &noCool[i]
		}
	}
	for i := range cooled {
		if cooled[i].Isotope == isotope.New("Co", 60, "") {
			after = &cooled[i]
		}
	}
	if before == nil || after == nil {
		t.Fatalf("expected Co-60 in both result sets")
	}

	wantAtoms := before.Atoms * math.Exp(-lambdaCo60*30*units.SecondsPerDay)
	if math.Abs(after.Atoms-wantAtoms)/wantAtoms > 1e-6 {
		t.Errorf("cooled atoms = %v, want %v", after.Atoms, wantAtoms)
	}
}

func TestSolveZeroFluxEqualsPureDecay(t *testing.T) {
	store := coTestStore(t)
	a := Solve(store, isotope.New("Co", 60, ""), 1.0, 0, 100, 0, Options{})
	b := Solve(store, isotope.New("Co", 60, ""), 1.0, 0, 0, 100, Options{})

	byIso := func(rs []Result) map[isotope.ID]float64 {
		m := map[isotope.ID]float64{}
		for _, r := range rs {
			m[r.Isotope] += r.ActivityBq
		}
		return m
	}
	am, bm := byIso(a), byIso(b)
	if len(am) != len(bm) {
		t.Fatalf("result sets differ in size: %v vs %v", am, bm)
	}
	for k, v := range am {
		if math.Abs(v-bm[k])/v > 1e-9 {
			t.Errorf("activity for %v differs: %v vs %v", k, v, bm[k])
		}
	}
}

func TestSolveUnknownStartReturnsEmpty(t *testing.T) {
	store := coTestStore(t)
	results := Solve(store, isotope.Unknown(), 1.0, 1e14, 100, 0, Options{})
	if results != nil {
		t.Errorf("expected nil results for an unknown start isotope, got %v", results)
	}
}
