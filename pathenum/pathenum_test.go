package pathenum

import (
	"testing"

	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
)

func buildTestStore(t *testing.T) *nucdata.Store {
	t.Helper()
	activation := []nucdata.ActivationRecord{
		{ParentSymbol: "Co", ParentA: 59, DaughterText: "Co-60", Reaction: nucdata.NGamma, SigmaBarn: 37.2, DaughterLambda: 4.167e-9, ParentAbundance: 1.0},
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

func TestEnumerateIncludesTrivialPath(t *testing.T) {
	store := buildTestStore(t)
	paths := Enumerate(store, isotope.New("Co", 59, ""), 2.2e14, 6)
	if len(paths) == 0 {
		t.Fatal("expected at least the trivial path")
	}
	if len(paths[0].Nodes) != 1 || paths[0].Terminal() != isotope.New("Co", 59, "") {
		t.Errorf("expected first path to be the trivial length-0 path, got %v", paths[0])
	}
}

func TestEnumerateFullChain(t *testing.T) {
	store := buildTestStore(t)
	paths := Enumerate(store, isotope.New("Co", 59, ""), 2.2e14, 6)

	var sawFull bool
	for _, p := range paths {
		if len(p.Nodes) == 3 && p.Terminal() == isotope.New("Ni", 60, "") {
			sawFull = true
			if p.Descriptor() != "Co-59 --(ngamma)--> Co-60 --(decay)--> Ni-60" {
				t.Errorf("unexpected descriptor %q", p.Descriptor())
			}
			if p.FirstActivationSigma() != 37.2 {
				t.Errorf("expected first activation sigma 37.2, got %v", p.FirstActivationSigma())
			}
		}
	}
	if !sawFull {
		t.Fatal("expected a full Co-59 -> Co-60 -> Ni-60 chain")
	}
}

func TestEnumerateZeroFluxDropsActivation(t *testing.T) {
	store := buildTestStore(t)
	paths := Enumerate(store, isotope.New("Co", 59, ""), 0, 6)
	if len(paths) != 1 {
		t.Fatalf("zero flux should yield only the trivial path from a stable-looking start with no decay edges, got %d paths", len(paths))
	}
}

func TestEnumerateDepthCap(t *testing.T) {
	store := buildTestStore(t)
	paths := Enumerate(store, isotope.New("Co", 59, ""), 2.2e14, 1)
	for _, p := range paths {
		if len(p.Nodes) > 2 {
			t.Errorf("depth cap of 1 edge violated: %v", p.Descriptor())
		}
	}
}

func TestEnumerateNoCycles(t *testing.T) {
	// Co-60 decays to Ni-60; Ni-60 has no outgoing edges in this store, so
	// chains cannot revisit Co-60. This test documents the simple-path
	// invariant even though this fixture has no actual cycle to exercise.
	store := buildTestStore(t)
	paths := Enumerate(store, isotope.New("Co", 59, ""), 2.2e14, 6)
	for _, p := range paths {
		seen := map[isotope.ID]bool{}
		for _, n := range p.Nodes {
			if seen[n] {
				t.Fatalf("path %v repeats node %v", p.Descriptor(), n)
			}
			seen[n] = true
		}
	}
}
