/*
Package pathenum implements the Path Enumerator (component C3): given a
starting isotope, a thermal neutron flux, and a depth cap, it produces every
simple (acyclic) transmutation+decay chain reachable from the start.

The engine sidesteps cycle-bearing matrix-exponential machinery by
enforcing simple paths and a depth cap (spec §9 "Graph without cycles").
Enumeration order is derived deterministically from the nuclear data
store's insertion order, never from map iteration.
*/
package pathenum

import (
	"strings"

	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/nucdata"
	"github.com/AbelV22/naa-engine/units"
)

// step labels one edge traversed in a Path, carried for reporting.
type step struct {
	reaction  nucdata.ReactionType
	sigmaBarn float64
}

// Path is one simple chain from the enumeration start node. Nodes has
// length n; EdgeRates and steps have length n-1; NodeRates has length n.
type Path struct {
	Nodes     []isotope.ID
	EdgeRates []float64
	NodeRates []float64
	steps     []step
}

// Terminal returns the last node of the chain.
func (p Path) Terminal() isotope.ID {
	return p.Nodes[len(p.Nodes)-1]
}

// HasDecayEdge reports whether any edge in the chain is a decay edge.
func (p Path) HasDecayEdge() bool {
	for _, s := range p.steps {
		if s.reaction == nucdata.Decay {
			return true
		}
	}
	return false
}

// FirstActivationSigma returns the cross section, in barns, of the first
// activation edge in the chain, or 0 if the chain contains none (spec
// §4.4 output: "the sigma of the first activation edge, for reporting").
func (p Path) FirstActivationSigma() float64 {
	for _, s := range p.steps {
		if s.reaction != nucdata.Decay {
			return s.sigmaBarn
		}
	}
	return 0
}

// FirstActivationReaction returns the reaction type of the first
// activation edge in the chain, or "" if the chain contains none.
func (p Path) FirstActivationReaction() nucdata.ReactionType {
	for _, s := range p.steps {
		if s.reaction != nucdata.Decay {
			return s.reaction
		}
	}
	return ""
}

// Descriptor renders a compact human-readable path description, e.g.
// "Co-59 --(ngamma)--> Co-60 --(decay)--> Ni-60".
func (p Path) Descriptor() string {
	if len(p.Nodes) == 1 {
		return p.Nodes[0].String()
	}
	var b strings.Builder
	b.WriteString(p.Nodes[0].String())
	for i, s := range p.steps {
		b.WriteString(" --(")
		b.WriteString(string(s.reaction))
		b.WriteString(")--> ")
		b.WriteString(p.Nodes[i+1].String())
	}
	return b.String()
}

// Enumerate produces every simple chain starting at start, up to maxDepth
// edges, under neutron flux fluxNPerCm2S. The trivial length-zero chain
// (start) is always included (spec §4.3).
func Enumerate(store *nucdata.Store, start isotope.ID, fluxNPerCm2S float64, maxDepth int) []Path {
	var paths []Path

	nodes := []isotope.ID{start}
	rates := []float64{store.RemovalRate(start, fluxNPerCm2S)}
	visited := map[isotope.ID]bool{start: true}

	var walk func(edgeRates []float64, steps []step)
	walk = func(edgeRates []float64, steps []step) {
		paths = append(paths, Path{
			Nodes:     append([]isotope.ID(nil), nodes...),
			EdgeRates: append([]float64(nil), edgeRates...),
			NodeRates: append([]float64(nil), rates...),
			steps:     append([]step(nil), steps...),
		})

		if len(nodes)-1 >= maxDepth {
			return
		}
		current := nodes[len(nodes)-1]

		if fluxNPerCm2S > 0 {
			for _, e := range store.ActivationEdgesFrom(current) {
				if visited[e.Daughter] {
					continue
				}
				k := e.SigmaBarn * units.BarnToCm2 * fluxNPerCm2S
				if k <= 0 {
					continue
				}
				descend(store, &nodes, &rates, visited, e.Daughter, fluxNPerCm2S, edgeRates, k, steps, step{reaction: e.Reaction, sigmaBarn: e.SigmaBarn}, walk)
			}
		}

		if store.Lambda(current) > nucdata.LambdaPresentThreshold {
			for _, e := range store.DecayEdgesFrom(current) {
				if visited[e.Daughter] {
					continue
				}
				k := store.Lambda(current) * e.Beta
				if k <= 0 {
					continue
				}
				descend(store, &nodes, &rates, visited, e.Daughter, fluxNPerCm2S, edgeRates, k, steps, step{reaction: nucdata.Decay}, walk)
			}
		}
	}

	walk(nil, nil)
	return paths
}

// descend pushes daughter onto the shared nodes/rates stack, recurses, and
// pops it back off — a standard backtracking DFS over a mutable stack kept
// deterministic by the store's own edge ordering.
func descend(store *nucdata.Store, nodes *[]isotope.ID, rates *[]float64, visited map[isotope.ID]bool, daughter isotope.ID, fluxNPerCm2S float64, edgeRates []float64, k float64, steps []step, s step, walk func([]float64, []step)) {
	*nodes = append(*nodes, daughter)
	*rates = append(*rates, store.RemovalRate(daughter, fluxNPerCm2S))
	visited[daughter] = true

	walk(append(edgeRates, k), append(steps, s))

	visited[daughter] = false
	*nodes = (*nodes)[:len(*nodes)-1]
	*rates = (*rates)[:len(*rates)-1]
}
