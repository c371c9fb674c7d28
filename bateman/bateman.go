/*
Package bateman implements the Bateman Kernel (component C4): the
closed-form analytic solution for the number of atoms at the terminal node
of a linear decay/activation chain under constant production and removal
rates.

The kernel is pure numeric code with no knowledge of isotopes, flux, or the
data store — it operates on a removal-rate vector and an edge-rate vector
handed to it by the path enumerator (package pathenum) via the two-phase
solver (package solve).
*/
package bateman

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// degeneracyThreshold is how close two removal rates must be before
	// the epsilon-lift kicks in (spec §4.4).
	degeneracyThreshold = 1e-12
	// degeneracyLift is the perturbation applied to the later of two
	// degenerate removal rates.
	degeneracyLift = 1e-13
	// minDenominator is the floor applied to a chain's denominator
	// product to prevent an exponential prefactor from producing Inf.
	minDenominator = 1e-50
	// underflowFloor is the smallest terminal atom count the kernel
	// reports; anything below it is physically meaningless and dropped.
	underflowFloor = 1e-25
	// maxDegeneracyLifts bounds the epsilon-lift retry loop.
	maxDegeneracyLifts = 16
)

// Evaluate computes the Bateman solution for one chain: nodeRates holds the
// removal rate mu_i of each node (length n), edgeRates holds the per-edge
// production rate k_i (length n-1). n0 atoms start at node 0; the result is
// the atom count at the terminal node (index n-1) after time t seconds.
//
// ok is false when the chain's contribution is zero (a zero edge rate, per
// spec's zero-product short-circuit) or below the underflow floor; in
// either case the chain should be dropped by the caller, not reported as a
// zero-activity result.
func Evaluate(nodeRates []float64, edgeRates []float64, t float64, n0 float64) (atoms float64, ok bool) {
	if len(nodeRates) == 0 {
		return 0, false
	}
	for _, k := range edgeRates {
		if k == 0 {
			return 0, false
		}
	}

	mu := liftDegenerate(nodeRates)

	prefactor := 1.0
	if len(edgeRates) > 0 {
		prefactor = floats.Prod(edgeRates)
	}

	n := len(mu)
	terms := make([]float64, n)
	for i := 0; i < n; i++ {
		denom := 1.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			denom *= mu[j] - mu[i]
		}
		if math.Abs(denom) < minDenominator {
			if denom < 0 {
				denom = -minDenominator
			} else {
				denom = minDenominator
			}
		}
		terms[i] = math.Exp(-mu[i]*t) / denom
	}

	result := n0 * prefactor * floats.Sum(terms)

	if math.IsNaN(result) || math.IsInf(result, 0) || result < 0 {
		return 0, false
	}
	if result < underflowFloor {
		return 0, false
	}
	return result, true
}

// liftDegenerate returns a copy of mu where any value within
// degeneracyThreshold of an earlier value has been nudged by
// degeneracyLift, repeated until stable or maxDegeneracyLifts is reached.
// This replaces the exact limiting formula with a numerically harmless
// epsilon-lift (spec §4.4).
func liftDegenerate(mu []float64) []float64 {
	lifted := append([]float64(nil), mu...)
	for i := 1; i < len(lifted); i++ {
		for attempt := 0; attempt < maxDegeneracyLifts; attempt++ {
			collided := false
			for j := 0; j < i; j++ {
				if math.Abs(lifted[i]-lifted[j]) < degeneracyThreshold {
					lifted[i] += degeneracyLift
					collided = true
				}
			}
			if !collided {
				break
			}
		}
	}
	return lifted
}
