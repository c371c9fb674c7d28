/*
Package nucdata holds the Nuclear Data Store (component C2): the immutable,
once-built index of activation reactions, decay links, decay constants,
natural abundances, and regulatory limits that every other engine component
reads from.

A Store is built once from three parsed record sequences and never mutates
afterward; it is safe to share by reference across concurrent solve calls
(spec §5). All other engine structures are produced per call and discarded
when the call returns.
*/
package nucdata

import (
	"fmt"
	"math"

	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/units"
)

// LambdaPresentThreshold is the smallest decay constant the engine treats
// as "present"; below it an isotope is considered stable (spec §3).
const LambdaPresentThreshold = 1e-40

// ActivationEdge is one outgoing activation reaction from a parent isotope.
type ActivationEdge struct {
	Daughter  isotope.ID
	SigmaBarn float64
	Reaction  ReactionType
}

// DecayEdge is one outgoing decay branch from a parent isotope.
type DecayEdge struct {
	Daughter isotope.ID
	Beta     float64
}

// IsotopeAbundance is one natural isotope of an element and its fractional
// abundance.
type IsotopeAbundance struct {
	A     int
	Theta float64
}

type limitEntry struct {
	clearance float64
	exemption float64
}

// DiagFunc is the caller-provided diagnostic sink the store (and its
// collaborators) use to report dropped or conflicting records. The engine
// never logs through a global logger (spec §7); a nil DiagFunc discards
// diagnostics.
type DiagFunc func(format string, args ...interface{})

func (f DiagFunc) emit(format string, args ...interface{}) {
	if f != nil {
		f(format, args...)
	}
}

// Store is the immutable nuclear data index. The zero value is not usable;
// construct with BuildStore.
type Store struct {
	activationOut map[isotope.ID][]ActivationEdge
	decayOut      map[isotope.ID][]DecayEdge
	lambda        map[isotope.ID]float64
	sigmaOut      map[isotope.ID]float64
	abundance     map[string][]IsotopeAbundance
	limits        map[isotope.ID]limitEntry
}

// BuildStore constructs a Store from the three record sequences. It fails
// only when activationRecords is empty, or when every activation record is
// structurally invalid and none survive parsing (spec §4.2, §6). All other
// malformed or missing data is dropped with a diagnostic, never a fatal
// error.
func BuildStore(activationRecords []ActivationRecord, decayRecords []DecayRecord, limitRecords []LimitRecord, diag DiagFunc) (*Store, error) {
	if len(activationRecords) == 0 {
		return nil, &BuildError{Reason: "activation_records is empty"}
	}

	s := &Store{
		activationOut: make(map[isotope.ID][]ActivationEdge),
		decayOut:      make(map[isotope.ID][]DecayEdge),
		lambda:        make(map[isotope.ID]float64),
		sigmaOut:      make(map[isotope.ID]float64),
		abundance:     make(map[string][]IsotopeAbundance),
		limits:        make(map[isotope.ID]limitEntry),
	}

	validActivation := 0
	for i, rec := range activationRecords {
		parent := isotope.New(rec.ParentSymbol, rec.ParentA, "")
		if !parent.Valid() {
			diag.emit("nucdata: activation record %d: invalid parent %q-%d, dropped", i, rec.ParentSymbol, rec.ParentA)
			continue
		}
		daughter, err := isotope.Parse(rec.DaughterText)
		if err != nil {
			diag.emit("nucdata: activation record %d: %v, dropped", i, err)
			continue
		}

		s.activationOut[parent] = append(s.activationOut[parent], ActivationEdge{
			Daughter:  daughter,
			SigmaBarn: rec.SigmaBarn,
			Reaction:  rec.Reaction,
		})
		s.sigmaOut[parent] += rec.SigmaBarn
		validActivation++

		if rec.DaughterLambda > 0 {
			s.setLambda(daughter, rec.DaughterLambda, diag)
		}
		if rec.ParentAbundance > 0 {
			s.setAbundance(parent.Symbol, parent.A, rec.ParentAbundance, diag)
		}
	}
	if validActivation == 0 {
		return nil, &BuildError{Reason: "no activation record parsed to a valid edge"}
	}

	for i, rec := range decayRecords {
		parent, err := isotope.Parse(rec.ParentText)
		if err != nil {
			diag.emit("nucdata: decay record %d: parent %v, dropped", i, err)
			continue
		}
		daughter, err := isotope.Parse(rec.DaughterText)
		if err != nil {
			diag.emit("nucdata: decay record %d: daughter %v, dropped", i, err)
			continue
		}
		if rec.Beta <= 0 {
			diag.emit("nucdata: decay record %d: non-positive branching ratio %v, dropped", i, rec.Beta)
			continue
		}

		s.decayOut[parent] = append(s.decayOut[parent], DecayEdge{Daughter: daughter, Beta: rec.Beta})

		if rec.ParentLambda > 0 {
			s.setLambda(parent, rec.ParentLambda, diag)
		}
		if rec.DaughterLambda > 0 {
			s.setLambda(daughter, rec.DaughterLambda, diag)
		}
	}

	for i, rec := range limitRecords {
		id, err := isotope.Parse(rec.IsotopeText)
		if err != nil {
			diag.emit("nucdata: limit record %d: %v, dropped", i, err)
			continue
		}
		s.limits[id] = limitEntry{clearance: rec.ClearanceBqPerG, exemption: rec.ExemptionBqPerG}
	}

	return s, nil
}

// setLambda records the first non-zero decay constant reading for id;
// conflicting later readings are logged and ignored so that a Store's
// contents are deterministic regardless of record order noise in
// hand-edited source data (spec §9 Open Question 4 discussion applies the
// same spirit here).
func (s *Store) setLambda(id isotope.ID, value float64, diag DiagFunc) {
	if existing, ok := s.lambda[id]; ok {
		if existing != value {
			diag.emit("nucdata: conflicting decay constant for %s: keeping %v, ignoring %v", id, existing, value)
		}
		return
	}
	s.lambda[id] = value
}

func (s *Store) setAbundance(symbol string, a int, theta float64, diag DiagFunc) {
	list := s.abundance[symbol]
	for i, e := range list {
		if e.A == a {
			if e.Theta != theta {
				diag.emit("nucdata: conflicting abundance for %s-%d: keeping %v, ignoring %v", symbol, a, e.Theta, theta)
			}
			_ = i
			return
		}
	}
	s.abundance[symbol] = append(list, IsotopeAbundance{A: a, Theta: theta})
}

// ActivationEdgesFrom returns the activation edges leaving parent, in the
// order they were inserted during BuildStore.
func (s *Store) ActivationEdgesFrom(parent isotope.ID) []ActivationEdge {
	return s.activationOut[parent]
}

// DecayEdgesFrom returns the decay edges leaving parent, in insertion
// order.
func (s *Store) DecayEdgesFrom(parent isotope.ID) []DecayEdge {
	return s.decayOut[parent]
}

// Lambda returns the decay constant of id in 1/s, or 0 if absent.
func (s *Store) Lambda(id isotope.ID) float64 {
	return s.lambda[id]
}

// IsStable reports whether id's decay constant is below
// LambdaPresentThreshold.
func (s *Store) IsStable(id isotope.ID) bool {
	return s.Lambda(id) <= LambdaPresentThreshold
}

// TotalSigmaOut returns the sum, in barns, of every activation cross
// section leaving parent. It feeds the removal-rate formula (spec §3).
func (s *Store) TotalSigmaOut(parent isotope.ID) float64 {
	return s.sigmaOut[parent]
}

// RemovalRate computes mu(iso, flux) = lambda(iso) + flux * sum(sigma) *
// barn-to-cm^2, the total per-atom probability rate of leaving this node
// via decay or further activation (spec §3).
func (s *Store) RemovalRate(id isotope.ID, fluxNPerCm2S float64) float64 {
	return s.Lambda(id) + fluxNPerCm2S*s.TotalSigmaOut(id)*units.BarnToCm2
}

// IsotopesOf returns the natural isotopes of elementSymbol and their
// abundances, in the order first encountered during BuildStore. Elements
// absent from the abundance table return nil, not an error.
func (s *Store) IsotopesOf(elementSymbol string) []IsotopeAbundance {
	symbol := isotope.New(elementSymbol, 1, "").Symbol
	return s.abundance[symbol]
}

// Limit returns the regulatory limit of id for the given kind, in Bq/g, or
// +Inf if no limit was recorded (spec §3: missing -> sentinel no-limit).
func (s *Store) Limit(id isotope.ID, kind LimitKind) float64 {
	entry, ok := s.limits[id]
	if !ok {
		return infLimit
	}
	var v float64
	if kind == Exemption {
		v = entry.exemption
	} else {
		v = entry.clearance
	}
	if v <= 0 {
		return infLimit
	}
	return v
}

var infLimit = math.Inf(1)

// String is a debug aid; Store has no other externally meaningful
// representation.
func (s *Store) String() string {
	return fmt.Sprintf("nucdata.Store{isotopes(activation)=%d, isotopes(decay)=%d, limits=%d}", len(s.activationOut), len(s.decayOut), len(s.limits))
}
