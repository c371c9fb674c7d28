/*
Package units holds the small set of fixed physical constants the engine
needs to convert between mass, atom count, cross section, and time.
*/
package units

const (
	// Avogadro is Avogadro's number, atoms per mole.
	Avogadro float64 = 6.02214076e23
	// BarnToCm2 converts a cross section from barns to cm^2.
	BarnToCm2 float64 = 1e-24
	// SecondsPerDay converts days to seconds.
	SecondsPerDay float64 = 86400
)
