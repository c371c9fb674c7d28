/*
Package isotope provides canonical identity and string parsing for
nuclides, used throughout the activation engine as the universal key into
the nuclear data store.

A nuclide is identified by a (Symbol, A, Meta) triple. The canonical
textual form is "<Symbol>-<A><Meta>", e.g. "Lu-177" or "Tc-99m". Symbol is
Title-cased (first letter upper, rest lower); Meta is empty for the ground
state or a short marker such as "m", "m1", "m2" for a metastable isomer.
*/
package isotope

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ID is the canonical identity of a nuclide. The zero value is not a valid
// isotope; use Unknown() or check Valid().
type ID struct {
	Symbol string
	A      int
	Meta   string
}

// Unknown returns the sentinel identity used when a string fails to parse.
// It is never equal to any valid ID.
func Unknown() ID {
	return ID{}
}

// Valid reports whether id carries a usable identity.
func (id ID) Valid() bool {
	return id.Symbol != "" && id.A > 0
}

// String returns the canonical textual id, e.g. "Lu-177" or "Tc-99m".
func (id ID) String() string {
	if !id.Valid() {
		return ""
	}
	return fmt.Sprintf("%s-%d%s", id.Symbol, id.A, id.Meta)
}

// Equal reports whether two identities denote the same nuclide.
func (id ID) Equal(other ID) bool {
	return id.Symbol == other.Symbol && id.A == other.A && id.Meta == other.Meta
}

var (
	// Symbol-A[meta], separators "-" and "_" optional: "Lu-177", "Lu177", "Tc_99m", "Tc-99m1"
	symbolFirst = regexp.MustCompile(`^([A-Za-z]+)[-_]?(\d+)(m\d*)?$`)
	// A[m]Symbol: "177Lu", "99mTc", "99m1Tc"
	numberFirst = regexp.MustCompile(`^(\d+)(m\d*)?[-_]?([A-Za-z]+)$`)
)

// Parse converts free-form text into a canonical ID. It accepts both
// "Symbol-A[meta]" and "A[m]Symbol" forms. Whitespace is trimmed,
// separators "-" and "_" are optional, and letter case is normalised.
// Unrecognised text returns Unknown() and a non-nil error; callers must
// never treat Unknown() as a silent match.
func Parse(text string) (ID, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Unknown(), fmt.Errorf("isotope: empty identifier")
	}

	if m := symbolFirst.FindStringSubmatch(trimmed); m != nil {
		a, err := strconv.Atoi(m[2])
		if err != nil || a <= 0 {
			return Unknown(), fmt.Errorf("isotope: invalid mass number in %q", text)
		}
		return ID{Symbol: titleCase(m[1]), A: a, Meta: strings.ToLower(m[3])}, nil
	}

	if m := numberFirst.FindStringSubmatch(trimmed); m != nil {
		a, err := strconv.Atoi(m[1])
		if err != nil || a <= 0 {
			return Unknown(), fmt.Errorf("isotope: invalid mass number in %q", text)
		}
		return ID{Symbol: titleCase(m[3]), A: a, Meta: strings.ToLower(m[2])}, nil
	}

	return Unknown(), fmt.Errorf("isotope: unrecognised identifier %q", text)
}

// MustParse is a test/construction convenience that panics on a parse
// failure. Not used on any path that handles external input.
func MustParse(text string) ID {
	id, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return id
}

// New builds a canonical ID directly from its parts, normalising case.
func New(symbol string, a int, meta string) ID {
	return ID{Symbol: titleCase(symbol), A: a, Meta: strings.ToLower(meta)}
}

func titleCase(symbol string) string {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return symbol
	}
	return strings.ToUpper(symbol[:1]) + symbol[1:]
}
