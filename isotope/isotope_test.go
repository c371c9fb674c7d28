package isotope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSymbolFirst(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{"Lu-177", ID{"Lu", 177, ""}},
		{"lu-177", ID{"Lu", 177, ""}},
		{"Tc-99m", ID{"Tc", 99, "m"}},
		{"Tc_99m1", ID{"Tc", 99, "m1"}},
		{"Co59", ID{"Co", 59, ""}},
		{"  Co-60  ", ID{"Co", 60, ""}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", c.in, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseNumberFirst(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{"177Lu", ID{"Lu", 177, ""}},
		{"99mTc", ID{"Tc", 99, "m"}},
		{"60Co", ID{"Co", 60, ""}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", c.in, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "???", "Lu", "177"} {
		got, err := Parse(in)
		if err == nil {
			t.Errorf("Parse(%q) expected error, got %v", in, got)
		}
		if got.Valid() {
			t.Errorf("Parse(%q) returned a valid id %v, want Unknown()", in, got)
		}
	}
}

func TestStringRoundtrip(t *testing.T) {
	for _, in := range []string{"Lu-177", "Tc-99m", "Co-60", "Tc-99m1"} {
		id, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got := id.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}

func TestEqual(t *testing.T) {
	a := New("Co", 60, "")
	b := MustParse("Co-60")
	if !a.Equal(b) {
		t.Errorf("expected %v to equal %v", a, b)
	}
	if a.Equal(New("Co", 60, "m")) {
		t.Errorf("ground state should not equal metastable isomer")
	}
}
