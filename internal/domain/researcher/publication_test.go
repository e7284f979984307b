package researcher

import (
	"strings"
	"testing"
)

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1000/xyz", "10.1000/xyz"},
		{"10.1000/XYZ", "10.1000/xyz"},
		{"  10.1000/xyz  ", "10.1000/xyz"},
		{"https://doi.org/10.1000/xyz", "10.1000/xyz"},
		{"http://doi.org/10.1000/xyz", "10.1000/xyz"},
		{"https://dx.doi.org/10.1000/xyz", "10.1000/xyz"},
		{"http://dx.doi.org/10.1000/xyz", "10.1000/xyz"},
		{"doi:10.1000/xyz", "10.1000/xyz"},
		{"DOI:10.1000/XYZ", "10.1000/xyz"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := NormalizeDOI(tc.in); got != tc.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateAbstract(t *testing.T) {
	short := "a short abstract"
	if got := TruncateAbstract(short); got != short {
		t.Errorf("short abstract changed: %q", got)
	}

	long := strings.Repeat("y", MaxAbstractRunes+100)
	got := TruncateAbstract(long)
	if len([]rune(got)) != MaxAbstractRunes {
		t.Errorf("truncated length = %d, want %d", len([]rune(got)), MaxAbstractRunes)
	}
}

func TestTruncateAbstract_RuneBoundary(t *testing.T) {
	// Multi-byte runes must not be split mid-sequence.
	long := strings.Repeat("é", MaxAbstractRunes+10)
	got := TruncateAbstract(long)
	if len([]rune(got)) != MaxAbstractRunes {
		t.Errorf("truncated rune length = %d, want %d", len([]rune(got)), MaxAbstractRunes)
	}
	if !strings.HasSuffix(got, "é") {
		t.Error("truncation split a rune")
	}
}

func TestPublicationNormalize(t *testing.T) {
	p := Publication{
		Title:    "A Work",
		DOI:      "https://doi.org/10.1/ABC",
		Abstract: strings.Repeat("z", MaxAbstractRunes+1),
	}

	got := p.Normalize()

	if got.DOI != "10.1/abc" {
		t.Errorf("DOI = %q", got.DOI)
	}
	if len([]rune(got.Abstract)) != MaxAbstractRunes {
		t.Errorf("abstract length = %d", len([]rune(got.Abstract)))
	}
	if p.DOI != "https://doi.org/10.1/ABC" {
		t.Error("Normalize mutated the receiver")
	}
}
