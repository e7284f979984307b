package researcher

import (
	"encoding/json"
	"testing"
)

func TestAffiliationUnmarshal_String(t *testing.T) {
	var a Affiliation
	if err := json.Unmarshal([]byte(`"Kennesaw State University"`), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Display() != "kennesaw state university" {
		t.Errorf("Display() = %q", a.Display())
	}
}

func TestAffiliationUnmarshal_ObjectDisplayName(t *testing.T) {
	var a Affiliation
	if err := json.Unmarshal([]byte(`{"display_name":"Kennesaw State University"}`), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Display() != "kennesaw state university" {
		t.Errorf("Display() = %q", a.Display())
	}
}

func TestAffiliationUnmarshal_ObjectName(t *testing.T) {
	var a Affiliation
	if err := json.Unmarshal([]byte(`{"name":"Georgia Tech"}`), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Display() != "georgia tech" {
		t.Errorf("Display() = %q", a.Display())
	}
}

func TestAffiliationUnmarshal_DisplayNamePreferred(t *testing.T) {
	var a Affiliation
	data := []byte(`{"display_name":"Kennesaw State University","name":"KSU"}`)
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Display() != "kennesaw state university" {
		t.Errorf("Display() = %q", a.Display())
	}
}

func TestAffiliationUnmarshal_UnknownShapesDegrade(t *testing.T) {
	shapes := []string{`42`, `[1,2]`, `null`, `true`}
	for _, raw := range shapes {
		var a Affiliation
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			t.Errorf("shape %s: unexpected error: %v", raw, err)
		}
		if a.Display() != "" {
			t.Errorf("shape %s: Display() = %q, want empty", raw, a.Display())
		}
	}
}

func TestAffiliationUnmarshal_InList(t *testing.T) {
	var affs []Affiliation
	data := []byte(`["Kennesaw State University", {"display_name":"Georgia Tech"}, 42]`)
	if err := json.Unmarshal(data, &affs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(affs) != 3 {
		t.Fatalf("len = %d, want 3", len(affs))
	}
	if affs[0].Display() != "kennesaw state university" {
		t.Errorf("affs[0] = %q", affs[0].Display())
	}
	if affs[1].Display() != "georgia tech" {
		t.Errorf("affs[1] = %q", affs[1].Display())
	}
	if affs[2].Display() != "" {
		t.Errorf("affs[2] = %q, want empty", affs[2].Display())
	}
}
