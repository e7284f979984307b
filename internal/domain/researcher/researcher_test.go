package researcher

import "testing"

func TestHasSource(t *testing.T) {
	r := Record{Provenance: []string{"openalex", "orcid"}}
	if !r.HasSource("openalex") {
		t.Error("HasSource(openalex) = false")
	}
	if r.HasSource("semantic_scholar") {
		t.Error("HasSource(semantic_scholar) = true")
	}
	if (&Record{}).HasSource("openalex") {
		t.Error("empty record claims a source")
	}
}

func TestEmbeddingText(t *testing.T) {
	r := Record{
		Name:        "Jane Smith",
		Field:       "Computer Science",
		Subfield:    "Machine Learning",
		Interests:   []string{"graphs", "optimization"},
		Institution: "Kennesaw State University",
	}

	want := "Jane Smith Computer Science Machine Learning graphs optimization Kennesaw State University"
	if got := r.EmbeddingText(); got != want {
		t.Errorf("EmbeddingText() = %q, want %q", got, want)
	}
}

func TestEmbeddingText_SkipsEmptyParts(t *testing.T) {
	r := Record{Name: "Jane Smith"}
	if got := r.EmbeddingText(); got != "Jane Smith" {
		t.Errorf("EmbeddingText() = %q", got)
	}
}

func TestPublicationCount(t *testing.T) {
	r := Record{Publications: []Publication{{Title: "a"}, {Title: "b"}}}
	if r.PublicationCount() != 2 {
		t.Errorf("PublicationCount() = %d", r.PublicationCount())
	}
}
