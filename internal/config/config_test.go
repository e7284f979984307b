package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8000},
		Index: IndexConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			Model: "text-embedding-3-small",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BadPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d: expected error", port)
		}
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Index.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing index.addrs")
	}
}

func TestValidate_MissingModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding.model")
	}
}

func TestValidate_IncompleteSource(t *testing.T) {
	cfg := validConfig()
	cfg.Ingest.Sources = []SourceConfig{{Name: "openalex"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for source without path")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Index.KeyPrefix != "iris:researcher:" {
		t.Errorf("KeyPrefix = %q", cfg.Index.KeyPrefix)
	}
	if cfg.Index.HNSWM != 32 || cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("HNSW defaults = %d, %d", cfg.Index.HNSWM, cfg.Index.HNSWEFConstruct)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("Dimensions = %d", cfg.Embedding.Dimensions)
	}
	if cfg.Corpus.SnapshotPath != "data/corpus.json" {
		t.Errorf("SnapshotPath = %q", cfg.Corpus.SnapshotPath)
	}
	if cfg.Ingest.EmbedWorkers != 4 {
		t.Errorf("EmbedWorkers = %d", cfg.Ingest.EmbedWorkers)
	}
}

func TestApplyDefaults_KeywordsNormalized(t *testing.T) {
	cfg := validConfig()
	cfg.Ingest.InstitutionKeywords = []string{" Kennesaw ", "KSU"}
	cfg.ApplyDefaults()

	if cfg.Ingest.InstitutionKeywords[0] != "kennesaw" {
		t.Errorf("keyword[0] = %q", cfg.Ingest.InstitutionKeywords[0])
	}
	if cfg.Ingest.InstitutionKeywords[1] != "ksu" {
		t.Errorf("keyword[1] = %q", cfg.Ingest.InstitutionKeywords[1])
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.ReadTimeoutSec = 30
	cfg.Index.KeyPrefix = "other:"
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("ReadTimeoutSec = %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Index.KeyPrefix != "other:" {
		t.Errorf("KeyPrefix = %q", cfg.Index.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("IRIS_TEST_VAR", "resolved")

	got := string(expandEnvVars([]byte("a: ${IRIS_TEST_VAR}\nb: ${IRIS_UNSET_VAR:-fallback}\nc: ${IRIS_UNSET_VAR}")))
	want := "a: resolved\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestExpandEnvVars_SetVarBeatsDefault(t *testing.T) {
	t.Setenv("IRIS_TEST_VAR", "resolved")

	got := string(expandEnvVars([]byte("${IRIS_TEST_VAR:-fallback}")))
	if got != "resolved" {
		t.Errorf("expandEnvVars = %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("GetEnv() = %q, want local", env)
	}

	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("GetEnv() = %q, want prod", env)
	}
}
