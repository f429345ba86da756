package triage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ─── RegionEndpoint ──────────────────────────────────────────────────────────

func TestRegionEndpoint_Known(t *testing.T) {
	tests := []struct {
		region, want string
	}{
		{"eu1", "ng-api-grpc.eu1.coralogix.com:443"},
		{"us2", "ng-api-grpc.us2.coralogix.com:443"},
		{"ap3", "ng-api-grpc.ap3.coralogix.com:443"},
		{"EU1", "ng-api-grpc.eu1.coralogix.com:443"},
		{" us1 ", "ng-api-grpc.us1.coralogix.com:443"},
	}
	for _, tc := range tests {
		got, err := RegionEndpoint(tc.region)
		if err != nil {
			t.Errorf("RegionEndpoint(%q) error: %v", tc.region, err)
			continue
		}
		if got != tc.want {
			t.Errorf("RegionEndpoint(%q) = %q, want %q", tc.region, got, tc.want)
		}
	}
}

func TestRegionEndpoint_Unknown(t *testing.T) {
	_, err := RegionEndpoint("mars1")
	if err == nil {
		t.Fatal("expected error for unknown region")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Field != "region" {
		t.Errorf("Field = %q, want region", cfgErr.Field)
	}
}

func TestRegionNames_Sorted(t *testing.T) {
	names := RegionNames()
	if len(names) != 7 {
		t.Fatalf("len(names) = %d, want 7", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

// ─── DefaultConfig ───────────────────────────────────────────────────────────

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Region != "eu1" {
		t.Errorf("default Region = %q, want eu1", cfg.API.Region)
	}
	if cfg.API.CallTimeout != 60*time.Second {
		t.Errorf("default CallTimeout = %v, want 60s", cfg.API.CallTimeout)
	}
	if cfg.API.MaxPages != 1000 {
		t.Errorf("default MaxPages = %d, want 1000", cfg.API.MaxPages)
	}
	if cfg.Batch.Size != 10 {
		t.Errorf("default Batch.Size = %d, want 10", cfg.Batch.Size)
	}
	if cfg.Batch.SummarySize != 50 {
		t.Errorf("default Batch.SummarySize = %d, want 50", cfg.Batch.SummarySize)
	}
	if cfg.Batch.WindowHours != 24 {
		t.Errorf("default Batch.WindowHours = %d, want 24", cfg.Batch.WindowHours)
	}
	if cfg.Audit.URL != "" {
		t.Errorf("audit should be disabled by default, URL = %q", cfg.Audit.URL)
	}
	if cfg.Audit.Subject != "cxtriage.runs" {
		t.Errorf("default Audit.Subject = %q", cfg.Audit.Subject)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if errs := DefaultConfig().Validate(); len(errs) != 0 {
		t.Errorf("default config should validate, got %v", errs)
	}
}

// ─── LoadConfig ──────────────────────────────────────────────────────────────

func TestLoadConfig_EmptyPath_ReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error: %v", err)
	}
	if cfg.API.Region != "eu1" {
		t.Errorf("Region = %q, want default eu1", cfg.API.Region)
	}
}

func TestLoadConfig_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Batch.Size != 10 {
		t.Errorf("Batch.Size = %d, want default 10", cfg.Batch.Size)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cxtriage.yaml")
	content := `
api:
  region: us1
  key: test-key
  max_pages: 5
batch:
  size: 20
  summary_size: 100
  window_hours: 48
audit:
  url: nats://127.0.0.1:4222
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.API.Region != "us1" {
		t.Errorf("Region = %q, want us1", cfg.API.Region)
	}
	if cfg.API.Key != "test-key" {
		t.Errorf("Key = %q, want test-key", cfg.API.Key)
	}
	if cfg.API.MaxPages != 5 {
		t.Errorf("MaxPages = %d, want 5", cfg.API.MaxPages)
	}
	if cfg.Batch.Size != 20 || cfg.Batch.SummarySize != 100 || cfg.Batch.WindowHours != 48 {
		t.Errorf("batch config = %+v", cfg.Batch)
	}
	if cfg.Audit.URL != "nats://127.0.0.1:4222" {
		t.Errorf("Audit.URL = %q", cfg.Audit.URL)
	}
	// Subject not set in the file keeps its default
	if cfg.Audit.Subject != "cxtriage.runs" {
		t.Errorf("Audit.Subject = %q, want default", cfg.Audit.Subject)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("api: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadConfig_APIKeyFromEnv(t *testing.T) {
	t.Setenv("CXTRIAGE_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "cxtriage.yaml")
	if err := os.WriteFile(path, []byte("api:\n  region: eu2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.API.Key != "env-key" {
		t.Errorf("Key = %q, want env-key", cfg.API.Key)
	}
}

// ─── SaveConfig ──────────────────────────────────────────────────────────────

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.API.Region = "ap1"
	cfg.Batch.Size = 25

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if loaded.API.Region != "ap1" {
		t.Errorf("Region = %q, want ap1", loaded.API.Region)
	}
	if loaded.Batch.Size != 25 {
		t.Errorf("Batch.Size = %d, want 25", loaded.Batch.Size)
	}
}

// ─── Validate ────────────────────────────────────────────────────────────────

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Region = "nowhere"
	cfg.Batch.Size = 0
	cfg.Batch.SummarySize = -1
	cfg.Batch.WindowHours = 0
	cfg.API.MaxPages = 0

	errs := cfg.Validate()
	if len(errs) != 5 {
		t.Fatalf("len(errs) = %d, want 5: %v", len(errs), errs)
	}
	for _, err := range errs {
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("error type = %T, want *ConfigError", err)
		}
	}
}
