package main

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/cxtriage-project/cxtriage/internal/triage"
)

// ─── suggest ──────────────────────────────────────────────────────────────────

func TestSuggest_PrefixMatch(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"res", "resolve"},
		{"sum", "summary"},
		{"lis", "list"},
		{"reg", "regions"},
		{"doc", "doctor"},
		{"con", "config"},
		{"ver", "version"},
		{"hel", "help"},
	}
	for _, tc := range tests {
		got := suggest(tc.input)
		if got != tc.want {
			t.Errorf("suggest(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSuggest_TypoCorrection(t *testing.T) {
	// Single character difference
	got := suggest("resolvx")
	if got != "resolve" {
		t.Errorf("suggest('resolvx') = %q, want 'resolve'", got)
	}
}

func TestSuggest_NoMatch(t *testing.T) {
	got := suggest("zzzzzzzzz")
	if got != "" {
		t.Errorf("suggest('zzzzzzzzz') = %q, want empty", got)
	}
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	got := suggest("RESOLVE")
	if got != "resolve" {
		t.Errorf("suggest('RESOLVE') = %q, want 'resolve'", got)
	}
}

// ─── env helpers ──────────────────────────────────────────────────────────────

func TestEnvConfig_FlagOverride(t *testing.T) {
	t.Setenv("CXTRIAGE_CONFIG", "/from/env.yaml")
	got := envConfig("/custom/path.yaml")
	if got != "/custom/path.yaml" {
		t.Errorf("envConfig = %q, want /custom/path.yaml", got)
	}
}

func TestEnvConfig_EnvFallback(t *testing.T) {
	t.Setenv("CXTRIAGE_CONFIG", "/from/env.yaml")
	got := envConfig("")
	if got != "/from/env.yaml" {
		t.Errorf("envConfig = %q, want /from/env.yaml", got)
	}
}

func TestEnvRegion_FlagOverride(t *testing.T) {
	t.Setenv("CXTRIAGE_REGION", "us2")
	got := envRegion("eu1")
	if got != "eu1" {
		t.Errorf("envRegion = %q, want eu1", got)
	}
}

func TestEnvRegion_EnvFallback(t *testing.T) {
	t.Setenv("CXTRIAGE_REGION", "us2")
	got := envRegion("")
	if got != "us2" {
		t.Errorf("envRegion = %q, want us2", got)
	}
}

func TestEnvAPIKey_EnvFallback(t *testing.T) {
	t.Setenv("CXTRIAGE_API_KEY", "cx-key")
	got := envAPIKey("")
	if got != "cx-key" {
		t.Errorf("envAPIKey = %q, want cx-key", got)
	}
}

func TestEnvBatchSize_FlagOverride(t *testing.T) {
	t.Setenv("CXTRIAGE_BATCH_SIZE", "50")
	got := envBatchSize(10)
	if got != 10 {
		t.Errorf("envBatchSize = %d, want 10", got)
	}
}

func TestEnvBatchSize_EnvFallback(t *testing.T) {
	t.Setenv("CXTRIAGE_BATCH_SIZE", "50")
	got := envBatchSize(0)
	if got != 50 {
		t.Errorf("envBatchSize = %d, want 50", got)
	}
}

func TestEnvBatchSize_BadEnvIgnored(t *testing.T) {
	t.Setenv("CXTRIAGE_BATCH_SIZE", "lots")
	got := envBatchSize(0)
	if got != 0 {
		t.Errorf("envBatchSize = %d, want 0", got)
	}
}

func TestEnvAction_Normalized(t *testing.T) {
	t.Setenv("CXTRIAGE_ACTION", "  Resolve ")
	got := envAction()
	if got != "resolve" {
		t.Errorf("envAction = %q, want resolve", got)
	}
}

func TestEnvAction_Unset(t *testing.T) {
	t.Setenv("CXTRIAGE_ACTION", "")
	if got := envAction(); got != "" {
		t.Errorf("envAction = %q, want empty", got)
	}
}

// ─── firstOf ──────────────────────────────────────────────────────────────────

func TestFirstOf(t *testing.T) {
	tests := []struct {
		values []string
		want   string
	}{
		{[]string{"a", "b"}, "a"},
		{[]string{"", "b"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", ""}, ""},
		{nil, ""},
	}
	for _, tc := range tests {
		got := firstOf(tc.values...)
		if got != tc.want {
			t.Errorf("firstOf(%v) = %q, want %q", tc.values, got, tc.want)
		}
	}
}

// ─── OutputFormat ─────────────────────────────────────────────────────────────

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"table", FormatTable},
		{"", FormatTable},
		{"unknown", FormatTable},
	}
	for _, tc := range tests {
		got := parseFormat(tc.input)
		if got != tc.want {
			t.Errorf("parseFormat(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		input OutputFormat
		want  string
	}{
		{FormatJSON, "json"},
		{FormatCSV, "csv"},
		{FormatTable, "table"},
	}
	for _, tc := range tests {
		got := formatName(tc.input)
		if got != tc.want {
			t.Errorf("formatName(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// ─── Table ────────────────────────────────────────────────────────────────────

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "REGION", "ENDPOINT")
	tbl.AddRow("eu1", "ng-api-grpc.eu1.coralogix.com:443")
	tbl.AddRow("us2", "ng-api-grpc.us2.coralogix.com:443")
	tbl.Render()

	output := buf.String()
	if !strings.Contains(output, "eu1") {
		t.Error("table should contain 'eu1'")
	}
	if !strings.Contains(output, "ng-api-grpc.us2.coralogix.com:443") {
		t.Error("table should contain the us2 endpoint")
	}
	// Should have box-drawing characters
	if !strings.Contains(output, "┌") {
		t.Error("table should have box-drawing borders")
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)
	tbl.Render()
	if buf.Len() != 0 {
		t.Error("empty headers should produce no output")
	}
}

func TestTable_PadShortRow(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B", "C")
	tbl.AddRow("only_one") // fewer values than headers
	tbl.Render()
	// Should not panic
	if !strings.Contains(buf.String(), "only_one") {
		t.Error("table should contain the short row value")
	}
}

// ─── writeCSV ─────────────────────────────────────────────────────────────────

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	writeCSV(&buf, []string{"id", "alert"}, [][]string{
		{"inc-1", "High CPU"},
		{"inc-2", "Disk Full"},
	})

	r := csv.NewReader(strings.NewReader(buf.String()))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV parse error: %v", err)
	}
	if len(records) != 3 { // header + 2 rows
		t.Errorf("expected 3 records, got %d", len(records))
	}
	if records[1][0] != "inc-1" {
		t.Errorf("first data row = %v", records[1])
	}
}

// ─── Banner ───────────────────────────────────────────────────────────────────

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	output := buf.String()
	if !strings.Contains(output, "cxtriage") {
		t.Error("version output should contain 'cxtriage'")
	}
	if !strings.Contains(output, version) {
		t.Errorf("version output should contain version %q", version)
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()
	if !strings.Contains(output, "COMMANDS") {
		t.Error("usage should contain COMMANDS section")
	}
	if !strings.Contains(output, "resolve") {
		t.Error("usage should list 'resolve' command")
	}
}

func TestCommandHelp_CoversEveryCommand(t *testing.T) {
	for _, name := range []string{"ack", "resolve", "summary", "list", "regions", "doctor", "config", "version"} {
		if _, ok := commandHelp[name]; !ok {
			t.Errorf("no detailed help for %q", name)
		}
	}
}

// ─── actionTitle ──────────────────────────────────────────────────────────────

func TestActionTitle(t *testing.T) {
	if got := actionTitle(triage.ActionAcknowledge); got != "Acknowledgment" {
		t.Errorf("actionTitle(acknowledge) = %q", got)
	}
	if got := actionTitle(triage.ActionResolve); got != "Resolution" {
		t.Errorf("actionTitle(resolve) = %q", got)
	}
}
