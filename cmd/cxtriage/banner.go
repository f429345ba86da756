package main

// ---------------------------------------------------------------------------
// banner.go — usage, per-command help, and version printing
// ---------------------------------------------------------------------------

import (
	"fmt"
	"io"
	"os"
	goruntime "runtime"
	"runtime/debug"
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cxtriage v%s", version)
	if commit != "dev" {
		fmt.Fprintf(w, " (%s)", commit[:min(7, len(commit))])
	}
	if buildDate != "unknown" {
		fmt.Fprintf(w, " built %s", buildDate)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(w, " %s", bi.GoVersion)
	}
	fmt.Fprintf(w, " %s/%s", goruntime.GOOS, goruntime.GOARCH)
	fmt.Fprintln(w)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "\n  %s %s\n", bold("cxtriage"), dim("v"+version))
	fmt.Fprintf(w, "  %s\n\n", dim("Bulk triage for Coralogix alerting incidents"))
	fmt.Fprintf(w, "%s\n\n", bold("USAGE"))
	fmt.Fprintf(w, "  cxtriage <command> [flags]\n\n")
	fmt.Fprintf(w, "%s\n\n", bold("COMMANDS"))
	fmt.Fprintf(w, "  %-12s  %s\n", bold("ack"), "Acknowledge all triggered, unacknowledged incidents")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("resolve"), "Resolve all triggered incidents")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("summary"), "Acknowledge recent incidents, grouped by alert name")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("list"), "List incidents without changing anything")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("regions"), "Show known Coralogix regions and endpoints")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("doctor"), "Run pre-flight diagnostics")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("config"), "Show, validate, or initialize configuration")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("version"), "Print version and build info")
	fmt.Fprintf(w, "  %-12s  %s\n", bold("help"), "Show help for a command")
	fmt.Fprintf(w, "\n%s\n\n", bold("GLOBAL FLAGS"))
	fmt.Fprintf(w, "  %-22s  %s\n", "--config <path>", "Config file path (env: CXTRIAGE_CONFIG)")
	fmt.Fprintf(w, "  %-22s  %s\n", "--region <name>", "Coralogix region (env: CXTRIAGE_REGION)")
	fmt.Fprintf(w, "  %-22s  %s\n", "--api-key <key>", "API key (env: CXTRIAGE_API_KEY)")
	fmt.Fprintf(w, "  %-22s  %s\n", "--yes", "Skip the confirmation prompt")
	fmt.Fprintf(w, "  %-22s  %s\n", "--dry-run", "Preview only; make no mutating calls")
	fmt.Fprintf(w, "  %-22s  %s\n", "--version, -V", "Print version and exit")
	fmt.Fprintf(w, "  %-22s  %s\n", "--help, -h", "Show help")
	fmt.Fprintf(w, "\n%s\n\n", bold("ENVIRONMENT VARIABLES"))
	fmt.Fprintf(w, "  %-22s  %s\n", "CXTRIAGE_CONFIG", "Default config file path")
	fmt.Fprintf(w, "  %-22s  %s\n", "CXTRIAGE_REGION", "Default region")
	fmt.Fprintf(w, "  %-22s  %s\n", "CXTRIAGE_API_KEY", "Coralogix API key")
	fmt.Fprintf(w, "  %-22s  %s\n", "CXTRIAGE_ACTION", "Default action when invoked with no command")
	fmt.Fprintf(w, "  %-22s  %s\n", "CXTRIAGE_BATCH_SIZE", "Incident IDs per mutating call")
	fmt.Fprintf(w, "\n%s\n\n", bold("EXAMPLES"))
	fmt.Fprintf(w, "  %s\n", dim("# Acknowledge every triggered incident in eu1"))
	fmt.Fprintf(w, "  cxtriage ack --region eu1\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Resolve without the interactive prompt"))
	fmt.Fprintf(w, "  cxtriage resolve --region us2 --yes\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# See last 24h grouped per alert, then acknowledge"))
	fmt.Fprintf(w, "  cxtriage summary --window 24\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Export the triggered set as JSON"))
	fmt.Fprintf(w, "  cxtriage list --format json --output incidents.json\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Preview what a resolve would touch"))
	fmt.Fprintf(w, "  cxtriage resolve --dry-run\n\n")
	fmt.Fprintf(w, "Run %s for detailed help on any command.\n\n", bold("cxtriage help <command>"))
}

// commandHelp maps a command name to its one-screen help text.
var commandHelp = map[string]string{
	"ack": `Acknowledge all triggered, unacknowledged incidents.

Lists every incident in INCIDENT_STATE_TRIGGERED whose status is still
INCIDENT_STATUS_TRIGGERED, previews the first ten, asks for confirmation,
and acknowledges them in batches.

USAGE
  cxtriage ack [flags]

FLAGS
  --config <path>      Config file path
  --region <name>      Coralogix region (us1, us2, eu1, eu2, ap1, ap2, ap3)
  --api-key <key>      Coralogix API key
  --batch-size <n>     Incident IDs per call (default 10)
  --timeout <dur>      Per-call timeout, e.g. 60s
  --yes                Skip the confirmation prompt
  --dry-run            Preview only; make no mutating calls`,

	"resolve": `Resolve all triggered incidents.

Lists every incident in INCIDENT_STATE_TRIGGERED, previews the first ten,
asks for confirmation, and resolves them in batches.

USAGE
  cxtriage resolve [flags]

FLAGS
  --config <path>      Config file path
  --region <name>      Coralogix region
  --api-key <key>      Coralogix API key
  --batch-size <n>     Incident IDs per call (default 10)
  --timeout <dur>      Per-call timeout, e.g. 60s
  --yes                Skip the confirmation prompt
  --dry-run            Preview only; make no mutating calls`,

	"summary": `Acknowledge recent incidents, grouped by alert name.

Restricts the candidate set to triggered, unacknowledged incidents created
inside the recency window, shows one row per alert name with counts, asks
for confirmation, and acknowledges in larger batches.

USAGE
  cxtriage summary [flags]

FLAGS
  --window <hours>     Recency window in hours (default 24)
  --batch-size <n>     Incident IDs per call (default 50)
  --yes                Skip the confirmation prompt
  --dry-run            Preview only; make no mutating calls`,

	"list": `List incidents without changing anything.

USAGE
  cxtriage list [flags]

FLAGS
  --all                Include non-triggered incidents
  --window <hours>     Restrict to incidents created in the last N hours
  --format <fmt>       Output format: table, json, csv (default table)
  --json               Shorthand for --format json
  --output <file>      Write to file instead of stdout`,

	"regions": `Show known Coralogix regions and their gRPC endpoints.

USAGE
  cxtriage regions`,

	"doctor": `Run pre-flight diagnostics.

Checks grpcurl availability, config validity, region resolution, and API
key presence. Exits 1 if any check fails.

USAGE
  cxtriage doctor [--config path]`,

	"config": `Show, validate, or initialize configuration.

USAGE
  cxtriage config [flags]          Show effective config (key redacted)
  cxtriage config --validate      Validate and exit
  cxtriage config init [--force]  Write a default config file

FLAGS
  --config <path>      Config file path
  --format <fmt>       Output format: yaml, json
  --output <file>      Write to file instead of stdout`,

	"version": `Print version and build info.

USAGE
  cxtriage version`,
}

func cmdHelp(name string) {
	if name == "acknowledge" {
		name = "ack"
	}
	text, ok := commandHelp[name]
	if !ok {
		fmt.Printf("No detailed help for %q.\n\n", name)
		printUsage(os.Stdout)
		return
	}
	fmt.Println()
	fmt.Println(text)
	fmt.Println()
}
