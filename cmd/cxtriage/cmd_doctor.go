package main

// ---------------------------------------------------------------------------
// cmd_doctor.go — environment health check with actionable fixes
//
// Verifies everything a successful run needs before any incident is touched:
//   - grpcurl present on PATH
//   - config loads and validates
//   - region resolves to an endpoint
//   - API key configured
//   - optional audit bus reachable settings
//
// Usage:
//   cxtriage doctor [--config path]
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/cxtriage-project/cxtriage/internal/triage"
)

type doctorFinding struct {
	category string
	status   string // "ok", "warn", "error", "info"
	message  string
	fix      string // suggested fix command, empty if none
}

func cmdDoctor(args []string) {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	fs.Parse(args)

	findings := make([]doctorFinding, 0)
	add := func(cat, status, msg, fix string) {
		findings = append(findings, doctorFinding{cat, status, msg, fix})
	}

	fmt.Println()
	fmt.Printf("  %s  cxtriage Doctor\n", bold("🩺"))
	fmt.Printf("  %s\n\n", dim("Pre-flight check for incident triage runs"))

	// --- grpcurl ---
	if path, err := exec.LookPath("grpcurl"); err != nil {
		add("grpcurl", "error", "grpcurl not found in PATH",
			"go install github.com/fullstorydev/grpcurl/cmd/grpcurl@latest")
	} else {
		add("grpcurl", "ok", fmt.Sprintf("grpcurl found at %s", path), "")
	}

	// --- Config ---
	path := envConfig(*configPath)
	cfg, err := triage.LoadConfig(path)
	if err != nil {
		add("config", "error", fmt.Sprintf("Cannot load %s: %v", path, err), "cxtriage config init")
		cfg = triage.DefaultConfig()
	} else if path == "" {
		add("config", "info", "No config file specified, using defaults", "cxtriage config init")
	} else if _, statErr := os.Stat(path); statErr != nil {
		add("config", "warn", fmt.Sprintf("Config file %s does not exist, using defaults", path), "cxtriage config init")
	} else {
		add("config", "ok", fmt.Sprintf("Config loaded from %s", path), "")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			add("config", "error", e.Error(), "")
		}
	} else {
		add("config", "ok", "Config validation passed", "")
	}

	// --- Region ---
	region := envRegion(cfg.API.Region)
	if endpoint, err := triage.RegionEndpoint(region); err != nil {
		add("region", "error", err.Error(), "cxtriage regions")
	} else {
		add("region", "ok", fmt.Sprintf("Region %s → %s", region, endpoint), "")
	}

	// --- API key ---
	if envAPIKey(cfg.API.Key) == "" {
		add("auth", "error", "No API key configured",
			"export CXTRIAGE_API_KEY=<your-alerts-key>")
	} else {
		add("auth", "ok", "API key configured", "")
	}

	// --- Audit bus ---
	if cfg.Audit.URL == "" {
		add("audit", "info", "Audit publishing disabled — runs will not be recorded", "")
	} else if cfg.Audit.Subject == "" {
		add("audit", "warn", "Audit URL set but subject is empty", "")
	} else {
		add("audit", "ok", fmt.Sprintf("Audit runs publish to %s on %s", cfg.Audit.Subject, cfg.Audit.URL), "")
	}

	// --- Render ---
	errors := 0
	warns := 0
	fixes := []doctorFinding{}

	for _, f := range findings {
		var icon string
		switch f.status {
		case "ok":
			icon = green("✓")
		case "warn":
			icon = yellow("!")
			warns++
		case "error":
			icon = red("✗")
			errors++
		case "info":
			icon = cyan("ℹ")
		}
		fmt.Printf("  %s  %-10s %s\n", icon, dim("["+f.category+"]"), f.message)
		if f.fix != "" {
			fixes = append(fixes, f)
		}
	}

	if len(fixes) > 0 {
		fmt.Printf("\n  %s\n\n", bold("Suggested fixes:"))
		for _, f := range fixes {
			fmt.Printf("    %s  %s\n", dim("▸"), bold(f.fix))
			fmt.Printf("       %s\n\n", dim(f.message))
		}
	}

	fmt.Println()
	if errors > 0 {
		fmt.Printf("  %s %d error(s), %d warning(s). Fix errors before running 'cxtriage ack'.\n\n", red("✗"), errors, warns)
		os.Exit(1)
	} else if warns > 0 {
		fmt.Printf("  %s All clear with %d suggestion(s). Ready to run.\n\n", yellow("!"), warns)
	} else {
		fmt.Printf("  %s Everything looks good. Run %s to start.\n\n", green("✓"), bold("cxtriage ack"))
	}
}
