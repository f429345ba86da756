package main

// ---------------------------------------------------------------------------
// cmd_config.go — show, validate, or initialize configuration
// ---------------------------------------------------------------------------

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cxtriage-project/cxtriage/internal/triage"
	"gopkg.in/yaml.v3"
)

// defaultConfigPath is where 'config init' writes when no --config is given.
const defaultConfigPath = "cxtriage.yaml"

func cmdConfig(args []string) {
	if len(args) > 0 && args[0] == "init" {
		cmdConfigInit(args[1:])
		return
	}

	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	validate := fs.Bool("validate", false, "Validate config and exit")
	format := fs.String("format", "yaml", "Output format: yaml, json")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	output := fs.String("output", "", "Write output to file")
	fs.Parse(args)

	path := envConfig(*configPath)
	if *jsonOut {
		*format = "json"
	}

	cfg, err := triage.LoadConfig(path)
	if err != nil {
		if *validate {
			fmt.Fprintf(os.Stderr, "%s Config invalid: %v\n", red("✗"), err)
			os.Exit(1)
		}
		errorf("loading config: %v", err)
	}

	if *validate {
		if errs := cfg.Validate(); len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "%s Config has %d issue(s):\n", red("✗"), len(errs))
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  - %v\n", e)
			}
			os.Exit(1)
		}
		source := path
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(os.Stdout, "%s Config valid (%s).\n", green("✓"), source)
		os.Exit(0)
	}

	// Never print the key itself.
	shown := *cfg
	if shown.API.Key != "" {
		shown.API.Key = "<redacted>"
	}

	w, cleanup := outputWriter(*output)
	defer cleanup()

	if parseFormat(*format) == FormatJSON {
		data, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			errorf("marshaling config: %v", err)
		}
		fmt.Fprintln(w, string(data))
		return
	}

	data, err := yaml.Marshal(shown)
	if err != nil {
		errorf("marshaling config: %v", err)
	}
	fmt.Fprint(w, string(data))
}

func cmdConfigInit(args []string) {
	fs := flag.NewFlagSet("config-init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path to create")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	path := *configPath
	if _, err := os.Stat(path); err == nil && !*force {
		errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := triage.SaveConfig(triage.DefaultConfig(), path); err != nil {
		errorf("writing config: %v", err)
	}
	fmt.Printf("%s Wrote default config to %s\n", green("✓"), path)
	fmt.Printf("  Set your API key with: %s\n", bold("export CXTRIAGE_API_KEY=<key>"))
}
