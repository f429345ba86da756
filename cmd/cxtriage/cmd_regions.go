package main

// ---------------------------------------------------------------------------
// cmd_regions.go — list the known Coralogix regions and their gRPC endpoints
// ---------------------------------------------------------------------------

import (
	"flag"
	"os"

	"github.com/cxtriage-project/cxtriage/internal/triage"
)

func cmdRegions(args []string) {
	fs := flag.NewFlagSet("regions", flag.ExitOnError)
	fs.Parse(args)

	t := NewTable(os.Stdout, "REGION", "ENDPOINT")
	for _, name := range triage.RegionNames() {
		endpoint, err := triage.RegionEndpoint(name)
		if err != nil {
			continue
		}
		t.AddRow(name, endpoint)
	}
	t.Render()
}
