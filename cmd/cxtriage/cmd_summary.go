package main

// ---------------------------------------------------------------------------
// cmd_summary.go — acknowledge a recent window of incidents, grouped by alert
//
// Lists triggered-and-unacknowledged incidents from the last N hours, shows
// them grouped per alert name so the operator sees the shape of the storm
// rather than a flat ID list, and acknowledges them in larger batches.
//
// Usage:
//   cxtriage summary [--window 24] [--batch-size 50] [--yes] [--dry-run]
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"time"

	"github.com/cxtriage-project/cxtriage/internal/triage"
)

func cmdSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	var tf triageFlags
	registerTriageFlags(fs, &tf)
	windowHours := fs.Int("window", 0, "Recency window in hours")
	fs.Parse(args)

	env := buildRunEnv(tf)

	batchSize := envBatchSize(tf.batchSize)
	if batchSize == 0 {
		batchSize = env.cfg.Batch.SummarySize
	}
	if batchSize <= 0 {
		errorf("invalid batch size %d: must be positive", batchSize)
	}

	hours := *windowHours
	if hours == 0 {
		hours = env.cfg.Batch.WindowHours
	}
	if hours <= 0 {
		errorf("invalid window %d: must be positive", hours)
	}

	spec := triage.RunSpec{
		Action: triage.ActionAcknowledge,
		Criteria: triage.Criteria{
			State:  triage.StateTriggered,
			Status: triage.StatusTriggered,
			Window: time.Duration(hours) * time.Hour,
		},
		BatchSize: batchSize,
		Grouped:   true,
		DryRun:    tf.dryRun,
	}

	title := fmt.Sprintf("Coralogix Incident Summary (last %dh)", hours)
	finishRun(env, spec, title)
}
