package main

// ---------------------------------------------------------------------------
// cmd_list.go — read-only incident listing
//
// Fetches incidents and prints them without mutating anything. Useful to
// size up a run before committing to an ack or resolve, or to feed an
// external pipeline via --format json / csv.
//
// Usage:
//   cxtriage list [--all] [--window 24] [--format table|json|csv] [--output FILE]
// ---------------------------------------------------------------------------

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/cxtriage-project/cxtriage/internal/triage"
)

// listRow is the JSON shape for --format json.
type listRow struct {
	ID        string `json:"id"`
	Alert     string `json:"alert"`
	Severity  string `json:"severity,omitempty"`
	State     string `json:"state"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var tf triageFlags
	registerTriageFlags(fs, &tf)
	all := fs.Bool("all", false, "Include non-triggered incidents")
	windowHours := fs.Int("window", 0, "Recency window in hours (0 = no window)")
	format := fs.String("format", "table", "Output format: table, json, csv")
	jsonOut := fs.Bool("json", false, "Shorthand for --format json")
	output := fs.String("output", "", "Write to file instead of stdout")
	fs.Parse(args)

	env := buildRunEnv(tf)

	incidents, err := env.client.ListAll(context.Background())
	if err != nil {
		errorf("failed to list incidents: %v", err)
	}

	selected := incidents
	if !*all {
		criteria := triage.Criteria{State: triage.StateTriggered}
		if *windowHours > 0 {
			criteria.Window = time.Duration(*windowHours) * time.Hour
		}
		selected = triage.Select(incidents, criteria, time.Now(), env.cfg.NewLogger())
	}

	f := parseFormat(*format)
	if *jsonOut {
		f = FormatJSON
	}

	w, closeFn := outputWriter(*output)
	defer closeFn()

	switch f {
	case FormatJSON:
		rows := make([]listRow, 0, len(selected))
		for _, in := range selected {
			rows = append(rows, listRow{
				ID:        in.ID,
				Alert:     in.AlertName(),
				Severity:  in.Severity,
				State:     in.State,
				Status:    in.Status,
				CreatedAt: in.CreatedAt,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			errorf("failed to encode incidents: %v", err)
		}
	case FormatCSV:
		headers := []string{"id", "alert", "severity", "state", "status", "created_at"}
		rows := make([][]string, 0, len(selected))
		for _, in := range selected {
			rows = append(rows, []string{in.ID, in.AlertName(), in.Severity, in.State, in.Status, in.CreatedAt})
		}
		writeCSV(w, headers, rows)
	default:
		if len(selected) == 0 {
			fmt.Fprintln(w, "No incidents found.")
			return
		}
		t := NewTable(w, "ID", "ALERT", "SEVERITY", "STATE", "STATUS", "CREATED")
		for _, in := range selected {
			t.AddRow(in.ID, in.AlertName(), in.Severity, in.State, in.Status, in.CreatedAt)
		}
		t.Render()
		fmt.Fprintf(w, "\n%d incidents\n", len(selected))
	}
}
