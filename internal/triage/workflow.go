package triage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// workflow.go — the one triage workflow behind every mutating command.
//
// Linear state machine:
//   list → filter → (empty? done) → preview → confirm → (declined? done)
//   → batch loop → result
//
// A listing failure aborts the run; a batch failure only counts. The same
// workflow serves ack, resolve, and the grouped summary run — the action
// and criteria are parameters, not separate implementations.
// ---------------------------------------------------------------------------

// previewLimit caps how many incidents the ungrouped preview renders.
const previewLimit = 10

// RunSpec parameterizes one workflow run.
type RunSpec struct {
	Action    Action
	Criteria  Criteria
	BatchSize int
	// Grouped renders the preview as one block per alert name instead of
	// one line per incident.
	Grouped bool
	// DryRun stops after the preview without prompting or mutating.
	DryRun bool
}

// Workflow wires the collaborators for one run. Out receives operator-facing
// text (previews, cancellation notices); diagnostics go to the logger.
type Workflow struct {
	Client   *Client
	Mutator  *Mutator
	Prompter Prompter
	Out      io.Writer
	Logger   zerolog.Logger
}

// Run executes the workflow. The returned error is non-nil only for
// run-aborting failures (listing phase); batch failures are reported in
// the RunResult counts.
func (w *Workflow) Run(ctx context.Context, spec RunSpec) (RunResult, error) {
	runID := uuid.New().String()
	logger := w.Logger.With().
		Str("component", "workflow").
		Str("run_id", runID).
		Str("action", spec.Action.String()).
		Logger()

	logger.Info().Msg("fetching incidents")
	all, err := w.Client.ListAll(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to list incidents: %w", err)
	}

	selected := Select(all, spec.Criteria, time.Now(), logger)
	logger.Info().
		Int("fetched", len(all)).
		Int("selected", len(selected)).
		Msg("filtered incidents")

	if len(selected) == 0 {
		fmt.Fprintf(w.Out, "No incidents to %s!\n", spec.Action)
		return RunResult{RunID: runID}, nil
	}

	if spec.Grouped {
		w.renderGroupedPreview(selected)
	} else {
		w.renderPreview(selected)
	}

	if spec.DryRun {
		fmt.Fprintf(w.Out, "\nDry run — would %s %d incidents.\n", spec.Action, len(selected))
		return RunResult{RunID: runID}, nil
	}

	prompt := fmt.Sprintf("\nDo you want to %s all %d incidents? (yes/no): ", spec.Action, len(selected))
	confirmed, err := w.Prompter.Confirm(prompt)
	if err != nil {
		return RunResult{}, fmt.Errorf("reading confirmation: %w", err)
	}
	if !confirmed {
		fmt.Fprintln(w.Out, "Operation cancelled by user.")
		logger.Info().Msg("operator declined")
		return RunResult{RunID: runID}, nil
	}

	ids := make([]string, 0, len(selected))
	for _, in := range selected {
		if in.ID != "" {
			ids = append(ids, in.ID)
		}
	}

	fmt.Fprintf(w.Out, "\n%s %d incidents...\n", titleVerb(spec.Action), len(ids))
	result := w.Mutator.Apply(ctx, spec.Action, ids, spec.BatchSize)
	result.RunID = runID

	logger.Info().
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("run finished")
	return result, nil
}

// renderPreview prints the first previewLimit incidents, one block each.
func (w *Workflow) renderPreview(selected []Incident) {
	shown := len(selected)
	if shown > previewLimit {
		shown = previewLimit
	}

	fmt.Fprintf(w.Out, "Found %d incidents\n", len(selected))
	fmt.Fprintf(w.Out, "\nShowing first %d incidents:\n", shown)
	for i, in := range selected[:shown] {
		fmt.Fprintf(w.Out, "\n[%d] Incident Details:\n", i+1)
		fmt.Fprintf(w.Out, "  ID: %s\n", in.ID)
		fmt.Fprintf(w.Out, "  Alert Name: %s\n", in.AlertName())
		fmt.Fprintf(w.Out, "  Created: %s\n", in.CreatedAt)
		fmt.Fprintf(w.Out, "  State: %s\n", in.State)
	}
	if len(selected) > previewLimit {
		fmt.Fprintf(w.Out, "\n... and %d more incidents\n", len(selected)-previewLimit)
	}
}

// renderGroupedPreview prints one block per alert name, in sorted order.
func (w *Workflow) renderGroupedPreview(selected []Incident) {
	groups := GroupByAlert(selected)

	fmt.Fprintf(w.Out, "Found %d incidents from %d unique alerts:\n\n", len(selected), len(groups))
	for i, group := range groups {
		first := group.Incidents[0]
		severity := first.Severity
		if severity == "" {
			severity = "Unknown"
		}
		latest := latestCreatedAt(group.Incidents)

		fmt.Fprintf(w.Out, "[%d] %s\n", i+1, group.Name)
		fmt.Fprintf(w.Out, "    Severity: %s\n", severity)
		fmt.Fprintf(w.Out, "    Incidents: %d\n", len(group.Incidents))
		fmt.Fprintf(w.Out, "    Latest: %s\n\n", latest)
	}
}

// latestCreatedAt returns the most recent parsable createdAt in the group,
// falling back to the first incident's raw string.
func latestCreatedAt(incidents []Incident) string {
	latest := incidents[0].CreatedAt
	var latestTime time.Time
	for _, in := range incidents {
		if t, ok := in.CreatedTime(); ok && t.After(latestTime) {
			latestTime = t
			latest = in.CreatedAt
		}
	}
	if latest == "" {
		return "Unknown"
	}
	return latest
}

// titleVerb capitalizes the action's progressive form for the batch banner.
func titleVerb(a Action) string {
	if a == ActionResolve {
		return "Resolving"
	}
	return "Acknowledging"
}
