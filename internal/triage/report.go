package triage

import "time"

// ---------------------------------------------------------------------------
// report.go — the terminal result of one run.
// ---------------------------------------------------------------------------

// RunResult accumulates per-batch outcomes across one run. It is the only
// output an automated caller gets, so it carries enough to reconstruct
// what happened: counts, per-batch outcomes, and timestamps.
type RunResult struct {
	// RunID correlates the result with the run's log lines and audit record.
	RunID      string
	Successful int
	Failed     int
	Batches    []BatchOutcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// Total returns the number of incident IDs processed.
func (r RunResult) Total() int { return r.Successful + r.Failed }

// ExitCode maps the result to a process exit status: non-zero iff at
// least one chunk failed. "Nothing to do" and "operator declined" are
// clean runs.
func (r RunResult) ExitCode() int {
	if r.Failed > 0 {
		return 1
	}
	return 0
}
