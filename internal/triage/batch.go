package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// batch.go — fixed-size batch dispatch of the two mutating RPCs.
//
// Confirmed incident IDs are chunked contiguously and submitted one chunk
// at a time. A chunk call is treated as atomic: any error fails every ID
// in it, and the run moves on to the next chunk. One bad chunk must never
// abort the run.
// ---------------------------------------------------------------------------

// Action selects which mutating RPC a run performs.
type Action int

const (
	ActionAcknowledge Action = iota
	ActionResolve
)

func (a Action) String() string {
	if a == ActionResolve {
		return "resolve"
	}
	return "acknowledge"
}

// PastTense returns the verb for summary lines ("acknowledged"/"resolved").
func (a Action) PastTense() string {
	if a == ActionResolve {
		return "resolved"
	}
	return "acknowledged"
}

// ParseAction converts a config/CLI action string.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "acknowledge", "ack":
		return ActionAcknowledge, nil
	case "resolve":
		return ActionResolve, nil
	default:
		return 0, &ConfigError{Field: "action", Value: s, Reason: "must be 'acknowledge' or 'resolve'"}
	}
}

// BatchOutcome records one chunk's result for the run report.
type BatchOutcome struct {
	Number int
	Size   int
	Err    error
}

// OK reports whether the chunk succeeded.
func (b BatchOutcome) OK() bool { return b.Err == nil }

// chunkIDs partitions ids into contiguous chunks of at most size. The
// concatenation of the chunks equals ids: no overlap, no reordering.
func chunkIDs(ids []string, size int) [][]string {
	if len(ids) == 0 || size <= 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// Mutator submits confirmed IDs to the remote mutating operations.
type Mutator struct {
	client *Client
	logger zerolog.Logger

	// progress, when set, receives each chunk outcome as it happens so
	// the CLI can stream per-batch lines.
	progress func(outcome BatchOutcome, total int)
}

// NewMutator builds a Mutator over a Client.
func NewMutator(client *Client, logger zerolog.Logger) *Mutator {
	return &Mutator{
		client: client,
		logger: logger.With().Str("component", "mutator").Logger(),
	}
}

// OnProgress registers a callback invoked once per completed chunk.
func (m *Mutator) OnProgress(fn func(outcome BatchOutcome, total int)) {
	m.progress = fn
}

// Apply partitions ids into chunks of at most batchSize and invokes the
// action's RPC per chunk, sequentially. Empty ids short-circuits without
// any call. Chunk errors are accumulated, never fatal.
func (m *Mutator) Apply(ctx context.Context, action Action, ids []string, batchSize int) RunResult {
	result := RunResult{StartedAt: time.Now()}

	if len(ids) == 0 {
		result.FinishedAt = time.Now()
		return result
	}
	if batchSize <= 0 {
		batchSize = DefaultConfig().Batch.Size
	}

	chunks := chunkIDs(ids, batchSize)
	for i, chunk := range chunks {
		var err error
		switch action {
		case ActionResolve:
			err = m.client.Resolve(ctx, chunk)
		default:
			err = m.client.Acknowledge(ctx, chunk)
		}

		outcome := BatchOutcome{Number: i + 1, Size: len(chunk), Err: err}
		result.Batches = append(result.Batches, outcome)

		if err != nil {
			result.Failed += len(chunk)
			m.logger.Error().
				Err(err).
				Int("batch", i+1).
				Int("of", len(chunks)).
				Int("ids", len(chunk)).
				Msgf("failed to %s batch", action)
		} else {
			result.Successful += len(chunk)
			m.logger.Info().
				Int("batch", i+1).
				Int("of", len(chunks)).
				Int("ids", len(chunk)).
				Msgf("%s batch", action.PastTense())
		}

		if m.progress != nil {
			m.progress(outcome, len(chunks))
		}
	}

	result.FinishedAt = time.Now()
	return result
}

// DescribeBatch renders one outcome as a summary line fragment.
func DescribeBatch(action Action, outcome BatchOutcome, total int) string {
	if outcome.OK() {
		return fmt.Sprintf("[Batch %d/%d] %s %d incidents", outcome.Number, total, action.PastTense(), outcome.Size)
	}
	return fmt.Sprintf("[Batch %d/%d] failed to %s %d incidents: %v", outcome.Number, total, action, outcome.Size, outcome.Err)
}
