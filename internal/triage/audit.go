package triage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// audit.go — optional machine-readable record of completed runs.
//
// The console summary is for the operator; SOC automation that wants to
// know a bulk mutation happened subscribes to the audit subject instead.
// Publishing is best-effort: a publish failure warns and changes nothing
// about the run's counts or exit code.
// ---------------------------------------------------------------------------

// AuditRecord is the shape published per finished run.
type AuditRecord struct {
	RunID      string `json:"run_id"`
	Region     string `json:"region"`
	Action     string `json:"action"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Total      int    `json:"total"`
	Batches    int    `json:"batches"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

// AuditPublisher sends run records to a NATS subject.
type AuditPublisher struct {
	cfg    AuditConfig
	logger zerolog.Logger
}

// NewAuditPublisher builds a publisher. Enabled only when a URL is set.
func NewAuditPublisher(cfg AuditConfig, logger zerolog.Logger) *AuditPublisher {
	return &AuditPublisher{
		cfg:    cfg,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// Enabled reports whether audit publishing is configured.
func (p *AuditPublisher) Enabled() bool { return p.cfg.URL != "" }

// Publish connects, sends one record, and disconnects. The connection is
// short-lived on purpose: one run, one record.
func (p *AuditPublisher) Publish(region string, action Action, result RunResult) error {
	if !p.Enabled() {
		return nil
	}

	record := buildAuditRecord(region, action, result)
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding audit record: %w", err)
	}

	nc, err := nats.Connect(p.cfg.URL,
		nats.Name("cxtriage"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return fmt.Errorf("connecting to audit bus: %w", err)
	}
	defer nc.Close()

	subject := p.cfg.Subject
	if subject == "" {
		subject = DefaultConfig().Audit.Subject
	}
	if err := nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing audit record: %w", err)
	}
	if err := nc.Flush(); err != nil {
		return fmt.Errorf("flushing audit record: %w", err)
	}

	p.logger.Info().
		Str("subject", subject).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("audit record published")
	return nil
}

// buildAuditRecord maps a RunResult to the published shape.
func buildAuditRecord(region string, action Action, result RunResult) AuditRecord {
	return AuditRecord{
		RunID:      result.RunID,
		Region:     region,
		Action:     action.String(),
		Successful: result.Successful,
		Failed:     result.Failed,
		Total:      result.Total(),
		Batches:    len(result.Batches),
		StartedAt:  result.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: result.FinishedAt.UTC().Format(time.RFC3339),
	}
}
