package triage

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// filter.go — in-process incident selection.
//
// The list endpoint has no server-side filtering we rely on, so selection
// happens here: exact matches on the state and status axes, plus an
// optional recency window. Filtering is a pure function and idempotent.
// ---------------------------------------------------------------------------

// Criteria describes which incidents a run operates on. All predicates are
// applied as a conjunction.
type Criteria struct {
	// State is the required lifecycle state. Empty means StateTriggered.
	State string
	// Status, when set, additionally requires an exact status match.
	// Acknowledge runs set StatusTriggered so already-acknowledged
	// incidents are never re-presented to the operator.
	Status string
	// Window, when positive, keeps only incidents created at or after
	// now minus the window.
	Window time.Duration
}

// normalize fills in the default state.
func (c Criteria) normalize() Criteria {
	if c.State == "" {
		c.State = StateTriggered
	}
	return c
}

// Select returns the incidents matching the criteria, in input order.
// Incidents with unparsable timestamps are dropped from a recency-filtered
// set rather than failing the run; the count of dropped records is logged
// so they do not vanish without a trace.
func Select(incidents []Incident, criteria Criteria, now time.Time, logger zerolog.Logger) []Incident {
	criteria = criteria.normalize()
	cutoff := time.Time{}
	if criteria.Window > 0 {
		cutoff = now.Add(-criteria.Window)
	}

	selected := make([]Incident, 0, len(incidents))
	unparsable := 0
	for _, in := range incidents {
		if in.State != criteria.State {
			continue
		}
		if criteria.Status != "" && in.Status != criteria.Status {
			continue
		}
		if criteria.Window > 0 {
			created, ok := in.CreatedTime()
			if !ok {
				unparsable++
				logger.Debug().
					Str("incident_id", in.ID).
					Str("created_at", in.CreatedAt).
					Msg("skipping incident with unparsable timestamp")
				continue
			}
			if created.Before(cutoff) {
				continue
			}
		}
		selected = append(selected, in)
	}

	if unparsable > 0 {
		logger.Warn().
			Int("count", unparsable).
			Msg("incidents excluded from recency filter due to unparsable timestamps")
	}

	return selected
}

// AlertGroup is one alert name's incidents, for the grouped preview.
type AlertGroup struct {
	Name      string
	Incidents []Incident
}

// GroupByAlert partitions incidents by alert name, returning groups in
// stable sorted name order. Incident order inside a group is preserved.
func GroupByAlert(incidents []Incident) []AlertGroup {
	byName := make(map[string][]Incident)
	for _, in := range incidents {
		name := in.AlertName()
		byName[name] = append(byName[name], in)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]AlertGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, AlertGroup{Name: name, Incidents: byName[name]})
	}
	return groups
}
