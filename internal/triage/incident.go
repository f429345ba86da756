package triage

import (
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// incident.go — the Coralogix incident record as this tool sees it.
//
// Incidents are owned by the remote service. We decode only the fields the
// workflow reads and ignore everything else; missing fields decode to zero
// values rather than erroring.
// ---------------------------------------------------------------------------

// Incident state and status sentinels used by the IncidentsService.
// State is the open/closed lifecycle axis; status is the acknowledgment
// axis — an open incident can be acknowledged without being resolved.
const (
	StateTriggered  = "INCIDENT_STATE_TRIGGERED"
	StatusTriggered = "INCIDENT_STATUS_TRIGGERED"
)

// UnknownAlertName is used when an incident carries no alert_name label.
const UnknownAlertName = "Unknown"

// Incident is one remote incident record. CreatedAt stays a string: the
// service emits ISO-8601 and we only parse it when a recency filter needs
// the value.
type Incident struct {
	ID        string
	State     string
	Status    string
	CreatedAt string
	Severity  string
	Labels    map[string]string
}

// AlertName returns the alert_name contextual label, or UnknownAlertName.
func (in Incident) AlertName() string {
	if name, ok := in.Labels["alert_name"]; ok && name != "" {
		return name
	}
	return UnknownAlertName
}

// CreatedTime parses CreatedAt, normalizing a trailing Z to an explicit UTC
// offset. The ok result is false for absent or malformed timestamps.
func (in Incident) CreatedTime() (time.Time, bool) {
	raw := strings.TrimSpace(in.CreatedAt)
	if raw == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(raw, "Z") {
		raw = strings.TrimSuffix(raw, "Z") + "+00:00"
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// decodeIncident builds an Incident from one entry of the ListIncidents
// response. Best-effort field lookups only — the wire shape is owned by
// the remote service.
func decodeIncident(raw map[string]interface{}) Incident {
	in := Incident{
		ID:        stringField(raw, "id"),
		State:     stringField(raw, "state"),
		Status:    stringField(raw, "status"),
		CreatedAt: stringField(raw, "createdAt"),
		Severity:  stringField(raw, "severity"),
	}
	if labels, ok := raw["contextualLabels"].(map[string]interface{}); ok {
		in.Labels = make(map[string]string, len(labels))
		for k, v := range labels {
			if s, ok := v.(string); ok {
				in.Labels[k] = s
			}
		}
	}
	return in
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
