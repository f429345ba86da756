package triage

import (
	"context"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// client.go — IncidentsService operations over an Invoker.
//
// Three remote methods: ListIncidents (paged), AcknowledgeIncidents and
// ResolveIncidents (bulk mutations). The client follows continuation
// tokens until the server stops handing them out, with a page cap so a
// misbehaving server cannot loop us forever.
// ---------------------------------------------------------------------------

// Remote method names on the IncidentsService.
const (
	methodList        = "ListIncidents"
	methodAcknowledge = "AcknowledgeIncidents"
	methodResolve     = "ResolveIncidents"
)

// Client exposes the IncidentsService operations the workflow needs.
type Client struct {
	invoker  Invoker
	maxPages int
	logger   zerolog.Logger
}

// NewClient wraps an Invoker. maxPages caps pagination; values <= 0 fall
// back to the default config value.
func NewClient(invoker Invoker, maxPages int, logger zerolog.Logger) *Client {
	if maxPages <= 0 {
		maxPages = DefaultConfig().API.MaxPages
	}
	return &Client{
		invoker:  invoker,
		maxPages: maxPages,
		logger:   logger.With().Str("component", "client").Logger(),
	}
}

// ListAll collects every incident across all pages, in server order. The
// page token is opaque: absent or empty means the listing is complete.
func (c *Client) ListAll(ctx context.Context) ([]Incident, error) {
	var all []Incident
	pageToken := ""

	for page := 1; ; page++ {
		if page > c.maxPages {
			return nil, &PageLimitError{Pages: c.maxPages}
		}

		payload := map[string]interface{}{}
		if pageToken != "" {
			payload["page_token"] = pageToken
		}

		resp, err := c.invoker.Call(ctx, methodList, payload)
		if err != nil {
			return nil, err
		}

		items, _ := resp["incidents"].([]interface{})
		for _, item := range items {
			if raw, ok := item.(map[string]interface{}); ok {
				all = append(all, decodeIncident(raw))
			}
		}

		c.logger.Debug().
			Int("page", page).
			Int("page_items", len(items)).
			Int("total", len(all)).
			Msg("listed incidents page")

		pageToken = stringField(resp, "nextPageToken")
		if pageToken == "" {
			return all, nil
		}
	}
}

// Acknowledge marks the given incidents as seen without closing them.
// The response body is ignored; only call success matters.
func (c *Client) Acknowledge(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.invoker.Call(ctx, methodAcknowledge, map[string]interface{}{
		"incident_ids": ids,
	})
	return err
}

// Resolve closes the given incidents. The response body is ignored.
func (c *Client) Resolve(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.invoker.Call(ctx, methodResolve, map[string]interface{}{
		"incident_ids": ids,
	})
	return err
}
