package triage

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// errors.go — typed errors for the triage workflow.
//
// The CLI only needs console text and an exit code, but callers embedding
// the workflow (automation, tests) get real error types they can match
// with errors.As.
// ---------------------------------------------------------------------------

// ConfigError reports invalid configuration, detected before any network
// activity.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// TransportError reports a failed grpcurl invocation: non-zero exit, a
// missing binary, or a call that hit its deadline. Stderr carries whatever
// diagnostic text the process produced.
type TransportError struct {
	Method string
	Stderr string
	Err    error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("calling %s: %v", e.Method, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a grpcurl response body that is not well-formed JSON.
type DecodeError struct {
	Method string
	Output string
	Err    error
}

func (e *DecodeError) Error() string {
	out := e.Output
	if len(out) > 200 {
		out = out[:200] + "..."
	}
	return fmt.Sprintf("parsing %s response: %v (body: %s)", e.Method, e.Err, out)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PageLimitError reports a listing that never stopped handing out page
// tokens. The server owns pagination; the cap only guards against a
// misbehaving one.
type PageLimitError struct {
	Pages int
}

func (e *PageLimitError) Error() string {
	return fmt.Sprintf("pagination exceeded %d pages without a final page", e.Pages)
}
