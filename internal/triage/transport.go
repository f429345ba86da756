package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// transport.go — runs IncidentsService calls through the grpcurl binary.
//
// There is no native client for this service; every request is one grpcurl
// invocation carrying the serialized payload, a bearer credential, and a
// message-size bound, and every response is parsed back from its stdout.
// One call, one subprocess, no retries.
// ---------------------------------------------------------------------------

// incidentsService is the fully qualified gRPC service every method lives on.
const incidentsService = "com.coralogixapis.incidents.v1.IncidentsService"

// maxMessageSize bounds response size at 50MB. Full incident listings on a
// busy account run to thousands of records per page.
const maxMessageSize = 52428800

// defaultGrpcurlBinary is the external client resolved from PATH.
const defaultGrpcurlBinary = "grpcurl"

// Invoker executes one remote RPC method with a JSON-serializable payload.
// The production implementation shells out to grpcurl; tests substitute
// scripted fakes.
type Invoker interface {
	Call(ctx context.Context, method string, payload map[string]interface{}) (map[string]interface{}, error)
}

// GrpcurlInvoker is the grpcurl-backed Invoker.
type GrpcurlInvoker struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	binary   string
	logger   zerolog.Logger
}

// NewGrpcurlInvoker builds an invoker for one endpoint and credential.
// Every call is bounded by timeout; expiry surfaces as a TransportError.
func NewGrpcurlInvoker(endpoint, apiKey string, timeout time.Duration, logger zerolog.Logger) *GrpcurlInvoker {
	return &GrpcurlInvoker{
		endpoint: endpoint,
		apiKey:   apiKey,
		timeout:  timeout,
		binary:   defaultGrpcurlBinary,
		logger:   logger.With().Str("component", "transport").Logger(),
	}
}

// Probe verifies the grpcurl binary is reachable before any workflow call.
func (g *GrpcurlInvoker) Probe() error {
	if _, err := exec.LookPath(g.binary); err != nil {
		return &TransportError{
			Method: "probe",
			Stderr: "install grpcurl: https://github.com/fullstorydev/grpcurl/releases",
			Err:    fmt.Errorf("%s not found in PATH", g.binary),
		}
	}
	return nil
}

// Call invokes one IncidentsService method. Non-zero exit becomes a
// TransportError carrying captured stderr; unparsable output becomes a
// DecodeError; empty output returns an empty map.
func (g *GrpcurlInvoker) Call(ctx context.Context, method string, payload map[string]interface{}) (map[string]interface{}, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", method, err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	args := g.buildArgs(method, string(data))
	cmd := exec.CommandContext(ctx, g.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	g.logger.Debug().
		Str("method", method).
		Dur("elapsed", time.Since(start)).
		Bool("ok", runErr == nil).
		Msg("grpcurl call finished")

	if runErr != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			runErr = fmt.Errorf("call timed out after %s: %w", g.timeout, ctxErr)
		}
		return nil, &TransportError{Method: method, Stderr: stderr.String(), Err: runErr}
	}

	return decodeResponse(method, stdout.Bytes())
}

// buildArgs constructs the grpcurl argument list for one method call.
func (g *GrpcurlInvoker) buildArgs(method, payload string) []string {
	return []string{
		"-max-msg-sz", fmt.Sprintf("%d", maxMessageSize),
		"-H", "Authorization: Bearer " + g.apiKey,
		"-d", payload,
		g.endpoint,
		incidentsService + "/" + method,
	}
}

// decodeResponse parses grpcurl stdout as a JSON object. Empty output is a
// legitimate empty response, not an error.
func decodeResponse(method string, out []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(out)) == 0 {
		return map[string]interface{}{}, nil
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, &DecodeError{Method: method, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return resp, nil
}
