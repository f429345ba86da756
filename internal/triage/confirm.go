package triage

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// confirm.go — the human gate in front of bulk mutations.
//
// The prompt is a capability interface so tests (and --yes runs) substitute
// a scripted responder for the blocking console read.
// ---------------------------------------------------------------------------

// Prompter asks the operator a yes/no question before any mutating call.
type Prompter interface {
	Confirm(prompt string) (bool, error)
}

// StdinPrompter reads one line from an input stream, typically os.Stdin.
// Only an exact case-insensitive "yes" or "y" accepts; anything else —
// empty input, EOF, "maybe" — declines without being an error.
type StdinPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm writes the prompt and blocks for one line of input.
func (p *StdinPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.Out, prompt)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		// EOF with no input is a decline, not a failure: a closed stdin
		// must never approve a bulk mutation.
		return false, nil
	}
	return IsAffirmative(line), nil
}

// AutoPrompter approves every prompt. Backs the explicit --yes flag for
// non-interactive runs; never a default.
type AutoPrompter struct {
	Out io.Writer
}

// Confirm prints the prompt with an auto-approval note and returns true.
func (p *AutoPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprintln(p.Out, prompt+"yes (auto-approved)")
	return true, nil
}

// IsAffirmative reports whether a line of operator input means yes.
func IsAffirmative(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	}
	return false
}
