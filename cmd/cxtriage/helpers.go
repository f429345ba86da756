package main

// ---------------------------------------------------------------------------
// helpers.go — TTY detection, color, error helpers, env-based config
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// TTY / color helpers
// ---------------------------------------------------------------------------

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY(os.Stderr)
}

func ansi(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return code + s + "\033[0m"
}

func red(s string) string    { return ansi("\033[91m", s) }
func yellow(s string) string { return ansi("\033[93m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func cyan(s string) string   { return ansi("\033[36m", s) }
func dim(s string) string    { return ansi("\033[90m", s) }
func bold(s string) string   { return ansi("\033[1m", s) }

// ---------------------------------------------------------------------------
// Error / warn helpers (always to stderr)
// ---------------------------------------------------------------------------

func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, red("error: ")+format+"\n", args...)
	os.Exit(1)
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, yellow("warn: ")+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Env-based configuration
//
// Precedence everywhere is flag > environment > config file > default.
//
// Environment variables:
//   CXTRIAGE_CONFIG     — config file path
//   CXTRIAGE_REGION     — Coralogix region (us1, us2, eu1, eu2, ap1, ap2, ap3)
//   CXTRIAGE_API_KEY    — Coralogix API key (Alerts, Rules and Tags key)
//   CXTRIAGE_ACTION     — default action when invoked with no command
//   CXTRIAGE_BATCH_SIZE — incident IDs per mutating call
// ---------------------------------------------------------------------------

// envConfig returns the config path, preferring flag > env.
func envConfig(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv("CXTRIAGE_CONFIG")
}

// envRegion returns the region, preferring flag > env.
func envRegion(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv("CXTRIAGE_REGION")
}

// envAPIKey returns the API key, preferring flag > env.
func envAPIKey(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv("CXTRIAGE_API_KEY")
}

// envBatchSize returns the batch size, preferring flag > env.
func envBatchSize(flagVal int) int {
	if flagVal != 0 {
		return flagVal
	}
	if e := os.Getenv("CXTRIAGE_BATCH_SIZE"); e != "" {
		if n, err := strconv.Atoi(e); err == nil {
			return n
		}
	}
	return 0
}

// envAction returns the default action name from the environment, or "".
func envAction() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("CXTRIAGE_ACTION")))
}

// firstOf returns the first non-empty string.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Suggest — typo correction for unknown commands
// ---------------------------------------------------------------------------

func suggest(input string) string {
	cmds := []string{"ack", "acknowledge", "resolve", "summary", "list",
		"regions", "doctor", "config", "version", "help"}
	input = strings.ToLower(input)
	for _, c := range cmds {
		if strings.HasPrefix(c, input) || strings.HasPrefix(input, c) {
			return c
		}
	}
	for _, c := range cmds {
		if len(c) == len(input) {
			diff := 0
			for i := range c {
				if c[i] != input[i] {
					diff++
				}
			}
			if diff <= 1 {
				return c
			}
		}
	}
	return ""
}
