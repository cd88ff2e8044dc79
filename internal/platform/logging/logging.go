package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// New builds the application logger. Persistence failures and clamped
// durations are logged here; they never interrupt timer state transitions.
func New(verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tempo",
		Level:  level,
		Output: os.Stderr,
	})
}

// Discard is used where a component requires a logger but output is unwanted,
// such as the plugin host and tests.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}
