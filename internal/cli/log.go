// Package cli implements the lingraph command-line interface.
//
// This package provides commands for running the individual analysis
// stages on text, building and inspecting binary graph files, rendering
// graphs through Graphviz, and serving the HTTP API. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - tokenize, segment, analyze: Run one analysis stage on text
//   - build: Run the full pipeline and write a binary graph file
//   - inspect: Summarize or browse a binary graph file
//   - render: Generate DOT, SVG, or PNG visualizations
//   - serve: Start the HTTP API server
//   - cache: Manage the graph blob cache
//   - lexicon: Look up surface forms in a dictionary
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Status
// output goes to the logger on stderr; data output goes to stdout or
// the file named by --output, so results pipe cleanly.
//
// # Example
//
//	import "github.com/lingraph/lingraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Built graph with 42 nodes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
