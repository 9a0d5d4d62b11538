package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/restsuite/restsuite/packages/runner"
)

// ConsoleReporter renders run events as human-readable colored output.
// It implements framework.Reporter.
type ConsoleReporter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleReporter)

func NewConsoleReporter(opts ...ConsoleOption) *ConsoleReporter {
	r := &ConsoleReporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noColor {
		color.NoColor = true
	}
	return r
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.noColor = nc
	}
}

func (r *ConsoleReporter) SuiteStart(title string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(r.writer, "\n%s\n", bold(title))
}

func (r *ConsoleReporter) TestPassed(title string, d time.Duration) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(r.writer, "  %s %s %s\n", green("✓"), title, cyan(fmt.Sprintf("(%dms)", d.Milliseconds())))
}

func (r *ConsoleReporter) TestFailed(title string, d time.Duration, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(r.writer, "  %s %s %s\n", red("✗"), title, red(fmt.Sprintf("(%v)", err)))
}

func (r *ConsoleReporter) TestPending(title string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(r.writer, "  %s %s\n", yellow("-"), title)
}

func (r *ConsoleReporter) HookFailed(suite string, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(r.writer, "  %s hook in %q failed: %v\n", red("!"), suite, err)
}

// Summary renders the aggregate at the end of a run.
func (r *ConsoleReporter) Summary(agg *runner.AggregateStats) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(r.writer, "\nTests: ")
	if agg.Passes > 0 {
		fmt.Fprintf(r.writer, "%s, ", green(fmt.Sprintf("%d passed", agg.Passes)))
	}
	if agg.Failures > 0 {
		fmt.Fprintf(r.writer, "%s, ", red(fmt.Sprintf("%d failed", agg.Failures)))
	}
	if agg.Pending > 0 {
		fmt.Fprintf(r.writer, "%s, ", yellow(fmt.Sprintf("%d pending", agg.Pending)))
	}
	fmt.Fprintf(r.writer, "%d total\n", agg.Tests)
	fmt.Fprintf(r.writer, "Time:  %s\n", agg.Duration)
	if r.verbose && agg.P50 > 0 {
		fmt.Fprintf(r.writer, "Latency: p50=%s p95=%s p99=%s\n", agg.P50, agg.P95, agg.P99)
	}
	fmt.Fprintf(r.writer, "\n")
}

// Error renders a run-level error.
func (r *ConsoleReporter) Error(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(r.writer, "%s %v\n", red("Error:"), err)
}
