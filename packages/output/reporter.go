package output

import (
	"fmt"
	"io"

	"github.com/restsuite/restsuite/packages/framework"
	"github.com/restsuite/restsuite/packages/runner"
)

// Reporter is a framework reporter that can also render the aggregate
// summary at the end of a run.
type Reporter interface {
	framework.Reporter
	Summary(agg *runner.AggregateStats)
}

// New builds a reporter for the named format writing to w.
func New(format string, w io.Writer, noColor bool) (Reporter, error) {
	switch format {
	case "", "console":
		return NewConsoleReporter(WithWriter(w), WithNoColor(noColor)), nil
	case "json":
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: console, json)", format)
	}
}
