package runner

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/restsuite/restsuite/packages/framework"
)

// AggregateStats is the combined result of a run over multiple files.
type AggregateStats struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Files    int       `json:"files"`
	Suites   int       `json:"suites"`
	Tests    int       `json:"tests"`
	Passes   int       `json:"passes"`
	Pending  int       `json:"pending"`
	Failures int       `json:"failures"`

	// Duration is the run's wall time in human form: the sum of the
	// per-file durations for a sequential run, the longest file for a
	// parallel one.
	Duration string `json:"duration"`

	// Latency percentiles over every executed test in the run.
	P50 time.Duration `json:"p50"`
	P95 time.Duration `json:"p95"`
	P99 time.Duration `json:"p99"`
}

// Failed reports whether the run had any failures.
func (a *AggregateStats) Failed() bool {
	return a.Failures > 0
}

// FormatStats folds per-file statistics into one aggregate. Counter
// fields start at zero and accumulate, so a run over zero files yields an
// all-zero aggregate rather than absent fields.
//
// Temporal fields depend on the execution mode. Sequentially, files ran
// back to back: End is the last file's End and the duration is the sum.
// In parallel they ran together: the run lasted as long as its slowest
// file, and End is taken from the first file holding that maximum.
func FormatStats(stats []*framework.RunStats, parallel bool) *AggregateStats {
	agg := &AggregateStats{Files: len(stats)}

	// Histogram: 1us to 60s range, 3 significant digits.
	hist := hdrhistogram.New(1, 60_000_000, 3)

	var total time.Duration
	var longest time.Duration
	for i, s := range stats {
		if i == 0 {
			agg.Start = s.Start
		}
		agg.Suites += s.Suites
		agg.Tests += s.Tests
		agg.Passes += s.Passes
		agg.Pending += s.Pending
		agg.Failures += s.Failures

		total += s.Duration
		if s.Duration > longest {
			longest = s.Duration
			agg.End = s.End
		}
		for _, d := range s.TestDurations {
			_ = hist.RecordValue(d.Microseconds())
		}
	}

	duration := total
	if parallel {
		duration = longest
	} else if len(stats) > 0 {
		agg.End = stats[len(stats)-1].End
	}
	agg.Duration = duration.String()

	if hist.TotalCount() > 0 {
		agg.P50 = time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond
		agg.P95 = time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond
		agg.P99 = time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond
	}

	return agg
}
