package framework

import "time"

// RunStats is the per-file execution record.
type RunStats struct {
	Start    time.Time
	End      time.Time
	Suites   int
	Tests    int
	Passes   int
	Pending  int
	Failures int
	Duration time.Duration

	// TestDurations holds the wall time of every executed (non-pending)
	// test, in execution order.
	TestDurations []time.Duration
}

// Reporter receives execution events as they happen.
type Reporter interface {
	SuiteStart(title string)
	TestPassed(title string, d time.Duration)
	TestFailed(title string, d time.Duration, err error)
	TestPending(title string)
	HookFailed(suite string, err error)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) SuiteStart(string)                      {}
func (NopReporter) TestPassed(string, time.Duration)       {}
func (NopReporter) TestFailed(string, time.Duration, error) {}
func (NopReporter) TestPending(string)                     {}
func (NopReporter) HookFailed(string, error)               {}
