package framework

import (
	"context"
	"fmt"
	"time"
)

// HookFunc is a lifecycle hook body.
type HookFunc func(ctx context.Context) error

// TestFunc is a test body; a non-nil error is a test failure.
type TestFunc func(ctx context.Context) error

type testCase struct {
	title   string
	fn      TestFunc
	pending bool
}

// Suite is one registered suite. Hooks and tests run in declaration order.
type Suite struct {
	title      string
	before     []HookFunc
	beforeEach []HookFunc
	after      []HookFunc
	afterEach  []HookFunc
	tests      []*testCase
}

func (s *Suite) Title() string {
	return s.title
}

// Before registers a hook run once before the suite's first test.
func (s *Suite) Before(fn HookFunc) {
	s.before = append(s.before, fn)
}

// BeforeEach registers a hook run before every test.
func (s *Suite) BeforeEach(fn HookFunc) {
	s.beforeEach = append(s.beforeEach, fn)
}

// After registers a hook run once after the suite's last test.
func (s *Suite) After(fn HookFunc) {
	s.after = append(s.after, fn)
}

// AfterEach registers a hook run after every test.
func (s *Suite) AfterEach(fn HookFunc) {
	s.afterEach = append(s.afterEach, fn)
}

// It registers a test.
func (s *Suite) It(title string, fn TestFunc) {
	s.tests = append(s.tests, &testCase{title: title, fn: fn})
}

// Pending registers a test that is counted but never run.
func (s *Suite) Pending(title string) {
	s.tests = append(s.tests, &testCase{title: title, pending: true})
}

// Framework holds the declared suites for one file.
type Framework struct {
	suites []*Suite
}

func New() *Framework {
	return &Framework{}
}

// Describe declares a new suite.
func (f *Framework) Describe(title string) *Suite {
	s := &Suite{title: title}
	f.suites = append(f.suites, s)
	return s
}

func (f *Framework) Suites() []*Suite {
	return f.suites
}

// Run executes all declared suites and reports to rep (which may be nil).
func (f *Framework) Run(ctx context.Context, rep Reporter) *RunStats {
	if rep == nil {
		rep = NopReporter{}
	}

	stats := &RunStats{Start: time.Now()}

	for _, s := range f.suites {
		stats.Suites++
		rep.SuiteStart(s.title)

		if err := runHooks(ctx, s.before); err != nil {
			rep.HookFailed(s.title, err)
			// Setup never completed: every runnable test in the suite fails.
			for _, tc := range s.tests {
				stats.Tests++
				if tc.pending {
					stats.Pending++
					rep.TestPending(tc.title)
					continue
				}
				stats.Failures++
				rep.TestFailed(tc.title, 0, fmt.Errorf("suite setup failed: %w", err))
			}
			if aerr := runHooks(ctx, s.after); aerr != nil {
				rep.HookFailed(s.title, aerr)
			}
			continue
		}

		for _, tc := range s.tests {
			stats.Tests++
			if tc.pending {
				stats.Pending++
				rep.TestPending(tc.title)
				continue
			}

			start := time.Now()
			err := runHooks(ctx, s.beforeEach)
			if err == nil {
				err = tc.fn(ctx)
			}
			if aerr := runHooks(ctx, s.afterEach); err == nil {
				err = aerr
			}
			d := time.Since(start)

			stats.TestDurations = append(stats.TestDurations, d)
			if err != nil {
				stats.Failures++
				rep.TestFailed(tc.title, d, err)
			} else {
				stats.Passes++
				rep.TestPassed(tc.title, d)
			}
		}

		if err := runHooks(ctx, s.after); err != nil {
			rep.HookFailed(s.title, err)
		}
	}

	stats.End = time.Now()
	stats.Duration = stats.End.Sub(stats.Start)
	return stats
}

func runHooks(ctx context.Context, hooks []HookFunc) error {
	for _, h := range hooks {
		if err := h(ctx); err != nil {
			return err
		}
	}
	return nil
}
