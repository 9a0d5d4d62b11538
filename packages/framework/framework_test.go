package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramework_Run_Counts(t *testing.T) {
	fw := New()
	s := fw.Describe("users")
	s.It("passes", func(ctx context.Context) error { return nil })
	s.It("fails", func(ctx context.Context) error { return errors.New("boom") })
	s.Pending("not yet")

	stats := fw.Run(context.Background(), nil)

	assert.Equal(t, 1, stats.Suites)
	assert.Equal(t, 3, stats.Tests)
	assert.Equal(t, 1, stats.Passes)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, stats.Tests, stats.Passes+stats.Pending+stats.Failures)
	assert.Len(t, stats.TestDurations, 2)
	assert.False(t, stats.Start.IsZero())
	assert.False(t, stats.End.IsZero())
}

func TestFramework_Run_HookOrder(t *testing.T) {
	var order []string
	record := func(name string) HookFunc {
		return func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	fw := New()
	s := fw.Describe("ordering")
	s.Before(record("before"))
	s.BeforeEach(record("beforeEach"))
	s.AfterEach(record("afterEach"))
	s.After(record("after"))
	s.It("one", func(ctx context.Context) error {
		order = append(order, "test one")
		return nil
	})
	s.It("two", func(ctx context.Context) error {
		order = append(order, "test two")
		return nil
	})

	fw.Run(context.Background(), nil)

	assert.Equal(t, []string{
		"before",
		"beforeEach", "test one", "afterEach",
		"beforeEach", "test two", "afterEach",
		"after",
	}, order)
}

func TestFramework_Run_BeforeFailureFailsSuite(t *testing.T) {
	executed := false
	afterRan := false

	fw := New()
	s := fw.Describe("broken setup")
	s.Before(func(ctx context.Context) error { return errors.New("setup failed") })
	s.After(func(ctx context.Context) error {
		afterRan = true
		return nil
	})
	s.It("never runs", func(ctx context.Context) error {
		executed = true
		return nil
	})
	s.Pending("still pending")

	stats := fw.Run(context.Background(), nil)

	assert.False(t, executed)
	assert.True(t, afterRan)
	assert.Equal(t, 2, stats.Tests)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0, stats.Passes)
}

func TestFramework_Run_BeforeEachFailureFailsTest(t *testing.T) {
	fw := New()
	s := fw.Describe("per-test setup")
	s.BeforeEach(func(ctx context.Context) error { return errors.New("each failed") })
	s.It("a", func(ctx context.Context) error {
		t.Fatal("test body must not run when beforeEach fails")
		return nil
	})

	stats := fw.Run(context.Background(), nil)
	assert.Equal(t, 1, stats.Failures)
}

func TestFramework_Run_AfterEachFailureFailsTest(t *testing.T) {
	fw := New()
	s := fw.Describe("per-test teardown")
	s.AfterEach(func(ctx context.Context) error { return errors.New("teardown failed") })
	s.It("a", func(ctx context.Context) error { return nil })

	stats := fw.Run(context.Background(), nil)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 0, stats.Passes)
}

func TestFramework_Run_TestFailureDoesNotMaskAfterEach(t *testing.T) {
	afterEachRan := false

	fw := New()
	s := fw.Describe("isolation")
	s.AfterEach(func(ctx context.Context) error {
		afterEachRan = true
		return nil
	})
	s.It("fails", func(ctx context.Context) error { return errors.New("boom") })
	s.It("passes", func(ctx context.Context) error { return nil })

	stats := fw.Run(context.Background(), nil)

	assert.True(t, afterEachRan)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.Passes)
}

func TestFramework_Run_Reporter(t *testing.T) {
	rep := &eventReporter{}

	fw := New()
	s := fw.Describe("reported")
	s.It("ok", func(ctx context.Context) error { return nil })
	s.It("bad", func(ctx context.Context) error { return errors.New("nope") })
	s.Pending("later")

	fw.Run(context.Background(), rep)

	require.Equal(t, []string{"reported"}, rep.suites)
	assert.Equal(t, []string{"ok"}, rep.passed)
	assert.Equal(t, []string{"bad"}, rep.failed)
	assert.Equal(t, []string{"later"}, rep.pending)
}

type eventReporter struct {
	suites, passed, failed, pending []string
}

func (r *eventReporter) SuiteStart(title string) { r.suites = append(r.suites, title) }
func (r *eventReporter) TestPassed(title string, _ time.Duration) {
	r.passed = append(r.passed, title)
}
func (r *eventReporter) TestFailed(title string, _ time.Duration, _ error) {
	r.failed = append(r.failed, title)
}
func (r *eventReporter) TestPending(title string) { r.pending = append(r.pending, title) }
func (r *eventReporter) HookFailed(string, error) {}
