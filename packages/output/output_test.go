package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/restsuite/restsuite/packages/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAggregate() *runner.AggregateStats {
	return &runner.AggregateStats{
		Files:    1,
		Suites:   1,
		Tests:    3,
		Passes:   1,
		Failures: 1,
		Pending:  1,
		Duration: "120ms",
		End:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(WithWriter(&buf), WithNoColor(true))

	r.SuiteStart("users")
	r.TestPassed("creates a user", 40*time.Millisecond)
	r.TestFailed("rejects bad input", 10*time.Millisecond, errors.New("status: expected 400, got 200"))
	r.TestPending("paginates")
	r.HookFailed("users", errors.New("setup exploded"))
	r.Summary(sampleAggregate())

	out := buf.String()
	assert.Contains(t, out, "users")
	assert.Contains(t, out, "✓ creates a user (40ms)")
	assert.Contains(t, out, "✗ rejects bad input")
	assert.Contains(t, out, "expected 400, got 200")
	assert.Contains(t, out, "- paginates")
	assert.Contains(t, out, "setup exploded")
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1 pending")
	assert.Contains(t, out, "3 total")
	assert.Contains(t, out, "Time:  120ms")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.SuiteStart("users")
	r.TestPassed("creates a user", 40*time.Millisecond)
	r.TestFailed("rejects bad input", 10*time.Millisecond, errors.New("boom"))
	r.TestPending("paginates")
	r.Summary(sampleAggregate())

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 3, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Passed)
	assert.Equal(t, 1, out.Summary.Failed)
	assert.Equal(t, "120ms", out.Summary.Duration)

	require.Len(t, out.Tests, 3)
	assert.Equal(t, "creates a user", out.Tests[0].Name)
	assert.Equal(t, "users", out.Tests[0].Suite)
	assert.True(t, out.Tests[0].Passed)
	assert.Equal(t, "boom", out.Tests[1].Error)
	assert.True(t, out.Tests[2].Pending)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	console, err := New("console", &buf, true)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleReporter{}, console)

	jsonRep, err := New("json", &buf, false)
	require.NoError(t, err)
	assert.IsType(t, &JSONReporter{}, jsonRep)

	def, err := New("", &buf, true)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleReporter{}, def)

	_, err = New("xml", &buf, false)
	require.Error(t, err)
}
