package output

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/restsuite/restsuite/packages/runner"
)

// JSONReporter accumulates run events and writes one JSON document when
// the run finishes. It implements framework.Reporter.
type JSONReporter struct {
	mu           sync.Mutex
	writer       io.Writer
	currentSuite string
	tests        []JSONTest
}

// JSONOutput is the complete JSON document.
type JSONOutput struct {
	Summary JSONSummary `json:"summary"`
	Tests   []JSONTest  `json:"tests"`
	Time    string      `json:"time"`
}

// JSONSummary is the run summary.
type JSONSummary struct {
	Files    int    `json:"files"`
	Suites   int    `json:"suites"`
	Total    int    `json:"total"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	Pending  int    `json:"pending"`
	Duration string `json:"duration"`
}

// JSONTest is a single test result.
type JSONTest struct {
	Name     string  `json:"name"`
	Suite    string  `json:"suite"`
	Passed   bool    `json:"passed"`
	Pending  bool    `json:"pending,omitempty"`
	Duration float64 `json:"duration"` // milliseconds
	Error    string  `json:"error,omitempty"`
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) SuiteStart(title string) {
	r.mu.Lock()
	r.currentSuite = title
	r.mu.Unlock()
}

func (r *JSONReporter) TestPassed(title string, d time.Duration) {
	r.record(JSONTest{Name: title, Passed: true, Duration: float64(d.Milliseconds())})
}

func (r *JSONReporter) TestFailed(title string, d time.Duration, err error) {
	r.record(JSONTest{Name: title, Duration: float64(d.Milliseconds()), Error: err.Error()})
}

func (r *JSONReporter) TestPending(title string) {
	r.record(JSONTest{Name: title, Pending: true})
}

func (r *JSONReporter) HookFailed(suite string, err error) {
	// Hook failures already surface as failed tests; nothing extra here.
}

func (r *JSONReporter) record(t JSONTest) {
	r.mu.Lock()
	t.Suite = r.currentSuite
	r.tests = append(r.tests, t)
	r.mu.Unlock()
}

// Summary writes the accumulated document.
func (r *JSONReporter) Summary(agg *runner.AggregateStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := JSONOutput{
		Summary: JSONSummary{
			Files:    agg.Files,
			Suites:   agg.Suites,
			Total:    agg.Tests,
			Passed:   agg.Passes,
			Failed:   agg.Failures,
			Pending:  agg.Pending,
			Duration: agg.Duration,
		},
		Tests: r.tests,
		Time:  agg.End.Format(time.RFC3339),
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
