package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/restsuite/restsuite/packages/framework"
	httpx "github.com/restsuite/restsuite/packages/http"
	"github.com/restsuite/restsuite/packages/loader"
	"github.com/restsuite/restsuite/packages/suite"
	"golang.org/x/sync/errgroup"
)

// ReporterFactory builds the reporter a run writes its events through.
// The writer is the run's output sink, which callers can substitute per
// run without touching global state.
type ReporterFactory func(w io.Writer) framework.Reporter

// Orchestrator loads, compiles and executes suite files.
type Orchestrator struct {
	loader      *loader.Loader
	client      *httpx.Client
	vars        map[string]any
	out         io.Writer
	newReporter ReporterFactory
}

type Option func(*Orchestrator)

// WithVars seeds every suite's execution context with these variables.
// File-level vars override them per file.
func WithVars(vars map[string]any) Option {
	return func(o *Orchestrator) {
		o.vars = vars
	}
}

// WithOutput sets the default writer reporters emit to.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.out = w
	}
}

// WithReporterFactory sets how run reporters are built.
func WithReporterFactory(f ReporterFactory) Option {
	return func(o *Orchestrator) {
		o.newReporter = f
	}
}

func New(l *loader.Loader, client *httpx.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		loader: l,
		client: client,
		out:    os.Stdout,
		newReporter: func(io.Writer) framework.Reporter {
			return framework.NopReporter{}
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the given suite files and aggregates their statistics.
// With parallel set the files run concurrently, each with its own
// execution context; otherwise they run in order. A non-nil sink
// redirects reporter output for this run only.
//
// Failing tests do not make Run return an error; inspect the aggregate.
// An error means a file could not be loaded or compiled.
func (o *Orchestrator) Run(ctx context.Context, files []string, parallel bool, sink io.Writer) (*AggregateStats, error) {
	out := o.out
	if sink != nil {
		out = sink
	}
	rep := o.newReporter(out)

	stats := make([]*framework.RunStats, len(files))

	if parallel {
		locked := &lockedReporter{rep: rep}
		g, gctx := errgroup.WithContext(ctx)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				s, err := o.RunFile(gctx, path, locked)
				if err != nil {
					return err
				}
				stats[i] = s
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, path := range files {
			s, err := o.RunFile(ctx, path, rep)
			if err != nil {
				return nil, err
			}
			stats[i] = s
		}
	}

	return FormatStats(stats, parallel), nil
}

// RunFile loads, compiles and executes one suite file.
func (o *Orchestrator) RunFile(ctx context.Context, path string, rep framework.Reporter) (*framework.RunStats, error) {
	file, err := o.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	baseDir := filepath.Dir(file.Path)
	fw := framework.New()

	for _, def := range file.Suites {
		ec := suite.NewExecContext(mergeVars(o.vars, file.Vars))
		actions, err := loader.CompileSuite(def, baseDir, o.client, ec)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", path, err)
		}
		if err := suite.Register(fw, def.Name, actions, ec); err != nil {
			return nil, fmt.Errorf("register %s: %w", path, err)
		}
	}

	return fw.Run(ctx, rep), nil
}

func mergeVars(base, override map[string]any) map[string]any {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// lockedReporter serializes reporter events from concurrent files.
type lockedReporter struct {
	mu  sync.Mutex
	rep framework.Reporter
}

func (l *lockedReporter) SuiteStart(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rep.SuiteStart(title)
}

func (l *lockedReporter) TestPassed(title string, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rep.TestPassed(title, d)
}

func (l *lockedReporter) TestFailed(title string, d time.Duration, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rep.TestFailed(title, d, err)
}

func (l *lockedReporter) TestPending(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rep.TestPending(title)
}

func (l *lockedReporter) HookFailed(suite string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rep.HookFailed(suite, err)
}
