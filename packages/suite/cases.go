package suite

import (
	"context"
	"fmt"

	"github.com/restsuite/restsuite/packages/framework"
	"github.com/restsuite/restsuite/packages/resource"
	"github.com/restsuite/restsuite/packages/template"
	"golang.org/x/sync/errgroup"
)

// Check names an assertion on the Resource with its expected value.
type Check struct {
	Name     string
	Expected any
}

// BuildTest builds a single parameterless test case. When run, it awaits
// the request against the execution context and applies every check in
// order; the first failing check halts the rest.
func BuildTest(title string, request RequestFunc, checks []Check, ec *ExecContext) (Action, error) {
	if err := validateChecks(checks); err != nil {
		return nil, fmt.Errorf("test %q: %w", title, err)
	}

	return &TestAction{
		Title: title,
		register: func(s *framework.Suite) {
			s.It(title, func(ctx context.Context) error {
				res, err := request(ctx, ec.Context)
				if err != nil {
					return err
				}
				return applyChecks(res, checks, ec.Context, nil)
			})
		},
	}, nil
}

// BuildTests builds one test per element of params. Titles and string
// expected values are template-resolved per parameter with {suite: param}.
//
// In series mode each test issues its own request with the context
// extended by its parameter. In parallel mode a single setup hook fans out
// every request concurrently, index-aligned with params, and the tests
// then assert against the prefetched results without further requests; a
// fan-out failure fails the hook, and with it the whole suite.
func BuildTests(title string, params []any, request RequestFunc, checks []Check, parallel bool, ec *ExecContext) (Action, error) {
	if err := validateChecks(checks); err != nil {
		return nil, fmt.Errorf("tests %q: %w", title, err)
	}

	titles := make([]string, len(params))
	for i, p := range params {
		titles[i] = template.Resolve(title, map[string]any{"suite": p})
	}

	if !parallel {
		return &TestAction{
			Title: title,
			register: func(s *framework.Suite) {
				for i, p := range params {
					i, p := i, p
					data := map[string]any{"suite": p}
					s.It(titles[i], func(ctx context.Context) error {
						sc := ec.Context.Extend("suite", p)
						res, err := request(ctx, sc)
						if err != nil {
							return err
						}
						return applyChecks(res, checks, sc, data)
					})
				}
			},
		}, nil
	}

	return &TestAction{
		Title: title,
		register: func(s *framework.Suite) {
			results := make([]*resource.Resource, len(params))

			s.Before(func(ctx context.Context) error {
				g, gctx := errgroup.WithContext(ctx)
				for i, p := range params {
					i, p := i, p
					g.Go(func() error {
						res, err := request(gctx, ec.Context.Extend("suite", p))
						if err != nil {
							return fmt.Errorf("case %q: %w", titles[i], err)
						}
						results[i] = res
						return nil
					})
				}
				return g.Wait()
			})

			for i, p := range params {
				i, p := i, p
				data := map[string]any{"suite": p}
				s.It(titles[i], func(ctx context.Context) error {
					return applyChecks(results[i], checks, ec.Context.Extend("suite", p), data)
				})
			}
		},
	}, nil
}

// BuildPending builds a test that is registered but never run, counted as
// pending in the run statistics.
func BuildPending(title string) Action {
	return &TestAction{
		Title: title,
		register: func(s *framework.Suite) {
			s.Pending(title)
		},
	}
}

func validateChecks(checks []Check) error {
	for _, c := range checks {
		if !resource.Known(c.Name) {
			return fmt.Errorf("unknown check %q (supported: %v)", c.Name, resource.Names())
		}
	}
	return nil
}

func applyChecks(res *resource.Resource, checks []Check, sc Context, data map[string]any) error {
	for _, c := range checks {
		fn, ok := res.Check(c.Name)
		if !ok {
			return fmt.Errorf("unknown check %q", c.Name)
		}

		expected := c.Expected
		if s, isString := expected.(string); isString && data != nil {
			expected = template.Resolve(s, data)
		}

		if err := fn(expected, map[string]any(sc)); err != nil {
			return err
		}
	}
	return nil
}
