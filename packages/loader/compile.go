package loader

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	httpx "github.com/restsuite/restsuite/packages/http"
	"github.com/restsuite/restsuite/packages/request"
	"github.com/restsuite/restsuite/packages/suite"
	"github.com/restsuite/restsuite/packages/template"
)

// CompileSuite turns a suite definition into executable actions. baseDir
// is the directory of the suite file; exec hooks run in it so relative
// script paths resolve against the file that names them.
func CompileSuite(def *SuiteDef, baseDir string, client *httpx.Client, ec *suite.ExecContext) ([]suite.Action, error) {
	actions := make([]suite.Action, 0, len(def.Actions))

	for i, a := range def.Actions {
		action, err := compileAction(a, baseDir, client, ec)
		if err != nil {
			return nil, fmt.Errorf("suite %q action %d: %w", def.Name, i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func compileAction(a *ActionDef, baseDir string, client *httpx.Client, ec *suite.ExecContext) (suite.Action, error) {
	switch {
	case a.Exec != "":
		return &suite.HookAction{Fn: execHook(a.Exec, baseDir)}, nil

	case len(a.Each) > 0:
		fns := make([]suite.HookFunc, len(a.Each))
		for i, cmd := range a.Each {
			fns[i] = execHook(cmd, baseDir)
		}
		return &suite.EachHookAction{Fns: fns}, nil

	case len(a.Set) > 0:
		return &suite.HookAction{Fn: setHook(a.Set)}, nil

	case a.Test != nil:
		return compileTest(a.Test, client, ec)

	default:
		return nil, fmt.Errorf("action sets none of exec, each, set, test")
	}
}

func compileTest(t *TestDef, client *httpx.Client, ec *suite.ExecContext) (suite.Action, error) {
	if t.Skip {
		return suite.BuildPending(t.Name), nil
	}

	var mock *request.Mock
	if t.Mock != nil {
		mock = &request.Mock{
			Status:  t.Mock.Status,
			Headers: t.Mock.Headers,
			Body:    t.Mock.Body,
		}
	}

	fn := request.Build(paramsFromDef(t.Request), mock, t.Capture, client)
	checks := checksFromExpect(t.Expect)

	if len(t.Params) > 0 {
		return suite.BuildTests(t.Name, t.Params, fn, checks, t.Parallel, ec)
	}
	return suite.BuildTest(t.Name, fn, checks, ec)
}

// paramsFromDef resolves every string in the request definition against
// the execution context at send time, so captures from earlier tests are
// visible here.
func paramsFromDef(def *RequestDef) request.ParamsFunc {
	return func(sc suite.Context) (*request.Params, error) {
		if def == nil {
			return nil, fmt.Errorf("test has no request")
		}

		data := map[string]any(sc)
		p := &request.Params{
			Method: def.Method,
			URL:    template.Resolve(def.URL, data),
			Body:   resolveAny(def.Body, data),
		}
		if p.Method == "" {
			p.Method = "GET"
		}
		if len(def.Headers) > 0 {
			p.Headers = make(map[string]string, len(def.Headers))
			for k, v := range def.Headers {
				p.Headers[k] = template.Resolve(v, data)
			}
		}
		if len(def.Query) > 0 {
			p.Query = make(map[string]string, len(def.Query))
			for k, v := range def.Query {
				p.Query[k] = template.Resolve(v, data)
			}
		}
		return p, nil
	}
}

func resolveAny(v any, data map[string]any) any {
	switch val := v.(type) {
	case string:
		return template.Resolve(val, data)
	case map[string]any:
		resolved := make(map[string]any, len(val))
		for k, item := range val {
			resolved[k] = resolveAny(item, data)
		}
		return resolved
	case []any:
		resolved := make([]any, len(val))
		for i, item := range val {
			resolved[i] = resolveAny(item, data)
		}
		return resolved
	default:
		return v
	}
}

// checksFromExpect orders the expect map by name so check evaluation,
// and with it the first reported failure, is deterministic.
func checksFromExpect(expect map[string]any) []suite.Check {
	if len(expect) == 0 {
		return nil
	}

	names := make([]string, 0, len(expect))
	for name := range expect {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make([]suite.Check, len(names))
	for i, name := range names {
		checks[i] = suite.Check{Name: name, Expected: expect[name]}
	}
	return checks
}

// execHook runs a shell command with sh -c from the suite file's
// directory. The command is template-resolved against the context first,
// so hooks can use captured values and suite variables.
func execHook(command string, baseDir string) suite.HookFunc {
	return func(ctx context.Context, sc suite.Context) error {
		cmdStr := strings.TrimSpace(template.Resolve(command, map[string]any(sc)))
		if cmdStr == "" {
			return nil
		}

		cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
		cmd.Dir = baseDir

		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("command %q failed: %v\noutput: %s", command, err, string(output))
		}
		return nil
	}
}

func setHook(vars map[string]any) suite.HookFunc {
	return func(ctx context.Context, sc suite.Context) error {
		data := map[string]any(sc)
		for k, v := range vars {
			sc.Set(k, resolveAny(v, data))
		}
		return nil
	}
}
