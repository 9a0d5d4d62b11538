package suite

import (
	"context"
	"errors"
	"testing"

	"github.com/restsuite/restsuite/packages/framework"
	"github.com/restsuite/restsuite/packages/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_HookCompositionOrder(t *testing.T) {
	ec := NewExecContext(nil)
	var trace []string
	mark := func(name string) HookFunc {
		return func(ctx context.Context, sc Context) error {
			trace = append(trace, name)
			return nil
		}
	}

	test := &TestAction{
		Title: "t",
		register: func(s *framework.Suite) {
			s.It("t", func(ctx context.Context) error {
				trace = append(trace, "test")
				return nil
			})
		},
	}

	actions := []Action{
		&HookAction{Fn: mark("before 1")},
		&EachHookAction{Fns: []HookFunc{mark("each 1a"), mark("each 1b")}},
		&HookAction{Fn: mark("before 2")},
		test,
		&EachHookAction{Fns: []HookFunc{mark("teardown each")}},
		&HookAction{Fn: mark("after")},
	}

	fw := framework.New()
	require.NoError(t, Register(fw, "ordering", actions, ec))
	stats := fw.Run(context.Background(), nil)

	assert.Equal(t, []string{
		"before 1", "before 2",
		"each 1a", "each 1b",
		"test",
		"teardown each",
		"after",
	}, trace)
	assert.Equal(t, 1, stats.Passes)
}

func TestRegister_HooksReceiveSharedContext(t *testing.T) {
	ec := NewExecContext(map[string]any{"host": "example.test"})

	var seen any
	actions := []Action{
		&HookAction{Fn: func(ctx context.Context, sc Context) error {
			sc.Set("token", "abc123")
			return nil
		}},
		mustBuildTest(t, "reads context", func(ctx context.Context, sc Context) (*resource.Resource, error) {
			seen = sc["token"]
			return jsonResource(`{}`), nil
		}, nil, ec),
	}

	fw := framework.New()
	require.NoError(t, Register(fw, "shared context", actions, ec))
	stats := fw.Run(context.Background(), nil)

	assert.Equal(t, 1, stats.Passes)
	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "example.test", ec.Context["host"])
}

func TestRegister_InterleavedActionsRejected(t *testing.T) {
	ec := NewExecContext(nil)
	actions := []Action{
		mustBuildTest(t, "first", staticRequest(`{}`), nil, ec),
		&HookAction{Fn: func(ctx context.Context, sc Context) error { return nil }},
		mustBuildTest(t, "second", staticRequest(`{}`), nil, ec),
	}

	err := Register(framework.New(), "bad", actions, ec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInterleaved)
}

func TestRegister_HookErrorStopsLaterHooks(t *testing.T) {
	ec := NewExecContext(nil)
	var ran bool
	actions := []Action{
		&HookAction{Fn: func(ctx context.Context, sc Context) error {
			return errors.New("setup exploded")
		}},
		&HookAction{Fn: func(ctx context.Context, sc Context) error {
			ran = true
			return nil
		}},
		mustBuildTest(t, "never passes", staticRequest(`{}`), nil, ec),
	}

	fw := framework.New()
	require.NoError(t, Register(fw, "failing setup", actions, ec))
	stats := fw.Run(context.Background(), nil)

	assert.False(t, ran)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 0, stats.Passes)
}

func mustBuildTest(t *testing.T, title string, request RequestFunc, checks []Check, ec *ExecContext) Action {
	t.Helper()
	action, err := BuildTest(title, request, checks, ec)
	require.NoError(t, err)
	return action
}
