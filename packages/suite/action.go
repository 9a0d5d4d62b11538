package suite

import (
	"context"

	"github.com/restsuite/restsuite/packages/framework"
	"github.com/restsuite/restsuite/packages/resource"
)

// HookFunc is the body of a setup or teardown action.
type HookFunc func(ctx context.Context, sc Context) error

// RequestFunc obtains the Resource for one test case. Implementations are
// built by the request package.
type RequestFunc func(ctx context.Context, sc Context) (*resource.Resource, error)

// Action is one unit of an ordered suite declaration. The three variants
// are HookAction, EachHookAction and TestAction; there is no fourth.
type Action interface {
	action()
}

// HookAction is a scalar hook: run once, before the tests when it precedes
// them, after when it follows them.
type HookAction struct {
	Name string
	Fn   HookFunc
}

func (*HookAction) action() {}

// EachHookAction is a sequence of hooks run around every test, composed in
// order as one operation.
type EachHookAction struct {
	Name string
	Fns  []HookFunc
}

func (*EachHookAction) action() {}

// TestAction is a test (or set of tests) produced by BuildTest, BuildTests
// or BuildPending. The registration closure is unexported so test identity
// is established by origin, not by shape or name.
type TestAction struct {
	Title    string
	register func(s *framework.Suite)
}

func (*TestAction) action() {}
