package suite

import (
	"context"
	"fmt"

	"github.com/restsuite/restsuite/packages/framework"
)

// Register classifies actions and declares the resulting suite with fw.
// Hook groups are composed into single sequential operations; invocation
// timing is owned entirely by the framework's run phase, and hook or test
// failures propagate to it untransformed.
func Register(fw *framework.Framework, title string, actions []Action, ec *ExecContext) error {
	groups, err := Classify(actions)
	if err != nil {
		return fmt.Errorf("suite %q: %w", title, err)
	}

	s := fw.Describe(title)

	if len(groups.Before) > 0 {
		s.Before(composeScalar(groups.Before, ec))
	}
	if len(groups.BeforeEach) > 0 {
		s.BeforeEach(composeEach(groups.BeforeEach, ec))
	}
	for _, t := range groups.Tests {
		t.register(s)
	}
	if len(groups.AfterEach) > 0 {
		s.AfterEach(composeEach(groups.AfterEach, ec))
	}
	if len(groups.After) > 0 {
		s.After(composeScalar(groups.After, ec))
	}

	return nil
}

func composeScalar(hooks []*HookAction, ec *ExecContext) framework.HookFunc {
	return func(ctx context.Context) error {
		for _, h := range hooks {
			if err := h.Fn(ctx, ec.Context); err != nil {
				return err
			}
		}
		return nil
	}
}

func composeEach(hooks []*EachHookAction, ec *ExecContext) framework.HookFunc {
	return func(ctx context.Context) error {
		for _, h := range hooks {
			for _, fn := range h.Fns {
				if err := fn(ctx, ec.Context); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
