package suite

import (
	"errors"
	"fmt"
)

// ErrInterleaved reports a test action declared after teardown hooks, an
// ordering the lifecycle model cannot express.
var ErrInterleaved = errors.New("hooks and tests are interleaved")

// ActionGroups is the classifier output: five ordered groups, each input
// action in exactly one of them, original relative order preserved.
type ActionGroups struct {
	Before     []*HookAction
	BeforeEach []*EachHookAction
	After      []*HookAction
	AfterEach  []*EachHookAction
	Tests      []*TestAction
}

// Classify partitions actions in a single left-to-right pass. Scalar and
// each-hooks before the first test action are setup ("pre"); those after
// any test action are teardown ("post"). A test action appearing after a
// post-classified hook is rejected with ErrInterleaved rather than
// silently misfiled.
func Classify(actions []Action) (*ActionGroups, error) {
	groups := &ActionGroups{}
	seenTest := false
	seenTeardown := false

	for i, a := range actions {
		switch v := a.(type) {
		case *TestAction:
			if seenTeardown {
				return nil, fmt.Errorf("action %d (%s): %w", i, v.Title, ErrInterleaved)
			}
			seenTest = true
			groups.Tests = append(groups.Tests, v)
		case *HookAction:
			if seenTest {
				seenTeardown = true
				groups.After = append(groups.After, v)
			} else {
				groups.Before = append(groups.Before, v)
			}
		case *EachHookAction:
			if seenTest {
				seenTeardown = true
				groups.AfterEach = append(groups.AfterEach, v)
			} else {
				groups.BeforeEach = append(groups.BeforeEach, v)
			}
		case nil:
			return nil, fmt.Errorf("action %d: nil action", i)
		default:
			return nil, fmt.Errorf("action %d: unsupported action type %T", i, a)
		}
	}

	return groups, nil
}
