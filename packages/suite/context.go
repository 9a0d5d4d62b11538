package suite

// Context is the mapping of shared values threaded through a suite's hooks
// and tests. It grows by extension: hooks may add keys, and parameterized
// execution adds a per-iteration "suite" key on a snapshot so concurrent
// branches never share a mutated map.
type Context map[string]any

// Extend returns a shallow copy of c with key set. The receiver is left
// untouched.
func (c Context) Extend(key string, value any) Context {
	out := make(Context, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}

// Clone returns a shallow copy of c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Set assigns a key in place. Hooks use this to publish values to later
// hooks and tests in the same suite.
func (c Context) Set(key string, value any) {
	c[key] = value
}

// ExecContext carries the orchestration state handed to hooks and tests.
type ExecContext struct {
	Context Context
}

// NewExecContext seeds an execution context with the given variables.
func NewExecContext(vars map[string]any) *ExecContext {
	ctx := make(Context, len(vars))
	for k, v := range vars {
		ctx[k] = v
	}
	return &ExecContext{Context: ctx}
}
