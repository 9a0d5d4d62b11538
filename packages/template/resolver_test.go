package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver()
	r.SetVariable("baseUrl", "http://api.local")

	t.Run("resolver variable", func(t *testing.T) {
		assert.Equal(t, "http://api.local/users", r.Resolve("{{baseUrl}}/users", nil))
	})

	t.Run("data shadows variables", func(t *testing.T) {
		r.SetVariable("name", "global")
		got := r.Resolve("hello {{name}}", map[string]any{"name": "local"})
		assert.Equal(t, "hello local", got)
	})

	t.Run("unresolved left intact", func(t *testing.T) {
		assert.Equal(t, "{{missing}}", r.Resolve("{{missing}}", nil))
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv("RESTSUITE_TEST_TOKEN", "s3cret")
		assert.Equal(t, "Bearer s3cret", r.Resolve("Bearer {{$RESTSUITE_TEST_TOKEN}}", nil))
	})

	t.Run("whitespace inside braces", func(t *testing.T) {
		assert.Equal(t, "http://api.local", r.Resolve("{{ baseUrl }}", nil))
	})
}

func TestResolve_DataOnly(t *testing.T) {
	data := map[string]any{"suite": map[string]any{"name": "alpha", "ids": []any{1.0, 2.0}}}

	assert.Equal(t, "case alpha", Resolve("case {{suite.name}}", data))
	assert.Equal(t, "first 1", Resolve("first {{suite.ids.0}}", data))
	assert.Equal(t, "case {{suite.missing}}", Resolve("case {{suite.missing}}", data))
}

func TestResolve_ScalarSuiteParam(t *testing.T) {
	got := Resolve("case {{suite}}", map[string]any{"suite": "a"})
	assert.Equal(t, "case a", got)
}

func TestLookup(t *testing.T) {
	data := map[string]any{
		"a":         map[string]any{"b": []any{"x", "y"}},
		"dotted.key": "flat",
	}

	v, ok := Lookup(data, "a.b.1")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	// A literal key wins over path traversal.
	v, ok = Lookup(data, "dotted.key")
	assert.True(t, ok)
	assert.Equal(t, "flat", v)

	_, ok = Lookup(data, "a.b.9")
	assert.False(t, ok)

	_, ok = Lookup(nil, "a")
	assert.False(t, ok)
}

func TestResolver_Clone(t *testing.T) {
	r := NewResolver()
	r.SetVariable("k", "v")

	clone := r.Clone()
	clone.SetVariable("k", "other")

	v, _ := r.GetVariable("k")
	assert.Equal(t, "v", v)
}

func TestResolver_WarnFunc(t *testing.T) {
	r := NewResolver()
	var warned []string
	r.SetWarnFunc(func(format string, args ...any) {
		warned = append(warned, format)
	})

	r.Resolve("{{nope}}", nil)
	assert.Len(t, warned, 1)
}
