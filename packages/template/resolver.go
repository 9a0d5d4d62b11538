package template

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// Resolver substitutes {{name}} placeholders with thread-safe access to a
// set of named variables. Placeholders resolve against the per-call data
// mapping first, then the resolver's variables, then the environment for
// {{$NAME}} expressions. Unresolved placeholders are left intact.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]any
	warnFunc  WarnFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		variables: make(map[string]any),
	}
}

// SetWarnFunc sets a function to be called when a placeholder cannot be resolved
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *Resolver) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

func (r *Resolver) SetVariables(vars map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range vars {
		r.variables[k] = v
	}
}

func (r *Resolver) SetVariable(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables[name] = value
}

func (r *Resolver) GetVariable(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variables[name]
	return v, ok
}

func (r *Resolver) Clone() *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewResolver()
	for k, v := range r.variables {
		clone.variables[k] = v
	}
	return clone
}

// Resolve substitutes every placeholder in input. data takes precedence
// over the resolver's variables so per-iteration values can shadow globals.
func (r *Resolver) Resolve(input string, data map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if strings.HasPrefix(expr, "$") {
			envVar := expr[1:]
			if val := os.Getenv(envVar); val != "" {
				return val
			}
			r.warn("unresolved environment variable: $%s", envVar)
			return match
		}

		if val, ok := Lookup(data, expr); ok {
			return fmt.Sprintf("%v", val)
		}

		r.mu.RLock()
		val, ok := Lookup(r.variables, expr)
		r.mu.RUnlock()
		if ok {
			return fmt.Sprintf("%v", val)
		}

		r.warn("unresolved variable: %s", expr)
		return match
	})
}

// ResolveAll resolves every value of the input map.
func (r *Resolver) ResolveAll(values map[string]string, data map[string]any) map[string]string {
	result := make(map[string]string)
	for k, v := range values {
		result[k] = r.Resolve(v, data)
	}
	return result
}

// Resolve substitutes placeholders against data only, with no shared
// variable state.
func Resolve(input string, data map[string]any) string {
	return defaultResolver.Resolve(input, data)
}

var defaultResolver = NewResolver()

// Lookup walks a dotted path through nested maps and slices, so "suite.name"
// reaches into data["suite"].(map)["name"] and "items.0" indexes a slice.
func Lookup(data map[string]any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}

	if v, ok := data[path]; ok {
		return v, true
	}

	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}
