package loader

import "fmt"

// File is the document model of a .suite.yaml file.
type File struct {
	Name   string         `yaml:"name"`
	Vars   map[string]any `yaml:"vars"`
	Suites []*SuiteDef    `yaml:"suites"`

	// Path is where the file was loaded from, not part of the document.
	Path string `yaml:"-"`
}

// SuiteDef is one suite: a name and an ordered list of actions. Hooks
// before the first test run once before (or before each of) the tests,
// hooks after the last test run after; mixing tests back in past that
// point is rejected at registration.
type SuiteDef struct {
	Name    string       `yaml:"name"`
	Actions []*ActionDef `yaml:"actions"`
}

// ActionDef is a tagged union: exactly one of its fields may be set.
type ActionDef struct {
	Exec string         `yaml:"exec,omitempty"`
	Each []string       `yaml:"each,omitempty"`
	Set  map[string]any `yaml:"set,omitempty"`
	Test *TestDef       `yaml:"test,omitempty"`
}

// TestDef declares a test case. With Params set it expands into one test
// per parameter; Parallel controls whether those requests are issued
// concurrently up front or one at a time per test.
type TestDef struct {
	Name     string            `yaml:"name"`
	Skip     bool              `yaml:"skip,omitempty"`
	Params   []any             `yaml:"params,omitempty"`
	Parallel bool              `yaml:"parallel,omitempty"`
	Request  *RequestDef       `yaml:"request,omitempty"`
	Mock     *MockDef          `yaml:"mock,omitempty"`
	Capture  map[string]string `yaml:"capture,omitempty"`
	Expect   map[string]any    `yaml:"expect,omitempty"`
}

// RequestDef declares the HTTP request a test issues. String fields are
// template-resolved against the execution context at send time.
type RequestDef struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Query   map[string]string `yaml:"query,omitempty"`
	Body    any               `yaml:"body,omitempty"`
}

// MockDef declares a canned response served without any network traffic.
type MockDef struct {
	Status  int               `yaml:"status,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    any               `yaml:"body,omitempty"`
}

func (f *File) validate() error {
	if len(f.Suites) == 0 {
		return fmt.Errorf("file declares no suites")
	}
	for i, s := range f.Suites {
		if s == nil {
			return fmt.Errorf("suite %d is empty", i)
		}
		if s.Name == "" {
			return fmt.Errorf("suite %d has no name", i)
		}
		for j, a := range s.Actions {
			if err := a.validate(); err != nil {
				return fmt.Errorf("suite %q action %d: %w", s.Name, j, err)
			}
		}
	}
	return nil
}

func (a *ActionDef) validate() error {
	if a == nil {
		return fmt.Errorf("action is empty")
	}

	set := 0
	if a.Exec != "" {
		set++
	}
	if len(a.Each) > 0 {
		set++
	}
	if len(a.Set) > 0 {
		set++
	}
	if a.Test != nil {
		set++
	}

	switch set {
	case 0:
		return fmt.Errorf("action sets none of exec, each, set, test")
	case 1:
	default:
		return fmt.Errorf("action sets more than one of exec, each, set, test")
	}

	if a.Test != nil {
		return a.Test.validate()
	}
	return nil
}

func (t *TestDef) validate() error {
	if t.Name == "" {
		return fmt.Errorf("test has no name")
	}
	if t.Request != nil && t.Mock != nil {
		return fmt.Errorf("test %q sets both request and mock", t.Name)
	}
	if !t.Skip && t.Request == nil && t.Mock == nil {
		return fmt.Errorf("test %q has neither request nor mock", t.Name)
	}
	return nil
}
