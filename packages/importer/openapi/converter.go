// Package openapi converts OpenAPI specifications into suite file
// skeletons: one suite per tag (or one per document), one request test
// per operation with a status expectation derived from its responses.
package openapi

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/restsuite/restsuite/packages/loader"
	"gopkg.in/yaml.v3"
)

// Converter converts OpenAPI documents to suite files.
type Converter struct {
	baseURL     string
	includeTags []string
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithBaseURL sets a custom base URL, overriding the one from the spec.
func WithBaseURL(url string) Option {
	return func(c *Converter) {
		c.baseURL = url
	}
}

// WithTags filters operations by tags.
func WithTags(tags []string) Option {
	return func(c *Converter) {
		c.includeTags = tags
	}
}

func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile converts the OpenAPI document at path into suite YAML.
func (c *Converter) ConvertFile(path string) ([]byte, error) {
	l := openapi3.NewLoader()
	l.IsExternalRefsAllowed = true

	doc, err := l.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load OpenAPI spec: %w", err)
	}

	file, err := c.Convert(doc)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(file)
}

// Convert converts an OpenAPI document into a suite file model.
func (c *Converter) Convert(doc *openapi3.T) (*loader.File, error) {
	if err := doc.Validate(context.Background()); err != nil {
		// Some specs have minor validation issues; warn and continue.
		fmt.Fprintf(os.Stderr, "warning: OpenAPI spec validation: %v\n", err)
	}

	file := &loader.File{}
	if doc.Info != nil {
		file.Name = doc.Info.Title
	}

	baseURL := c.baseURL
	if baseURL == "" {
		baseURL = serverURL(doc)
	}
	file.Vars = map[string]any{"base": baseURL}

	suites := make(map[string]*loader.SuiteDef)
	var order []string
	suiteFor := func(tag string) *loader.SuiteDef {
		if s, ok := suites[tag]; ok {
			return s
		}
		s := &loader.SuiteDef{Name: tag}
		suites[tag] = s
		order = append(order, tag)
		return s
	}

	paths := doc.Paths.Map()
	sorted := make([]string, 0, len(paths))
	for path := range paths {
		sorted = append(sorted, path)
	}
	sort.Strings(sorted)

	for _, path := range sorted {
		item := paths[path]
		if item == nil {
			continue
		}

		for _, op := range []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", item.Get},
			{"POST", item.Post},
			{"PUT", item.Put},
			{"PATCH", item.Patch},
			{"DELETE", item.Delete},
		} {
			if op.op == nil || !c.included(op.op) {
				continue
			}

			tag := "api"
			if len(op.op.Tags) > 0 {
				tag = op.op.Tags[0]
			}

			suiteFor(tag).Actions = append(suiteFor(tag).Actions, &loader.ActionDef{
				Test: &loader.TestDef{
					Name: testName(op.method, path, op.op),
					Request: &loader.RequestDef{
						Method: op.method,
						URL:    "{{base}}" + templatePath(path),
					},
					Expect: map[string]any{
						"status": successStatus(op.op),
					},
				},
			})
		}
	}

	for _, tag := range order {
		file.Suites = append(file.Suites, suites[tag])
	}
	if len(file.Suites) == 0 {
		return nil, fmt.Errorf("spec declares no convertible operations")
	}
	return file, nil
}

func (c *Converter) included(op *openapi3.Operation) bool {
	if len(c.includeTags) == 0 {
		return true
	}
	for _, tag := range op.Tags {
		for _, want := range c.includeTags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

func serverURL(doc *openapi3.T) string {
	if len(doc.Servers) > 0 && doc.Servers[0].URL != "" {
		return doc.Servers[0].URL
	}
	return "http://localhost:3000"
}

func testName(method, path string, op *openapi3.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	if op.OperationID != "" {
		return op.OperationID
	}
	return fmt.Sprintf("%s %s", method, path)
}

// templatePath rewrites {param} path segments into template placeholders
// so the generated file resolves them against suite variables.
func templatePath(path string) string {
	replaced := strings.ReplaceAll(path, "{", "{{")
	return strings.ReplaceAll(replaced, "}", "}}")
}

// successStatus picks the lowest declared 2xx status, defaulting to 200.
func successStatus(op *openapi3.Operation) int {
	if op.Responses == nil {
		return 200
	}

	best := 0
	for code := range op.Responses.Map() {
		n, err := strconv.Atoi(code)
		if err != nil || n < 200 || n > 299 {
			continue
		}
		if best == 0 || n < best {
			best = n
		}
	}
	if best == 0 {
		return 200
	}
	return best
}
