package resource

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/restsuite/restsuite/packages/http"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// CheckFunc asserts an expectation against the resource. ctx is the shared
// suite context; most checks ignore it.
type CheckFunc func(expected any, ctx map[string]any) error

// Resource is the mutable carrier of a response and its captured data.
type Resource struct {
	Res          *http.Response
	CapturedData map[string]any

	bodyJSON gjson.Result
	checks   map[string]CheckFunc
}

var checkNames = []string{
	"status",
	"contentType",
	"headers",
	"data",
	"fields",
	"capturedData",
	"contains",
	"matches",
	"schema",
}

// Known reports whether name is a supported check, letting builders reject
// unknown assertion names before anything is registered.
func Known(name string) bool {
	for _, n := range checkNames {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns the supported check names.
func Names() []string {
	out := make([]string, len(checkNames))
	copy(out, checkNames)
	return out
}

func New(resp *http.Response, captured map[string]any) *Resource {
	r := &Resource{
		Res:          resp,
		CapturedData: captured,
	}
	if resp.IsJSON() {
		r.bodyJSON = gjson.ParseBytes(resp.Body)
	}
	r.checks = map[string]CheckFunc{
		"status":       r.checkStatus,
		"contentType":  r.checkContentType,
		"headers":      r.checkHeaders,
		"data":         r.checkData,
		"fields":       r.checkFields,
		"capturedData": r.checkCapturedData,
		"contains":     r.checkContains,
		"matches":      r.checkMatches,
		"schema":       r.checkSchema,
	}
	return r
}

// Check returns the named check, or false if the name is not supported.
func (r *Resource) Check(name string) (CheckFunc, bool) {
	fn, ok := r.checks[name]
	return fn, ok
}

// Data returns the decoded JSON body, or the raw body string for non-JSON
// responses.
func (r *Resource) Data() any {
	if r.bodyJSON.Exists() {
		return r.bodyJSON.Value()
	}
	return r.Res.BodyString()
}

func (r *Resource) checkStatus(expected any, _ map[string]any) error {
	want, ok := toFloat64(expected)
	if !ok {
		return fmt.Errorf("status: expected value must be numeric, got %v", expected)
	}
	if float64(r.Res.StatusCode) != want {
		return fmt.Errorf("status: expected %v, got %d", expected, r.Res.StatusCode)
	}
	return nil
}

func (r *Resource) checkContentType(expected any, _ map[string]any) error {
	want := fmt.Sprintf("%v", expected)
	if !strings.Contains(r.Res.ContentType(), want) {
		return fmt.Errorf("contentType: expected %q, got %q", want, r.Res.ContentType())
	}
	return nil
}

func (r *Resource) checkHeaders(expected any, _ map[string]any) error {
	want, ok := toStringMap(expected)
	if !ok {
		return fmt.Errorf("headers: expected value must be a mapping, got %T", expected)
	}
	for name, value := range want {
		got := r.Res.Header(name)
		if got != fmt.Sprintf("%v", value) {
			return fmt.Errorf("headers: %s: expected %v, got %q", name, value, got)
		}
	}
	return nil
}

func (r *Resource) checkData(expected any, _ map[string]any) error {
	if err := equals(r.Data(), expected); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	return nil
}

func (r *Resource) checkFields(expected any, _ map[string]any) error {
	want, ok := toStringMap(expected)
	if !ok {
		return fmt.Errorf("fields: expected value must be a mapping of paths, got %T", expected)
	}
	if !r.bodyJSON.Exists() {
		return fmt.Errorf("fields: response body is not JSON")
	}
	for path, value := range want {
		result := r.bodyJSON.Get(path)
		if !result.Exists() {
			return fmt.Errorf("fields: %s: no value at path", path)
		}
		if err := equals(result.Value(), value); err != nil {
			return fmt.Errorf("fields: %s: %w", path, err)
		}
	}
	return nil
}

func (r *Resource) checkCapturedData(expected any, _ map[string]any) error {
	want, ok := toStringMap(expected)
	if !ok {
		return fmt.Errorf("capturedData: expected value must be a mapping, got %T", expected)
	}
	for name, value := range want {
		got, present := r.CapturedData[name]
		if !present {
			return fmt.Errorf("capturedData: %s: nothing captured", name)
		}
		if err := equals(got, value); err != nil {
			return fmt.Errorf("capturedData: %s: %w", name, err)
		}
	}
	return nil
}

func (r *Resource) checkContains(expected any, _ map[string]any) error {
	want := fmt.Sprintf("%v", expected)
	if !strings.Contains(r.Res.BodyString(), want) {
		return fmt.Errorf("contains: body does not contain %q", want)
	}
	return nil
}

func (r *Resource) checkMatches(expected any, _ map[string]any) error {
	pattern := fmt.Sprintf("%v", expected)
	pattern = strings.TrimPrefix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("matches: invalid pattern: %v", err)
	}
	if !re.MatchString(r.Res.BodyString()) {
		return fmt.Errorf("matches: body does not match /%s/", pattern)
	}
	return nil
}

func (r *Resource) checkSchema(expected any, _ map[string]any) error {
	schemaJSON, err := json.Marshal(expected)
	if err != nil {
		return fmt.Errorf("schema: invalid schema: %v", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(r.Res.Body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema: validation error: %v", err)
	}

	if result.Valid() {
		return nil
	}

	var msgs []string
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
}

func equals(actual, expected any) error {
	if reflect.DeepEqual(actual, expected) {
		return nil
	}

	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk && actualNum == expectedNum {
		return nil
	}

	if fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected) {
		return nil
	}

	return fmt.Errorf("expected %v, got %v", expected, actual)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out, true
	}
	return nil, false
}
