package capture

import (
	"strings"

	"github.com/restsuite/restsuite/packages/http"
	"github.com/tidwall/gjson"
)

type Extractor struct {
	response *http.Response
	bodyJSON gjson.Result
}

func NewExtractor(resp *http.Response) *Extractor {
	e := &Extractor{
		response: resp,
	}
	if resp.IsJSON() {
		e.bodyJSON = gjson.ParseBytes(resp.Body)
	}
	return e
}

func (e *Extractor) Extract(spec string) (any, bool) {
	switch {
	case spec == "status":
		return e.response.StatusCode, true
	case spec == "duration":
		return e.response.DurationMs(), true
	case strings.HasPrefix(spec, "header."):
		return e.extractFromHeader(strings.TrimPrefix(spec, "header."))
	case spec == "body":
		return e.extractFromBody("")
	case strings.HasPrefix(spec, "body."):
		return e.extractFromBody(strings.TrimPrefix(spec, "body."))
	default:
		return e.extractFromBody(spec)
	}
}

func (e *Extractor) extractFromBody(path string) (any, bool) {
	if !e.bodyJSON.Exists() {
		if path == "" {
			return e.response.BodyString(), true
		}
		return nil, false
	}

	if path == "" {
		return e.bodyJSON.Value(), true
	}

	result := e.bodyJSON.Get(path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

func (e *Extractor) extractFromHeader(name string) (any, bool) {
	value := e.response.Header(name)
	if value == "" {
		return nil, false
	}
	return value, true
}

// ExtractAll applies every named capture spec to the response. Specs that
// match nothing are omitted from the result.
func ExtractAll(resp *http.Response, specs map[string]string) map[string]any {
	if len(specs) == 0 {
		return nil
	}

	extractor := NewExtractor(resp)
	results := make(map[string]any)

	for name, spec := range specs {
		if value, ok := extractor.Extract(spec); ok {
			results[name] = value
		}
	}

	return results
}
