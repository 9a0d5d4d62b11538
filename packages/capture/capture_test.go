package capture

import (
	"testing"
	"time"

	"github.com/restsuite/restsuite/packages/http"
	"github.com/stretchr/testify/assert"
)

func jsonResponse() *http.Response {
	return &http.Response{
		StatusCode: 201,
		Status:     "201 Created",
		Headers:    map[string]string{"Content-Type": "application/json", "X-Request-Id": "abc-123"},
		Body:       []byte(`{"id": 42, "user": {"name": "ada"}, "items": [{"sku": "a1"}, {"sku": "b2"}]}`),
		Duration:   150 * time.Millisecond,
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(jsonResponse())

	tests := []struct {
		name  string
		spec  string
		want  any
		found bool
	}{
		{"status", "status", 201, true},
		{"duration", "duration", int64(150), true},
		{"header", "header.X-Request-Id", "abc-123", true},
		{"body path", "body.user.name", "ada", true},
		{"bare path", "id", float64(42), true},
		{"array path", "items.1.sku", "b2", true},
		{"missing path", "body.nope", nil, false},
		{"missing header", "header.X-Nope", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Extract(tt.spec)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractor_WholeBody(t *testing.T) {
	e := NewExtractor(jsonResponse())
	got, ok := e.Extract("body")
	assert.True(t, ok)
	assert.Contains(t, got.(map[string]any), "user")
}

func TestExtractor_NonJSONBody(t *testing.T) {
	resp := &http.Response{
		Headers: map[string]string{"Content-Type": "text/plain"},
		Body:    []byte("plain text"),
	}
	e := NewExtractor(resp)

	got, ok := e.Extract("body")
	assert.True(t, ok)
	assert.Equal(t, "plain text", got)

	_, ok = e.Extract("body.field")
	assert.False(t, ok)
}

func TestExtractAll(t *testing.T) {
	resp := jsonResponse()

	results := ExtractAll(resp, map[string]string{
		"userId":  "body.id",
		"reqId":   "header.X-Request-Id",
		"missing": "body.nope",
	})

	assert.Equal(t, float64(42), results["userId"])
	assert.Equal(t, "abc-123", results["reqId"])
	assert.NotContains(t, results, "missing")

	assert.Nil(t, ExtractAll(resp, nil))
}
