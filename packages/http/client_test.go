package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	c := NewClient()
	resp, err := c.Do(context.Background(), NewRequest("GET", server.URL))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsJSON())
	assert.True(t, resp.IsSuccess())
	assert.JSONEq(t, `{"ok": true}`, resp.BodyString())
	assert.Greater(t, resp.Duration, time.Duration(0))
}

func TestClient_Do_QueryParamsAndHeaders(t *testing.T) {
	var gotQuery, gotHeader, gotDefault string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("page")
		gotHeader = r.Header.Get("X-Test")
		gotDefault = r.Header.Get("X-Default")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(WithDefaultHeaders(map[string]string{"X-Default": "always"}))
	req := NewRequest("GET", server.URL).
		SetQueryParam("page", "2").
		SetHeader("X-Test", "yes")

	_, err := c.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "2", gotQuery)
	assert.Equal(t, "yes", gotHeader)
	assert.Equal(t, "always", gotDefault)
}

func TestClient_Do_ErrorOnStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "missing"}`))
	}))
	defer server.Close()

	c := NewClient(WithErrorOnStatus(400))
	resp, err := c.Do(context.Background(), NewRequest("GET", server.URL))

	require.Error(t, err)
	assert.Nil(t, resp)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	require.NotNil(t, respErr.Response)
	assert.Equal(t, 404, respErr.Response.StatusCode)
	assert.Contains(t, respErr.Response.BodyString(), "missing")
}

func TestClient_Do_StatusBelowThresholdIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(WithErrorOnStatus(400))
	resp, err := c.Do(context.Background(), NewRequest("GET", server.URL))

	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestClient_Do_RateLimited(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(WithRateLimit(1000, 1))
	for i := 0; i < 3; i++ {
		_, err := c.Do(context.Background(), NewRequest("GET", server.URL))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, hits)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://example.com/path", false},
		{"valid https", "https://example.com", false},
		{"missing host", "http://", true},
		{"bad scheme", "ftp://example.com", true},
		{"garbage", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequest_BuildURL(t *testing.T) {
	req := NewRequest("GET", "http://example.com/users")
	assert.Equal(t, "http://example.com/users", req.BuildURL())

	req.SetQueryParam("limit", "10")
	assert.Equal(t, "http://example.com/users?limit=10", req.BuildURL())
}

func TestResponse_Header(t *testing.T) {
	resp := &Response{Headers: map[string]string{"Content-Type": "application/json"}}
	assert.Equal(t, "application/json", resp.Header("content-type"))
	assert.Equal(t, "", resp.Header("X-Missing"))
}
