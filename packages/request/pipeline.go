package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/restsuite/restsuite/packages/capture"
	httpx "github.com/restsuite/restsuite/packages/http"
	"github.com/restsuite/restsuite/packages/resource"
	"github.com/restsuite/restsuite/packages/suite"
)

// Params describes a single HTTP request to issue.
type Params struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
	Body    any
}

// ParamsFunc produces request parameters from the current execution
// context, so captured values and suite variables resolve at send time
// rather than at compile time.
type ParamsFunc func(sc suite.Context) (*Params, error)

// Static wraps fixed parameters in a ParamsFunc.
func Static(p *Params) ParamsFunc {
	return func(suite.Context) (*Params, error) { return p, nil }
}

// Mock is a canned response served in place of a real round trip.
type Mock struct {
	Status  int
	Headers map[string]string
	Body    any
}

// Build assembles the send pipeline into a suite request function.
//
// When mock is non-nil the pipeline short-circuits before the client and
// synthesizes the response locally. A transport-level failure is returned
// as an error; an HTTP error status is not: the client surfaces it as a
// ResponseError carrying the full response, and the pipeline recovers
// that response so checks can assert on it. Captured values land on the
// resulting resource and in the execution context for later requests.
func Build(paramsFn ParamsFunc, mock *Mock, captures map[string]string, client *httpx.Client) suite.RequestFunc {
	return func(ctx context.Context, sc suite.Context) (*resource.Resource, error) {
		var resp *httpx.Response
		var err error

		if mock != nil {
			resp, err = mockResponse(mock)
		} else {
			params, perr := paramsFn(sc)
			if perr != nil {
				return nil, perr
			}
			resp, err = send(ctx, client, params)
		}
		if err != nil {
			return nil, err
		}

		captured := capture.ExtractAll(resp, captures)
		for k, v := range captured {
			sc.Set(k, v)
		}
		return resource.New(resp, captured), nil
	}
}

func send(ctx context.Context, client *httpx.Client, params *Params) (*httpx.Response, error) {
	if err := httpx.ValidateURL(params.URL); err != nil {
		return nil, err
	}

	req := httpx.NewRequest(params.Method, params.URL)
	for k, v := range params.Headers {
		req.SetHeader(k, v)
	}
	for k, v := range params.Query {
		req.SetQueryParam(k, v)
	}
	if params.Body != nil {
		body, err := encodeBody(params.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		req.SetBody(string(body))
		if req.Headers["Content-Type"] == "" {
			req.SetHeader("Content-Type", "application/json")
		}
	}

	resp, err := client.Do(ctx, req)
	if err != nil {
		var respErr *httpx.ResponseError
		if errors.As(err, &respErr) && respErr.Response != nil {
			return respErr.Response, nil
		}
		return nil, err
	}
	return resp, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(body)
	}
}

func mockResponse(mock *Mock) (*httpx.Response, error) {
	status := mock.Status
	if status == 0 {
		status = 200
	}

	headers := make(map[string]string, len(mock.Headers)+1)
	for k, v := range mock.Headers {
		headers[k] = v
	}

	var body []byte
	if mock.Body != nil {
		encoded, err := encodeBody(mock.Body)
		if err != nil {
			return nil, fmt.Errorf("encode mock body: %w", err)
		}
		body = encoded
		if headers["Content-Type"] == "" {
			headers["Content-Type"] = "application/json"
		}
	}

	return &httpx.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, statusText(status)),
		Headers:    headers,
		Body:       body,
	}, nil
}

func statusText(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "OK"
	case status >= 400 && status < 500:
		return "Client Error"
	case status >= 500:
		return "Server Error"
	default:
		return "Response"
	}
}
