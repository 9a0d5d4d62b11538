// Package http is the transport layer for restsuite test execution.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts, redirects, proxy and TLS validation
//   - Default headers applied to every request
//   - Optional client-side rate limiting
//   - A ResponseError type that carries the response alongside the
//     failure, so callers can fall back to the partial result
package http
