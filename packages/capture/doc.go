// Package capture extracts derived values from HTTP responses.
//
// A capture spec is a plain string:
//   - "body.<path>" or a bare path: a gjson path into a JSON body
//   - "header.<Name>": a response header
//   - "status": the status code
//   - "duration": the response time in milliseconds
//
// Captured values are attached to the Resource for a test case and can be
// asserted on via the capturedData check.
package capture
