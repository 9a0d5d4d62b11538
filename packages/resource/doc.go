// Package resource carries the outcome of one test-case request: the HTTP
// response plus any captured data, and the named checks that can be applied
// to it.
//
// Checks are a fixed capability set resolved by name (status, contentType,
// headers, data, fields, capturedData, contains, matches, schema). A check
// receives the expected value and the shared suite context and returns an
// error on assertion failure.
package resource
