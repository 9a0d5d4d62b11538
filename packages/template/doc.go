// Package template resolves {{name}} placeholders in titles, URLs, headers
// and expected assertion values.
//
// Placeholders resolve from a per-call data mapping (e.g. the per-iteration
// suite parameter), from resolver-level variables, or from the process
// environment via the {{$NAME}} form. Dotted paths traverse nested maps and
// slices. Unresolved placeholders are left in place so they stay visible in
// failure output.
package template
