// Package request turns declarative request parameters into executable
// suite request functions. It owns the send pipeline: parameter
// resolution against the execution context, dispatch through the HTTP
// client (or a mock response without any transport), capture extraction,
// and the non-throwing error contract that hands checks a usable
// resource even when the server answered with an error status.
package request
