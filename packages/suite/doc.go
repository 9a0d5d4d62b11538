// Package suite turns a flat, ordered list of actions into a registered
// suite and builds the test cases themselves.
//
// An action list mixes scalar hooks (run once), each-hooks (run per test)
// and test actions produced by the case builders. Classify partitions the
// list into before/beforeEach/tests/afterEach/after by position relative to
// the test actions; Register declares the result with a framework instance.
// BuildTest and BuildTests are the only way to obtain test actions, so
// classification never depends on naming conventions.
package suite
