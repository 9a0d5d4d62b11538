// Package framework is the suite/test registration and execution engine.
//
// Registration (Describe, Before, BeforeEach, It, AfterEach, After,
// Pending) is declaration only; nothing runs until Run is called. Run
// executes every declared suite in order and produces a RunStats record:
// suite setup failure marks the suite's remaining tests failed, a test
// failure is isolated to that test, and pending tests are counted but not
// executed.
package framework
