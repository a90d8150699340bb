package btest

import (
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a whole test run.
type Results struct {
	Tests               []TestResult
	Failures            []TestResult
	NonCriticalFailures []TestResult
}

// TestResult is the outcome of a single test scope.
type TestResult struct {
	TestID      TestID
	Errors      []error
	Explanation string
	NonCritical bool
}

// OK returns true if there were no critical failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test scope as the list of names of each enclosing scope,
// outermost first.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a copy of this TestID with one more name appended.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
