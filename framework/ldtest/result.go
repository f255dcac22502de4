package ldtest

import (
	"fmt"
	"strings"
)

// Results is the outcome of an entire run. Tests includes every scope that ran to completion,
// in completion order (so a parent scope comes after its children).
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID TestID
	Errors []error
}

// Failed returns true if the scope reported any errors.
func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the path of names from the root scope to a test.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

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
