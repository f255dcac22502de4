package suite

import (
	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
)

// Args are the parameters of one operation call. Context and Frame are only set for the
// operations that take them.
type Args struct {
	Input   ldvalue.Value
	Context opt.Maybe[ldvalue.Value]
	Frame   opt.Maybe[ldvalue.Value]
	Options Options
}

// Operation is the processor operation under test.
type Operation interface {
	Invoke(args Args) (ldvalue.Value, error)
}

// OperationFunc adapts a function to Operation.
type OperationFunc func(args Args) (ldvalue.Value, error)

func (f OperationFunc) Invoke(args Args) (ldvalue.Value, error) { return f(args) }

// Run invokes the operation and checks its outcome against the test's expectation.
//
// A positive or unclassified test passes if the result equals the expected document. A
// negative test passes if the operation fails with the expected error code. An error from a
// positive test always fails the test; for any other test the error code is compared with
// the expected value.
func (tc *TestCase) Run(t *ldtest.T, op Operation, args Args) {
	expected, err := tc.expectedValue()
	if err != nil {
		t.Errorf("unable to read the expected result: %s", err)
		t.FailNow()
	}
	tc.expected = expected
	tc.actual = ldvalue.Null()

	result, err := op.Invoke(args)
	if err == nil {
		tc.actual = result
		if tc.negative {
			t.Errorf("expected an error (%s); one was not raised", expected)
			return
		}
		t.Debug("result: %s", result.JSONString())
		m.In(t).Assert(result, m.JSONEqual(expected))
		return
	}

	code := ErrorCode(err)
	tc.actual = ldvalue.String(code)
	if tc.positive {
		t.Errorf("operation failed: %s", err)
		t.FailNow()
	}
	t.Debug("operation failed: %s", err)
	m.In(t).Assert(tc.actual, m.JSONEqual(expected))
}

func (tc *TestCase) expectedValue() (ldvalue.Value, error) {
	if tc.negative {
		return tc.data.GetByKey(PropertyExpect), nil
	}
	expected, err := tc.ReadProperty(PropertyExpect)
	if err != nil {
		return ldvalue.Null(), err
	}
	return expected.OrElse(ldvalue.Null()), nil
}
