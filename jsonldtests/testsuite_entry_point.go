package jsonldtests

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/ldconformance/ld-test-harness/earl"
	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/framework/opt"
	"github.com/ldconformance/ld-test-harness/servicedef"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Processor runs operations on the JSON-LD processor under test.
type Processor interface {
	Invoke(t *ldtest.T, command string, args suite.Args) (ldvalue.Value, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(t *ldtest.T, command string, args suite.Args) (ldvalue.Value, error)

func (f ProcessorFunc) Invoke(t *ldtest.T, command string, args suite.Args) (ldvalue.Value, error) {
	return f(t, command, args)
}

// Tracker is told which test each scope runs before the scope starts. *earl.Report is one.
type Tracker interface {
	Track(id ldtest.TestID, subject earl.Subject)
}

// SuiteConfig holds everything RunConformanceSuite needs besides the tests.
type SuiteConfig struct {
	Processor    Processor
	Capabilities []string
	Filter       ldtest.Filter
	TestLogger   ldtest.TestLogger
	Tracker      Tracker
	// Cancellation stops the run early once it is done.
	Cancellation context.Context
	// Output receives the description of filters; it defaults to io.Discard.
	Output io.Writer
}

// TestContext is the value available from ldtest.T.Context() during a run.
type TestContext struct {
	processor Processor
	tracker   Tracker
}

func requireContext(t *ldtest.T) TestContext {
	if c, ok := t.Context().(TestContext); ok {
		return c
	}
	panic("TestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// RunConformanceSuite runs every classification in order. Each test runs in the scope
// "<classification>/<test name>"; a classification whose capability the processor lacks is
// skipped as a whole.
func RunConformanceSuite(index *suite.Index, config SuiteConfig) ldtest.Results {
	out := config.Output
	if out == nil {
		out = io.Discard
	}
	if sdf, ok := config.Filter.(ldtest.SelfDescribingFilter); ok {
		sdf.Describe(out, config.Capabilities, servicedef.AllCapabilities())
	}

	testConfig := ldtest.TestConfiguration{
		Filter:       config.Filter,
		TestLogger:   config.TestLogger,
		Capabilities: config.Capabilities,
		Cancellation: config.Cancellation,
		Context: TestContext{
			processor: config.Processor,
			tracker:   config.Tracker,
		},
	}
	return ldtest.Run(testConfig, func(t *ldtest.T) {
		for _, c := range Classifications() {
			c := c
			tests := index.TestsOfAnyType(c.Tags...)
			if len(tests) == 0 {
				continue
			}
			t.Run(c.Name, func(t *ldtest.T) {
				t.RequireCapability(c.Command)
				runClassification(t, c, tests)
			})
		}
	})
}

func runClassification(t *ldtest.T, c Classification, tests []*suite.TestCase) {
	tracker := requireContext(t).tracker
	for _, tc := range tests {
		if t.Stopped() {
			return
		}
		tc := tc
		if tracker != nil {
			tracker.Track(t.ID().Plus(tc.Name), tc)
		}
		t.Run(tc.Name, func(t *ldtest.T) {
			runTest(t, c, tc)
		})
	}
}

func runTest(t *ldtest.T, c Classification, tc *suite.TestCase) {
	processor := requireContext(t).processor
	t.Debug("test: %s", tc.ID)
	if purpose := tc.Property("purpose"); purpose.IsDefined() {
		t.Debug("purpose: %s", purpose.Value())
	}

	var args suite.Args
	input, err := tc.ReadProperty(suite.PropertyInput)
	switch {
	case err == nil && input.IsDefined():
		args.Input = input.Value()
	case err == nil || errors.Is(err, fs.ErrNotExist):
		// the processor fetches it through the document loader, which reports the failure
		t.Debug("input is not available locally (%v); passing its URL instead", err)
		args.Input = ldvalue.String(tc.Base)
	default:
		t.Errorf("unable to read %s: %s", suite.PropertyInput, err)
		t.FailNow()
	}
	if c.UsesContext {
		args.Context = requireFixture(t, tc, suite.PropertyContext)
	}
	if c.UsesFrame {
		args.Frame = requireFixture(t, tc, suite.PropertyFrame)
	}

	var overrides []suite.OptionsOverride
	if c.Format != "" {
		overrides = append(overrides, suite.WithFormat(c.Format))
	}
	options, err := tc.CreateOptions(overrides...)
	if err != nil {
		t.Errorf("unable to create options: %s", err)
		t.FailNow()
	}
	args.Options = options

	tc.Run(t, suite.OperationFunc(func(args suite.Args) (ldvalue.Value, error) {
		return processor.Invoke(t, c.Command, args)
	}), args)
}

func requireFixture(t *ldtest.T, tc *suite.TestCase, property string) opt.Maybe[ldvalue.Value] {
	value, err := tc.ReadProperty(property)
	if err != nil {
		t.Errorf("unable to read %s: %s", property, err)
		t.FailNow()
	}
	return value
}
