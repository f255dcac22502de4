package earl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ldconformance/ld-test-harness/framework"
	"github.com/ldconformance/ld-test-harness/framework/helpers"
	"github.com/ldconformance/ld-test-harness/framework/ldtest"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// ErrReportAlreadyWritten is returned if a report is written more than once.
var ErrReportAlreadyWritten = errors.New("EARL report has already been written")

// Subject is a test that assertions can be made about.
type Subject interface {
	// IRI identifies the test in the report.
	IRI() string
	Title() string
	Expected() ldvalue.Value
	Actual() ldvalue.Value
}

// Assertion is the outcome of one test.
type Assertion struct {
	Test   string
	Passed bool
	Date   time.Time
}

// Option is an optional setting for NewReport.
type Option = helpers.ConfigOptionFunc[Report]

// WithOutputFile makes EndLog write the report to the given file.
func WithOutputFile(path string) Option {
	return func(r *Report) error {
		r.outputPath = path
		return nil
	}
}

// StopOnFailure makes the report cancel the run, by calling cancel, as soon as a test fails.
func StopOnFailure(cancel context.CancelFunc) Option {
	return func(r *Report) error {
		r.cancel = cancel
		return nil
	}
}

// WithConsole sets where progress messages are printed. The default is standard output.
func WithConsole(out io.Writer) Option {
	return func(r *Report) error {
		r.console = out
		return nil
	}
}

func withClock(now func() time.Time) Option {
	return func(r *Report) error {
		r.now = now
		return nil
	}
}

// Report accumulates one assertion for every tracked test that finishes. It implements
// ldtest.TestLogger, so it can be attached to a run alongside the other loggers.
type Report struct {
	project    Project
	created    time.Time
	assertions []Assertion
	tracked    map[string]Subject
	cancel     context.CancelFunc
	console    io.Writer
	outputPath string
	written    bool
	now        func() time.Time
}

// NewReport creates an empty report about the given project.
func NewReport(project Project, options ...Option) (*Report, error) {
	r := &Report{
		project: project,
		tracked: make(map[string]Subject),
		console: os.Stdout,
		now:     time.Now,
	}
	if err := helpers.ApplyOptions(r, options...); err != nil {
		return nil, err
	}
	r.created = r.now().UTC()
	return r, nil
}

// Track associates a test scope with the test it runs. Scopes that are not tracked, such as
// the ones that group tests together, do not produce assertions.
func (r *Report) Track(id ldtest.TestID, subject Subject) {
	r.tracked[id.String()] = subject
}

// AddAssertion records the outcome of a test, dated now.
func (r *Report) AddAssertion(test string, passed bool) {
	r.assertions = append(r.assertions, Assertion{Test: test, Passed: passed, Date: r.now().UTC()})
}

// Assertions returns the assertions recorded so far, in order.
func (r *Report) Assertions() []Assertion {
	return append([]Assertion(nil), r.assertions...)
}

func (r *Report) TestStarted(ldtest.TestID) {}

func (r *Report) TestError(ldtest.TestID, error) {}

func (r *Report) TestFinished(id ldtest.TestID, result ldtest.TestResult, _ framework.CapturedOutput) {
	subject, ok := r.tracked[id.String()]
	if !ok {
		return
	}
	r.AddAssertion(subject.IRI(), !result.Failed())
	if result.Failed() && r.cancel != nil {
		fmt.Fprintf(r.console, "\nFAILED Test: %s\n", subject.Title())
		fmt.Fprintf(r.console, "EXPECTED: %s\n", helpers.CanonicalizedJSONString(subject.Expected()))
		fmt.Fprintf(r.console, "ACTUAL: %s\n", helpers.CanonicalizedJSONString(subject.Actual()))
		r.cancel()
	}
}

func (r *Report) TestSkipped(id ldtest.TestID, _ string) {
	if subject, ok := r.tracked[id.String()]; ok {
		fmt.Fprintf(r.console, "Test '%s' has been skipped.\n", subject.IRI())
	}
}

// EndLog writes the report if an output file was configured.
func (r *Report) EndLog(ldtest.Results) error {
	if r.outputPath == "" {
		return nil
	}
	fmt.Fprintf(r.console, "Writing EARL report to: %s\n", r.outputPath)
	return r.Write(r.outputPath)
}

// Write writes the report to a file.
func (r *Report) Write(path string) error {
	if r.written {
		return ErrReportAlreadyWritten
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("can't create EARL report file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := r.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

// WriteTo writes the report as a JSON-LD document. A report can only be written once.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	if r.written {
		return 0, ErrReportAlreadyWritten
	}
	data, err := r.serialize()
	if err != nil {
		return 0, err
	}
	r.written = true
	n, err := w.Write(data)
	return int64(n), err
}
