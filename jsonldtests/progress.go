package jsonldtests

import (
	"io"

	"github.com/ldconformance/ld-test-harness/framework"
	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressLogger is a TestLogger that shows a progress bar instead of a line per test.
type ProgressLogger struct {
	bar           *progressbar.ProgressBar
	classified    map[string]int
	passed        int
	failed        int
	skipped       int
	total         int
	failedTestIDs []ldtest.TestID
}

// NewProgressLogger creates a ProgressLogger for a run of the index's classified tests.
func NewProgressLogger(index *suite.Index, out io.Writer) *ProgressLogger {
	p := &ProgressLogger{classified: make(map[string]int)}
	for _, c := range Classifications() {
		n := len(index.TestsOfAnyType(c.Tags...))
		p.classified[c.Name] = n
		p.total += n
	}
	p.bar = progressbar.NewOptions(p.total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(p.description()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

func (p *ProgressLogger) description() string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", p.passed) +
		" | " +
		color.RedString("failed: %d", p.failed) +
		" | " +
		color.YellowString("skipped: %d]", p.skipped)
}

func (p *ProgressLogger) update() {
	_ = p.bar.Set(p.passed + p.failed + p.skipped)
	p.bar.Describe(p.description())
}

func (p *ProgressLogger) TestStarted(ldtest.TestID) {}

func (p *ProgressLogger) TestError(ldtest.TestID, error) {}

func (p *ProgressLogger) TestFinished(id ldtest.TestID, result ldtest.TestResult, _ framework.CapturedOutput) {
	if len(id) != 2 {
		return
	}
	if result.Failed() {
		p.failed++
		p.failedTestIDs = append(p.failedTestIDs, id)
	} else {
		p.passed++
	}
	p.update()
}

func (p *ProgressLogger) TestSkipped(id ldtest.TestID, _ string) {
	switch len(id) {
	case 1:
		p.skipped += p.classified[id[0]]
	case 2:
		p.skipped++
	default:
		return
	}
	p.update()
}

// EndLog completes the bar and lists the failed tests.
func (p *ProgressLogger) EndLog(ldtest.Results) error {
	_ = p.bar.Finish()
	for _, id := range p.failedTestIDs {
		color.Red("FAILED: %s", id)
	}
	return nil
}

// Counts returns the number of tests that passed, failed and were skipped so far.
func (p *ProgressLogger) Counts() (passed, failed, skipped int) {
	return p.passed, p.failed, p.skipped
}
