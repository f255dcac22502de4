package jsonldtests

import (
	"fmt"
	"io"

	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ClassificationSummary counts the outcomes of one classification's tests. Tests that did not
// run, because of a filter, a missing capability or a stopped run, count as skipped.
type ClassificationSummary struct {
	Name    string
	Tests   int
	Passed  int
	Failed  int
	Skipped int
}

// Summarize counts the outcomes of a run for each classification that has tests.
func Summarize(index *suite.Index, results ldtest.Results) []ClassificationSummary {
	var ret []ClassificationSummary
	for _, c := range Classifications() {
		total := len(index.TestsOfAnyType(c.Tags...))
		if total == 0 {
			continue
		}
		s := ClassificationSummary{Name: c.Name, Tests: total}
		for _, r := range results.Tests {
			if len(r.TestID) != 2 || r.TestID[0] != c.Name {
				continue
			}
			if r.Failed() {
				s.Failed++
			} else {
				s.Passed++
			}
		}
		s.Skipped = s.Tests - s.Passed - s.Failed
		if s.Skipped < 0 {
			s.Skipped = 0
		}
		ret = append(ret, s)
	}
	return ret
}

// WriteSummary prints the counts as a table.
func WriteSummary(out io.Writer, runID string, summaries []ClassificationSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Conformance results (run %s)", runID))
	t.AppendHeader(table.Row{"CLASSIFICATION", "TESTS", "PASSED", "FAILED", "SKIPPED"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "TESTS", Align: text.AlignRight},
		{Name: "PASSED", Align: text.AlignRight},
		{Name: "FAILED", Align: text.AlignRight},
		{Name: "SKIPPED", Align: text.AlignRight},
	})

	var total ClassificationSummary
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Name, s.Tests, s.Passed, s.Failed, s.Skipped})
		total.Tests += s.Tests
		total.Passed += s.Passed
		total.Failed += s.Failed
		total.Skipped += s.Skipped
	}
	t.AppendFooter(table.Row{"TOTAL", total.Tests, total.Passed, total.Failed, total.Skipped})

	switch {
	case total.Failed > 0:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case total.Skipped > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()
}
