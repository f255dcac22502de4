package jsonldtests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/servicedef"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/acarl005/stripansi"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCountsOutcomesPerClassification(t *testing.T) {
	index, err := suite.LoadManifestFile(testSuiteManifest)
	require.NoError(t, err)
	p := &recordingProcessor{result: func(command string, _ suite.Args) (ldvalue.Value, error) {
		return ldvalue.String("wrong"), nil
	}}

	results := RunConformanceSuite(index, SuiteConfig{
		Processor:    p,
		Capabilities: []string{servicedef.CapabilityCompact, servicedef.CapabilityFlatten},
		Filter:       ldtest.RegexFilters{MustNotMatch: mustParsePatterns(t, "flatten")},
	})
	summaries := Summarize(index, results)

	assert.Equal(t, []ClassificationSummary{
		{Name: "expand", Tests: 9, Skipped: 9},
		{Name: "compact", Tests: 1, Failed: 1},
		{Name: "flatten", Tests: 1, Skipped: 1},
		{Name: "toRdf", Tests: 1, Skipped: 1},
		{Name: "fromRdf", Tests: 1, Skipped: 1},
	}, summaries)
}

func TestWriteSummaryRendersTable(t *testing.T) {
	var out bytes.Buffer
	WriteSummary(&out, "run-1", []ClassificationSummary{
		{Name: "expand", Tests: 3, Passed: 2, Failed: 1},
		{Name: "compact", Tests: 2, Passed: 1, Skipped: 1},
	})

	s := stripansi.Strip(out.String())
	assert.Contains(t, strings.ToLower(s), "run-1")
	assert.Contains(t, s, "CLASSIFICATION")
	assert.Regexp(t, `expand[\s|│]+3[\s|│]+2[\s|│]+1[\s|│]+0`, s)
	assert.Regexp(t, `compact[\s|│]+2[\s|│]+1[\s|│]+0[\s|│]+1`, s)
	assert.Regexp(t, `TOTAL[\s|│]+5[\s|│]+3[\s|│]+1[\s|│]+1`, s)
}
