package ldtest

import (
	"context"
	"testing"

	"github.com/ldconformance/ld-test-harness/framework"

	"github.com/stretchr/testify/assert"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.events = append(r.events, "start "+id.String()) }
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+err.Error())
}
func (r *recordingTestLogger) TestFinished(id TestID, result TestResult, _ framework.CapturedOutput) {
	if result.Failed() {
		r.events = append(r.events, "failed "+id.String())
	} else {
		r.events = append(r.events, "passed "+id.String())
	}
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+" ("+reason+")")
}
func (r *recordingTestLogger) EndLog(Results) error { return nil }

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	myCapabilities := framework.Capabilities{"expand", "compact"}
	config := TestConfiguration{
		Context:      myContextValue,
		Capabilities: myCapabilities,
	}
	_ = Run(config, func(ldt *T) {
		assert.Equal(t, myContextValue, ldt.Context())
		assert.Equal(t, myCapabilities, ldt.Capabilities())

		ldt.Run("subtest", func(ldt1 *T) {
			assert.Equal(t, myContextValue, ldt1.Context())
			assert.Equal(t, myCapabilities, ldt1.Capabilities())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("", func(ldt *T) {
			executed1 = true
			ldt.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {})
			ldt0.Run("subtest2", func(ldt2 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)
	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Nil(t, result.Tests[3].TestID)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {})
			ldt0.Run("subtest2", func(ldt2 *T) {
				ldt2.Errorf("failed because %s", "reasons")
				ldt2.Errorf("and failed some more")
			})
		})
	})

	assert.False(t, result.OK())
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, TestID{"parent", "subtest2"}, result.Failures[0].TestID)
	assert.True(t, result.Failures[0].Failed())
	if assert.Len(t, result.Tests[1].Errors, 2) {
		assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
		assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())
	}
	assert.False(t, result.Tests[2].Failed())
}

func TestTestScopePanicIsReportedAsFailure(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("boom", func(ldt *T) {
			panic("oops")
		})
	})
	if assert.Len(t, result.Failures, 1) {
		assert.Contains(t, result.Failures[0].Errors[0].Error(), "unexpected panic in test: oops")
	}
}

func TestTestScopeSkippedResult(t *testing.T) {
	logger := &recordingTestLogger{}
	result := Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				ldt1.Skip()
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				ldt2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Equal(t, []TestResult{{TestID: TestID{"parent", "subtest1"}}, {TestID: TestID{"parent", "subtest2"}}},
		result.Skipped)
	assert.Contains(t, logger.events, "skipped parent/subtest2 (why not)")
}

func TestTestScopeRequireCapabilitySkips(t *testing.T) {
	result := Run(TestConfiguration{Capabilities: []string{"expand"}}, func(ldt *T) {
		ldt.Run("frame", func(ldt *T) {
			ldt.RequireCapability("frame")
			ldt.Errorf("should not get here")
		})
	})
	assert.True(t, result.OK())
	assert.Len(t, result.Skipped, 1)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(ldt *T) {
		ldt.Run("a", func(ldt0 *T) {
			ldt0.Run("sub1a", func(ldt1 *T) {})
		})
		ldt.Run("b", func(ldt0 *T) {
			ldt0.Run("sub1b", func(ldt1 *T) {})
			ldt0.Run("sub2b", func(ldt1 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
	assert.Equal(t, []TestResult{{TestID: TestID{"a"}}}, result.Skipped)
}

func TestTestScopeStopsStartingTestsOnceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := &recordingTestLogger{}
	var ran []string

	result := Run(TestConfiguration{TestLogger: logger, Cancellation: ctx}, func(ldt *T) {
		ldt.Run("expand", func(ldt *T) {
			ldt.Run("1", func(ldt *T) { ran = append(ran, "1") })
			ldt.Run("2", func(ldt *T) {
				ran = append(ran, "2")
				ldt.Errorf("mismatch")
				cancel()
			})
			ldt.Run("3", func(ldt *T) { ran = append(ran, "3") })
		})
		ldt.Run("compact", func(ldt *T) { ran = append(ran, "compact") })
	})

	assert.Equal(t, []string{"1", "2"}, ran)
	assert.Len(t, result.Failures, 1)
	assert.NotContains(t, logger.events, "start expand/3")
	assert.Contains(t, logger.events, "failed expand/2")
}

func TestDeferredCleanupsRunInReverseOrder(t *testing.T) {
	var order []int
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("x", func(ldt *T) {
			ldt.Defer(func() { order = append(order, 1) })
			ldt.Defer(func() { order = append(order, 2) })
			ldt.FailNow()
		})
	})
	assert.Equal(t, []int{2, 1}, order)
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var captured framework.CapturedOutput
	logger := &capturingOutputLogger{out: &captured}
	_ = Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("x", func(ldt *T) {
			ldt.Debug("loading %s", "doc")
			ldt.DebugLogger().Println("done")
		})
	})
	if assert.Len(t, captured, 2) {
		assert.Equal(t, "loading doc", captured[0].Message)
		assert.Equal(t, "done", captured[1].Message)
	}
}

type capturingOutputLogger struct {
	recordingTestLogger
	out *framework.CapturedOutput
}

func (c *capturingOutputLogger) TestFinished(_ TestID, _ TestResult, output framework.CapturedOutput) {
	*c.out = output
}
