package framework

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapturingLoggerRecordsMessagesInOrder(t *testing.T) {
	var l CapturingLogger
	l.Printf("a %d", 1)
	l.Println("b", 2)

	out := l.Output()
	if assert.Len(t, out, 2) {
		assert.Equal(t, "a 1", out[0].Message)
		assert.Equal(t, "b 2", out[1].Message)
	}
}

func TestCapturedOutputToString(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out := CapturedOutput{{Time: ts, Message: "x"}, {Time: ts, Message: "y"}}
	assert.Equal(t,
		"  [2024-01-02 03:04:05.000] x\n  [2024-01-02 03:04:05.000] y",
		out.ToString("  "))
	assert.Equal(t, "", CapturedOutput(nil).ToString("  "))
}

func TestLoggerWithPrefix(t *testing.T) {
	var l CapturingLogger
	p := LoggerWithPrefix(&l, "[x] ")
	p.Printf("hello %s", "there")
	assert.Equal(t, "[x] hello there", l.Output()[0].Message)
}

func TestCapabilities(t *testing.T) {
	cs := Capabilities{"expand", "compact"}
	assert.True(t, cs.Has("expand"))
	assert.False(t, cs.Has("frame"))
}
