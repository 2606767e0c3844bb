package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotCounters(t *testing.T) {
	m := New()

	m.RecordCommand(true)
	m.RecordCommand(false)
	m.RecordModelRequest(true)
	m.RecordModelRequest(false)
	m.RecordTokens(100, 40)
	m.RecordToolCall("notes.create", true)
	m.RecordToolCall("notes.create", true)
	m.RecordToolCall("notes.delete", false)
	m.RecordToolCancelled()
	m.RecordResponseTime(100 * time.Millisecond)
	m.RecordResponseTime(300 * time.Millisecond)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.CommandsTotal)
	assert.Equal(t, int64(1), s.CommandsFailed)
	assert.Equal(t, int64(2), s.ModelRequests)
	assert.Equal(t, int64(1), s.ModelFailures)
	assert.Equal(t, int64(100), s.TokensPrompt)
	assert.Equal(t, int64(40), s.TokensCompletion)
	assert.Equal(t, int64(3), s.ToolCallsTotal)
	assert.Equal(t, int64(2), s.ToolCallsSuccess)
	assert.Equal(t, int64(1), s.ToolCallsFailed)
	assert.Equal(t, int64(1), s.ToolCallsCancelled)
	assert.Equal(t, int64(2), s.ToolCalls["notes.create"])
	assert.Equal(t, 200*time.Millisecond, s.AvgResponseTime)
}

func TestPrometheusExposition(t *testing.T) {
	m := New()
	m.RecordCommand(true)
	m.RecordToolCall("clock.now", true)

	out := m.Prometheus()
	assert.Contains(t, out, "# TYPE aigenda_commands_total counter")
	assert.Contains(t, out, "aigenda_commands_total 1")
	assert.Contains(t, out, `aigenda_tool_invocations_total{tool="clock.now"} 1`)
	assert.True(t, strings.Contains(out, "aigenda_uptime_seconds"))
}
