package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigenda/aigenda/internal/memory"
	"github.com/aigenda/aigenda/internal/tools"
)

// fakeHandler records events and answers permission prompts from a script.
type fakeHandler struct {
	answers   []bool
	permErr   error
	asked     int
	responses []string
	executed  []memory.ToolResult
}

func (h *fakeHandler) OnLLMResponse(response string) { h.responses = append(h.responses, response) }
func (h *fakeHandler) OnToolAboutToExecute(memory.ToolCall) {}
func (h *fakeHandler) OnToolExecuted(result memory.ToolResult) {
	h.executed = append(h.executed, result)
}
func (h *fakeHandler) OnIterationStart(int) {}
func (h *fakeHandler) OnIterationEnd(int)   {}

func (h *fakeHandler) RequestToolPermission(tool, action string, params json.RawMessage) (bool, error) {
	if h.permErr != nil {
		return false, h.permErr
	}
	answer := true
	if h.asked < len(h.answers) {
		answer = h.answers[h.asked]
	}
	h.asked++
	return answer, nil
}

// fakeTool echoes its action, or fails when told to.
type fakeTool struct {
	name string
	fail map[string]error
}

func (t *fakeTool) Name() string              { return t.name }
func (t *fakeTool) Description() string       { return "test tool" }
func (t *fakeTool) Category() tools.Category  { return tools.CategoryInternal }
func (t *fakeTool) Schema() tools.Schema {
	return tools.Schema{Name: t.name, Category: tools.CategoryInternal}
}

func (t *fakeTool) Execute(ctx context.Context, action string, params json.RawMessage) (string, error) {
	if err := t.fail[action]; err != nil {
		return "", err
	}
	return "did " + action, nil
}

func newTestRegistry(t *fakeTool) *tools.Registry {
	reg := tools.NewRegistry()
	reg.Register(t)
	return reg
}

func TestExecuteNoCalls(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{}

	calls, results, transcript, err := exec.Execute(context.Background(),
		"Just a plain reply with no JSON.", newTestRegistry(&fakeTool{name: "echo"}), handler)

	require.NoError(t, err)
	assert.Empty(t, calls)
	assert.Empty(t, results)
	assert.Empty(t, transcript)
	assert.Zero(t, handler.asked)
}

func TestExecuteApprovedCall(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{answers: []bool{true}}

	calls, results, transcript, err := exec.Execute(context.Background(),
		`{"tool": "echo", "action": "ping"}`, newTestRegistry(&fakeTool{name: "echo"}), handler)

	require.NoError(t, err)
	require.Len(t, calls, 1)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, "did ping", results[0].Result)
	assert.Equal(t, calls[0].ID, results[0].CallID)
	assert.Equal(t, "did ping", transcript)
}

func TestExecuteDeclinedCallContinuesBatch(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{answers: []bool{true, false, true}}

	reply := `{"tool": "echo", "action": "one"}
{"tool": "echo", "action": "two"}
{"tool": "echo", "action": "three"}`

	calls, results, transcript, err := exec.Execute(context.Background(),
		reply, newTestRegistry(&fakeTool{name: "echo"}), handler)

	require.NoError(t, err)

	// Declined calls leave only a transcript line, no call or result records.
	require.Len(t, calls, 2)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.Equal(t, "did one", results[0].Result)
	assert.True(t, results[1].Success)
	assert.Equal(t, "did three", results[1].Result)

	lines := strings.Split(transcript, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "did one", lines[0])
	assert.Equal(t, "Tool execution cancelled by user.", lines[1])
	assert.Equal(t, "did three", lines[2])
}

func TestExecuteApproveThenDecline(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{answers: []bool{true, false}}

	reply := `{"tool": "echo", "action": "one"}
{"tool": "echo", "action": "two"}`

	_, results, transcript, err := exec.Execute(context.Background(),
		reply, newTestRegistry(&fakeTool{name: "echo"}), handler)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "did one\nTool execution cancelled by user.", transcript)
}

func TestExecuteToolErrorContinuesBatch(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{}
	tool := &fakeTool{name: "echo", fail: map[string]error{"bad": errors.New("boom")}}

	reply := `{"tool": "echo", "action": "bad"}
{"tool": "echo", "action": "good"}`

	_, results, transcript, err := exec.Execute(context.Background(),
		reply, newTestRegistry(tool), handler)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Equal(t, "Error: boom", results[0].Result)
	assert.True(t, results[1].Success)
	assert.Contains(t, transcript, "Error: boom")
	assert.Contains(t, transcript, "did good")
}

func TestExecuteUnknownToolAborts(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{}

	_, _, _, err := exec.Execute(context.Background(),
		`{"tool": "nope", "action": "x"}`, newTestRegistry(&fakeTool{name: "echo"}), handler)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
	// Confirmation happens before lookup; the user was asked once.
	assert.Equal(t, 1, handler.asked)
}

func TestExecutePermissionErrorAborts(t *testing.T) {
	exec := NewToolExecutor()
	handler := &fakeHandler{permErr: errors.New("stdin closed")}

	_, _, _, err := exec.Execute(context.Background(),
		`{"tool": "echo", "action": "ping"}`, newTestRegistry(&fakeTool{name: "echo"}), handler)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to confirm")
}
