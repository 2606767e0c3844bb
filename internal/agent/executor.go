package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/aigenda/aigenda/internal/errors"
	"github.com/aigenda/aigenda/internal/memory"
	"github.com/aigenda/aigenda/internal/metrics"
	"github.com/aigenda/aigenda/internal/tools"
)

// ToolExecutor turns a model reply into confirmed, dispatched tool calls.
type ToolExecutor struct{}

// NewToolExecutor creates an executor.
func NewToolExecutor() *ToolExecutor {
	return &ToolExecutor{}
}

// Execute parses tool calls out of the reply and runs them in source order.
// Each call is gated by the handler's permission prompt. A declined call
// leaves only a cancellation line in the transcript: no ToolCall or
// ToolResult is recorded and the tool is never invoked. A failing tool is
// recorded as an unsuccessful result. Neither stops the remaining calls. An
// unregistered tool or a permission-prompt failure aborts the whole batch.
func (e *ToolExecutor) Execute(ctx context.Context, response string, registry *tools.Registry, handler StreamHandler) ([]memory.ToolCall, []memory.ToolResult, string, error) {
	raw := ParseToolCalls(response)
	if len(raw) == 0 {
		return nil, nil, "", nil
	}

	var calls []memory.ToolCall
	var results []memory.ToolResult
	var transcript []string

	for _, rc := range raw {
		approved, err := handler.RequestToolPermission(rc.Tool, rc.Action, rc.Parameters)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to confirm tool execution: %w", err)
		}

		if !approved {
			metrics.RecordToolCancelled()
			transcript = append(transcript, "Tool execution cancelled by user.")
			continue
		}

		tool, ok := registry.Get(rc.Tool)
		if !ok {
			return nil, nil, "", apperrors.New(apperrors.ErrToolNotFound.Code,
				fmt.Sprintf("tool not registered: %s", rc.Tool))
		}

		call := memory.ToolCall{
			ID:         uuid.New().String(),
			ToolName:   rc.Tool,
			Action:     rc.Action,
			Parameters: rc.Parameters,
			Timestamp:  time.Now().UTC(),
		}
		calls = append(calls, call)

		handler.OnToolAboutToExecute(call)

		start := time.Now()
		output, execErr := tool.Execute(ctx, call.Action, call.Parameters)
		elapsed := time.Since(start)

		result := memory.ToolResult{
			CallID:          call.ID,
			ToolName:        call.ToolName,
			Action:          call.Action,
			Result:          output,
			Success:         execErr == nil,
			Timestamp:       time.Now().UTC(),
			ExecutionTimeMS: elapsed.Milliseconds(),
		}
		if execErr != nil {
			result.Result = fmt.Sprintf("Error: %v", execErr)
		}

		metrics.RecordToolCall(call.ToolName+"."+call.Action, result.Success)
		handler.OnToolExecuted(result)

		results = append(results, result)
		transcript = append(transcript, result.Result)
	}

	return calls, results, strings.Join(transcript, "\n"), nil
}
