package agent

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/aigenda/aigenda/internal/memory"
)

// StreamHandler receives progress events from the agent loop and answers
// permission requests. RequestToolPermission is the single confirmation
// point: the executor calls it once per tool call, before dispatch.
type StreamHandler interface {
	OnLLMResponse(response string)
	OnToolAboutToExecute(call memory.ToolCall)
	OnToolExecuted(result memory.ToolResult)
	RequestToolPermission(tool, action string, params json.RawMessage) (bool, error)
	OnIterationStart(iteration int)
	OnIterationEnd(iteration int)
}

// ConsoleHandler renders agent progress to the terminal and prompts the user
// on stdin for tool permissions.
type ConsoleHandler struct {
	in       *bufio.Reader
	out      io.Writer
	renderer *glamour.TermRenderer

	headerStyle  lipgloss.Style
	toolStyle    lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	dimStyle     lipgloss.Style

	// askCount numbers permission prompts within one model reply.
	askCount int
}

// NewConsoleHandler creates a handler writing to stdout and reading
// confirmations from stdin. Markdown rendering is only enabled when stdout
// is a terminal.
func NewConsoleHandler() *ConsoleHandler {
	var renderer *glamour.TermRenderer
	if term.IsTerminal(int(os.Stdout.Fd())) {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			renderer = r
		}
	}

	return &ConsoleHandler{
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		renderer:     renderer,
		headerStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		toolStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failureStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (h *ConsoleHandler) OnLLMResponse(response string) {
	h.askCount = 0

	if h.renderer != nil {
		if rendered, err := h.renderer.Render(response); err == nil {
			fmt.Fprint(h.out, rendered)
			return
		}
	}
	fmt.Fprintln(h.out, response)
}

func (h *ConsoleHandler) OnToolAboutToExecute(call memory.ToolCall) {
	fmt.Fprintln(h.out, h.toolStyle.Render(
		fmt.Sprintf("⚡ Executing tool: %s -> %s", call.ToolName, call.Action)))
}

func (h *ConsoleHandler) OnToolExecuted(result memory.ToolResult) {
	if result.Success {
		fmt.Fprintln(h.out, h.successStyle.Render(
			fmt.Sprintf("✅ Tool result (%s.%s, %dms): %s",
				result.ToolName, result.Action, result.ExecutionTimeMS, result.Result)))
	} else {
		fmt.Fprintln(h.out, h.failureStyle.Render(
			fmt.Sprintf("❌ Tool result (%s.%s, %dms): %s",
				result.ToolName, result.Action, result.ExecutionTimeMS, result.Result)))
	}
}

// RequestToolPermission prints the pending call and reads a y/N answer. Only
// "y" or "yes" (case-insensitive) approve; anything else declines.
func (h *ConsoleHandler) RequestToolPermission(tool, action string, params json.RawMessage) (bool, error) {
	h.askCount++
	fmt.Fprintln(h.out, h.dimStyle.Render(fmt.Sprintf("--- Tool %d ---", h.askCount)))

	fmt.Fprintln(h.out, h.headerStyle.Render("🤖 AI Agent wants to execute a tool:"))
	fmt.Fprintf(h.out, "   Tool: %s\n", tool)
	fmt.Fprintf(h.out, "   Action: %s\n", action)
	fmt.Fprintf(h.out, "   Parameters: %s\n", formatParams(params))
	fmt.Fprint(h.out, "Do you want to proceed? [y/N]: ")

	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (h *ConsoleHandler) OnIterationStart(iteration int) {
	fmt.Fprintln(h.out, h.dimStyle.Render(fmt.Sprintf("🔄 Starting iteration %d...", iteration)))
}

func (h *ConsoleHandler) OnIterationEnd(iteration int) {
	fmt.Fprintln(h.out, h.dimStyle.Render(fmt.Sprintf("✨ Iteration %d completed.", iteration)))
}

func formatParams(params json.RawMessage) string {
	if len(params) == 0 || string(params) == "null" {
		return "none"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, params, "   ", "  "); err != nil {
		return string(params)
	}
	return buf.String()
}
