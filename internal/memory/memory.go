// Package memory implements the bounded, persisted conversation log the agent
// feeds back into its prompts.
package memory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role identifies who produced a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// ToolCall records a single dispatched tool invocation.
type ToolCall struct {
	ID         string          `json:"id"`
	ToolName   string          `json:"tool_name"`
	Action     string          `json:"action"`
	Parameters json.RawMessage `json:"parameters"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ToolResult records the outcome of a ToolCall, referencing it by ID.
type ToolResult struct {
	CallID          string    `json:"call_id"`
	ToolName        string    `json:"tool_name"`
	Action          string    `json:"action"`
	Result          string    `json:"result"`
	Success         bool      `json:"success"`
	Timestamp       time.Time `json:"timestamp"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
}

// Message is one conversational turn. ToolResults may be attached to the most
// recent assistant message after execution completes; messages are otherwise
// immutable once added.
type Message struct {
	Timestamp   time.Time    `json:"timestamp"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// Memory is an ordered, oldest-first log of messages bounded by both a
// message count and an approximate token budget.
type Memory struct {
	messages    []Message
	maxMessages int
	maxTokens   int
	tokens      int
}

// New creates an empty memory with the given limits.
func New(maxMessages, maxTokens int) *Memory {
	return &Memory{
		maxMessages: maxMessages,
		maxTokens:   maxTokens,
	}
}

// estimateTokens is a deliberately crude heuristic: 1 token ≈ 4 characters.
// No tokenizer dependency.
func estimateTokens(content string) int {
	return len(content) / 4
}

// AddUser appends a user turn.
func (m *Memory) AddUser(content string) {
	m.add(Message{
		Timestamp: time.Now().UTC(),
		Role:      RoleUser,
		Content:   content,
	})
}

// AddAssistant appends an assistant turn with the tool calls it issued.
func (m *Memory) AddAssistant(content string, calls []ToolCall) {
	m.add(Message{
		Timestamp: time.Now().UTC(),
		Role:      RoleAssistant,
		Content:   content,
		ToolCalls: calls,
	})
}

// AttachResults appends results to the most recently added message, but only
// if that message is an assistant turn; otherwise it is a no-op.
func (m *Memory) AttachResults(results []ToolResult) {
	if len(m.messages) == 0 {
		return
	}
	last := &m.messages[len(m.messages)-1]
	if last.Role != RoleAssistant {
		return
	}
	last.ToolResults = append(last.ToolResults, results...)
}

func (m *Memory) add(msg Message) {
	m.messages = append(m.messages, msg)
	m.tokens += estimateTokens(msg.Content)

	// Evict from the oldest end until both ceilings hold.
	for len(m.messages) > m.maxMessages || m.tokens > m.maxTokens {
		if len(m.messages) == 0 {
			break
		}
		removed := m.messages[0]
		m.messages = m.messages[1:]
		m.tokens -= estimateTokens(removed.Content)
		if m.tokens < 0 {
			m.tokens = 0
		}
	}
}

// Context renders the retained log as prompt text, optionally prefixed with a
// conversation-history header.
func (m *Memory) Context(includeHeader bool) string {
	var sb strings.Builder

	if includeHeader && len(m.messages) > 0 {
		sb.WriteString("## Conversation History\n")
		sb.WriteString("Previous messages and tool interactions:\n\n")
	}

	for _, msg := range m.messages {
		switch msg.Role {
		case RoleUser:
			sb.WriteString(fmt.Sprintf("User: %s\n", msg.Content))
		case RoleAssistant:
			sb.WriteString(fmt.Sprintf("Assistant: %s\n", msg.Content))

			for _, call := range msg.ToolCalls {
				sb.WriteString(fmt.Sprintf("  → Called %s.%s with: %s\n",
					call.ToolName, call.Action, string(call.Parameters)))
			}

			for _, result := range msg.ToolResults {
				status := "✓"
				if !result.Success {
					status = "✗"
				}
				sb.WriteString(fmt.Sprintf("  %s %s.%s: %s (%dms)\n",
					status, result.ToolName, result.Action,
					result.Result, result.ExecutionTimeMS))
			}
		case RoleSystem:
			sb.WriteString(fmt.Sprintf("System: %s\n", msg.Content))
		case RoleTool:
			// Tool turns are carried inside assistant results.
			continue
		}
	}

	if sb.Len() > 0 {
		sb.WriteString("\n---\n\n")
	}

	return sb.String()
}

// recentWindow is how many messages back RecentToolUsage scans.
const recentWindow = 5

// RecentToolUsage returns de-duplicated "tool.action" strings from the tool
// calls of the last few messages, newest first.
func (m *Memory) RecentToolUsage() []string {
	var used []string
	seen := make(map[string]bool)

	for i := len(m.messages) - 1; i >= 0 && i >= len(m.messages)-recentWindow; i-- {
		for _, call := range m.messages[i].ToolCalls {
			key := call.ToolName + "." + call.Action
			if !seen[key] {
				seen[key] = true
				used = append(used, key)
			}
		}
	}

	return used
}

// Clear discards all retained messages.
func (m *Memory) Clear() {
	m.messages = nil
	m.tokens = 0
}

// MessageCount reports the number of retained messages.
func (m *Memory) MessageCount() int {
	return len(m.messages)
}

// TokenEstimate reports the approximate token budget consumed.
func (m *Memory) TokenEstimate() int {
	return m.tokens
}

// Messages returns a copy of the retained log, oldest first.
func (m *Memory) Messages() []Message {
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}
