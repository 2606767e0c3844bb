package agent

import (
	"fmt"
	"strings"

	"github.com/aigenda/aigenda/internal/memory"
	"github.com/aigenda/aigenda/internal/tools"
)

// PromptGenerator builds the prompts for each iteration of the loop.
type PromptGenerator struct{}

// NewPromptGenerator creates a prompt generator.
func NewPromptGenerator() *PromptGenerator {
	return &PromptGenerator{}
}

// Initial builds the first-iteration prompt from the user request, retained
// conversation memory, and the registry's tool documentation.
func (g *PromptGenerator) Initial(userInput string, mem *memory.Memory, reg *tools.Registry) string {
	toolsDescription := reg.Documentation()
	conversationContext := mem.Context(true)

	recentToolsHint := ""
	if recent := mem.RecentToolUsage(); len(recent) > 0 {
		recentToolsHint = fmt.Sprintf("Recently used tools: %s\n", strings.Join(recent, ", "))
	}

	return fmt.Sprintf(`You are a helpful AI assistant with access to various tools for managing notes and tasks. Your personality should be conversational, helpful, and similar to Claude Code's style.

%sAvailable Tools:
%s

%sCurrent User Request: %s

## Chain of Thought Instructions:

You will work through this request step by step, potentially using multiple tools to complete the task. Think through your approach and execute tools as needed.

**Execution Pattern:**
1. **Analyze the request** and explain your understanding
2. **Plan your approach** - what steps will you take?
3. **Execute tools** as needed with JSON format
4. **If more actions are needed**, indicate this clearly in your response
5. **Continue until the task is complete**

**Tool Usage Format:**
`+"```json"+`
{
    "tool": "tool_name",
    "action": "action_name",
    "parameters": {
        "param1": "value1"
    }
}
`+"```"+`

**Continuation Signals:**
If you need to continue with more actions after seeing tool results, include phrases like:
- "Let me also..."
- "I need to..."
- "Next, I'll..."
- "Additionally..."

**Conversational Style:**
- Be natural and explain your thinking process
- Show your reasoning for each step
- Explain what you're doing and why
- Continue until the user's request is fully satisfied

Start by analyzing the request and explaining your approach.
`, conversationContext, toolsDescription, recentToolsHint, userInput)
}

// Continuation builds the follow-up prompt carrying the original request and
// the accumulated execution history of prior iterations.
func (g *PromptGenerator) Continuation(originalRequest, executionContext string, mem *memory.Memory, reg *tools.Registry) string {
	toolsDescription := reg.Documentation()
	conversationContext := mem.Context(true)

	return fmt.Sprintf(`%s

Available Tools:
%s

## Continuation Context:

Original User Request: %s

Execution History:
%s

## Continuation Instructions:

You are continuing to work on the user's original request. Based on what you've already done:

1. **Review** what has been accomplished so far
2. **Determine** if the original request is fully satisfied
3. **If more actions are needed**:
   - Explain what you need to do next
   - Execute the appropriate tools with JSON format
   - Use continuation signals like "Let me also...", "Next, I'll...", etc.
4. **If the task is complete**:
   - Provide a natural conclusion
   - Summarize what was accomplished
   - Don't include any tool JSON

**Tool Usage Format (if needed):**
`+"```json"+`
{
    "tool": "tool_name",
    "action": "action_name",
    "parameters": {
        "param1": "value1"
    }
}
`+"```"+`

**Your Goal:** Complete the user's original request fully. Continue if more actions would be helpful.
`, conversationContext, toolsDescription, originalRequest, executionContext)
}
