// Package agent implements the iterative tool-calling loop: it extracts tool
// calls from model replies, confirms and dispatches them, and feeds results
// back into follow-up prompts.
package agent

import "encoding/json"

// RawCall is one tool invocation as the model emitted it.
type RawCall struct {
	Tool       string          `json:"tool"`
	Action     string          `json:"action"`
	Parameters json.RawMessage `json:"parameters"`
}

// ExtractJSON scans text for balanced top-level {...} blocks and returns them
// verbatim, in source order. Braces inside string literals (including escaped
// quotes) do not affect nesting depth. An unbalanced trailing block is
// discarded.
func ExtractJSON(text string) []string {
	var blocks []string

	depth := 0
	start := -1
	inString := false
	escapeNext := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if escapeNext {
			escapeNext = false
			continue
		}

		switch ch {
		case '\\':
			if inString {
				escapeNext = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				if depth == 0 {
					start = i
				}
				depth++
			}
		case '}':
			if !inString && depth > 0 {
				depth--
				if depth == 0 {
					blocks = append(blocks, text[start:i+1])
				}
			}
		}
	}

	return blocks
}

// ParseToolCalls extracts and decodes tool calls from a model reply. Each
// candidate block is parsed first as a single call, then as an array of
// calls. Candidates that fit neither shape, or that lack a tool or action
// name, are dropped silently. Missing parameters default to JSON null.
func ParseToolCalls(text string) []RawCall {
	var calls []RawCall

	for _, block := range ExtractJSON(text) {
		var single RawCall
		if err := json.Unmarshal([]byte(block), &single); err == nil && single.valid() {
			single.normalize()
			calls = append(calls, single)
			continue
		}

		var batch []RawCall
		if err := json.Unmarshal([]byte(block), &batch); err == nil {
			for _, c := range batch {
				if c.valid() {
					c.normalize()
					calls = append(calls, c)
				}
			}
		}
	}

	return calls
}

func (c *RawCall) valid() bool {
	return c.Tool != "" && c.Action != ""
}

func (c *RawCall) normalize() {
	if len(c.Parameters) == 0 {
		c.Parameters = json.RawMessage("null")
	}
}
