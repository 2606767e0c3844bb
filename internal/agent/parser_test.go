package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONMultipleBlocks(t *testing.T) {
	text := `First I'll add the note.
{"tool": "notes", "action": "create", "parameters": {"text": "a"}}
Then read it back.
{"tool": "notes", "action": "read", "parameters": null}`

	blocks := ExtractJSON(text)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], `"create"`)
	assert.Contains(t, blocks[1], `"read"`)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	text := `{"tool": "notes", "action": "create", "parameters": {"text": "use {curly} braces"}}`

	blocks := ExtractJSON(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, text, blocks[0])
}

func TestExtractJSONEscapedQuotes(t *testing.T) {
	text := `{"tool": "notes", "action": "create", "parameters": {"text": "she said \"hi {\" to me"}}`

	blocks := ExtractJSON(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, text, blocks[0])
}

func TestExtractJSONUnbalancedTrailing(t *testing.T) {
	text := `{"tool": "notes", "action": "read"} and then {"tool": "notes", "action":`

	blocks := ExtractJSON(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, `{"tool": "notes", "action": "read"}`, blocks[0])
}

func TestExtractJSONNoBlocks(t *testing.T) {
	assert.Empty(t, ExtractJSON("no json here at all"))
}

func TestParseToolCallsSingleObject(t *testing.T) {
	calls := ParseToolCalls(`{"tool": "notes", "action": "create", "parameters": {"text": "a"}}`)

	require.Len(t, calls, 1)
	assert.Equal(t, "notes", calls[0].Tool)
	assert.Equal(t, "create", calls[0].Action)
	assert.JSONEq(t, `{"text": "a"}`, string(calls[0].Parameters))
}

func TestParseToolCallsMissingParametersDefaultsToNull(t *testing.T) {
	calls := ParseToolCalls(`{"tool": "clock", "action": "now"}`)

	require.Len(t, calls, 1)
	assert.Equal(t, "null", string(calls[0].Parameters))
}

func TestParseToolCallsDropsMissingFields(t *testing.T) {
	text := `{"tool": "notes"} {"action": "read"} {"tool": "notes", "action": "read"}`

	calls := ParseToolCalls(text)
	require.Len(t, calls, 1)
	assert.Equal(t, "read", calls[0].Action)
}

func TestParseToolCallsDropsMalformedJSON(t *testing.T) {
	calls := ParseToolCalls(`{"tool": "notes", "action": } {"tool": "clock", "action": "now"}`)

	require.Len(t, calls, 1)
	assert.Equal(t, "clock", calls[0].Tool)
}

func TestParseToolCallsPreservesSourceOrder(t *testing.T) {
	text := `{"tool": "a", "action": "one"}
{"tool": "b", "action": "two"}
{"tool": "c", "action": "three"}`

	calls := ParseToolCalls(text)
	require.Len(t, calls, 3)
	assert.Equal(t, "one", calls[0].Action)
	assert.Equal(t, "two", calls[1].Action)
	assert.Equal(t, "three", calls[2].Action)
}

func TestParseToolCallsMixedArray(t *testing.T) {
	text := `I'll run these in order:
[
  {"tool": "notes", "action": "create", "parameters": {"text": "a"}},
  {"note": "not a call"},
  {"tool": "notes", "action": "read"}
]
Done.`

	calls := ParseToolCalls(text)
	require.Len(t, calls, 2)
	assert.Equal(t, "create", calls[0].Action)
	assert.Equal(t, "read", calls[1].Action)
	assert.JSONEq(t, `{"text": "a"}`, string(calls[0].Parameters))
	assert.Equal(t, "null", string(calls[1].Parameters))
}

func TestParseToolCallsNonCallObjectIgnored(t *testing.T) {
	calls := ParseToolCalls(`{"note": "this is just data", "count": 3}`)
	assert.Empty(t, calls)
}
