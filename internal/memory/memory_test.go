package memory

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvictionByMessageCount(t *testing.T) {
	m := New(3, 100000)

	m.AddUser("one")
	m.AddUser("two")
	m.AddUser("three")
	m.AddUser("four")

	msgs := m.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "two", msgs[0].Content)
	assert.Equal(t, "four", msgs[2].Content)
}

func TestEvictionByTokenBudget(t *testing.T) {
	// 40 chars ≈ 10 tokens each, budget of 25 tokens holds two messages.
	m := New(100, 25)
	long := strings.Repeat("x", 40)

	m.AddUser(long)
	m.AddUser(long)
	m.AddUser(long)

	assert.Equal(t, 2, m.MessageCount())
	assert.LessOrEqual(t, m.TokenEstimate(), 25)
}

func TestAttachResultsOnlyToAssistant(t *testing.T) {
	m := New(50, 8000)
	result := ToolResult{CallID: "1", ToolName: "notes", Action: "create", Result: "ok", Success: true}

	m.AddUser("hello")
	m.AttachResults([]ToolResult{result})
	assert.Empty(t, m.Messages()[0].ToolResults)

	m.AddAssistant("done", nil)
	m.AttachResults([]ToolResult{result})
	msgs := m.Messages()
	require.Len(t, msgs[1].ToolResults, 1)
	assert.Equal(t, "ok", msgs[1].ToolResults[0].Result)
}

func TestContextFormatting(t *testing.T) {
	m := New(50, 8000)
	m.AddUser("add a note")
	m.AddAssistant("adding it now", []ToolCall{
		{ID: "1", ToolName: "notes", Action: "create", Parameters: []byte(`{"text":"a"}`)},
	})
	m.AttachResults([]ToolResult{
		{CallID: "1", ToolName: "notes", Action: "create", Result: "Note added", Success: true, ExecutionTimeMS: 3},
	})

	ctx := m.Context(true)
	assert.Contains(t, ctx, "## Conversation History")
	assert.Contains(t, ctx, "User: add a note")
	assert.Contains(t, ctx, "Assistant: adding it now")
	assert.Contains(t, ctx, "→ Called notes.create with: {\"text\":\"a\"}")
	assert.Contains(t, ctx, "✓ notes.create: Note added (3ms)")
	assert.True(t, strings.HasSuffix(ctx, "\n---\n\n"))
}

func TestContextFailedResultMarker(t *testing.T) {
	m := New(50, 8000)
	m.AddAssistant("trying", nil)
	m.AttachResults([]ToolResult{
		{CallID: "1", ToolName: "notes", Action: "delete", Result: "Error: boom", Success: false},
	})

	assert.Contains(t, m.Context(false), "✗ notes.delete: Error: boom")
}

func TestContextEmpty(t *testing.T) {
	m := New(50, 8000)
	assert.Empty(t, m.Context(true))
}

func TestRecentToolUsageDedupNewestFirst(t *testing.T) {
	m := New(50, 8000)
	m.AddAssistant("a", []ToolCall{{ID: "1", ToolName: "notes", Action: "create"}})
	m.AddAssistant("b", []ToolCall{{ID: "2", ToolName: "notes", Action: "read"}})
	m.AddAssistant("c", []ToolCall{{ID: "3", ToolName: "notes", Action: "create"}})

	assert.Equal(t, []string{"notes.create", "notes.read"}, m.RecentToolUsage())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")

	m := New(50, 8000)
	m.AddUser("hello")
	m.AddAssistant("hi there", []ToolCall{{ID: "1", ToolName: "clock", Action: "now"}})
	require.NoError(t, m.Save(path))

	restored, err := Load(path, 50, 8000)
	require.NoError(t, err)

	msgs := restored.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	require.Len(t, msgs[1].ToolCalls, 1)
	assert.Equal(t, "clock", msgs[1].ToolCalls[0].ToolName)
	assert.Equal(t, m.TokenEstimate(), restored.TokenEstimate())
}

func TestLoadMissingFileYieldsFresh(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.json"), 10, 100)
	require.NoError(t, err)
	assert.Zero(t, m.MessageCount())
}

func TestLoadDoesNotRetrimUntilNextInsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")

	m := New(10, 100000)
	for i := 0; i < 5; i++ {
		m.AddUser(strings.Repeat("y", 40))
	}
	require.NoError(t, m.Save(path))

	// Reload with tighter limits: the oversized log survives as-is.
	restored, err := Load(path, 2, 100000)
	require.NoError(t, err)
	assert.Equal(t, 5, restored.MessageCount())

	// The next insertion applies the new ceilings.
	restored.AddUser("trigger")
	assert.Equal(t, 2, restored.MessageCount())
}

func TestClear(t *testing.T) {
	m := New(50, 8000)
	m.AddUser("something")
	m.Clear()

	assert.Zero(t, m.MessageCount())
	assert.Zero(t, m.TokenEstimate())
	assert.Empty(t, m.Context(true))
}
