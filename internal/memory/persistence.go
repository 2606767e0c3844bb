package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// memoryFile is the on-disk shape: the full message log plus the limits that
// were configured when it was written.
type memoryFile struct {
	MaxMessages int       `json:"max_messages"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
}

// Load reads a persisted memory from path. A missing file yields a fresh
// empty memory with the given limits. Stored limits are not trusted: the
// caller-supplied ones replace them. The restored log is NOT re-trimmed even
// if it exceeds the new limits; eviction runs on the next insertion.
func Load(path string, maxMessages, maxTokens int) (*Memory, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(maxMessages, maxTokens), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}

	var file memoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse memory file: %w", err)
	}

	m := &Memory{
		messages:    file.Messages,
		maxMessages: maxMessages,
		maxTokens:   maxTokens,
	}
	for _, msg := range m.messages {
		m.tokens += estimateTokens(msg.Content)
	}

	return m, nil
}

// Save writes the entire message log to path, creating parent directories as
// needed. Whole-file overwrite; no concurrent-writer protection.
func (m *Memory) Save(path string) error {
	file := memoryFile{
		MaxMessages: m.maxMessages,
		MaxTokens:   m.maxTokens,
		Messages:    m.messages,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize memory: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create memory directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}

	return nil
}
