// Package notes implements the note-keeping tool backed by day-scoped
// JSON storage.
package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aigenda/aigenda/internal/storage"
	"github.com/aigenda/aigenda/internal/tools"
)

const (
	maxNoteLength    = 5000
	defaultReadLimit = 10
	maxReadLimit     = 100
)

// Tool manages timestamped notes grouped by calendar day.
type Tool struct {
	store storage.Storage
}

// New creates a notes tool over the given store.
func New(store storage.Storage) *Tool {
	return &Tool{store: store}
}

func (t *Tool) Name() string { return "notes" }

func (t *Tool) Description() string {
	return "Create, read, update and delete timestamped notes organized by day"
}

func (t *Tool) Category() tools.Category { return tools.CategoryInternal }

// Execute dispatches one action against the store.
func (t *Tool) Execute(ctx context.Context, action string, params json.RawMessage) (string, error) {
	switch action {
	case "create":
		return t.create(params)
	case "read":
		return t.read(params)
	case "update":
		return t.update(params)
	case "delete":
		return t.delete(params)
	default:
		return "", fmt.Errorf("unknown notes action: %s", action)
	}
}

// parseDate resolves an optional YYYY-MM-DD string, defaulting to today.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(storage.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}

func unmarshalParams(params json.RawMessage, v any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type createParams struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

func (t *Tool) create(params json.RawMessage) (string, error) {
	var p createParams
	if err := unmarshalParams(params, &p); err != nil {
		return "", err
	}
	if strings.TrimSpace(p.Text) == "" {
		return "", fmt.Errorf("parameter 'text' is required")
	}
	if len(p.Text) > maxNoteLength {
		return "", fmt.Errorf("note text exceeds %d characters", maxNoteLength)
	}

	date, err := parseDate(p.Date)
	if err != nil {
		return "", err
	}

	day, err := t.store.LoadDay(date)
	if err != nil {
		return "", err
	}
	day.AddNote(storage.NewNote(p.Text))
	if err := t.store.SaveDay(day); err != nil {
		return "", err
	}

	return fmt.Sprintf("Note added successfully for %s", day.Date), nil
}

type readParams struct {
	Date  string `json:"date"`
	Limit int    `json:"limit"`
}

func (t *Tool) read(params json.RawMessage) (string, error) {
	var p readParams
	if err := unmarshalParams(params, &p); err != nil {
		return "", err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultReadLimit
	}
	if limit > maxReadLimit {
		limit = maxReadLimit
	}

	if p.Date != "" {
		date, err := parseDate(p.Date)
		if err != nil {
			return "", err
		}
		day, err := t.store.LoadDay(date)
		if err != nil {
			return "", err
		}
		if len(day.Notes) == 0 {
			return fmt.Sprintf("No notes found for %s", day.Date), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Notes for %s:\n", day.Date))
		for i, note := range day.Notes {
			if i >= limit {
				break
			}
			sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, note.When.Format("15:04"), note.Text))
		}
		return strings.TrimRight(sb.String(), "\n"), nil
	}

	// No date: walk all days newest first.
	days, err := t.store.IterDays()
	if err != nil {
		return "", err
	}

	type dated struct {
		date string
		note storage.Note
	}
	var recent []dated
	for i := len(days) - 1; i >= 0 && len(recent) < limit; i-- {
		notes := days[i].Notes
		for j := len(notes) - 1; j >= 0 && len(recent) < limit; j-- {
			recent = append(recent, dated{date: days[i].Date, note: notes[j]})
		}
	}

	if len(recent) == 0 {
		return "No notes found", nil
	}

	var sb strings.Builder
	sb.WriteString("Recent notes:\n")
	for i, d := range recent {
		sb.WriteString(fmt.Sprintf("%d. [%s %s] %s\n",
			i+1, d.date, d.note.When.Format("15:04"), d.note.Text))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

type updateParams struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (t *Tool) update(params json.RawMessage) (string, error) {
	var p updateParams
	if err := unmarshalParams(params, &p); err != nil {
		return "", err
	}
	if p.Index < 1 {
		return "", fmt.Errorf("parameter 'index' is required and must be >= 1")
	}
	if strings.TrimSpace(p.Text) == "" {
		return "", fmt.Errorf("parameter 'text' is required")
	}
	if len(p.Text) > maxNoteLength {
		return "", fmt.Errorf("note text exceeds %d characters", maxNoteLength)
	}

	date, err := parseDate(p.Date)
	if err != nil {
		return "", err
	}
	day, err := t.store.LoadDay(date)
	if err != nil {
		return "", err
	}

	idx := p.Index - 1
	if idx >= len(day.Notes) {
		return fmt.Sprintf("Note %d not found for %s", p.Index, day.Date), nil
	}

	day.Notes[idx].Text = p.Text
	if err := t.store.SaveDay(day); err != nil {
		return "", err
	}

	return fmt.Sprintf("Note %d updated successfully for %s", p.Index, day.Date), nil
}

type deleteParams struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
}

func (t *Tool) delete(params json.RawMessage) (string, error) {
	var p deleteParams
	if err := unmarshalParams(params, &p); err != nil {
		return "", err
	}
	if p.Index < 1 {
		return "", fmt.Errorf("parameter 'index' is required and must be >= 1")
	}

	date, err := parseDate(p.Date)
	if err != nil {
		return "", err
	}
	day, err := t.store.LoadDay(date)
	if err != nil {
		return "", err
	}

	idx := p.Index - 1
	if idx >= len(day.Notes) {
		return fmt.Sprintf("Note %d not found for %s", p.Index, day.Date), nil
	}

	day.Notes = append(day.Notes[:idx], day.Notes[idx+1:]...)
	if err := t.store.SaveDay(day); err != nil {
		return "", err
	}

	return fmt.Sprintf("Note %d deleted successfully for %s", p.Index, day.Date), nil
}
