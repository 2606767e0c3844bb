// Package clock provides a small system tool exposing the current date and
// time, useful when the model needs "today" to parameterize other calls.
package clock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aigenda/aigenda/internal/storage"
	"github.com/aigenda/aigenda/internal/tools"
)

// Tool answers date and time queries.
type Tool struct {
	now func() time.Time
}

// New creates a clock tool using the wall clock.
func New() *Tool {
	return &Tool{now: time.Now}
}

func (t *Tool) Name() string { return "clock" }

func (t *Tool) Description() string {
	return "Report the current date and time"
}

func (t *Tool) Category() tools.Category { return tools.CategorySystem }

func (t *Tool) Execute(ctx context.Context, action string, params json.RawMessage) (string, error) {
	switch action {
	case "now":
		return t.now().Format("2006-01-02 15:04:05 MST"), nil
	case "today":
		return t.now().Format(storage.DateLayout), nil
	default:
		return "", fmt.Errorf("unknown clock action: %s", action)
	}
}

// Schema describes the clock tool for prompt generation.
func (t *Tool) Schema() tools.Schema {
	return tools.Schema{
		Name:        t.Name(),
		Description: t.Description(),
		Category:    t.Category(),
		Actions: []tools.Action{
			{
				Name:        "now",
				Description: "Return the current date, time and timezone.",
				Returns: tools.Return{
					Description: "Current timestamp",
					Example:     "2026-08-28 09:15:00 UTC",
				},
				Examples: []tools.Example{
					{
						Description: "What time is it?",
						Call:        `{"tool": "clock", "action": "now", "parameters": null}`,
						Result:      "2026-08-28 09:15:00 UTC",
					},
				},
			},
			{
				Name:        "today",
				Description: "Return today's date in YYYY-MM-DD form.",
				Returns: tools.Return{
					Description: "Current date",
					Example:     "2026-08-28",
				},
			},
		},
	}
}
