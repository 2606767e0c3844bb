package notes

import "github.com/aigenda/aigenda/internal/tools"

// Schema describes the notes tool for prompt generation.
func (t *Tool) Schema() tools.Schema {
	dateParam := tools.Parameter{
		Name:        "date",
		Type:        tools.DateType(),
		Description: "Day to operate on",
		Default:     "today",
		Pattern:     `^\d{4}-\d{2}-\d{2}$`,
	}

	return tools.Schema{
		Name:        t.Name(),
		Description: t.Description(),
		Category:    t.Category(),
		Actions: []tools.Action{
			{
				Name:        "create",
				Description: "Add a new timestamped note to a day.",
				Parameters: []tools.Parameter{
					{
						Name:        "text",
						Type:        tools.StringTypeMax(maxNoteLength),
						Description: "The note content",
						Required:    true,
					},
					dateParam,
				},
				Returns: tools.Return{
					Description: "Confirmation with the day the note was added to",
					Example:     "Note added successfully for 2026-08-28",
				},
				Errors: []string{"missing text", "text too long", "invalid date"},
				Examples: []tools.Example{
					{
						Description: "Add a note for today",
						Call:        `{"tool": "notes", "action": "create", "parameters": {"text": "Call the dentist"}}`,
						Result:      "Note added successfully for 2026-08-28",
					},
					{
						Description: "Add a note for a specific day",
						Call:        `{"tool": "notes", "action": "create", "parameters": {"text": "Team offsite", "date": "2026-09-01"}}`,
						Result:      "Note added successfully for 2026-09-01",
					},
				},
			},
			{
				Name:        "read",
				Description: "List notes for a day, or the most recent notes across all days when no date is given.",
				Parameters: []tools.Parameter{
					dateParam,
					{
						Name:        "limit",
						Type:        tools.IntegerType(1, maxReadLimit),
						Description: "Maximum number of notes to return",
						Default:     "10",
					},
				},
				Returns: tools.Return{
					Description: "Numbered list of notes with their times",
					Example:     "Notes for 2026-08-28:\n1. [09:15] Call the dentist",
				},
				Errors: []string{"invalid date", "invalid limit"},
				Examples: []tools.Example{
					{
						Description: "Show the latest notes",
						Call:        `{"tool": "notes", "action": "read", "parameters": null}`,
						Result:      "Recent notes:\n1. [2026-08-28 09:15] Call the dentist",
					},
				},
			},
			{
				Name:        "update",
				Description: "Replace the text of an existing note, addressed by its 1-based position within a day.",
				Parameters: []tools.Parameter{
					{
						Name:        "index",
						Type:        tools.IntegerType(1, maxReadLimit),
						Description: "1-based note position within the day",
						Required:    true,
					},
					{
						Name:        "text",
						Type:        tools.StringTypeMax(maxNoteLength),
						Description: "The new note content",
						Required:    true,
					},
					dateParam,
				},
				Returns: tools.Return{
					Description: "Confirmation, or a not-found message when the index is out of range",
					Example:     "Note 1 updated successfully for 2026-08-28",
				},
				Errors: []string{"missing index", "missing text", "invalid date"},
			},
			{
				Name:        "delete",
				Description: "Remove a note, addressed by its 1-based position within a day.",
				Parameters: []tools.Parameter{
					{
						Name:        "index",
						Type:        tools.IntegerType(1, maxReadLimit),
						Description: "1-based note position within the day",
						Required:    true,
					},
					dateParam,
				},
				Returns: tools.Return{
					Description: "Confirmation, or a not-found message when the index is out of range",
					Example:     "Note 2 deleted successfully for 2026-08-28",
				},
				Errors: []string{"missing index", "invalid date"},
			},
		},
	}
}
