package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamTypeStrings(t *testing.T) {
	assert.Equal(t, "string", StringType().String())
	assert.Equal(t, "string(max: 5000)", StringTypeMax(5000).String())
	assert.Equal(t, "integer(1-100)", IntegerType(1, 100).String())
	assert.Equal(t, "date (YYYY-MM-DD)", DateType().String())
	assert.Equal(t, "boolean", BooleanType().String())
	assert.Equal(t, "array of string", ArrayType(StringType()).String())
}

func TestPromptFormat(t *testing.T) {
	schema := Schema{
		Name:        "notes",
		Description: "Manage notes",
		Category:    CategoryInternal,
		Actions: []Action{
			{
				Name:        "create",
				Description: "Add a note.",
				Parameters: []Parameter{
					{Name: "text", Type: StringTypeMax(5000), Description: "Note content", Required: true},
					{Name: "date", Type: DateType(), Description: "Target day", Default: "today"},
				},
				Returns: Return{Description: "Confirmation", Example: "Note added"},
				Errors:  []string{"missing text"},
				Examples: []Example{
					{Description: "Add a note", Call: `{"tool": "notes"}`, Result: "Note added"},
				},
			},
		},
	}

	out := schema.PromptFormat()
	assert.Contains(t, out, "### notes Tool (Internal CRUD)")
	assert.Contains(t, out, "**Description**: Manage notes")
	assert.Contains(t, out, "#### create")
	assert.Contains(t, out, "- `text` (string(max: 5000)) **(required)**: Note content")
	assert.Contains(t, out, "- `date` (date (YYYY-MM-DD)) (optional): Target day")
	assert.Contains(t, out, "  - Default: `today`")
	assert.Contains(t, out, "**Returns**: Confirmation")
	assert.Contains(t, out, "**Possible errors**: missing text")
	assert.Contains(t, out, "**Examples**:")
}
