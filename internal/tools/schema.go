package tools

import (
	"fmt"
	"strings"
)

// Kind is the base type of a tool parameter.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// ParamType carries the base kind plus optional constraints used when
// rendering the parameter for the model.
type ParamType struct {
	Kind      Kind
	MaxLength int // strings: maximum length, 0 means unbounded
	Min, Max  int // integers: inclusive bounds, both 0 means unbounded
	HasBounds bool
	Elem      *ParamType // arrays: element type
}

func StringType() ParamType { return ParamType{Kind: KindString} }

func StringTypeMax(max int) ParamType { return ParamType{Kind: KindString, MaxLength: max} }

func IntegerType(min, max int) ParamType {
	return ParamType{Kind: KindInteger, Min: min, Max: max, HasBounds: true}
}

func BooleanType() ParamType { return ParamType{Kind: KindBoolean} }

func DateType() ParamType { return ParamType{Kind: KindDate} }

func ArrayType(elem ParamType) ParamType { return ParamType{Kind: KindArray, Elem: &elem} }

// String renders the type the way it appears in prompt documentation, for
// example "string(max: 5000)" or "integer(1-100)" or "date (YYYY-MM-DD)".
func (t ParamType) String() string {
	switch t.Kind {
	case KindString:
		if t.MaxLength > 0 {
			return fmt.Sprintf("string(max: %d)", t.MaxLength)
		}
		return "string"
	case KindInteger:
		if t.HasBounds {
			return fmt.Sprintf("integer(%d-%d)", t.Min, t.Max)
		}
		return "integer"
	case KindDate:
		return "date (YYYY-MM-DD)"
	case KindArray:
		if t.Elem != nil {
			return fmt.Sprintf("array of %s", t.Elem.String())
		}
		return "array"
	default:
		return string(t.Kind)
	}
}

// Parameter documents one named input of an action.
type Parameter struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     string   // rendered verbatim when non-empty
	Pattern     string   // regex hint, rendered verbatim when non-empty
	Allowed     []string // enumerated values, rendered when non-empty
}

// Return documents what an action yields on success.
type Return struct {
	Description string
	Example     string
}

// Example is a worked invocation shown to the model.
type Example struct {
	Description string
	Call        string // JSON tool-call snippet
	Result      string
}

// Action documents one operation a tool supports.
type Action struct {
	Name        string
	Description string
	Parameters  []Parameter
	Returns     Return
	Errors      []string
	Examples    []Example
}

// Schema is the full self-description of a tool, rendered into the prompt so
// the model knows how to call it.
type Schema struct {
	Name        string
	Description string
	Category    Category
	Actions     []Action
}

// PromptFormat renders the schema as the markdown block embedded in prompts.
func (s Schema) PromptFormat() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s Tool (%s)\n", s.Name, s.Category))
	sb.WriteString(fmt.Sprintf("**Description**: %s\n\n", s.Description))
	sb.WriteString("**Available Actions**:\n\n")

	for _, action := range s.Actions {
		sb.WriteString(fmt.Sprintf("#### %s\n", action.Name))
		sb.WriteString(fmt.Sprintf("%s\n", action.Description))

		if len(action.Parameters) > 0 {
			sb.WriteString("\n**Parameters**:\n")
			for _, p := range action.Parameters {
				req := "(optional)"
				if p.Required {
					req = "**(required)**"
				}
				sb.WriteString(fmt.Sprintf("- `%s` (%s) %s: %s\n",
					p.Name, p.Type.String(), req, p.Description))
				if p.Default != "" {
					sb.WriteString(fmt.Sprintf("  - Default: `%s`\n", p.Default))
				}
				if p.Pattern != "" {
					sb.WriteString(fmt.Sprintf("  - Pattern: `%s`\n", p.Pattern))
				}
				if len(p.Allowed) > 0 {
					sb.WriteString(fmt.Sprintf("  - Allowed values: %s\n",
						strings.Join(p.Allowed, ", ")))
				}
			}
		}

		sb.WriteString(fmt.Sprintf("\n**Returns**: %s\n", action.Returns.Description))
		if action.Returns.Example != "" {
			sb.WriteString(fmt.Sprintf("Example: `%s`\n", action.Returns.Example))
		}

		if len(action.Errors) > 0 {
			sb.WriteString(fmt.Sprintf("**Possible errors**: %s\n",
				strings.Join(action.Errors, ", ")))
		}

		if len(action.Examples) > 0 {
			sb.WriteString("\n**Examples**:\n")
			for _, ex := range action.Examples {
				sb.WriteString(fmt.Sprintf("- %s\n", ex.Description))
				sb.WriteString(fmt.Sprintf("  ```json\n  %s\n  ```\n", ex.Call))
				if ex.Result != "" {
					sb.WriteString(fmt.Sprintf("  Result: %s\n", ex.Result))
				}
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
