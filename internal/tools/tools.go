// Package tools defines the tool contract the agent dispatches against and
// the registry that holds every available tool.
package tools

import (
	"context"
	"encoding/json"
)

// Category groups tools in generated documentation.
type Category string

const (
	CategoryInternal Category = "Internal CRUD"
	CategoryExternal Category = "External API"
	CategorySystem   Category = "System"
)

// Tool is a named capability the model can invoke. Execute receives the
// action name and raw JSON parameters (which may be null) and returns a
// human-readable result.
type Tool interface {
	Name() string
	Description() string
	Category() Category
	Schema() Schema
	Execute(ctx context.Context, action string, params json.RawMessage) (string, error)
}
