package tools

import (
	"sort"
	"strings"
	"sync"
)

// Registry is a concurrency-safe name-to-tool map.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tool names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Documentation renders every tool's schema as one prompt block, grouped by
// category in a fixed order.
func (r *Registry) Documentation() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byCategory := make(map[Category][]Tool)
	for _, t := range r.tools {
		byCategory[t.Category()] = append(byCategory[t.Category()], t)
	}

	var sb strings.Builder
	for _, cat := range []Category{CategoryInternal, CategoryExternal, CategorySystem} {
		group := byCategory[cat]
		sort.Slice(group, func(i, j int) bool { return group[i].Name() < group[j].Name() })
		for _, t := range group {
			sb.WriteString(t.Schema().PromptFormat())
		}
	}

	return sb.String()
}
