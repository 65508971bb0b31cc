package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Tool is one entry in the capability table the model may invoke by name:
// a JSON parameter schema plus the local handler that executes it.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     func(ctx context.Context, call Call) (any, error)
}

// Call carries the decoded arguments of a tool invocation together with the
// tenant the conversation belongs to.
type Call struct {
	BusinessID int64
	Args       map[string]any
}

// Registry maps tool names to their definitions.
type Registry struct {
	tools map[string]*Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

func (r *Registry) Register(tool *Tool) {
	r.tools[tool.Name] = tool
}

func (r *Registry) Get(name string) *Tool {
	return r.tools[name]
}

// List returns all tools in name order so the declared tool set is stable
// across requests.
func (r *Registry) List() []*Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]*Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Execute decodes rawArgs, validates them against the tool's required
// fields, and runs the handler. The result is JSON-encoded for the
// follow-up turn.
func (r *Registry) Execute(ctx context.Context, name string, rawArgs string, businessID int64) (string, error) {
	tool := r.Get(name)
	if tool == nil {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for %q: %w", name, err)
		}
	}

	if err := validateArgs(tool.Parameters, args); err != nil {
		return "", fmt.Errorf("invalid arguments for %q: %w", name, err)
	}

	result, err := tool.Handler(ctx, Call{BusinessID: businessID, Args: args})
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding result of %q: %w", name, err)
	}

	return string(encoded), nil
}

func validateArgs(schema map[string]any, args map[string]any) error {
	required, ok := schema["required"].([]string)
	if !ok {
		if anySlice, isAny := schema["required"].([]any); isAny {
			for _, field := range anySlice {
				if name, isString := field.(string); isString {
					required = append(required, name)
				}
			}
		}
	}

	for _, field := range required {
		if _, present := args[field]; !present {
			return fmt.Errorf("missing required argument %q", field)
		}
	}

	return nil
}
