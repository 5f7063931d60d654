// Package tools exposes the bridge operations as agent-callable tools with schema
// validated arguments and categorized errors.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Tool is one agent-callable operation.
type Tool interface {
	// Name returns the unique snake_case identifier of the tool.
	Name() string

	// Description is shown to the agent to decide when to call the tool.
	Description() string

	// Parameters returns a minimal JSON schema for the accepted arguments.
	Parameters() map[string]any

	// Call validates args and runs the tool. Failures are returned as *ToolError.
	Call(ctx context.Context, args map[string]any) (any, error)
}

const (
	CodeAuthExpired     = "AUTH_EXPIRED"
	CodeAPIError        = "API_ERROR"
	CodeUploadError     = "UPLOAD_ERROR"
	CodeSubmissionError = "SUBMISSION_ERROR"
	CodeLocalIOError    = "LOCAL_IO_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeExecutionError  = "EXECUTION_ERROR"
	CodeUnknownTool     = "UNKNOWN_TOOL"
)

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool        string `json:"tool"`
	Message     string `json:"message"`
	Code        string `json:"code"`
	Remediation string `json:"remediation,omitempty"`
	Details     any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// Descriptor is the listing form of a tool.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Registry holds tools by name. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, tool := range tools {
		r.Register(tool)
	}
	return r
}

// Register adds tool, replacing any tool with the same name.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns the descriptors sorted by name.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.tools))
	for _, tool := range r.tools {
		descriptors = append(descriptors, Descriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Name < descriptors[j].Name })
	return descriptors
}

// Call runs the named tool. An unknown name is reported as a *ToolError with CodeUnknownTool.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, ok := r.Get(name)
	if !ok {
		return nil, NewToolError(name, "no such tool", CodeUnknownTool)
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.Call(ctx, args)
}
