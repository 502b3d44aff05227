// Package agent drives one packing run against an external tool-calling
// model. The loop submits the plan as natural-language instructions plus a
// fixed three-operation tool schema, executes the tool calls the model emits
// against the execution state, and feeds the confirmation strings back until
// the model answers with plain text or the turn budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

// Message roles in the conversation transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn of the conversation with the model.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant turns only
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool turns only
}

// ToolCall is one tool invocation requested by the model. Arguments carry
// the raw JSON payload; dispatch decodes them into the typed argument
// structs of the matching action.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolDefinition declares one callable operation exposed to the model.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Reply is the model's answer for one turn: either final text, or one or
// more tool calls to execute in order.
type Reply struct {
	Content   string
	ToolCalls []ToolCall
}

// Model is the opaque conversational boundary: one blocking request per
// turn, full history in, full reply out.
type Model interface {
	Complete(ctx context.Context, messages []Message, tools []ToolDefinition) (*Reply, error)
}

// TransportError wraps a failure of the model service call itself. It is
// fatal to the current run; the execution state is left as of the last
// successfully applied action.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
