package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/executor"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
)

// DefaultMaxTurns bounds the number of model round-trips per run.
const DefaultMaxTurns = 200

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeCompleted       Outcome = "completed"        // model answered with final text
	OutcomeBudgetExceeded  Outcome = "budget_exceeded"  // turn budget reached; run incomplete
	OutcomeTransportFailed Outcome = "transport_failed" // model service call failed
)

// RunResult summarizes one run of the dispatch loop.
type RunResult struct {
	Outcome      Outcome
	Turns        int
	ToolCalls    int
	FinalMessage string
}

// Loop drives one execution run against a model. It does not itself check
// that the model's call sequence matches plan order: the execution state's
// action contract rejects out-of-order calls, and the rejection text fed back
// into the conversation is the recovery mechanism.
type Loop struct {
	model    Model
	state    *executor.State
	maxTurns int
	logger   *slog.Logger
}

// NewLoop builds a dispatch loop for the given model and execution state.
// maxTurns <= 0 selects DefaultMaxTurns; a nil logger discards log output.
func NewLoop(model Model, state *executor.State, maxTurns int, logger *slog.Logger) (*Loop, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if state == nil {
		return nil, errors.New("execution state is required")
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		model:    model,
		state:    state,
		maxTurns: maxTurns,
		logger:   logger,
	}, nil
}

// Run executes the plan through the model until it answers with final text,
// the turn budget is exhausted, or the transport fails. The conversation
// history grows monotonically for the duration of the run and is discarded
// afterwards. On transport failure the returned error wraps the cause and
// the execution state reflects the last successfully applied action.
func (l *Loop) Run(ctx context.Context, plan model.PackingPlan) (RunResult, error) {
	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: FlattenPlan(plan)},
	}
	tools := ToolDefinitions()

	result := RunResult{}
	for result.Turns < l.maxTurns {
		result.Turns++

		reply, err := l.model.Complete(ctx, messages, tools)
		if err != nil {
			result.Outcome = OutcomeTransportFailed
			l.logger.Error("model call failed", "run", l.state.RunID(), "turn", result.Turns, "error", err)
			return result, &TransportError{Err: err}
		}

		if len(reply.ToolCalls) == 0 {
			result.Outcome = OutcomeCompleted
			result.FinalMessage = reply.Content
			l.logger.Info("run completed",
				"run", l.state.RunID(),
				"turns", result.Turns,
				"tool_calls", result.ToolCalls,
				"placed", l.state.PlacedCount(),
			)
			return result, nil
		}

		messages = append(messages, Message{
			Role:      RoleAssistant,
			Content:   reply.Content,
			ToolCalls: reply.ToolCalls,
		})

		// Tool calls execute strictly in the order the model emitted them,
		// even when requested nominally in parallel. This preserves the
		// state machine's ordering invariant.
		for _, call := range reply.ToolCalls {
			content, isErr := dispatch(l.state, call)
			result.ToolCalls++
			if isErr {
				l.logger.Warn("tool call rejected", "run", l.state.RunID(), "tool", call.Name, "result", content)
			} else {
				l.logger.Debug("tool call applied", "run", l.state.RunID(), "tool", call.Name, "result", content)
			}
			messages = append(messages, Message{
				Role:       RoleTool,
				Content:    content,
				ToolCallID: call.ID,
			})
		}
	}

	result.Outcome = OutcomeBudgetExceeded
	l.logger.Warn("turn budget exhausted",
		"run", l.state.RunID(),
		"turns", result.Turns,
		"placed", l.state.PlacedCount(),
		"total", plan.TotalItems(),
	)
	return result, nil
}
