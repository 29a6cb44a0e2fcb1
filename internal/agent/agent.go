package agent

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/isaacphi/realty/internal/domain"
	"github.com/isaacphi/realty/internal/events"
	"github.com/isaacphi/realty/internal/llm"
	"github.com/isaacphi/realty/internal/tools"
	"github.com/isaacphi/realty/internal/trace"
)

const (
	DefaultMaxIterations = 6
	DefaultModelTimeout  = 60 * time.Second
)

// State is where the conversation loop currently is.
type State int

const (
	StateAwaitingInput State = iota
	StateModelCall
	StateToolExecution
	StateFinalAnswer
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateModelCall:
		return "model_call"
	case StateToolExecution:
		return "tool_execution"
	case StateFinalAnswer:
		return "final_answer"
	default:
		return "unknown"
	}
}

type Options struct {
	// MaxIterations bounds model calls per question.
	MaxIterations int
	ModelTimeout  time.Duration
	// HistoryLimit is the number of messages kept between questions; 0 keeps everything.
	HistoryLimit  int
	SystemMessage string
	Model         string
	Logger        *slog.Logger
}

// Agent runs the question/tool-call loop for one conversation. It is not safe
// for concurrent use; run one Ask at a time.
type Agent struct {
	provider llm.Provider
	registry *tools.Registry
	tracer   trace.Tracer
	opts     Options
	history  []domain.Message
	state    State
}

// New creates a new Agent. Zero option values take the package defaults.
func New(provider llm.Provider, registry *tools.Registry, tracer trace.Tracer, opts Options) *Agent {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.ModelTimeout <= 0 {
		opts.ModelTimeout = DefaultModelTimeout
	}
	if opts.HistoryLimit < 0 {
		opts.HistoryLimit = 0
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if tracer == nil {
		tracer = trace.Nop{}
	}
	return &Agent{
		provider: provider,
		registry: registry,
		tracer:   tracer,
		opts:     opts,
	}
}

func (a *Agent) State() State {
	return a.state
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []domain.Message {
	return slices.Clone(a.history)
}

// Reset clears the conversation.
func (a *Agent) Reset() {
	a.history = nil
	a.state = StateAwaitingInput
}

// Ask sends one user question through the loop and returns the final answer.
// On error the conversation is left exactly as it was before the question.
func (a *Agent) Ask(ctx context.Context, input string) (answer string, err error) {
	ctx = trace.WithRun(ctx)
	a.history = trimHistory(a.history, a.opts.HistoryLimit)
	checkpoint := len(a.history)
	iterations := 0

	a.tracer.Emit(ctx, events.TurnEvent{Status: events.StageStart, Input: input})
	defer func() {
		if err != nil {
			a.history = a.history[:checkpoint:checkpoint]
			a.opts.Logger.Error("question failed", "iterations", iterations, "error", err)
			a.tracer.Emit(ctx, events.TurnEvent{Status: events.StageError, Input: input, Iterations: iterations, Error: err})
		} else {
			a.tracer.Emit(ctx, events.TurnEvent{Status: events.StageSuccess, Input: input, Answer: answer, Iterations: iterations})
		}
		a.state = StateAwaitingInput
	}()

	a.history = append(a.history, domain.Message{Role: domain.RoleUser, Content: input})
	specs := a.registry.Specs()

	for iterations < a.opts.MaxIterations {
		iterations++
		a.state = StateModelCall
		resp, err := a.callModel(ctx, iterations, specs)
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 {
			a.state = StateFinalAnswer
			a.history = append(a.history, domain.Message{Role: domain.RoleAssistant, Content: resp.Text})
			return resp.Text, nil
		}
		if iterations == a.opts.MaxIterations {
			// no model call is left to read the tool results
			break
		}

		a.state = StateToolExecution
		a.history = append(a.history, domain.Message{
			Role:      domain.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			result := a.executeTool(ctx, call).ToolResult()
			a.history = append(a.history, domain.Message{Role: domain.RoleTool, ToolResult: &result})
		}
	}

	return "", domain.AgentLoopExceededError{Limit: a.opts.MaxIterations}
}

func (a *Agent) callModel(ctx context.Context, iteration int, specs []domain.Tool) (llm.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.opts.ModelTimeout)
	defer cancel()

	a.tracer.Emit(ctx, events.ModelCallEvent{
		Status:    events.StageStart,
		Iteration: iteration,
		Model:     a.opts.Model,
		Messages:  len(a.history),
	})
	start := time.Now()

	resp, err := a.provider.Complete(callCtx, llm.Request{
		System:   a.opts.SystemMessage,
		Messages: a.History(),
		Tools:    specs,
	})
	if err != nil {
		timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded)
		a.tracer.Emit(ctx, events.ModelCallEvent{
			Status:    events.StageError,
			Iteration: iteration,
			Model:     a.opts.Model,
			Messages:  len(a.history),
			Duration:  time.Since(start),
			Timeout:   timeout,
			Error:     err,
		})
		return llm.Response{}, domain.ModelCallError{Timeout: timeout, Err: err}
	}

	a.tracer.Emit(ctx, events.ModelCallEvent{
		Status:    events.StageSuccess,
		Iteration: iteration,
		Model:     a.opts.Model,
		Messages:  len(a.history),
		ToolCalls: len(resp.ToolCalls),
		Duration:  time.Since(start),
	})
	return resp, nil
}
