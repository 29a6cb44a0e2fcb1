package agent

import (
	"context"
	"errors"
	"time"

	"github.com/isaacphi/realty/internal/domain"
	"github.com/isaacphi/realty/internal/events"
	"github.com/isaacphi/realty/internal/tools"
)

// executeTool always produces a result for the model, including when the
// arguments were rejected, so the model can see what went wrong.
func (a *Agent) executeTool(ctx context.Context, call domain.ToolCall) tools.Result {
	a.tracer.Emit(ctx, events.ToolCallEvent{
		Status:    events.StageStart,
		CallID:    call.ID,
		Name:      call.Name,
		Arguments: string(call.Arguments),
	})
	start := time.Now()

	result, err := a.registry.Dispatch(ctx, call)
	if err != nil {
		result = tools.InvalidArgumentsResult(call, err)
		a.opts.Logger.Warn("rejected tool call", "tool", call.Name, "error", err)
		a.tracer.Emit(ctx, events.ToolCallEvent{
			Status:   events.StageError,
			CallID:   call.ID,
			Name:     call.Name,
			Result:   string(result.Status),
			Duration: time.Since(start),
			Error:    err,
		})
		return result
	}

	ev := events.ToolCallEvent{
		Status:   events.StageSuccess,
		CallID:   call.ID,
		Name:     call.Name,
		Result:   string(result.Status),
		Summary:  result.Summary,
		Duration: time.Since(start),
	}
	if result.IsError() {
		ev.Status = events.StageError
		ev.Error = errors.New(result.Summary)
	}
	a.tracer.Emit(ctx, ev)
	a.opts.Logger.Debug("tool call finished", "tool", call.Name, "status", result.Status)
	return result
}
