package tools

import (
	"context"
	"fmt"

	"github.com/isaacphi/realty/internal/domain"
)

// Registry is the set of tools offered to the model, in registration order.
// It is built once at startup and read-only afterwards.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %s already registered", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Specs describes every registered tool for the model.
func (r *Registry) Specs() []domain.Tool {
	specs := make([]domain.Tool, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec())
	}
	return specs
}

// Dispatch validates call against the tool's schema and invokes it. Unknown
// tools and bad arguments return an InvalidArgumentsError without invoking
// anything. Failures inside the tool, including panics, come back as a
// not_found or error Result rather than an error.
func (r *Registry) Dispatch(ctx context.Context, call domain.ToolCall) (res Result, err error) {
	tool, ok := r.tools[call.Name]
	if !ok {
		return Result{}, domain.InvalidArgumentsError{Tool: call.Name, Problems: []string{"unknown tool"}}
	}
	args, problems := tool.checkArguments(call.Arguments)
	if len(problems) > 0 {
		return Result{}, domain.InvalidArgumentsError{Tool: call.Name, Problems: problems}
	}

	defer func() {
		if p := recover(); p != nil {
			res = errorResult(call, fmt.Errorf("tool %s panicked: %v", call.Name, p))
			err = nil
		}
	}()

	out, callErr := tool.call(ctx, args)
	switch {
	case callErr == nil:
		return okResult(call, out), nil
	case domain.IsNotFoundError(callErr):
		return notFoundResult(call, callErr), nil
	default:
		return errorResult(call, callErr), nil
	}
}
