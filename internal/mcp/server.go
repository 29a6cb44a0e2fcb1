// Package mcp exposes the property tools over the Model Context Protocol so
// other assistants can call them directly.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
	"github.com/pkg/errors"

	"github.com/isaacphi/realty/internal/domain"
	"github.com/isaacphi/realty/internal/events"
	"github.com/isaacphi/realty/internal/tools"
	"github.com/isaacphi/realty/internal/trace"
)

type Server struct {
	registry *tools.Registry
	tracer   trace.Tracer
	server   *mcp_golang.Server
}

func NewServer(registry *tools.Registry, tracer trace.Tracer, tr transport.Transport) (*Server, error) {
	if tracer == nil {
		tracer = trace.Nop{}
	}
	s := &Server{
		registry: registry,
		tracer:   tracer,
		server:   mcp_golang.NewServer(tr),
	}
	if err := registerTool[tools.PropertyArgs](s, tools.FindPropertyTool); err != nil {
		return nil, err
	}
	if err := registerTool[tools.SuburbArgs](s, tools.SuburbTrendsTool); err != nil {
		return nil, err
	}
	return s, nil
}

func registerTool[A any](s *Server, name string) error {
	tool, ok := s.registry.Get(name)
	if !ok {
		return fmt.Errorf("tool %s is not registered", name)
	}
	err := s.server.RegisterTool(name, tool.Description, func(args A) (*mcp_golang.ToolResponse, error) {
		return s.call(context.Background(), name, args)
	})
	return errors.Wrapf(err, "register %s", name)
}

// Serve runs until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.server.Serve(); err != nil {
		return errors.Wrap(err, "serve mcp")
	}
	<-ctx.Done()
	return nil
}

func (s *Server) call(ctx context.Context, name string, args any) (*mcp_golang.ToolResponse, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	ctx = trace.WithRun(ctx)
	call := domain.ToolCall{ID: "mcp_" + uuid.NewString(), Name: name, Arguments: raw}

	s.tracer.Emit(ctx, events.ToolCallEvent{Status: events.StageStart, CallID: call.ID, Name: name, Arguments: string(raw)})
	start := time.Now()

	res, err := s.registry.Dispatch(ctx, call)
	if err != nil {
		s.tracer.Emit(ctx, events.ToolCallEvent{Status: events.StageError, CallID: call.ID, Name: name, Duration: time.Since(start), Error: err})
		return nil, err
	}

	ev := events.ToolCallEvent{Status: events.StageSuccess, CallID: call.ID, Name: name, Result: string(res.Status), Summary: res.Summary, Duration: time.Since(start)}
	if res.IsError() {
		ev.Status = events.StageError
		ev.Error = errors.New(res.Summary)
	}
	s.tracer.Emit(ctx, ev)

	return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(res.Content)), nil
}
