package appState

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/isaacphi/realty/internal/agent"
	"github.com/isaacphi/realty/internal/config"
	"github.com/isaacphi/realty/internal/dataset"
	"github.com/isaacphi/realty/internal/llm"
	"github.com/isaacphi/realty/internal/repository"
	"github.com/isaacphi/realty/internal/repository/sqlite"
	"github.com/isaacphi/realty/internal/tools"
	"github.com/isaacphi/realty/internal/trace"
)

// App holds the global application state
type App struct {
	Config    *config.ConfigSchema
	Logger    *slog.Logger
	SessionID uuid.UUID
	closers   []io.Closer

	dataOnce sync.Once
	data     *dataset.Dataset
	dataErr  error

	tracerOnce sync.Once
	tracer     trace.Tracer
	tracerErr  error
}

var (
	globalApp *App
	initOnce  sync.Once
	initErr   error
	mu        sync.RWMutex
)

// Initialize creates the global app instance with the given overrides
func Initialize(overrides *config.RuntimeOverrides) error {
	initOnce.Do(func() {
		// Load base configuration first
		cfg, err := config.New(overrides)
		if err != nil {
			initErr = fmt.Errorf("failed to load config: %w", err)
			return
		}

		// Set up logger
		logger, closer, err := setupLogger(cfg.Log)
		if err != nil {
			initErr = fmt.Errorf("failed to setup logger: %w", err)
			return
		}

		app := &App{
			Config:    cfg,
			Logger:    logger,
			SessionID: uuid.New(),
		}
		if closer != nil {
			app.closers = append(app.closers, closer)
		}

		mu.Lock()
		globalApp = app
		mu.Unlock()

		// Set as default logger
		slog.SetDefault(logger)
	})
	return initErr
}

// Get returns the global app instance and panics if not initialized
func Get() *App {
	mu.RLock()
	defer mu.RUnlock()

	if globalApp == nil {
		panic("app not initialized")
	}
	return globalApp
}

// TryGet returns the global app instance and a boolean indicating if it's initialized
func TryGet() (*App, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return globalApp, globalApp != nil
}

// Cleanup performs cleanup of app resources
func Cleanup() error {
	mu.Lock()
	defer mu.Unlock()

	if globalApp == nil {
		return nil
	}
	var errs []error
	for i := len(globalApp.closers) - 1; i >= 0; i-- {
		if err := globalApp.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	globalApp.closers = nil
	return errors.Join(errs...)
}

// Dataset loads the configured property table the first time it is called.
func (a *App) Dataset() (*dataset.Dataset, error) {
	a.dataOnce.Do(func() {
		a.data, a.dataErr = dataset.Load(a.Config.Dataset.Path)
		if a.dataErr == nil {
			report := a.data.Report()
			a.Logger.Info("dataset ready", "source", report.Source, "records", report.Loaded, "skipped", report.Skipped)
		}
	})
	return a.data, a.dataErr
}

func (a *App) Registry() (*tools.Registry, error) {
	data, err := a.Dataset()
	if err != nil {
		return nil, err
	}
	return tools.NewRealtyRegistry(data)
}

// Tracer builds the sinks named in the tracing config. With none configured
// events are discarded.
func (a *App) Tracer() (trace.Tracer, error) {
	a.tracerOnce.Do(func() {
		cfg := a.Config.Tracing
		var sinks []trace.Sink

		if cfg.LogFile != "" {
			sink, err := trace.OpenLogSink(cfg.LogFile)
			if err != nil {
				a.tracerErr = fmt.Errorf("failed to open trace log: %w", err)
				return
			}
			sinks = append(sinks, sink)
		}
		if cfg.DBPath != "" {
			repo, err := sqlite.Initialize(cfg.DBPath)
			if err != nil {
				a.tracerErr = fmt.Errorf("failed to open trace store: %w", err)
				return
			}
			sinks = append(sinks, trace.NewStoreSink(repo))
		}
		if cfg.APIKey != "" {
			sinks = append(sinks, trace.NewRemoteSink(cfg.Endpoint, cfg.APIKey))
		}

		if len(sinks) == 0 {
			a.tracer = trace.Nop{}
			return
		}
		fanout := trace.New(cfg.Project, a.SessionID, a.Logger, sinks...)
		a.closers = append(a.closers, fanout)
		a.tracer = fanout
	})
	return a.tracer, a.tracerErr
}

// TraceStore opens the trace database for reading.
func (a *App) TraceStore() (repository.TraceRepository, error) {
	if a.Config.Tracing.DBPath == "" {
		return nil, fmt.Errorf("tracing.dbPath is not configured")
	}
	return sqlite.Initialize(a.Config.Tracing.DBPath)
}

// NewAgent wires the dataset, tools, model and tracer into a conversation.
func (a *App) NewAgent() (*agent.Agent, error) {
	registry, err := a.Registry()
	if err != nil {
		return nil, err
	}
	tracer, err := a.Tracer()
	if err != nil {
		return nil, err
	}
	model := a.Config.Model()
	provider, err := llm.NewClient(model, a.Config.Providers)
	if err != nil {
		return nil, err
	}
	return agent.New(provider, registry, tracer, agent.Options{
		MaxIterations: a.Config.Agent.MaxIterations,
		ModelTimeout:  a.Config.Agent.ModelTimeout,
		HistoryLimit:  a.Config.Agent.HistoryLimit,
		SystemMessage: a.Config.Agent.SystemMessage,
		Model:         a.Config.ActiveModel,
		Logger:        a.Logger,
	}), nil
}

// parseLevel maps a configured level name to slog. Anything unrecognised
// gets the shipped default, WARN.
func parseLevel(name string) slog.Level {
	switch name {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func setupLogger(cfg config.Log) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.LogLevel),
		AddSource: true,
	}

	if cfg.LogFile == "" {
		// stdout belongs to the conversation
		handler := slog.NewTextHandler(os.Stderr, opts)
		return slog.New(handler), nil, nil
	}

	// Create log file
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, opts)
	return slog.New(handler), file, nil
}
