package app

import (
	"io"
	"log/slog"

	"github.com/docna/docna/internal/config"
	"github.com/docna/docna/internal/dashboard"
	"github.com/docna/docna/internal/engine"
	"github.com/docna/docna/internal/storage"
)

// EngineFactory builds the engine for one run.
type EngineFactory func(path string, stderr io.Writer) engine.Engine

// StorageFactory builds the artifact publisher for one run.
type StorageFactory func(cfg storage.S3Config) (storage.Storage, error)

// Deps are the collaborators of the handlers. Zero fields take production
// defaults.
type Deps struct {
	Engine    EngineFactory
	Loader    config.Loader
	Storage   StorageFactory
	Hosts     dashboard.HostResolver
	Dashboard *dashboard.Options
}

// App encapsulates the application's dependencies and output streams.
type App struct {
	outW io.Writer
	errW io.Writer
	deps Deps
}

// NewApp is the constructor for the main application. outW receives
// user-facing acknowledgments, errW receives logs and child diagnostics.
func NewApp(outW, errW io.Writer, deps Deps) *App {
	if deps.Engine == nil {
		deps.Engine = func(path string, stderr io.Writer) engine.Engine {
			return engine.NewCommandEngine(path, stderr)
		}
	}
	if deps.Loader == nil {
		deps.Loader = config.NewLoader()
	}
	if deps.Storage == nil {
		deps.Storage = storage.NewS3
	}
	if deps.Dashboard == nil {
		opts := dashboard.DefaultOptions()
		opts.Stdout = outW
		opts.Stderr = errW
		deps.Dashboard = &opts
	}
	return &App{outW: outW, errW: errW, deps: deps}
}

// logger builds the isolated logger of one command invocation.
func (a *App) logger(level slog.Level, format string) *slog.Logger {
	return newLogger(level, format, a.errW)
}
