package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docna/docna/internal/ctxlog"
	"github.com/docna/docna/internal/dashboard"
	"github.com/docna/docna/internal/portalloc"
)

const banner = "**********"

// Viewer serves the dashboard until the child process exits.
func (a *App) Viewer(ctx context.Context, cfg *ViewerConfig) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger(slog.LevelInfo, DefaultLogFormat))
	ctx, logger := ctxlog.With(ctx, "command", "viewer")

	host, err := a.deps.Hosts.Resolve(cfg.Remote)
	if err != nil {
		return nil, fail(KindLaunch, err)
	}

	reservation, err := portalloc.Resolve(ctx, "", cfg.Port)
	if err != nil {
		return nil, fail(KindLaunch, err)
	}
	defer reservation.Release()
	logger.Debug("Dashboard port chosen.", "port", reservation.Port(), "assigned", reservation.Assigned())

	spec := dashboard.Spec{Host: host, Port: reservation.Port(), Remote: cfg.Remote}
	opts := *a.deps.Dashboard
	opts.BeforeStart = reservation.Release

	fmt.Fprintln(a.outW, banner)
	fmt.Fprintf(a.outW, "Access dashboard in browser via: %s\n", spec.URL())
	fmt.Fprintln(a.outW, banner)

	res := &Result{Command: "viewer", URL: spec.URL()}
	if err := dashboard.Run(ctx, spec, opts); err != nil {
		if ctx.Err() != nil {
			return nil, fail(KindInterrupted, err)
		}
		f := fail(KindLaunch, err)
		var exitErr *dashboard.ExitError
		if errors.As(err, &exitErr) {
			f.Code = exitErr.Code
		}
		return nil, f
	}
	logger.Debug("Dashboard exited.")
	return res, nil
}
