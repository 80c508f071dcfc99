package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/docna/docna/internal/artifacts"
	"github.com/docna/docna/internal/ctxlog"
	"github.com/docna/docna/internal/engine"
	"github.com/docna/docna/internal/presets"
	"github.com/docna/docna/internal/storage"
	"github.com/google/uuid"
)

// Analyze runs one sample through the engine and writes its artifacts.
//
// Stages run strictly in sequence and the first failure ends the run.
// Artifacts written before a failure stay on disk.
func (a *App) Analyze(ctx context.Context, cfg *AnalyzeConfig) (*Result, error) {
	runID := uuid.NewString()
	sample := cfg.Sample()
	ctx = ctxlog.WithLogger(ctx, a.logger(cfg.Level.Slog(), cfg.LogFormat))
	ctx, logger := ctxlog.With(ctx, "run_id", runID, "sample", sample)
	logger.Info("Analysis started.", "input", cfg.InputFile, "processes", cfg.Processes)

	runCfg, err := a.deps.Loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fail(KindConfig, err)
	}

	catalog, err := presets.Resolve(cfg.Models)
	if err != nil {
		return nil, fail(KindUsage, err)
	}
	logger.Debug("Model presets resolved.", "count", catalog.Len(), "extra", cfg.Models)

	req := engine.Request{
		InputPath:       cfg.InputFile,
		SampleName:      sample,
		Config:          runCfg,
		Processes:       cfg.Processes,
		Level:           cfg.Level,
		DiploidCoverage: cfg.DiploidCoverage,
		Presets:         catalog,
	}
	if req.AutoCoverage() {
		logger.Debug("Diploid coverage will be estimated by the engine.")
	}

	result, err := a.deps.Engine(cfg.EnginePath, a.errW).Analyze(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fail(KindInterrupted, err)
		}
		return nil, fail(KindEngine, err)
	}
	logger.Info("Engine finished.", "chromosomes", len(result.Chromosomes()))

	set := artifacts.Set{Dir: cfg.OutputDir, Sample: sample, Solutions: cfg.ReportSolutions}
	written, err := set.Write(ctx, result)
	if err != nil {
		var writeErr *artifacts.WriteError
		if errors.As(err, &writeErr) {
			return nil, fail(KindIO, err)
		}
		return nil, fail(KindEngine, err)
	}

	res := &Result{
		Command:   "analyze",
		Message:   "All done",
		RunID:     runID,
		Sample:    sample,
		Artifacts: written,
	}

	if cfg.Publish.Enabled() {
		store, err := a.deps.Storage(cfg.Publish.S3())
		if err != nil {
			return nil, fail(KindIO, fmt.Errorf("failed to configure artifact storage: %w", err))
		}
		res.Published, err = storage.Publish(ctx, store, cfg.Publish.Prefix, written)
		if err != nil {
			return nil, fail(KindIO, err)
		}
	}

	logger.Info("Analysis finished.", "artifacts", len(written))
	fmt.Fprintln(a.outW, res.Message)
	return res, nil
}
