package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/docna/docna/internal/ctxlog"
)

// DefaultCommand is the engine executable looked up on PATH when neither a
// flag nor DOCNA_ENGINE names one.
const DefaultCommand = "docna-engine"

// CommandEngine runs the analysis engine as a child process.
//
// The engine is invoked as
//
//	<Path> analyze --input F --sample S --config C --processes N --level L --presets P [--m0 X]
//
// and must print one JSON document (see document) on stdout. Its stderr is
// forwarded to Stderr.
type CommandEngine struct {
	Path   string
	Stderr io.Writer
	// WorkDir holds the per-run scratch directory. Empty means os.TempDir.
	WorkDir string
}

// NewCommandEngine returns an engine for the executable at path.
func NewCommandEngine(path string, stderr io.Writer) *CommandEngine {
	if path == "" {
		path = DefaultCommand
	}
	return &CommandEngine{Path: path, Stderr: stderr}
}

// RunError reports a failed engine invocation.
type RunError struct {
	Path     string
	ExitCode int
	Err      error
}

func (e *RunError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("engine %s exited with status %d", e.Path, e.ExitCode)
	}
	return fmt.Sprintf("engine %s failed: %v", e.Path, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Args builds the engine's argument list for req.
func Args(req Request, configPath, presetsPath string) []string {
	args := []string{
		"analyze",
		"--input", req.InputPath,
		"--sample", req.SampleName,
		"--config", configPath,
		"--processes", strconv.Itoa(req.Processes),
		"--level", string(req.Level),
		"--presets", presetsPath,
	}
	if !req.AutoCoverage() {
		args = append(args, "--m0", strconv.FormatFloat(req.DiploidCoverage, 'g', -1, 64))
	}
	return args
}

// Analyze implements Engine.
func (e *CommandEngine) Analyze(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis request: %w", err)
	}
	logger := ctxlog.FromContext(ctx).With("engine", e.Path)

	scratch, err := os.MkdirTemp(e.WorkDir, "docna-engine-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create engine scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	configPath := filepath.Join(scratch, "config.ini")
	if err := writeFile(configPath, func(w io.Writer) error {
		_, err := req.Config.WriteTo(w)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to stage engine configuration: %w", err)
	}

	presetsPath := filepath.Join(scratch, "presets.json")
	if err := writeFile(presetsPath, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(req.Presets)
	}); err != nil {
		return nil, fmt.Errorf("failed to stage model presets: %w", err)
	}

	args := Args(req, configPath, presetsPath)
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Debug("Starting analysis engine.", "args", args)
	if err := cmd.Run(); err != nil {
		runErr := &RunError{Path: e.Path, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			runErr.ExitCode = exitErr.ExitCode()
		}
		return nil, runErr
	}
	logger.Debug("Analysis engine finished.", "stdout_bytes", stdout.Len())

	result, err := Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", e.Path, err)
	}
	return result, nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
