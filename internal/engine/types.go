package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docna/docna/internal/config"
	"github.com/docna/docna/internal/presets"
)

// Engine runs one analysis.
type Engine interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

// Level is the engine's verbosity, named after the engine's own logger levels.
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
	LevelNotSet   Level = "NOTSET"
)

// Levels lists the accepted verbosity names.
var Levels = []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical, LevelNotSet}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(s))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid level %q", s)
}

// Slog maps the level onto the orchestrator's own logger. NOTSET lets
// everything through.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelDebug, LevelNotSet:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError, LevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Request is everything the engine needs for one sample.
type Request struct {
	InputPath  string
	SampleName string
	Config     *config.RunConfiguration
	Processes  int
	Level      Level
	// DiploidCoverage fixes the diploid baseline. Zero asks the engine to
	// estimate it.
	DiploidCoverage float64
	Presets         *presets.Catalog
}

// AutoCoverage reports whether the engine should estimate diploid coverage.
func (r Request) AutoCoverage() bool {
	return r.DiploidCoverage == 0
}

// Validate checks the invariants the engine relies on.
func (r Request) Validate() error {
	if r.InputPath == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if r.SampleName == "" {
		return fmt.Errorf("sample name must not be empty")
	}
	if r.Processes < 1 {
		return fmt.Errorf("process count must be at least 1, got %d", r.Processes)
	}
	if _, err := ParseLevel(string(r.Level)); err != nil {
		return err
	}
	if r.DiploidCoverage < 0 {
		return fmt.Errorf("diploid coverage must not be negative, got %g", r.DiploidCoverage)
	}
	return nil
}

// ReportKind selects one of the engine's text reports.
type ReportKind string

const (
	ReportBed      ReportKind = "bed"
	ReportParams   ReportKind = "params"
	ReportSolution ReportKind = "solution"
)

// Table is a rectangular block of text cells with named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Chromosome is the engine's per-chromosome output table.
type Chromosome struct {
	ID    string
	Table Table
}

// Result is the outcome of an analysis.
type Result interface {
	// Report returns the lines of the requested report.
	Report(kind ReportKind) ([]string, error)
	// Chromosomes returns the per-chromosome tables in the engine's order,
	// which is not necessarily sorted.
	Chromosomes() []Chromosome
}
