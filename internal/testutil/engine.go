// Package testutil provides fakes and assertions shared by the docna test
// suites.
package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/docna/docna/internal/engine"
)

// FakeEngine records every request and answers with a fixed result.
type FakeEngine struct {
	Result engine.Result
	Err    error

	mu       sync.Mutex
	requests []engine.Request
	paths    []string
}

// Factory returns an app.EngineFactory-compatible constructor that records
// the engine path and hands out f.
func (f *FakeEngine) Factory() func(path string, stderr io.Writer) engine.Engine {
	return func(path string, _ io.Writer) engine.Engine {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.paths = append(f.paths, path)
		return f
	}
}

// Analyze implements engine.Engine.
func (f *FakeEngine) Analyze(_ context.Context, req engine.Request) (engine.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Result, nil
}

// Requests returns the requests received, in order.
func (f *FakeEngine) Requests() []engine.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.Request(nil), f.requests...)
}

// Paths returns the engine paths the factory was asked for.
func (f *FakeEngine) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

// SampleResult is a small two-chromosome result with every report kind.
// Chromosomes are deliberately out of natural order.
func SampleResult() *engine.StaticResult {
	cols := []string{"chrom", "position", "cov", "vaf", "symbol"}
	return &engine.StaticResult{
		Reports: map[engine.ReportKind][]string{
			engine.ReportBed:      {"chr2\t0\t4000000\tAB\t2\n", "chr1\t0\t2500000\tAAB\t3\n"},
			engine.ReportParams:   {"m0\t30.1\n", "fb\t1.05\n"},
			engine.ReportSolution: {"chr1:0-2500000 AAB 0.92\n", "chr1:0-2500000 AB 0.08\n"},
		},
		Chroms: []engine.Chromosome{
			{ID: "chr2", Table: engine.Table{Columns: cols, Rows: [][]string{
				{"chr2", "15012", "31", "0.49", "E"},
				{"chr2", "15988", "29", "0.52", "E"},
			}}},
			{ID: "chr1", Table: engine.Table{Columns: cols, Rows: [][]string{
				{"chr1", "10311", "42", "0.33", "E"},
			}}},
		},
	}
}
