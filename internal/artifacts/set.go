package artifacts

import (
	"path/filepath"

	"github.com/docna/docna/internal/engine"
)

// File name suffixes of the artifact set.
const (
	SuffixBed       = ".bed"
	SuffixParams    = ".par"
	SuffixSolutions = ".solutions"
	SuffixData      = ".dat.gz"
)

// Set names the artifacts of one sample in one directory.
type Set struct {
	Dir    string
	Sample string
	// Solutions adds the full-solutions report.
	Solutions bool
}

// Path returns the artifact path for suffix.
func (s Set) Path(suffix string) string {
	return filepath.Join(s.Dir, s.Sample+suffix)
}

// reportTarget pairs a report kind with the file it is written to.
type reportTarget struct {
	kind   engine.ReportKind
	suffix string
}

// reports lists the report files in write order.
func (s Set) reports() []reportTarget {
	targets := []reportTarget{
		{engine.ReportBed, SuffixBed},
		{engine.ReportParams, SuffixParams},
	}
	if s.Solutions {
		targets = append(targets, reportTarget{engine.ReportSolution, SuffixSolutions})
	}
	return targets
}

// Paths lists every file the set produces, in write order.
func (s Set) Paths() []string {
	var out []string
	for _, r := range s.reports() {
		out = append(out, s.Path(r.suffix))
	}
	return append(out, s.Path(SuffixData))
}
