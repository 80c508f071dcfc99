package engine

import "fmt"

// StaticResult is a Result held in memory.
type StaticResult struct {
	Reports map[ReportKind][]string
	Chroms  []Chromosome
}

// MissingReportError is returned when the engine produced no report of a kind.
type MissingReportError struct {
	Kind ReportKind
}

func (e *MissingReportError) Error() string {
	return fmt.Sprintf("engine produced no %q report", string(e.Kind))
}

// Report implements Result.
func (r *StaticResult) Report(kind ReportKind) ([]string, error) {
	lines, ok := r.Reports[kind]
	if !ok {
		return nil, &MissingReportError{Kind: kind}
	}
	return lines, nil
}

// Chromosomes implements Result.
func (r *StaticResult) Chromosomes() []Chromosome {
	return r.Chroms
}
