package engine

import (
	"encoding/json"
	"fmt"
	"io"
)

// document is the JSON the engine prints on stdout.
type document struct {
	Reports     map[string][]string `json:"reports"`
	Chromosomes []chromosomeDoc     `json:"chromosomes"`
}

type chromosomeDoc struct {
	ID      string     `json:"id"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Decode reads an engine result document. Keys it does not know are
// ignored so engines may add metadata.
func Decode(r io.Reader) (*StaticResult, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode engine result: %w", err)
	}

	result := &StaticResult{
		Reports: make(map[ReportKind][]string, len(doc.Reports)),
		Chroms:  make([]Chromosome, 0, len(doc.Chromosomes)),
	}
	for kind, lines := range doc.Reports {
		result.Reports[ReportKind(kind)] = lines
	}

	seen := make(map[string]struct{}, len(doc.Chromosomes))
	for i, c := range doc.Chromosomes {
		if c.ID == "" {
			return nil, fmt.Errorf("chromosome #%d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("chromosome %q listed twice", c.ID)
		}
		seen[c.ID] = struct{}{}
		for j, row := range c.Rows {
			if len(row) != len(c.Columns) {
				return nil, fmt.Errorf("chromosome %q row %d has %d cells, want %d", c.ID, j, len(row), len(c.Columns))
			}
		}
		result.Chroms = append(result.Chroms, Chromosome{
			ID:    c.ID,
			Table: Table{Columns: c.Columns, Rows: c.Rows},
		})
	}
	return result, nil
}
