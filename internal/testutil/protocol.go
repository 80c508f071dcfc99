package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/docna/docna/internal/engine"
	"github.com/stretchr/testify/require"
)

type engineDocument struct {
	Reports     map[string][]string `json:"reports"`
	Chromosomes []engineChromosome  `json:"chromosomes"`
}

type engineChromosome struct {
	ID      string     `json:"id"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// EncodeResult writes result in the document format the engine prints on
// stdout. Only the listed report kinds are included.
func EncodeResult(w io.Writer, result engine.Result, kinds ...engine.ReportKind) error {
	doc := engineDocument{Reports: make(map[string][]string, len(kinds))}
	for _, kind := range kinds {
		lines, err := result.Report(kind)
		if err != nil {
			return err
		}
		doc.Reports[string(kind)] = lines
	}
	for _, c := range result.Chromosomes() {
		doc.Chromosomes = append(doc.Chromosomes, engineChromosome{ID: c.ID, Columns: c.Table.Columns, Rows: c.Table.Rows})
	}
	return json.NewEncoder(w).Encode(doc)
}

// WriteEngineScript writes an executable engine stand-in that prints result
// and returns its path. The test is skipped without a POSIX shell.
func WriteEngineScript(t *testing.T, result engine.Result) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	docPath := filepath.Join(dir, "result.json")
	f, err := os.Create(docPath)
	require.NoError(t, err)
	require.NoError(t, EncodeResult(f, result, engine.ReportBed, engine.ReportParams, engine.ReportSolution))
	require.NoError(t, f.Close())

	script := fmt.Sprintf("#!%s\ncat %q\n", sh, docPath)
	path := filepath.Join(dir, "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}
