package artifacts

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/docna/docna/internal/ctxlog"
	"github.com/docna/docna/internal/engine"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() *engine.StaticResult {
	cols := []string{"chrom", "position", "cov", "vaf"}
	return &engine.StaticResult{
		Reports: map[engine.ReportKind][]string{
			engine.ReportBed:      {"chr2\t0\t50\tAB\n", "chr1\t0\t90\tAAB"},
			engine.ReportParams:   {"m0\t31.0\n"},
			engine.ReportSolution: {"chr1 solution 1\n"},
		},
		Chroms: []engine.Chromosome{
			{ID: "chr2", Table: engine.Table{Columns: cols, Rows: [][]string{
				{"chr2", "100", "30", "0.5"},
				{"chr2", "200", "28", "0.48"},
			}}},
			{ID: "chr1", Table: engine.Table{Columns: cols, Rows: [][]string{
				{"chr1", "50", "33", "0.31"},
			}}},
		},
	}
}

func readTable(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	r := csv.NewReader(zr)
	r.Comma = '\t'
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestSetWrite_DefaultArtifacts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	set := Set{Dir: dir, Sample: "S1"}

	// --- Act ---
	written, err := set.Write(ctxlog.Discard(context.Background()), testResult())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, set.Paths(), written)
	require.Equal(t, []string{
		filepath.Join(dir, "S1.bed"),
		filepath.Join(dir, "S1.par"),
		filepath.Join(dir, "S1.dat.gz"),
	}, written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3, "no stray files")

	bed, err := os.ReadFile(filepath.Join(dir, "S1.bed"))
	require.NoError(t, err)
	assert.Equal(t, "chr2\t0\t50\tAB\nchr1\t0\t90\tAAB\n", string(bed))

	want := [][]string{
		{"chrom", "position", "cov", "vaf"},
		{"chr2", "100", "30", "0.5"},
		{"chr2", "200", "28", "0.48"},
		{"chr1", "50", "33", "0.31"},
	}
	if diff := cmp.Diff(want, readTable(t, filepath.Join(dir, "S1.dat.gz"))); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestSetWrite_WithSolutions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	set := Set{Dir: dir, Sample: "S1", Solutions: true}

	written, err := set.Write(ctxlog.Discard(context.Background()), testResult())

	require.NoError(t, err)
	require.Len(t, written, 4)
	require.FileExists(t, filepath.Join(dir, "S1.solutions"))
}

func TestSetWrite_RerunOverwrites(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	set := Set{Dir: dir, Sample: "S1"}
	require.NoError(t, os.WriteFile(set.Path(SuffixBed), []byte("stale content that is longer than the report\n"), 0o644))

	// --- Act ---
	_, err := set.Write(ctxlog.Discard(context.Background()), testResult())
	require.NoError(t, err)
	_, err = set.Write(ctxlog.Discard(context.Background()), testResult())
	require.NoError(t, err)

	// --- Assert ---
	bed, err := os.ReadFile(set.Path(SuffixBed))
	require.NoError(t, err)
	assert.Equal(t, "chr2\t0\t50\tAB\nchr1\t0\t90\tAAB\n", string(bed))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSetWrite_MissingReportKeepsEarlierArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result := testResult()
	delete(result.Reports, engine.ReportParams)

	written, err := Set{Dir: dir, Sample: "S1"}.Write(ctxlog.Discard(context.Background()), result)

	var missing *engine.MissingReportError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{filepath.Join(dir, "S1.bed")}, written)
	require.FileExists(t, filepath.Join(dir, "S1.bed"))
	require.NoFileExists(t, filepath.Join(dir, "S1.dat.gz"))
}

func TestSetWrite_UnwritableDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := Set{Dir: dir, Sample: "S1"}.Write(ctxlog.Discard(context.Background()), testResult())

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, filepath.Join(dir, "S1.bed"), writeErr.Path)
}

func TestConcat(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		table, err := Concat(nil)
		require.NoError(t, err)
		assert.Empty(t, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("column mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := Concat([]engine.Chromosome{
			{ID: "chr1", Table: engine.Table{Columns: []string{"a", "b"}}},
			{ID: "chrX", Table: engine.Table{Columns: []string{"a", "c"}}},
		})
		var mismatch *ColumnMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "chrX", mismatch.Chromosome)
	})
}

func TestWriteTable_EmptyTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.dat.gz")
	require.NoError(t, WriteTable(path, engine.Table{}))
	assert.Empty(t, readTable(t, path))
}

func TestWriteTable_MinimalQuoting(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "quoting.dat.gz")
	table := engine.Table{
		Columns: []string{"chrom", "note"},
		Rows: [][]string{
			{"chr1", " leading space"},
			{"chr1", `say "hi"`},
			{"chr1", "tab\there"},
			{"chr1", ""},
		},
	}

	// --- Act ---
	require.NoError(t, WriteTable(path, table))

	// --- Assert ---
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	want := "chrom\tnote\n" +
		"chr1\t leading space\n" +
		"chr1\t\"say \"\"hi\"\"\"\n" +
		"chr1\t\"tab\there\"\n" +
		"chr1\t\n"
	assert.Equal(t, want, string(raw))
}
