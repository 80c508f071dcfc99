package artifacts

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/docna/docna/internal/ctxlog"
	"github.com/docna/docna/internal/engine"
	"github.com/klauspost/compress/gzip"
)

// WriteError reports a failure to write an artifact to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ColumnMismatchError is returned when chromosome tables disagree on columns.
type ColumnMismatchError struct {
	Chromosome string
	Want, Got  []string
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("chromosome %q has columns [%s], want [%s]",
		e.Chromosome, strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}

// Write produces the whole set from result: the reports first, then the data
// table. It stops at the first failure and leaves files already written in
// place. The returned slice lists the files written.
func (s Set) Write(ctx context.Context, result engine.Result) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	var written []string

	for _, r := range s.reports() {
		lines, err := result.Report(r.kind)
		if err != nil {
			return written, fmt.Errorf("report %q: %w", string(r.kind), err)
		}
		path := s.Path(r.suffix)
		if err := WriteReport(path, lines); err != nil {
			return written, err
		}
		logger.Debug("Report written.", "kind", string(r.kind), "path", path, "lines", len(lines))
		written = append(written, path)
	}

	table, err := Concat(result.Chromosomes())
	if err != nil {
		return written, err
	}
	path := s.Path(SuffixData)
	if err := WriteTable(path, table); err != nil {
		return written, err
	}
	logger.Debug("Data table written.", "path", path, "rows", len(table.Rows))
	return append(written, path), nil
}

// WriteReport truncates path and writes lines to it, terminating each line
// that lacks a newline.
func WriteReport(path string, lines []string) error {
	return create(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, line := range lines {
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			if !strings.HasSuffix(line, "\n") {
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
		}
		return bw.Flush()
	})
}

// Concat stacks chromosome tables in the given order. All tables must share
// the first table's columns.
func Concat(chroms []engine.Chromosome) (engine.Table, error) {
	var out engine.Table
	for i, c := range chroms {
		if i == 0 {
			out.Columns = slices.Clone(c.Table.Columns)
		} else if !slices.Equal(out.Columns, c.Table.Columns) {
			return engine.Table{}, &ColumnMismatchError{Chromosome: c.ID, Want: out.Columns, Got: c.Table.Columns}
		}
		out.Rows = append(out.Rows, c.Table.Rows...)
	}
	return out, nil
}

// WriteTable writes table as gzip-compressed, tab-separated values with a
// header row and no index column. A table without columns produces an empty
// compressed stream.
func WriteTable(path string, table engine.Table) error {
	return create(path, func(w io.Writer) error {
		zw := gzip.NewWriter(w)
		if len(table.Columns) > 0 {
			bw := bufio.NewWriter(zw)
			writeRow(bw, table.Columns)
			for _, row := range table.Rows {
				writeRow(bw, row)
			}
			if err := bw.Flush(); err != nil {
				return err
			}
		}
		return zw.Close()
	})
}

// writeRow writes one tab-separated line. Quoting is minimal: only cells
// holding a tab, a double quote or a line break are quoted, with embedded
// quotes doubled. Leading and trailing spaces are written as they are.
func writeRow(bw *bufio.Writer, row []string) {
	if len(row) == 1 && row[0] == "" {
		bw.WriteString(`""` + "\n")
		return
	}
	for i, cell := range row {
		if i > 0 {
			bw.WriteByte('\t')
		}
		if strings.ContainsAny(cell, "\t\"\r\n") {
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			bw.WriteByte('"')
			continue
		}
		bw.WriteString(cell)
	}
	bw.WriteByte('\n')
}

// create opens path in truncate mode, runs fill and closes the file.
func create(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := fill(f); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
