package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyTable is returned when a source has no header row.
	ErrEmptyTable = errors.New("empty table")
	// ErrUnsupported is returned for file types ReadFile cannot dispatch.
	ErrUnsupported = errors.New("unsupported file type")
)

// Options controls how tabular sources are read.
type Options struct {
	// MaxRows limits data rows kept; 0 means unlimited. TotalRows still counts every row.
	MaxRows int
	// Delimiter for CSV. If 0, sniffed from the extension and header line.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; SheetIndex (1-based) is used when empty.
	Sheet      string
	SheetIndex int
}

// DefaultOptions returns reasonable defaults for ingestion.
func DefaultOptions() Options {
	return Options{MaxRows: 100000}
}

// Table is a header plus row-major raw cells. Every row has len(Header) cells.
type Table struct {
	Name      string
	Header    []string
	Rows      [][]string
	TotalRows int
}

// Truncated reports whether MaxRows dropped rows.
func (t *Table) Truncated() bool { return t.TotalRows > len(t.Rows) }

// ReadFile dispatches on the file extension.
func ReadFile(path string, opt Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ReadCSV(path, opt)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// ReadCSV reads a delimited text file. Ragged rows are padded or cut to the
// header width.
func ReadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim, err = sniffDelimiter(path, f)
		if err != nil {
			return nil, err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind csv: %w", err)
		}
	}
	t, err := readDelimited(f, delim, opt.MaxRows)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	slog.Debug("read csv", "path", path, "delimiter", string(delim), "rows", t.TotalRows, "kept", len(t.Rows))
	return t, nil
}

func readDelimited(rd io.Reader, delim rune, maxRows int) (*Table, error) {
	r := csv.NewReader(rd)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = cleanHeader(header)
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}

	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	t := &Table{Header: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", t.TotalRows+2, err)
		}
		t.TotalRows++
		if len(t.Rows) < maxRows {
			t.Rows = append(t.Rows, fitRow(rec, len(header)))
		}
	}
	return t, nil
}

// sniffDelimiter picks tab for .tsv files, otherwise the most frequent of
// ',', ';' and tab in the first line. Comma wins ties.
func sniffDelimiter(path string, rd io.Reader) (rune, error) {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t', nil
	}
	line, err := bufio.NewReader(rd).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("sniff delimiter: %w", err)
	}
	best, bestN := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best, nil
}

func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, s := range h {
		if i == 0 {
			s = strings.TrimPrefix(s, "\ufeff")
		}
		out[i] = strings.TrimSpace(s)
	}
	// a header of one empty cell is a blank line, not a column
	if len(out) == 1 && out[0] == "" {
		return nil
	}
	return out
}

func fitRow(rec []string, width int) []string {
	row := make([]string, width)
	copy(row, rec)
	return row
}
