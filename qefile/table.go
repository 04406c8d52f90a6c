/*
Package qefile reads the text and XML output formats of Quantum
ESPRESSO, EPW and Wannier90 that the plotting tools consume.

The formats are all small whitespace tables with assorted header
conventions, except for the QE data-file-schema XML. Fortran-style
D exponents (1.0D-3) appear in several of them and are normalized
everywhere. Files compressed with gzip, flate or zstd are read
transparently, dispatched on the filename suffix.
*/
package qefile

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// A Table is a whitespace-separated numeric table. Data is rectangular:
// rows longer than the narrowest row are truncated to it.
type Table struct {
	Data   [][]float64
	Labels []string //column labels from the header when it provides exactly one per column, else col1, col2, ...
	Header []string //the top comment/header lines, for content heuristics
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return len(t.Data) }

// Cols returns the number of data columns.
func (t *Table) Cols() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// Col returns a fresh slice with the j-th column.
func (t *Table) Col(j int) []float64 {
	out := make([]float64, len(t.Data))
	for i, row := range t.Data {
		out[i] = row[j]
	}
	return out
}

var numericLineRe = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?(\s+|$)`)

// d2e normalizes Fortran D exponents so strconv and the numeric-line
// regex can handle them.
func d2e(s string) string {
	return strings.NewReplacer("D", "E", "d", "e").Replace(s)
}

func isNumericLine(s string) bool {
	return numericLineRe.MatchString(d2e(strings.TrimSpace(s)))
}

// openReader opens name for reading, transparently decompressing by
// filename suffix: .gz (gzip), .zst/.zstd (zstd), .flate (raw deflate).
// Anything else is read as plain text.
func openReader(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError(UnableToOpen, name, "table")
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, newError(WrongFormat+": bad gzip stream", name, "table")
		}
		return struct {
			io.Reader
			io.Closer
		}{g, f}, nil
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, newError(WrongFormat+": bad zstd stream", name, "table")
		}
		return z.IOReadCloser(), nil
	case strings.HasSuffix(name, ".flate"):
		return struct {
			io.Reader
			io.Closer
		}{flate.NewReader(f), f}, nil
	}
	return f, nil
}

// trimmedSuffixName strips a compression suffix so format dispatch on
// the "real" extension still works for compressed files.
func trimmedSuffixName(name string) string {
	for _, suf := range []string{".gz", ".zst", ".zstd", ".flate"} {
		if strings.HasSuffix(name, suf) {
			return strings.TrimSuffix(name, suf)
		}
	}
	return name
}

// ReadLines returns every line of the (possibly compressed) file.
func ReadLines(path string) ([]string, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, newError(err.Error(), path, "table")
	}
	return lines, nil
}

// ReadTable reads a whitespace numeric table from path.
//
// The first 80 lines are sniffed for header/comment lines (anything
// before the first numeric line that starts with a comment marker or
// contains letters). If one header line has exactly as many tokens as
// the table has columns, those tokens become the column labels.
// Comment lines (#, !, ;, @) and non-numeric lines inside the body are
// skipped. Rows are truncated to the narrowest row so Data is
// rectangular.
func ReadTable(path string) (*Table, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	t := &Table{}
	var labelCandidate []string

	//collect top header/comment lines
	limit := len(lines)
	if limit > 80 {
		limit = 80
	}
	for i := 0; i < limit; i++ {
		s := strings.TrimSpace(lines[i])
		if s == "" {
			continue
		}
		if isNumericLine(s) {
			break
		}
		if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "!") || containsAlpha(s) {
			t.Header = append(t.Header, s)
			toks := strings.Fields(strings.TrimLeft(s, "#!;@"))
			if len(toks) > 0 && anyTokenAlpha(toks) {
				labelCandidate = toks
			}
		}
	}

	//parse numeric rows
	minCols := -1
	var rows [][]float64
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "!") ||
			strings.HasPrefix(s, ";") || strings.HasPrefix(s, "@") {
			continue
		}
		if !isNumericLine(s) {
			continue
		}
		fields := strings.Fields(d2e(s))
		vals := make([]float64, 0, len(fields))
		ok := true
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok || len(vals) == 0 {
			continue
		}
		if minCols < 0 || len(vals) < minCols {
			minCols = len(vals)
		}
		rows = append(rows, vals)
	}
	if len(rows) == 0 {
		return nil, newError(NoNumericData, path, "table")
	}
	for i := range rows {
		rows[i] = rows[i][:minCols]
	}
	t.Data = rows

	if len(labelCandidate) == minCols {
		t.Labels = labelCandidate
	} else {
		t.Labels = make([]string, minCols)
		for i := range t.Labels {
			t.Labels[i] = "col" + strconv.Itoa(i+1)
		}
	}
	return t, nil
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return true
		}
	}
	return false
}

func anyTokenAlpha(toks []string) bool {
	for _, t := range toks {
		if containsAlpha(t) {
			return true
		}
	}
	return false
}
