package csvrepo

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/milad/loadprofile/internal/domain"
	"github.com/milad/loadprofile/internal/timeparse"
)

const fieldsPerRow = 3

// ErrFieldCount is reported for rows that do not have exactly three fields.
var ErrFieldCount = errors.New("expected 3 fields")

// RowError describes a rejected input row.
type RowError struct {
	Line int
	Text string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// RowErrors extracts the row errors from an error returned by this package,
// looking through wrapping and errors.Join.
func RowErrors(err error) []*RowError {
	switch e := err.(type) {
	case nil:
		return nil
	case *RowError:
		return []*RowError{e}
	case interface{ Unwrap() []error }:
		var out []*RowError
		for _, inner := range e.Unwrap() {
			out = append(out, RowErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return RowErrors(e.Unwrap())
	}
	return nil
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// ScanLoadProfileCSV reads load-profile rows and calls fn for each valid one,
// in input order.
//
// Each line is one row of three fields: "DD/MM/YYYY","HH:MM[:SS]",<energy>.
// Quotes are optional. A line is parsed on its own, so a stray quote cannot
// pull the following lines into its record. Lines with the wrong field count
// (blank lines included), an unparsable date or time, or a non-finite energy
// value are skipped and returned as a joined error (errors.Join of *RowError)
// carrying the raw line. Only a failure of the underlying reader is returned
// unjoined, and it stops the scan.
func ScanLoadProfileCSV(r io.Reader, fn func(domain.Reading)) error {
	sc := bufio.NewScanner(skipBOM(r))
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	var rowErrs []error
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")

		row, err := splitRow(line)
		if err == nil {
			var reading domain.Reading
			if reading, err = parseRow(row); err == nil {
				fn(reading)
				continue
			}
		}
		rowErrs = append(rowErrs, &RowError{Line: lineNo, Text: line, Err: err})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	return errors.Join(rowErrs...)
}

// splitRow splits a single line into CSV fields. A blank line has no fields.
func splitRow(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1 // validate ourselves
	cr.TrimLeadingSpace = true

	row, err := cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.Err
		}
		return nil, err
	}
	return row, nil
}

// ParseLoadProfileCSV collects every valid row. Invalid rows are skipped and
// returned as a joined error alongside the readings.
func ParseLoadProfileCSV(r io.Reader) ([]domain.Reading, error) {
	readings := []domain.Reading{}
	err := ScanLoadProfileCSV(r, func(rd domain.Reading) {
		readings = append(readings, rd)
	})
	return readings, err
}

func parseRow(row []string) (domain.Reading, error) {
	if len(row) != fieldsPerRow {
		return domain.Reading{}, fmt.Errorf("%w, got %d", ErrFieldCount, len(row))
	}

	ts, err := timeparse.ParseTimestamp(unquote(row[0]), unquote(row[1]))
	if err != nil {
		return domain.Reading{}, err
	}

	raw := unquote(row[2])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("parse energy %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Reading{}, fmt.Errorf("invalid energy %v", v)
	}
	return domain.Reading{Time: ts, Energy: v}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// unquote strips surrounding whitespace and one pair of double quotes left by
// exports that quote inside unquoted fields.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
