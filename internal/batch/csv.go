package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// ErrBadHeader is returned when the CSV header lacks an input column or
// repeats one.
var ErrBadHeader = errors.New("batch: bad header")

// ColumnID is the optional record identifier column.
const ColumnID = "id"

// Record is one parsed CSV row.
type Record struct {
	Line   int // 1-based line in the source, header is line 1
	ID     string
	Inputs fuzzy.Inputs
	Err    error // parse failure; Inputs is zero when set
}

// ReadCSV parses every data row of r. It fails only on a bad header or an
// unreadable stream; row problems are reported per Record.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("batch: read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var recs []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				recs = append(recs, Record{Line: perr.Line, Err: fmt.Errorf("%w: %v", fuzzy.ErrInvalidInput, perr.Err)})
				continue
			}
			return recs, fmt.Errorf("batch: read: %w", err)
		}
		line, _ := cr.FieldPos(0)
		recs = append(recs, parseRow(line, row, cols))
	}
	return recs, nil
}

// columns maps each known column name to its position; id is -1 if absent.
type columns struct {
	id     int
	inputs [4]int // sleep, workload, screentime, extracurricular
}

var inputColumns = [4]string{
	fuzzy.VarSleep, fuzzy.VarWorkload, fuzzy.VarScreentime, fuzzy.VarExtracurricular,
}

func columnIndex(header []string) (columns, error) {
	c := columns{id: -1, inputs: [4]int{-1, -1, -1, -1}}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if seen[name] {
			return c, fmt.Errorf("%w: duplicate column %q", ErrBadHeader, name)
		}
		seen[name] = true
		if name == ColumnID {
			c.id = i
			continue
		}
		for j, want := range inputColumns {
			if name == want {
				c.inputs[j] = i
			}
		}
	}
	for j, pos := range c.inputs {
		if pos < 0 {
			return c, fmt.Errorf("%w: missing column %q", ErrBadHeader, inputColumns[j])
		}
	}
	return c, nil
}

func parseRow(line int, row []string, c columns) Record {
	rec := Record{Line: line}
	if c.id >= 0 && c.id < len(row) {
		rec.ID = strings.TrimSpace(row[c.id])
	}

	var vals [4]float64
	for j, pos := range c.inputs {
		if pos >= len(row) {
			rec.Err = fmt.Errorf("%w: line %d: missing %s", fuzzy.ErrInvalidInput, line, inputColumns[j])
			return rec
		}
		raw := strings.TrimSpace(row[pos])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			rec.Err = fmt.Errorf("%w: line %d: %s: %q is not a number", fuzzy.ErrInvalidInput, line, inputColumns[j], raw)
			return rec
		}
		vals[j] = v
	}

	rec.Inputs = fuzzy.Inputs{Sleep: vals[0], Workload: vals[1], Screentime: vals[2], Extracurricular: vals[3]}
	if err := rec.Inputs.Validate(); err != nil {
		rec.Err = fmt.Errorf("line %d: %w", line, err)
		rec.Inputs = fuzzy.Inputs{}
	}
	return rec
}
