// Package frame is a small in-memory table used to run the rename and cast
// steps of an export over real data. Cells start as strings read from CSV and
// become typed cty values once their column is cast.
package frame

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vk/fieldreg/internal/cast"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

var (
	// ErrEmptyInput is returned when a CSV source has no header row.
	ErrEmptyInput = errors.New("frame: input has no header row")
	// ErrUnknownColumn is returned when a cast names a column the frame lacks.
	ErrUnknownColumn = errors.New("frame: unknown column")
	// ErrDuplicateColumn is returned when a CSV header repeats a column name
	// or a rename makes two columns share one in JSON output.
	ErrDuplicateColumn = errors.New("frame: duplicate column")
)

// Frame is an immutable table. Operations return new frames.
type Frame struct {
	columns []string
	rows    [][]cty.Value
}

// New builds a frame of string cells. Column names must be unique.
func New(columns []string, records [][]string) (*Frame, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateColumn, c)
		}
		seen[c] = struct{}{}
	}

	f := &Frame{columns: append([]string(nil), columns...)}
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("frame: row %d has %d cells, want %d", i+1, len(rec), len(columns))
		}
		row := make([]cty.Value, len(rec))
		for j, cell := range rec {
			row[j] = cty.StringVal(cell)
		}
		f.rows = append(f.rows, row)
	}
	return f, nil
}

// ReadCSV reads a header row followed by data rows.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("frame: reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	return New(records[0], records[1:])
}

// Columns returns a copy of the column names.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.rows) }

// Cell returns the value at row i of column col.
func (f *Frame) Cell(i int, col string) (cty.Value, error) {
	j := f.index(col)
	if j < 0 {
		return cty.NilVal, fmt.Errorf("%w %q", ErrUnknownColumn, col)
	}
	if i < 0 || i >= len(f.rows) {
		return cty.NilVal, fmt.Errorf("frame: row %d out of range", i)
	}
	return f.rows[i][j], nil
}

func (f *Frame) index(col string) int {
	for j, c := range f.columns {
		if c == col {
			return j
		}
	}
	return -1
}

func (f *Frame) clone() *Frame {
	out := &Frame{
		columns: f.Columns(),
		rows:    make([][]cty.Value, len(f.rows)),
	}
	for i, row := range f.rows {
		out.rows[i] = append([]cty.Value(nil), row...)
	}
	return out
}

// Cast converts the columns named in types to their type tags. Columns not
// named keep their current values. Only string cells can be cast.
func (f *Frame) Cast(types map[string]string) (*Frame, error) {
	out := f.clone()
	for col, tag := range types {
		j := out.index(col)
		if j < 0 {
			return nil, fmt.Errorf("%w %q", ErrUnknownColumn, col)
		}
		spec, err := cast.Lookup(tag)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		for i, row := range out.rows {
			cell := row[j]
			if !cell.Type().Equals(cty.String) || cell.IsNull() {
				return nil, fmt.Errorf("frame: column %q row %d is already cast", col, i+1)
			}
			v, err := spec.Value(cell.AsString())
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", col, i+1, err)
			}
			row[j] = v
		}
	}
	return out, nil
}

// Rename renames the columns present in renames. Other columns keep their
// names.
func (f *Frame) Rename(renames map[string]string) *Frame {
	out := f.clone()
	for j, c := range out.columns {
		if to, ok := renames[c]; ok {
			out.columns[j] = to
		}
	}
	return out
}

// WriteCSV writes the header and every row. Nulls become empty cells.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.columns); err != nil {
		return err
	}
	rec := make([]string, len(f.columns))
	for _, row := range f.rows {
		for j, v := range row {
			rec[j] = formatCell(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v cty.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	default:
		return v.GoString()
	}
}

// WriteJSON writes the rows as a JSON array of objects keyed by column name.
func (f *Frame) WriteJSON(w io.Writer) error {
	seen := make(map[string]struct{}, len(f.columns))
	for _, c := range f.columns {
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w %q", ErrDuplicateColumn, c)
		}
		seen[c] = struct{}{}
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range f.rows {
		attrs := make(map[string]cty.Value, len(row))
		for j, v := range row {
			attrs[f.columns[j]] = v
		}
		obj := cty.ObjectVal(attrs)
		b, err := ctyjson.Marshal(obj, obj.Type())
		if err != nil {
			return fmt.Errorf("frame: encoding row %d: %w", i+1, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		buf.Write(b)
	}
	if len(f.rows) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}
