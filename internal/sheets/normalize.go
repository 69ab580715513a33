package sheets

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RawTable is a worksheet as stored: untyped text records keyed by header.
type RawTable struct {
	Title    string              `json:"title"`
	Header   []string            `json:"header"`
	Records  []map[string]string `json:"records"`
	Revision int64               `json:"revision"`
}

// Warning points at a stored numeric cell that could not be parsed.
// Row is the worksheet row number, the header being row 1.
type Warning struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Row is a normalized record: every declared column present, numbers parsed.
type Row struct {
	cells   map[string]string
	numbers map[string]decimal.Decimal
}

// Get returns the cell text; numeric columns return their canonical form.
func (r Row) Get(column string) string {
	if n, ok := r.numbers[column]; ok {
		return n.String()
	}
	if v, ok := r.cells[column]; ok {
		return v
	}
	return Missing
}

// Number returns the parsed value of a numeric column, zero otherwise.
func (r Row) Number(column string) decimal.Decimal {
	return r.numbers[column]
}

// Int returns the integer part of a numeric column.
func (r Row) Int(column string) int {
	return int(r.numbers[column].IntPart())
}

// Table is the normalized snapshot handed to commands and views. Revision is
// the worksheet revision the rows were read at. Degraded marks an empty
// stand-in returned because the store could not be read.
type Table struct {
	Title    string    `json:"title"`
	Rows     []Row     `json:"-"`
	Revision int64     `json:"revision"`
	Degraded bool      `json:"degraded"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Empty returns a table with no rows for schema.
func Empty(schema Schema) Table {
	return Table{Title: schema.Title, Rows: []Row{}}
}

// Normalize coerces raw records into the schema: missing columns become
// Missing, extra columns are dropped and numeric columns are parsed, with
// unparsable values counted as zero and reported as warnings.
func Normalize(raw RawTable, schema Schema) Table {
	table := Table{
		Title:    schema.Title,
		Rows:     make([]Row, 0, len(raw.Records)),
		Revision: raw.Revision,
	}

	for i, record := range raw.Records {
		row := Row{
			cells:   make(map[string]string, len(schema.Columns)),
			numbers: make(map[string]decimal.Decimal, len(schema.Numeric)),
		}
		for _, column := range schema.Columns {
			value, ok := record[column]
			if !ok {
				value = Missing
			}

			if !schema.IsNumeric(column) {
				row.cells[column] = value
				continue
			}

			number, parsed := ParseNumber(value)
			if !parsed {
				table.Warnings = append(table.Warnings, Warning{Row: i + 2, Column: column, Value: value})
			}
			row.numbers[column] = number
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// ParseNumber reads a stored number, accepting a decimal comma. Blank and
// Missing cells are zero. The second result is false when value is not a
// number; the returned value is then zero.
func ParseNumber(value string) (decimal.Decimal, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if v == "" || v == Missing {
		return decimal.Zero, true
	}

	comma := strings.LastIndex(v, ",")
	dot := strings.LastIndex(v, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		v = strings.ReplaceAll(v, ",", "")
	case comma >= 0 && strings.Count(v, ",") == 1:
		v = strings.Replace(v, ",", ".", 1)
	case comma >= 0:
		v = strings.ReplaceAll(v, ",", "")
	}

	number, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return number, true
}

// NewRow builds a row from explicit values. Used where rows are assembled in
// memory rather than read from the store.
func NewRow(schema Schema, values map[string]string) Row {
	raw := RawTable{Records: []map[string]string{values}}
	return Normalize(raw, schema).Rows[0]
}
