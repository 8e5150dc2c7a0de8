package domain

import (
	"strings"
	"time"
)

type ColumnType string

const (
	ColumnInteger ColumnType = "integer"
	ColumnFloat   ColumnType = "float"
	ColumnText    ColumnType = "text"
	ColumnDate    ColumnType = "date"
	ColumnBoolean ColumnType = "boolean"
)

type ColumnDef struct {
	Name string
	Type ColumnType
}

// InferColumnType maps one observed value to a column type. Unrecognized
// values fall back to text.
func InferColumnType(value any) ColumnType {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ColumnInteger
	case float32, float64:
		return ColumnFloat
	case bool:
		return ColumnBoolean
	case time.Time, *time.Time:
		return ColumnDate
	}
	return ColumnText
}

// Table is a table-ready row set: every row has one value per column.
type Table struct {
	Columns []string
	Rows    [][]any
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of a column, or -1.
func (t Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// IndexFold is Index with case-insensitive matching.
func (t Table) IndexFold(column string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, column) {
			return i
		}
	}
	return -1
}

// ColumnType infers a column type from its first non-nil value.
func (t Table) ColumnType(column string) ColumnType {
	idx := t.Index(column)
	if idx < 0 {
		return ColumnText
	}
	for _, row := range t.Rows {
		if idx < len(row) && row[idx] != nil {
			return InferColumnType(row[idx])
		}
	}
	return ColumnText
}

// Schema infers the column definitions of the table.
func (t Table) Schema() []ColumnDef {
	defs := make([]ColumnDef, 0, len(t.Columns))
	for _, column := range t.Columns {
		defs = append(defs, ColumnDef{Name: column, Type: t.ColumnType(column)})
	}
	return defs
}

// Project keeps the given columns in order. Unknown columns become nil.
func (t Table) Project(columns []string) Table {
	indexes := make([]int, len(columns))
	for i, column := range columns {
		indexes[i] = t.Index(column)
	}

	out := Table{Columns: append([]string(nil), columns...), Rows: make([][]any, 0, len(t.Rows))}
	for _, row := range t.Rows {
		values := make([]any, len(columns))
		for i, idx := range indexes {
			if idx >= 0 && idx < len(row) {
				values[i] = row[idx]
			}
		}
		out.Rows = append(out.Rows, values)
	}
	return out
}

// Without drops the given columns.
func (t Table) Without(columns ...string) Table {
	drop := make(map[string]bool, len(columns))
	for _, column := range columns {
		drop[column] = true
	}
	keep := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		if !drop[column] {
			keep = append(keep, column)
		}
	}
	return t.Project(keep)
}

// Rename changes column names in place of their old names.
func (t Table) Rename(names map[string]string) Table {
	columns := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		if renamed, ok := names[column]; ok {
			columns[i] = renamed
			continue
		}
		columns[i] = column
	}
	return Table{Columns: columns, Rows: t.Rows}
}

// Union appends other below t. The result has t's columns followed by the
// columns only other has; missing cells are nil.
func (t Table) Union(other Table) Table {
	columns := append([]string(nil), t.Columns...)
	for _, column := range other.Columns {
		if t.IndexFold(column) < 0 {
			columns = append(columns, column)
		}
	}

	left := t.Project(columns)
	right := other.Project(foldOnto(columns, other.Columns))
	right.Columns = columns
	left.Rows = append(left.Rows, right.Rows...)
	return left
}

// foldOnto returns, for each target column, the spelling used in source.
func foldOnto(target, source []string) []string {
	out := make([]string, len(target))
	for i, column := range target {
		out[i] = column
		for _, s := range source {
			if strings.EqualFold(s, column) {
				out[i] = s
				break
			}
		}
	}
	return out
}

// WindowFilter selects the rows a re-run of the same window replaces: rows
// whose MatchColumn is one of Values and whose DateColumn falls in Range.
type WindowFilter struct {
	MatchColumn string
	Values      []string
	DateColumn  string
	Range       DateRange
}

func (w *WindowFilter) Empty() bool {
	return w == nil || len(w.Values) == 0
}
