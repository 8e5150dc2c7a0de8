package loading

import (
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

// ColumnAddition is one ALTER TABLE ... ADD COLUMN step.
type ColumnAddition struct {
	Name string
	Type domain.ColumnType
}

// PlanColumnAdditions lists the incoming columns the live table lacks, in
// incoming order. Names compare case-insensitively.
func PlanColumnAdditions(live, incoming []domain.ColumnDef) []ColumnAddition {
	known := make(map[string]bool, len(live))
	for _, column := range live {
		known[strings.ToLower(column.Name)] = true
	}

	var plan []ColumnAddition
	for _, column := range incoming {
		key := strings.ToLower(column.Name)
		if known[key] {
			continue
		}
		known[key] = true
		plan = append(plan, ColumnAddition{Name: column.Name, Type: column.Type})
	}
	return plan
}

// alignColumns renames incoming columns to the spelling the live table uses.
func alignColumns(live []domain.ColumnDef, data domain.Table) domain.Table {
	names := make(map[string]string)
	for _, column := range data.Columns {
		for _, def := range live {
			if def.Name != column && strings.EqualFold(def.Name, column) {
				names[column] = def.Name
				break
			}
		}
	}
	if len(names) == 0 {
		return data
	}
	return data.Rename(names)
}

// schemaWith infers the incoming schema, preferring baseline types.
func schemaWith(baseline []domain.ColumnDef, data domain.Table) []domain.ColumnDef {
	types := make(map[string]domain.ColumnType, len(baseline))
	for _, column := range baseline {
		types[strings.ToLower(column.Name)] = column.Type
	}

	schema := data.Schema()
	for i, column := range schema {
		if columnType, ok := types[strings.ToLower(column.Name)]; ok {
			schema[i].Type = columnType
		}
	}
	return schema
}

// coerce converts every cell to the type of its live column. Cells that
// cannot be converted become NULL.
func coerce(columns []domain.ColumnDef, data domain.Table) domain.Table {
	types := make([]domain.ColumnType, len(data.Columns))
	for i, name := range data.Columns {
		types[i] = domain.ColumnText
		for _, column := range columns {
			if column.Name == name {
				types[i] = column.Type
				break
			}
		}
	}

	out := domain.Table{Columns: data.Columns, Rows: make([][]any, len(data.Rows))}
	for r, row := range data.Rows {
		values := make([]any, len(row))
		for i, value := range row {
			values[i] = coerceValue(types[i], value)
		}
		out.Rows[r] = values
	}
	return out
}

func coerceValue(columnType domain.ColumnType, value any) any {
	if value == nil {
		return nil
	}

	switch columnType {
	case domain.ColumnInteger:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
			return v
		case float64:
			return int64(v)
		case float32:
			return int64(v)
		case bool:
			if v {
				return int64(1)
			}
			return int64(0)
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return int64(f)
			}
		}
		return nil
	case domain.ColumnFloat:
		switch v := value.(type) {
		case float64, float32:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
		return nil
	case domain.ColumnDate:
		if t, ok := utils.ParseAnyDate(value); ok {
			return utils.DateOnly(t)
		}
		return nil
	case domain.ColumnBoolean:
		switch v := value.(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		case int64:
			return v != 0
		}
		return nil
	}

	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(time.DateOnly)
	}
	return utils.ToString(value)
}
