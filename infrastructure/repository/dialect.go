package repository

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// dialect hides the few places where postgres and sqlite disagree.
type dialect interface {
	placeholder() squirrel.PlaceholderFormat
	quote(identifier string) string
	sqlType(domain.ColumnType) string
	columnType(live string) domain.ColumnType
	columns(table string) squirrel.SelectBuilder
	tables() squirrel.SelectBuilder
	bind(value any) any
}

func dialectFor(driver string) dialect {
	if driver == database.DriverSQLite {
		return sqliteDialect{}
	}
	return postgresDialect{}
}

type postgresDialect struct{}

func (postgresDialect) placeholder() squirrel.PlaceholderFormat { return squirrel.Dollar }

func (postgresDialect) quote(identifier string) string { return pq.QuoteIdentifier(identifier) }

func (postgresDialect) sqlType(t domain.ColumnType) string {
	switch t {
	case domain.ColumnInteger:
		return "BIGINT"
	case domain.ColumnFloat:
		return "DOUBLE PRECISION"
	case domain.ColumnDate:
		return "DATE"
	case domain.ColumnBoolean:
		return "BOOLEAN"
	}
	return "TEXT"
}

func (postgresDialect) columnType(live string) domain.ColumnType {
	switch strings.ToLower(live) {
	case "bigint", "integer", "smallint":
		return domain.ColumnInteger
	case "double precision", "real", "numeric":
		return domain.ColumnFloat
	case "date", "timestamp without time zone", "timestamp with time zone":
		return domain.ColumnDate
	case "boolean":
		return domain.ColumnBoolean
	}
	return domain.ColumnText
}

func (postgresDialect) columns(table string) squirrel.SelectBuilder {
	return squirrel.Select("column_name", "data_type").
		From("information_schema.columns").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_name": table}).
		OrderBy("ordinal_position")
}

func (postgresDialect) tables() squirrel.SelectBuilder {
	return squirrel.Select("table_name").
		From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_type": "BASE TABLE"}).
		OrderBy("table_name")
}

func (postgresDialect) bind(value any) any { return value }

type sqliteDialect struct{}

func (sqliteDialect) placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

func (sqliteDialect) quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

func (sqliteDialect) sqlType(t domain.ColumnType) string {
	switch t {
	case domain.ColumnInteger:
		return "INTEGER"
	case domain.ColumnFloat:
		return "REAL"
	case domain.ColumnDate:
		return "DATE"
	case domain.ColumnBoolean:
		return "BOOLEAN"
	}
	return "TEXT"
}

func (sqliteDialect) columnType(live string) domain.ColumnType {
	switch upper := strings.ToUpper(live); {
	case strings.Contains(upper, "INT"):
		return domain.ColumnInteger
	case strings.Contains(upper, "REAL"), strings.Contains(upper, "DOUB"), strings.Contains(upper, "FLOA"):
		return domain.ColumnFloat
	case strings.HasPrefix(upper, "DATE"), strings.HasPrefix(upper, "TIMESTAMP"):
		return domain.ColumnDate
	case upper == "BOOLEAN":
		return domain.ColumnBoolean
	}
	return domain.ColumnText
}

func (sqliteDialect) columns(table string) squirrel.SelectBuilder {
	literal := "'" + strings.ReplaceAll(table, "'", "''") + "'"
	return squirrel.Select("name", "type").
		From("pragma_table_info(" + literal + ")").
		OrderBy("cid")
}

func (sqliteDialect) tables() squirrel.SelectBuilder {
	return squirrel.Select("name").
		From("sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where(squirrel.NotLike{"name": "sqlite_%"}).
		OrderBy("name")
}

// bind stores dates as ISO text so range filters compare lexically
func (sqliteDialect) bind(value any) any {
	switch v := value.(type) {
	case time.Time:
		return formatTime(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return formatTime(*v)
	}
	return value
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}
