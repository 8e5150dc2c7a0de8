package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

const insertBatchSize = 500

type TableRepository interface {
	EnsureDatabase(ctx context.Context, db string) error
	// TableColumns returns the live schema and whether the table exists.
	TableColumns(ctx context.Context, db, table string) ([]domain.ColumnDef, bool, error)
	ListTables(ctx context.Context, db string) ([]string, error)
	CreateTable(ctx context.Context, db, table string, columns []domain.ColumnDef) error
	AddColumn(ctx context.Context, db, table string, column domain.ColumnDef) error
	InsertRows(ctx context.Context, db, table string, data domain.Table) (int64, error)
	// ReplaceWindow deletes the rows matching filter and inserts data in one transaction.
	ReplaceWindow(ctx context.Context, db, table string, filter domain.WindowFilter, data domain.Table) (deleted, inserted int64, err error)
	ReadRows(ctx context.Context, db, table string) (domain.Table, error)
	ReplaceTable(ctx context.Context, db, table string, columns []domain.ColumnDef, data domain.Table) (int64, error)
	// UnionReplaceTable rewrites table as its current rows followed by data.
	UnionReplaceTable(ctx context.Context, db, table string, data domain.Table) (int64, error)
}

type tableRepository struct {
	pool    database.Pool
	dialect dialect
}

func NewTableRepository(pool database.Pool) TableRepository {
	return &tableRepository{
		pool:    pool,
		dialect: dialectFor(pool.Driver()),
	}
}

func (r *tableRepository) EnsureDatabase(ctx context.Context, db string) error {
	return r.pool.EnsureDatabase(ctx, db)
}

func (r *tableRepository) TableColumns(ctx context.Context, db, table string) ([]domain.ColumnDef, bool, error) {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return nil, false, err
	}
	return r.tableColumns(ctx, conn, table)
}

func (r *tableRepository) tableColumns(ctx context.Context, q database.Queryer, table string) ([]domain.ColumnDef, bool, error) {
	query, args, err := r.dialect.columns(table).PlaceholderFormat(r.dialect.placeholder()).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build columns query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, describe(err, "read columns of "+table)
	}
	defer rows.Close()

	var columns []domain.ColumnDef
	for rows.Next() {
		var name, live string
		if err := rows.Scan(&name, &live); err != nil {
			return nil, false, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, domain.ColumnDef{Name: name, Type: r.dialect.columnType(live)})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate columns of %s: %w", table, err)
	}

	return columns, len(columns) > 0, nil
}

func (r *tableRepository) ListTables(ctx context.Context, db string) ([]string, error) {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return nil, err
	}

	query, args, err := r.dialect.tables().PlaceholderFormat(r.dialect.placeholder()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tables query: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, describe(err, "list tables of "+db)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (r *tableRepository) CreateTable(ctx context.Context, db, table string, columns []domain.ColumnDef) error {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return err
	}
	return r.createTable(ctx, conn, table, columns)
}

func (r *tableRepository) createTable(ctx context.Context, q database.Queryer, table string, columns []domain.ColumnDef) error {
	if len(columns) == 0 {
		return fmt.Errorf("create %s: no columns", table)
	}

	defs := make([]string, 0, len(columns))
	for _, column := range columns {
		defs = append(defs, r.dialect.quote(column.Name)+" "+r.dialect.sqlType(column.Type))
	}

	statement := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", r.dialect.quote(table), strings.Join(defs, ", "))
	if _, err := q.ExecContext(ctx, statement); err != nil {
		return describe(err, "create table "+table)
	}
	return nil
}

func (r *tableRepository) AddColumn(ctx context.Context, db, table string, column domain.ColumnDef) error {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return err
	}

	statement := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		r.dialect.quote(table), r.dialect.quote(column.Name), r.dialect.sqlType(column.Type))

	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return describe(err, fmt.Sprintf("add column %s to %s", column.Name, table))
		}
		return nil
	})
}

func (r *tableRepository) InsertRows(ctx context.Context, db, table string, data domain.Table) (int64, error) {
	if data.Len() == 0 {
		return 0, nil
	}

	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return 0, err
	}

	var inserted int64
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		n, err := r.insert(ctx, tx, table, data)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *tableRepository) insert(ctx context.Context, q database.Queryer, table string, data domain.Table) (int64, error) {
	columns := make([]string, len(data.Columns))
	for i, column := range data.Columns {
		columns[i] = r.dialect.quote(column)
	}

	var total int64
	for start := 0; start < len(data.Rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(data.Rows))

		builder := squirrel.Insert(r.dialect.quote(table)).
			Columns(columns...).
			PlaceholderFormat(r.dialect.placeholder())
		for _, row := range data.Rows[start:end] {
			values := make([]any, len(row))
			for i, value := range row {
				values[i] = r.dialect.bind(value)
			}
			builder = builder.Values(values...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return total, fmt.Errorf("build insert into %s: %w", table, err)
		}

		result, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return total, describe(err, "insert into "+table)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			affected = int64(end - start)
		}
		total += affected
	}
	return total, nil
}

func (r *tableRepository) ReplaceWindow(ctx context.Context, db, table string, filter domain.WindowFilter, data domain.Table) (int64, int64, error) {
	if filter.Empty() && data.Len() == 0 {
		return 0, 0, nil
	}

	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return 0, 0, err
	}

	var deleted, inserted int64
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		n, err := r.deleteWindow(ctx, tx, table, filter)
		if err != nil {
			return err
		}
		deleted = n

		if data.Len() == 0 {
			return nil
		}
		n, err = r.insert(ctx, tx, table, data)
		inserted = n
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return deleted, inserted, nil
}

func (r *tableRepository) deleteWindow(ctx context.Context, q database.Queryer, table string, filter domain.WindowFilter) (int64, error) {
	if filter.Empty() {
		return 0, nil
	}

	query, args, err := squirrel.Delete(r.dialect.quote(table)).
		Where(squirrel.Eq{r.dialect.quote(filter.MatchColumn): filter.Values}).
		Where(squirrel.GtOrEq{r.dialect.quote(filter.DateColumn): r.dialect.bind(filter.Range.Start)}).
		Where(squirrel.LtOrEq{r.dialect.quote(filter.DateColumn): r.dialect.bind(filter.Range.End)}).
		PlaceholderFormat(r.dialect.placeholder()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build window delete on %s: %w", table, err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, describe(err, "delete window from "+table)
	}
	return result.RowsAffected()
}

func (r *tableRepository) ReadRows(ctx context.Context, db, table string) (domain.Table, error) {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return domain.Table{}, err
	}
	return r.readRows(ctx, conn, table)
}

func (r *tableRepository) readRows(ctx context.Context, q database.Queryer, table string) (domain.Table, error) {
	query, args, err := squirrel.Select("*").From(r.dialect.quote(table)).ToSql()
	if err != nil {
		return domain.Table{}, fmt.Errorf("build select from %s: %w", table, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Table{}, describe(err, "read "+table)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.Table{}, err
	}

	out := domain.Table{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return domain.Table{}, fmt.Errorf("scan row of %s: %w", table, err)
		}
		for i, value := range values {
			if raw, ok := value.([]byte); ok {
				values[i] = string(raw)
			}
		}
		out.Rows = append(out.Rows, values)
	}
	return out, rows.Err()
}

// ReplaceTable drops and recreates table with data, all in one transaction.
func (r *tableRepository) ReplaceTable(ctx context.Context, db, table string, columns []domain.ColumnDef, data domain.Table) (int64, error) {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return 0, err
	}

	var inserted int64
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+r.dialect.quote(table)); err != nil {
			return describe(err, "drop table "+table)
		}
		if err := r.createTable(ctx, tx, table, columns); err != nil {
			return err
		}
		if data.Len() == 0 {
			return nil
		}

		n, err := r.insert(ctx, tx, table, data)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *tableRepository) UnionReplaceTable(ctx context.Context, db, table string, data domain.Table) (int64, error) {
	conn, err := r.pool.DB(ctx, db)
	if err != nil {
		return 0, err
	}

	var inserted int64
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		live, exists, err := r.tableColumns(ctx, tx, table)
		if err != nil {
			return err
		}

		merged := data
		columns := data.Schema()
		if exists {
			existing, err := r.readRows(ctx, tx, table)
			if err != nil {
				return err
			}
			merged = existing.Union(data)
			columns = unionSchema(live, merged)
		}

		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+r.dialect.quote(table)); err != nil {
			return describe(err, "drop table "+table)
		}
		if err := r.createTable(ctx, tx, table, columns); err != nil {
			return err
		}
		if merged.Len() == 0 {
			return nil
		}

		n, err := r.insert(ctx, tx, table, merged)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// unionSchema keeps the live type of existing columns and infers the rest.
func unionSchema(live []domain.ColumnDef, merged domain.Table) []domain.ColumnDef {
	types := make(map[string]domain.ColumnType, len(live))
	for _, column := range live {
		types[column.Name] = column.Type
	}

	columns := make([]domain.ColumnDef, 0, len(merged.Columns))
	for _, column := range merged.Columns {
		columnType, ok := types[column]
		if !ok {
			columnType = merged.ColumnType(column)
		}
		columns = append(columns, domain.ColumnDef{Name: column, Type: columnType})
	}
	return columns
}

func describe(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w (code: %s)", action, pqErr, pqErr.Code)
	}
	return fmt.Errorf("%s: %w", action, err)
}
