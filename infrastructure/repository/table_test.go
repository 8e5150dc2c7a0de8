package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

func newSQLiteTables(t *testing.T) TableRepository {
	t.Helper()
	pool := database.NewSQLitePool(t.TempDir())
	t.Cleanup(func() { _ = pool.Close() })
	return NewTableRepository(pool)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestTableRepository_CreateAndEvolve(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteTables(t)

	require.NoError(t, repo.EnsureDatabase(ctx, "acme"))

	_, exists, err := repo.TableColumns(ctx, "acme", "acme_Paid_Data")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.CreateTable(ctx, "acme", "acme_Paid_Data", []domain.ColumnDef{
		{Name: "Ad Name", Type: domain.ColumnText},
		{Name: "Spent", Type: domain.ColumnFloat},
		{Name: "Date", Type: domain.ColumnDate},
	}))

	columns, exists, err := repo.TableColumns(ctx, "acme", "acme_Paid_Data")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []domain.ColumnDef{
		{Name: "Ad Name", Type: domain.ColumnText},
		{Name: "Spent", Type: domain.ColumnFloat},
		{Name: "Date", Type: domain.ColumnDate},
	}, columns)

	inserted, err := repo.InsertRows(ctx, "acme", "acme_Paid_Data", domain.Table{
		Columns: []string{"Ad Name", "Spent", "Date"},
		Rows:    [][]any{{"old", 1.5, day(1)}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inserted)

	require.NoError(t, repo.AddColumn(ctx, "acme", "acme_Paid_Data", domain.ColumnDef{Name: "Follows", Type: domain.ColumnInteger}))

	_, err = repo.InsertRows(ctx, "acme", "acme_Paid_Data", domain.Table{
		Columns: []string{"Ad Name", "Spent", "Date", "Follows"},
		Rows:    [][]any{{"new", 2.0, day(2), int64(4)}},
	})
	require.NoError(t, err)

	table, err := repo.ReadRows(ctx, "acme", "acme_Paid_Data")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	follows := table.Index("Follows")
	name := table.Index("Ad Name")
	require.GreaterOrEqual(t, follows, 0)
	for _, row := range table.Rows {
		switch row[name] {
		case "old":
			assert.Nil(t, row[follows], "rows written before the column existed stay null")
		case "new":
			assert.EqualValues(t, 4, row[follows])
		}
	}

	tables, err := repo.ListTables(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme_Paid_Data"}, tables)
}

func seedWindow(t *testing.T, repo TableRepository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.CreateTable(ctx, "acme", "paid", []domain.ColumnDef{
		{Name: "Platform", Type: domain.ColumnText},
		{Name: "Date", Type: domain.ColumnDate},
	}))
	_, err := repo.InsertRows(ctx, "acme", "paid", domain.Table{
		Columns: []string{"Platform", "Date"},
		Rows: [][]any{
			{"TikTok", day(1)},
			{"TikTok", day(2)},
			{"TikTok", day(5)},
			{"LinkedIn", day(2)},
		},
	})
	require.NoError(t, err)
}

var tiktokWindow = domain.WindowFilter{
	MatchColumn: "Platform",
	Values:      []string{"TikTok"},
	DateColumn:  "Date",
	Range:       domain.DateRange{Start: day(1), End: day(2)},
}

func TestTableRepository_ReplaceWindow(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteTables(t)
	seedWindow(t, repo)

	deleted, inserted, err := repo.ReplaceWindow(ctx, "acme", "paid", tiktokWindow, domain.Table{
		Columns: []string{"Platform", "Date"},
		Rows:    [][]any{{"TikTok", day(1)}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	assert.EqualValues(t, 1, inserted)

	deleted, inserted, err = repo.ReplaceWindow(ctx, "acme", "paid", domain.WindowFilter{}, domain.Table{})
	require.NoError(t, err)
	assert.Zero(t, deleted, "empty filter deletes nothing")
	assert.Zero(t, inserted)

	table, err := repo.ReadRows(ctx, "acme", "paid")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
}

func TestTableRepository_ReplaceWindow_FailedInsertKeepsWindow(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteTables(t)
	seedWindow(t, repo)

	_, _, err := repo.ReplaceWindow(ctx, "acme", "paid", tiktokWindow, domain.Table{
		Columns: []string{"Platform", "Date", "Missing"},
		Rows:    [][]any{{"TikTok", day(1), "x"}},
	})
	require.Error(t, err)

	table, err := repo.ReadRows(ctx, "acme", "paid")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 4, "window delete is rolled back with the insert")
}

func TestTableRepository_ReplaceTable(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteTables(t)

	require.NoError(t, repo.CreateTable(ctx, "angry_orchard", "AO Historical Data1", []domain.ColumnDef{
		{Name: "stale", Type: domain.ColumnText},
	}))

	columns := []domain.ColumnDef{
		{Name: "Post", Type: domain.ColumnText},
		{Name: "# of Posts", Type: domain.ColumnInteger},
	}
	inserted, err := repo.ReplaceTable(ctx, "angry_orchard", "AO Historical Data1", columns, domain.Table{
		Columns: []string{"Post", "# of Posts"},
		Rows:    [][]any{{"a", 1}, {"b", 1}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	live, _, err := repo.TableColumns(ctx, "angry_orchard", "AO Historical Data1")
	require.NoError(t, err)
	assert.Equal(t, columns, live)
}

func TestTableRepository_InsertBatches(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteTables(t)

	require.NoError(t, repo.CreateTable(ctx, "bulk", "rows", []domain.ColumnDef{{Name: "n", Type: domain.ColumnInteger}}))

	data := domain.Table{Columns: []string{"n"}}
	for i := 0; i < insertBatchSize*2+7; i++ {
		data.Rows = append(data.Rows, []any{i})
	}

	inserted, err := repo.InsertRows(ctx, "bulk", "rows", data)
	require.NoError(t, err)
	assert.EqualValues(t, len(data.Rows), inserted)
}

func TestTableRepository_InsertBatches_LaterBatchFailure(t *testing.T) {
	ctx := context.Background()
	pool := database.NewSQLitePool(t.TempDir())
	t.Cleanup(func() { _ = pool.Close() })
	repo := NewTableRepository(pool)

	conn, err := pool.DB(ctx, "bulk")
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `CREATE TABLE "rows" ("n" INTEGER CHECK ("n" < 600))`)
	require.NoError(t, err)

	data := domain.Table{Columns: []string{"n"}}
	for i := range insertBatchSize + 200 {
		data.Rows = append(data.Rows, []any{i})
	}

	_, err = repo.InsertRows(ctx, "bulk", "rows", data)
	require.Error(t, err)

	table, err := repo.ReadRows(ctx, "bulk", "rows")
	require.NoError(t, err)
	assert.Empty(t, table.Rows, "first batch is rolled back with the failing one")
}

func TestDialect_Types(t *testing.T) {
	for _, d := range []dialect{postgresDialect{}, sqliteDialect{}} {
		for _, columnType := range []domain.ColumnType{
			domain.ColumnInteger, domain.ColumnFloat, domain.ColumnText, domain.ColumnDate, domain.ColumnBoolean,
		} {
			assert.Equal(t, columnType, d.columnType(d.sqlType(columnType)), "%T %s", d, columnType)
		}
	}

	assert.Equal(t, `"Ad ""Name"""`, sqliteDialect{}.quote(`Ad "Name"`))
	assert.Equal(t, `"Ad Name"`, postgresDialect{}.quote("Ad Name"))
	assert.Equal(t, "2024-03-01", sqliteDialect{}.bind(day(1)))
}

func TestTableRepository_UnionReplaceTable(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteTables(t)

	inserted, err := repo.UnionReplaceTable(ctx, "angry_orchard", "AO Historical Data1", domain.Table{
		Columns: []string{"Post", "Likes"},
		Rows:    [][]any{{"first", int64(3)}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inserted, "absent table is created from the incoming rows")

	inserted, err = repo.UnionReplaceTable(ctx, "angry_orchard", "AO Historical Data1", domain.Table{
		Columns: []string{"post", "Shares"},
		Rows:    [][]any{{"second", int64(1)}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	table, err := repo.ReadRows(ctx, "angry_orchard", "AO Historical Data1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Post", "Likes", "Shares"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "first", table.Rows[0][0])
	assert.Nil(t, table.Rows[0][2])
	assert.Equal(t, "second", table.Rows[1][0])
	assert.Nil(t, table.Rows[1][1])
	assert.EqualValues(t, 1, table.Rows[1][2])
}
