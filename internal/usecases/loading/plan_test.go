package loading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

func TestPlanColumnAdditions(t *testing.T) {
	live := []domain.ColumnDef{
		{Name: "Ad Name", Type: domain.ColumnText},
		{Name: "Spent", Type: domain.ColumnFloat},
	}
	incoming := []domain.ColumnDef{
		{Name: "ad name", Type: domain.ColumnText},
		{Name: "Follows", Type: domain.ColumnInteger},
		{Name: "Content Name", Type: domain.ColumnText},
		{Name: "FOLLOWS", Type: domain.ColumnInteger},
	}

	assert.Equal(t, []ColumnAddition{
		{Name: "Follows", Type: domain.ColumnInteger},
		{Name: "Content Name", Type: domain.ColumnText},
	}, PlanColumnAdditions(live, incoming))

	assert.Empty(t, PlanColumnAdditions(live, live))
}

func TestAlignColumns(t *testing.T) {
	live := []domain.ColumnDef{{Name: "Published Date"}, {Name: "Likes"}}
	data := domain.Table{Columns: []string{"published date", "Likes", "New"}, Rows: [][]any{{"x", 1, 2}}}

	aligned := alignColumns(live, data)
	assert.Equal(t, []string{"Published Date", "Likes", "New"}, aligned.Columns)
	assert.Equal(t, data.Rows, aligned.Rows)
}

func TestSchemaWith(t *testing.T) {
	data := domain.Table{
		Columns: []string{"Date", "Reach", "Extra"},
		Rows:    [][]any{{"2024-03-01", 1.0, true}},
	}

	assert.Equal(t, []domain.ColumnDef{
		{Name: "Date", Type: domain.ColumnDate},
		{Name: "Reach", Type: domain.ColumnInteger},
		{Name: "Extra", Type: domain.ColumnBoolean},
	}, schemaWith(domain.PaidDataBaseline, data))
}

func TestCoerce(t *testing.T) {
	columns := []domain.ColumnDef{
		{Name: "n", Type: domain.ColumnInteger},
		{Name: "f", Type: domain.ColumnFloat},
		{Name: "d", Type: domain.ColumnDate},
		{Name: "b", Type: domain.ColumnBoolean},
		{Name: "s", Type: domain.ColumnText},
	}
	data := domain.Table{
		Columns: []string{"n", "f", "d", "b", "s"},
		Rows: [][]any{
			{"1,204", "3.5", "2024-03-01T10:00:00+0000", "true", int64(7)},
			{"n/a", "", "not a date", "maybe", nil},
			{2.9, int64(2), time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC), false, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
	}

	out := coerce(columns, data)
	assert.Equal(t, []any{int64(1204), 3.5, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true, "7"}, out.Rows[0])
	assert.Equal(t, []any{nil, nil, nil, nil, nil}, out.Rows[1])
	assert.Equal(t, []any{int64(2), float64(2), time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), false, "2024-03-02"}, out.Rows[2])
}

func TestPaidWindow(t *testing.T) {
	window := domain.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	data := domain.Table{
		Columns: []string{domain.ColPlatform},
		Rows:    [][]any{{"instagram"}, {"facebook"}, {"instagram"}, {nil}},
	}

	filter := paidWindow(data, window)
	if assert.NotNil(t, filter) {
		assert.Equal(t, []string{"instagram", "facebook"}, filter.Values)
		assert.Equal(t, domain.ColDate, filter.DateColumn)
		assert.Equal(t, window, filter.Range)
	}

	assert.Nil(t, paidWindow(data, domain.DateRange{}))
	assert.Nil(t, paidWindow(domain.Table{Columns: []string{"x"}}, window))
}
