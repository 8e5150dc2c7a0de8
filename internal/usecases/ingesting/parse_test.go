package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	content := []byte("\xef\xbb\xbfDate,Platform,Likes,Likes\n2024-03-01,Instagram,10,\n,,,\n2024-03-02,LinkedIn\n")

	table, err := ParseCSV(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Platform", "Likes", "Likes.1"}, table.Columns)
	assert.Equal(t, [][]any{
		{"2024-03-01", "Instagram", "10", nil},
		{"2024-03-02", "LinkedIn", nil, nil},
	}, table.Rows)

	_, err = ParseCSV(nil)
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]any{"Published Date", "Post", "Likes"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]any{"2024-03-01", "hello", 4}))
	buffer, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	table, err := ParseXLSX(buffer.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Published Date", "Post", "Likes"}, table.Columns)
	assert.Equal(t, [][]any{{"2024-03-01", "hello", "4"}}, table.Rows)
}

func TestInferCells(t *testing.T) {
	table := domain.Table{
		Columns: []string{"ints", "floats", "mixed"},
		Rows: [][]any{
			{"1", "1", "1"},
			{"2", "2.5", "n/a"},
			{nil, nil, nil},
		},
	}

	out := inferCells(table)
	assert.Equal(t, [][]any{
		{int64(1), float64(1), "1"},
		{int64(2), 2.5, "n/a"},
		{nil, nil, nil},
	}, out.Rows)
	assert.Equal(t, "1", table.Rows[0][0], "input is not mutated")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, kindCSV, kindOf(domain.DriveFile{Name: "a.CSV"}))
	assert.Equal(t, kindCSV, kindOf(domain.DriveFile{Name: "Sheet", MimeType: domain.MimeGoogleSheet}))
	assert.Equal(t, kindXLSX, kindOf(domain.DriveFile{Name: "a.xlsx"}))
	assert.Equal(t, kindUnsupported, kindOf(domain.DriveFile{Name: "notes.pdf", MimeType: "application/pdf"}))
}
