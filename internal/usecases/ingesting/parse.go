package ingesting

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/xuri/excelize/v2"
)

type fileKind int

const (
	kindUnsupported fileKind = iota
	kindCSV
	kindXLSX
)

func kindOf(file domain.DriveFile) fileKind {
	switch {
	case file.IsSheet(), file.MimeType == domain.MimeCSV, strings.EqualFold(path.Ext(file.Name), ".csv"):
		return kindCSV
	case file.MimeType == domain.MimeXLSX, strings.EqualFold(path.Ext(file.Name), ".xlsx"):
		return kindXLSX
	}
	return kindUnsupported
}

var errEmptyFile = errors.New("file has no header row")

// ParseCSV reads a header row followed by data rows. Blank cells are nil.
func ParseCSV(content []byte) (domain.Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, record)
	}
	return fromRecords(records)
}

// ParseXLSX reads the first sheet of a workbook.
func ParseXLSX(content []byte) (domain.Table, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return domain.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, errEmptyFile
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (domain.Table, error) {
	if len(records) == 0 {
		return domain.Table{}, errEmptyFile
	}

	header := records[0]
	columns := make([]string, 0, len(header))
	seen := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		key := strings.ToLower(name)
		if n := seen[key]; n > 0 {
			name = name + "." + strconv.Itoa(n)
		}
		seen[key]++
		columns = append(columns, name)
	}

	table := domain.Table{Columns: columns}
	for _, record := range records[1:] {
		if blank(record) {
			continue
		}
		row := make([]any, len(columns))
		for i := range columns {
			if i < len(record) {
				if cell := strings.TrimSpace(record[i]); cell != "" {
					row[i] = cell
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// inferCells converts columns whose every cell is numeric text into int64,
// or float64 when any cell has a fraction. Other columns stay text.
func inferCells(table domain.Table) domain.Table {
	out := domain.Table{Columns: table.Columns, Rows: make([][]any, len(table.Rows))}
	for r, row := range table.Rows {
		out.Rows[r] = append([]any(nil), row...)
	}

	for i := range table.Columns {
		kind := numericKind(table.Rows, i)
		if kind == domain.ColumnText {
			continue
		}
		for _, row := range out.Rows {
			s, ok := row[i].(string)
			if !ok {
				continue
			}
			if kind == domain.ColumnInteger {
				row[i], _ = strconv.ParseInt(s, 10, 64)
			} else {
				row[i], _ = strconv.ParseFloat(s, 64)
			}
		}
	}
	return out
}

func numericKind(rows [][]any, column int) domain.ColumnType {
	kind := domain.ColumnText
	for _, row := range rows {
		s, ok := row[column].(string)
		if !ok {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			if kind == domain.ColumnText {
				kind = domain.ColumnInteger
			}
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			kind = domain.ColumnFloat
			continue
		}
		return domain.ColumnText
	}
	return kind
}
