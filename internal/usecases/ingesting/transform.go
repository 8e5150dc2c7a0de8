package ingesting

import (
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

type cellKind int

const (
	asText cellKind = iota
	asCount
)

// emplifiColumn maps one export column, first source present wins.
type emplifiColumn struct {
	target  string
	sources []string
	kind    cellKind
}

var emplifiColumns = []emplifiColumn{
	{target: "Platform", sources: []string{"platform"}},
	{target: "Content type", sources: []string{"content type"}},
	{target: "Media Type", sources: []string{"media type"}},
	{target: "Post Copy", sources: []string{"content", "post copy"}},
	{target: "Permalink", sources: []string{"view on platform", "permalink"}},
	{target: interactionsPlaceholder, sources: []string{"organic interactions"}, kind: asCount},
	{target: "Sentiment", sources: []string{"sentiment"}},
	{target: "Positive Comments", sources: []string{"positive comments"}, kind: asCount},
	{target: "Negative Comments", sources: []string{"negative comments"}, kind: asCount},
	{target: "Neutral Comments", sources: []string{"neutral comments"}, kind: asCount},
	{target: "Total Reactions", sources: []string{"total reactions"}, kind: asCount},
	{target: "Likes", sources: []string{"organic likes"}, kind: asCount},
	{target: "Comments", sources: []string{"organic comments"}, kind: asCount},
	{target: "Total Comments", sources: []string{"total comments"}, kind: asCount},
	{target: "Shares", sources: []string{"total shares"}, kind: asCount},
	{target: "Saves", sources: []string{"saves"}, kind: asCount},
	{target: "Engagements", sources: []string{"engagements"}, kind: asCount},
	{target: "Like Reactions", sources: []string{"reactions - like"}, kind: asCount},
	{target: "Love Reactions", sources: []string{"reactions - love"}, kind: asCount},
	{target: "Haha Reactions", sources: []string{"reactions - haha"}, kind: asCount},
	{target: "Wow Reactions", sources: []string{"reactions - wow"}, kind: asCount},
	{target: "Sad Reactions", sources: []string{"reactions - sad"}, kind: asCount},
	{target: "Angry Reactions", sources: []string{"reactions - angry"}, kind: asCount},
	{target: "Impressions", sources: []string{"organic impressions"}, kind: asCount},
	{target: "Total Likes", sources: []string{"total likes"}, kind: asCount},
	{target: "Total Story Likes", sources: []string{"total story likes"}, kind: asCount},
	{target: "Total Story Comments", sources: []string{"total story comments"}, kind: asCount},
	{target: "Total Story Shares", sources: []string{"total story shares"}, kind: asCount},
	{target: "Post Clicks", sources: []string{"post clicks"}, kind: asCount},
	{target: "Photo Views", sources: []string{"photo views"}, kind: asCount},
	{target: "Link Clicks", sources: []string{"link clicks"}, kind: asCount},
	{target: "Video Play", sources: []string{"video play"}, kind: asCount},
	{target: "Video Views", sources: []string{"video view count"}, kind: asCount},
	{target: "10-Second Views - Organic", sources: []string{"10-second views - organic"}, kind: asCount},
	{target: "30-Second Views - Organic", sources: []string{"30-second views - organic"}, kind: asCount},
	{target: "Completed Video Views", sources: []string{"completed video views"}, kind: asCount},
	{target: "Exits", sources: []string{"exits"}, kind: asCount},
	{target: "Taps Back", sources: []string{"taps back"}, kind: asCount},
	{target: "Taps Forward", sources: []string{"taps forward"}, kind: asCount},
	{target: "Label", sources: []string{"labels"}},
	{target: "Profile Followers", sources: []string{"profile followers"}, kind: asCount},
}

// replaced by "Organic Interactions" or "Total Interactions" per file
const interactionsPlaceholder = "{interactions}"

// linkedin total engagements need every one of these columns
var linkedinEngagementColumns = []string{"organic likes", "organic comments", "total shares", "poll votes"}

func applyTransform(transform domain.FileTransform, fileName string, table domain.Table) (domain.Table, error) {
	switch transform {
	case domain.FileTransformEmplifi:
		return emplifi(fileName, table)
	case domain.FileTransformPublishedDate:
		return publishedDate(table)
	case domain.FileTransformClientHistory:
		return clientHistory(table)
	}
	return table, nil
}

// emplifi reshapes a social-listening export into the historical table layout.
func emplifi(fileName string, table domain.Table) (domain.Table, error) {
	source := lowerColumns(table)
	dateIdx := source.Index("date")
	if dateIdx < 0 {
		return domain.Table{}, fmt.Errorf("%w: date", domain.ErrSchemaMismatch)
	}

	lowerName := strings.ToLower(fileName)
	interactions := "Total Interactions"
	if (domain.NameMatcher{Tokens: []string{"ao"}, Contains: []string{"angry"}}).Match(lowerName) {
		interactions = "Organic Interactions"
	}
	gp := strings.Contains(lowerName, "g-p")

	columns := []string{"# of Posts", "Published Date"}
	indexes := make([]int, 0, len(emplifiColumns))
	for _, column := range emplifiColumns {
		target := column.target
		if target == interactionsPlaceholder {
			target = interactions
		}
		columns = append(columns, target)
		indexes = append(indexes, firstIndex(source, column.sources))
	}
	columns = append(columns, "Month", "Quarter")
	if gp {
		columns = append(columns, "Poll Votes", "total engagements")
	}

	out := domain.Table{Columns: columns, Rows: make([][]any, 0, len(source.Rows))}
	for _, row := range source.Rows {
		values := make([]any, 0, len(columns))
		values = append(values, int64(1))

		published, ok := utils.ParseAnyDate(row[dateIdx])
		if ok {
			values = append(values, utils.DateOnly(published))
		} else {
			values = append(values, nil)
		}

		for i, column := range emplifiColumns {
			values = append(values, cell(row, indexes[i], column.kind))
		}

		if ok {
			values = append(values, MonthLabel(published), QuarterLabel(published))
		} else {
			values = append(values, nil, nil)
		}

		if gp {
			values = append(values, cell(row, source.Index("poll votes"), asCount), totalEngagements(source, row))
		}
		out.Rows = append(out.Rows, values)
	}
	return out, nil
}

// MonthLabel formats "2024-3 (March)".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%d-%d (%s)", t.Year(), int(t.Month()), t.Month().String())
}

// QuarterLabel formats "Q1-2024".
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("Q%d-%d", (int(t.Month())-1)/3+1, t.Year())
}

func totalEngagements(source domain.Table, row []any) int64 {
	platform, _ := value(row, source.Index("platform")).(string)

	switch strings.ToLower(platform) {
	case "linkedin":
		var total int64
		for _, name := range linkedinEngagementColumns {
			idx := source.Index(name)
			if idx < 0 {
				return 0
			}
			total += count(value(row, idx))
		}
		return total
	case "instagram":
		return count(value(row, source.Index("engagements")))
	case "facebook", "twitter":
		return count(value(row, source.Index("organic interactions")))
	}
	return 0
}

// publishedDate parses the "Published Date" column of a historical export.
func publishedDate(table domain.Table) (domain.Table, error) {
	idx := table.IndexFold("Published Date")
	if idx < 0 {
		return domain.Table{}, fmt.Errorf("%w: Published Date", domain.ErrSchemaMismatch)
	}

	out := inferCells(table)
	out.Columns = append([]string(nil), out.Columns...)
	out.Columns[idx] = "Published Date"
	parseDates(out, idx)
	return out, nil
}

// clientHistory lowercases headers and parses "date", or "published date" when absent.
func clientHistory(table domain.Table) (domain.Table, error) {
	out := inferCells(lowerColumns(table))

	idx := out.Index("date")
	if idx < 0 {
		idx = out.Index("published date")
	}
	if idx < 0 {
		return domain.Table{}, fmt.Errorf("%w: date or published date", domain.ErrSchemaMismatch)
	}
	parseDates(out, idx)
	return out, nil
}

func parseDates(table domain.Table, idx int) {
	for _, row := range table.Rows {
		if t, ok := utils.ParseAnyDate(row[idx]); ok {
			row[idx] = utils.DateOnly(t)
		} else {
			row[idx] = nil
		}
	}
}

func lowerColumns(table domain.Table) domain.Table {
	columns := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		columns[i] = strings.ToLower(column)
	}
	return domain.Table{Columns: columns, Rows: table.Rows}
}

func firstIndex(table domain.Table, names []string) int {
	for _, name := range names {
		if idx := table.Index(name); idx >= 0 {
			return idx
		}
	}
	return -1
}

func value(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

func cell(row []any, idx int, kind cellKind) any {
	v := value(row, idx)
	if v == nil {
		return nil
	}
	if kind == asCount {
		if utils.ToString(v) == "" {
			return nil
		}
		return count(v)
	}
	return utils.ToString(v)
}

// count reads thousands-separated counts such as "1,200".
func count(v any) int64 {
	return utils.ToInt(strings.ReplaceAll(utils.ToString(v), ",", ""))
}
