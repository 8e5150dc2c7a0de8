package domain

import "time"

const (
	ColAdAccountName   = "Ad Account Name"
	ColCampaignName    = "Campaign Name"
	ColAdSetName       = "Ad Set Name"
	ColStartDate       = "Start Date"
	ColEndDate         = "End Date"
	ColDate            = "Date"
	ColAdName          = "Ad Name"
	ColSpent           = "Spent"
	ColImpressions     = "Impressions"
	ColReach           = "Reach"
	ColClicks          = "Clicks"
	ColPostEngagements = "Post Engagements"
	ColPostShares      = "Post Shares"
	ColPostReactions   = "Post Reactions"
	ColPostComments    = "Post Comments"
	ColPostSaves       = "Post Saves"
	ColVideoPlays      = "3-second Video Plays"
	ColEngMinusViews   = "Eng Minus Views"
	ColPlatform        = "Platform"
	ColRound           = "Round"
	ColAudience        = "Audience"
	ColInfluencer      = "Influencer"
	ColObjective1      = "Objective1"
	ColObjective       = "Objective"
	ColPlacement       = "Placement"
	ColDestination     = "Destination"
	ColFollows         = "Follows"
	ColContentName     = "Content Name"
)

// CanonicalColumns is the column order of every paid-data table.
var CanonicalColumns = []string{
	ColAdAccountName, ColCampaignName, ColAdSetName, ColStartDate, ColEndDate, ColDate,
	ColAdName, ColSpent, ColImpressions, ColReach, ColClicks, ColPostEngagements,
	ColPostShares, ColPostReactions, ColPostComments, ColPostSaves, ColVideoPlays,
	ColEngMinusViews, ColPlatform, ColRound, ColAudience, ColInfluencer, ColObjective1,
	ColObjective, ColPlacement, ColDestination, ColFollows,
}

// PaidDataBaseline is the schema a paid-data table is created with.
var PaidDataBaseline = []ColumnDef{
	{Name: ColAdAccountName, Type: ColumnText},
	{Name: ColCampaignName, Type: ColumnText},
	{Name: ColAdSetName, Type: ColumnText},
	{Name: ColStartDate, Type: ColumnDate},
	{Name: ColEndDate, Type: ColumnDate},
	{Name: ColDate, Type: ColumnDate},
	{Name: ColAdName, Type: ColumnText},
	{Name: ColSpent, Type: ColumnFloat},
	{Name: ColImpressions, Type: ColumnInteger},
	{Name: ColReach, Type: ColumnInteger},
	{Name: ColClicks, Type: ColumnInteger},
	{Name: ColPostEngagements, Type: ColumnInteger},
	{Name: ColPostShares, Type: ColumnInteger},
	{Name: ColPostReactions, Type: ColumnInteger},
	{Name: ColPostComments, Type: ColumnInteger},
	{Name: ColPostSaves, Type: ColumnInteger},
	{Name: ColVideoPlays, Type: ColumnInteger},
	{Name: ColEngMinusViews, Type: ColumnInteger},
	{Name: ColPlatform, Type: ColumnText},
	{Name: ColRound, Type: ColumnText},
	{Name: ColAudience, Type: ColumnText},
	{Name: ColInfluencer, Type: ColumnText},
	{Name: ColObjective1, Type: ColumnText},
	{Name: ColObjective, Type: ColumnText},
	{Name: ColPlacement, Type: ColumnText},
	{Name: ColDestination, Type: ColumnText},
	{Name: ColFollows, Type: ColumnInteger},
}

// CanonicalRow is one ingested performance record. Metrics are never negative.
type CanonicalRow struct {
	AdAccountName string
	CampaignName  string
	AdSetName     string
	AdName        string
	StartDate     time.Time
	EndDate       time.Time
	Date          time.Time

	Spent           float64
	Impressions     int64
	Reach           int64
	Clicks          int64
	PostEngagements int64
	PostShares      int64
	PostReactions   int64
	PostComments    int64
	PostSaves       int64
	VideoPlays      int64
	EngMinusViews   int64
	Follows         int64

	Platform    string
	Round       string
	Audience    string
	Influencer  string
	Objective1  string
	Objective   string
	Placement   string
	Destination string
	ContentName string
}

// Value returns the row value for a canonical column. Empty text and zero
// dates are reported as nil so they land as NULL.
func (r CanonicalRow) Value(column string) any {
	switch column {
	case ColAdAccountName:
		return text(r.AdAccountName)
	case ColCampaignName:
		return text(r.CampaignName)
	case ColAdSetName:
		return text(r.AdSetName)
	case ColAdName:
		return text(r.AdName)
	case ColStartDate:
		return date(r.StartDate)
	case ColEndDate:
		return date(r.EndDate)
	case ColDate:
		return date(r.Date)
	case ColSpent:
		return r.Spent
	case ColImpressions:
		return r.Impressions
	case ColReach:
		return r.Reach
	case ColClicks:
		return r.Clicks
	case ColPostEngagements:
		return r.PostEngagements
	case ColPostShares:
		return r.PostShares
	case ColPostReactions:
		return r.PostReactions
	case ColPostComments:
		return r.PostComments
	case ColPostSaves:
		return r.PostSaves
	case ColVideoPlays:
		return r.VideoPlays
	case ColEngMinusViews:
		return r.EngMinusViews
	case ColFollows:
		return r.Follows
	case ColPlatform:
		return text(r.Platform)
	case ColRound:
		return text(r.Round)
	case ColAudience:
		return text(r.Audience)
	case ColInfluencer:
		return text(r.Influencer)
	case ColObjective1:
		return text(r.Objective1)
	case ColObjective:
		return text(r.Objective)
	case ColPlacement:
		return text(r.Placement)
	case ColDestination:
		return text(r.Destination)
	case ColContentName:
		return text(r.ContentName)
	}
	return nil
}

// Metrics lists every numeric metric, used by zero filters and validation.
func (r CanonicalRow) Metrics() map[string]float64 {
	return map[string]float64{
		ColSpent:           r.Spent,
		ColImpressions:     float64(r.Impressions),
		ColReach:           float64(r.Reach),
		ColClicks:          float64(r.Clicks),
		ColPostEngagements: float64(r.PostEngagements),
		ColPostShares:      float64(r.PostShares),
		ColPostReactions:   float64(r.PostReactions),
		ColPostComments:    float64(r.PostComments),
		ColPostSaves:       float64(r.PostSaves),
		ColVideoPlays:      float64(r.VideoPlays),
		ColEngMinusViews:   float64(r.EngMinusViews),
		ColFollows:         float64(r.Follows),
	}
}

// RowSet is the canonical output of one platform transform.
type RowSet struct {
	Platform Platform
	Columns  []string
	Rows     []CanonicalRow
}

func (s RowSet) Len() int {
	return len(s.Rows)
}

// Table projects the row set onto its columns.
func (s RowSet) Table() Table {
	return CanonicalTable(s)
}

// CanonicalTable merges row sets into one table. Columns keep canonical order,
// followed by any extra column in first-seen order.
func CanonicalTable(sets ...RowSet) Table {
	seen := make(map[string]bool)
	var extra []string
	for _, set := range sets {
		for _, column := range set.Columns {
			if !seen[column] {
				seen[column] = true
				if !isCanonical(column) {
					extra = append(extra, column)
				}
			}
		}
	}

	columns := make([]string, 0, len(seen))
	for _, column := range CanonicalColumns {
		if seen[column] {
			columns = append(columns, column)
		}
	}
	columns = append(columns, extra...)

	table := Table{Columns: columns}
	for _, set := range sets {
		for _, row := range set.Rows {
			values := make([]any, len(columns))
			for i, column := range columns {
				values[i] = row.Value(column)
			}
			table.Rows = append(table.Rows, values)
		}
	}
	return table
}

func isCanonical(column string) bool {
	for _, c := range CanonicalColumns {
		if c == column {
			return true
		}
	}
	return false
}

func text(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func date(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
