package transforming

import (
	"time"

	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

var linkedInRequired = []string{"campaign_group_name", "campaign_name", "creative_name"}

type linkedInTransformer struct {
	clock func() time.Time
}

func (linkedInTransformer) Platform() domain.Platform { return domain.PlatformLinkedIn }

func (t linkedInTransformer) Transform(records []domain.RawRecord) (domain.RowSet, error) {
	set := domain.RowSet{Platform: domain.PlatformLinkedIn, Columns: withContent(domain.CanonicalColumns)}
	if err := requireFields(domain.PlatformLinkedIn, records, linkedInRequired...); err != nil {
		return domain.RowSet{Platform: domain.PlatformLinkedIn}, err
	}

	today := utils.DateOnly(t.clock().UTC())
	for _, record := range records {
		engagements := count(record, "total_engagements")
		views := count(record, "video_views")

		row := domain.CanonicalRow{
			AdAccountName:   accountName(record),
			CampaignName:    text(record, "campaign_group_name"),
			AdSetName:       text(record, "campaign_name"),
			AdName:          CleanAdName(text(record, "creative_name")),
			StartDate:       day(record, "start_date"),
			EndDate:         day(record, "end_date"),
			Date:            recordDate(record, "date"),
			Spent:           amount(record, "cost_in_usd"),
			Impressions:     count(record, "impressions"),
			Clicks:          count(record, "clicks"),
			PostEngagements: engagements + views,
			PostShares:      count(record, "shares"),
			PostReactions:   count(record, "reactions"),
			PostComments:    count(record, "comments"),
			VideoPlays:      views,
			EngMinusViews:   engagements,
			Follows:         count(record, "follows"),
			Platform:        domain.PlatformLinkedIn.Tag(),
			Objective1:      text(record, "objective_type"),
		}
		if row.EndDate.IsZero() {
			row.EndDate = today
		}

		row.ContentName = ContentName(row.AdSetName)
		row.Audience = AudienceSegment(row.AdSetName)
		row.Objective = ObjectiveFromName(row.AdSetName)

		if linkedInIsEmpty(row) {
			continue
		}
		set.Rows = append(set.Rows, row)
	}
	return set, nil
}

func linkedInIsEmpty(row domain.CanonicalRow) bool {
	return row.Impressions == 0 &&
		row.Clicks == 0 &&
		row.VideoPlays == 0 &&
		row.PostReactions == 0 &&
		row.PostShares == 0
}
