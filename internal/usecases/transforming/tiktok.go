package transforming

import "github.com/vfg2006/paid-media-etl/internal/domain"

var tiktokRequired = []string{"campaign_name", "adgroup_name", "ad_name"}

type tiktokTransformer struct{}

func (tiktokTransformer) Platform() domain.Platform { return domain.PlatformTikTok }

func (tiktokTransformer) Transform(records []domain.RawRecord) (domain.RowSet, error) {
	set := domain.RowSet{Platform: domain.PlatformTikTok, Columns: domain.CanonicalColumns}
	if err := requireFields(domain.PlatformTikTok, records, tiktokRequired...); err != nil {
		return domain.RowSet{Platform: domain.PlatformTikTok}, err
	}

	for _, record := range records {
		likes := count(record, "likes")
		comments := count(record, "comments")
		shares := count(record, "shares")
		follows := count(record, "follows")
		views := count(record, "video_watched_2s")

		row := domain.CanonicalRow{
			AdAccountName:   accountName(record),
			CampaignName:    text(record, "campaign_name"),
			AdSetName:       text(record, "adgroup_name"),
			AdName:          text(record, "ad_name"),
			StartDate:       day(record, "schedule_start_time"),
			EndDate:         day(record, "schedule_end_time"),
			Date:            recordDate(record, "stat_time_day"),
			Spent:           amount(record, "spend"),
			Impressions:     count(record, "impressions"),
			Reach:           count(record, "reach"),
			Clicks:          count(record, "clicks"),
			PostEngagements: likes + comments + shares + follows + views,
			PostShares:      shares,
			PostReactions:   likes,
			PostComments:    comments,
			VideoPlays:      views,
			EngMinusViews:   likes + comments + shares + follows,
			Follows:         follows,
			Platform:        domain.PlatformTikTok.Tag(),
			Objective1:      text(record, "objective_type"),
			Placement:       "TikTok Feed",
		}

		in := RuleInput{AdName: row.AdName, AdSetName: row.AdSetName, CampaignName: row.CampaignName, Start: row.StartDate}
		row.Round = Round(in)
		row.Audience = Audience(in)
		row.Influencer = Influencer(in)
		row.Objective = ObjectiveFromCampaign(in)
		row.Destination = Destination(in)

		if tiktokIsEmpty(row) {
			continue
		}
		set.Rows = append(set.Rows, row)
	}
	return set, nil
}

// tiktokIsEmpty reports rows that carry no delivery at all.
func tiktokIsEmpty(row domain.CanonicalRow) bool {
	return row.Spent == 0 &&
		row.Impressions == 0 &&
		row.Reach == 0 &&
		row.Clicks == 0 &&
		row.PostReactions == 0 &&
		row.PostComments == 0 &&
		row.PostShares == 0 &&
		row.Follows == 0 &&
		row.VideoPlays == 0
}
