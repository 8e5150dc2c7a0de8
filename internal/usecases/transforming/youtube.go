package transforming

import (
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

var youTubeRequired = []string{"campaign_name", "ad_group_name", "ad_name"}

type youTubeTransformer struct{}

func (youTubeTransformer) Platform() domain.Platform { return domain.PlatformYouTube }

func (youTubeTransformer) Transform(records []domain.RawRecord) (domain.RowSet, error) {
	set := domain.RowSet{Platform: domain.PlatformYouTube, Columns: domain.CanonicalColumns}
	if err := requireFields(domain.PlatformYouTube, records, youTubeRequired...); err != nil {
		return domain.RowSet{Platform: domain.PlatformYouTube}, err
	}

	for _, record := range records {
		date := recordDate(record, "date")

		row := domain.CanonicalRow{
			AdAccountName: accountName(record),
			CampaignName:  text(record, "campaign_name"),
			AdSetName:     text(record, "ad_group_name"),
			AdName:        text(record, "ad_name"),
			StartDate:     date,
			EndDate:       date,
			Date:          date,
			Spent:         utils.RoundWithTwoDecimalPlace(utils.ToFloat(record.Field("cost_micros")) / 1e6),
			Impressions:   count(record, "impressions"),
			Clicks:        count(record, "clicks"),
			VideoPlays:    count(record, "video_views"),
			Platform:      domain.PlatformYouTube.Tag(),
		}

		if row.Spent == 0 && row.Impressions == 0 {
			continue
		}

		in := RuleInput{AdName: row.AdName, AdSetName: row.AdSetName, CampaignName: row.CampaignName, Start: row.StartDate}
		row.Round = Round(in)
		row.Audience = Audience(in)
		row.Influencer = Influencer(in)
		row.Objective = ObjectiveFromName(row.CampaignName)
		row.Placement = Placement(in)
		row.Destination = Destination(in)

		set.Rows = append(set.Rows, row)
	}
	return set, nil
}
