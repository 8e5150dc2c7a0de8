package transforming

import (
	"strings"

	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

// action types reported in the insights "actions" array
var facebookActions = map[string]string{
	"link_click":                  domain.ColClicks,
	"post_engagement":             domain.ColPostEngagements,
	"post":                        domain.ColPostShares,
	"post_reaction":               domain.ColPostReactions,
	"comment":                     domain.ColPostComments,
	"onsite_conversion.post_save": domain.ColPostSaves,
	"video_view":                  domain.ColVideoPlays,
}

var facebookRequired = []string{"campaign_name", "adset_name", "ad_name", "spend", "impressions"}

// generalAccountMarker flags accounts whose taxonomy lives in the ad set name.
const generalAccountMarker = "G-P"

type facebookTransformer struct{}

func (facebookTransformer) Platform() domain.Platform { return domain.PlatformFacebook }

func (facebookTransformer) Transform(records []domain.RawRecord) (domain.RowSet, error) {
	set := domain.RowSet{Platform: domain.PlatformFacebook, Columns: domain.CanonicalColumns}
	if err := requireFields(domain.PlatformFacebook, records, facebookRequired...); err != nil {
		return domain.RowSet{Platform: domain.PlatformFacebook}, err
	}

	general := false
	for _, record := range records {
		actions := flattenActions(record.Field("actions"))

		row := domain.CanonicalRow{
			AdAccountName: accountName(record),
			CampaignName:  text(record, "campaign_name"),
			AdSetName:     text(record, "adset_name"),
			AdName:        text(record, "ad_name"),
			StartDate:     day(record, "start_time"),
			EndDate:       day(record, "end_time"),
			Date:          recordDate(record, "date_start"),
			Spent:         amount(record, "spend"),
			Impressions:   count(record, "impressions"),
			Reach:         count(record, "reach"),
			Platform:      text(record, "publisher_platform"),
			Objective1:    text(record, "objective"),
		}
		row.Clicks = actions[domain.ColClicks]
		row.PostEngagements = actions[domain.ColPostEngagements]
		row.PostShares = actions[domain.ColPostShares]
		row.PostReactions = actions[domain.ColPostReactions]
		row.PostComments = actions[domain.ColPostComments]
		row.PostSaves = actions[domain.ColPostSaves]
		row.VideoPlays = actions[domain.ColVideoPlays]
		row.EngMinusViews = row.PostShares + row.PostReactions + row.PostComments + row.PostSaves

		if strings.Contains(row.AdAccountName, generalAccountMarker) {
			general = true
			row.Audience = AudienceSegment(row.AdSetName)
			row.Objective = ObjectiveFromName(row.AdSetName)
			row.ContentName = ContentName(row.AdSetName)
		} else {
			in := RuleInput{AdName: row.AdName, AdSetName: row.AdSetName, CampaignName: row.CampaignName, Start: row.StartDate}
			row.Round = Round(in)
			row.Audience = Audience(in)
			row.Influencer = Influencer(in)
			row.Objective = ObjectiveFromCampaign(in)
			row.Placement = Placement(in)
			row.Destination = Destination(in)
		}

		set.Rows = append(set.Rows, row)
	}

	if general {
		set.Columns = withContent(domain.CanonicalColumns)
	}
	return set, nil
}

// flattenActions turns [{action_type, value}] into canonical metric counts.
func flattenActions(value any) map[string]int64 {
	out := make(map[string]int64)

	add := func(action map[string]any) {
		actionType := utils.ToString(action["action_type"])
		if column, ok := facebookActions[actionType]; ok {
			out[column] = utils.ToInt(action["value"])
		}
	}

	switch actions := value.(type) {
	case []any:
		for _, a := range actions {
			if action, ok := a.(map[string]any); ok {
				add(action)
			}
		}
	case []map[string]any:
		for _, action := range actions {
			add(action)
		}
	}
	return out
}
