package transforming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func started(year int) time.Time {
	return time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func TestObjectiveFromName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "leading keyword", input: "Engagement - Retargeting - V2", expected: "Engagement"},
		{name: "prefix wins over earlier table entry", input: "Traffic - Reach Lookalike", expected: "Traffic"},
		{name: "keyword anywhere", input: "Spring Launch Awareness", expected: "Awareness"},
		{name: "lpv alias", input: "Q3 LPV push", expected: "Landing Page View"},
		{name: "views", input: "Product views - Gen Z", expected: "Video Views"},
		{name: "first segment title-cased", input: "holiday promo - gen z", expected: "Holiday Promo"},
		{name: "empty", input: "   ", expected: NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ObjectiveFromName(tt.input))
		})
	}
}

func TestObjectiveFromCampaign(t *testing.T) {
	assert.Equal(t, "Traffic", ObjectiveFromCampaign(RuleInput{CampaignName: "JBL Awareness", Start: started(2021)}))
	assert.Equal(t, "Awareness", ObjectiveFromCampaign(RuleInput{CampaignName: "JBL Awareness", Start: started(2023)}))
	assert.Equal(t, "Awareness", ObjectiveFromCampaign(RuleInput{CampaignName: "JBL Awareness"}))
	assert.Equal(t, Unknown, ObjectiveFromCampaign(RuleInput{CampaignName: "Spring"}))
}

func TestRound(t *testing.T) {
	assert.Equal(t, "Round 3", Round(RuleInput{AdName: "Ad V3 Final"}))
	assert.Equal(t, "Round 12", Round(RuleInput{AdName: "clip v12"}))
	assert.Equal(t, NotFound, Round(RuleInput{AdName: "Ad", AdSetName: "Set V2"}))

	legacy := RuleInput{AdName: "Ad", AdSetName: "Set", CampaignName: "JBL V4", Start: started(2021)}
	assert.Equal(t, "Round 4", Round(legacy))
}

func TestAudience(t *testing.T) {
	assert.Equal(t, "Interest/Behavior", Audience(RuleInput{AdSetName: "Behavior - Feed"}))
	assert.Equal(t, "Retargeting", Audience(RuleInput{AdSetName: "Retargeting 30d"}))
	assert.Equal(t, "Broad", Audience(RuleInput{AdSetName: "US Broad"}))
	assert.Equal(t, Unknown, Audience(RuleInput{AdSetName: "Set 1"}))

	legacy := RuleInput{AdName: "lookalike ad", AdSetName: "behavior", CampaignName: "JBL", Start: started(2021)}
	assert.Equal(t, "lookalike", Audience(legacy))
	legacy.AdName = "ad"
	assert.Equal(t, NotFound, Audience(legacy))
}

func TestAudienceSegmentAndContent(t *testing.T) {
	assert.Equal(t, "Gen Z", AudienceSegment("Traffic - Gen Z - Summer"))
	assert.Equal(t, "Solo", AudienceSegment("Solo"))

	assert.Equal(t, "summer", ContentName("Traffic - Gen Z - Summer"))
	assert.Equal(t, "spring drop", ContentName("Video Views - Spring Drop"))
	assert.Equal(t, "gen z", ContentName("Promo - Gen Z"))
	assert.Equal(t, "single", ContentName("Single"))
}

func TestDestination(t *testing.T) {
	tests := []struct {
		name     string
		in       RuleInput
		expected string
	}{
		{name: "jbl copy 2022", in: RuleInput{AdName: "Ad - Copy", CampaignName: "jbl q1", Start: started(2022)}, expected: "JBL.com"},
		{name: "jbl copy other year", in: RuleInput{AdName: "Ad - Copy", AdSetName: "Set - Amazon", CampaignName: "jbl q1", Start: started(2023)}, expected: "amazon"},
		{name: "apothic uses ad name", in: RuleInput{AdName: "Red - Target", CampaignName: "Apothic Wine"}, expected: "Target"},
		{name: "ad set segment", in: RuleInput{AdSetName: "Traffic - Walmart"}, expected: "walmart"},
		{name: "underscore", in: RuleInput{AdSetName: "Traffic - walmart_us"}, expected: NotFound},
		{name: "handle", in: RuleInput{AdSetName: "Traffic - @creator"}, expected: NotFound},
		{name: "placement", in: RuleInput{AdSetName: "Traffic - Stories"}, expected: NotFound},
		{name: "audience", in: RuleInput{AdSetName: "Traffic - Lookalike 1%"}, expected: NotFound},
		{name: "empty", in: RuleInput{AdSetName: "Traffic -"}, expected: NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Destination(tt.in))
		})
	}
}

func TestPlacement(t *testing.T) {
	assert.Equal(t, "IG feed", Placement(RuleInput{AdSetName: "Feed - Broad"}))
	assert.Equal(t, "IG story", Placement(RuleInput{AdSetName: "Feed Stories"}))
	assert.Equal(t, NoPlacement, Placement(RuleInput{AdSetName: "Broad"}))

	legacy := RuleInput{AdName: "feed ad", AdSetName: "Broad", CampaignName: "JBL", Start: started(2021)}
	assert.Equal(t, "IG feed", Placement(legacy))
	legacy.AdName = "ad"
	assert.Equal(t, NotFound, Placement(legacy))
}

func TestInfluencer(t *testing.T) {
	assert.Equal(t, "maria.s", Influencer(RuleInput{AdName: "Spot @maria.s V1"}))
	assert.Equal(t, NotFound, Influencer(RuleInput{AdName: "Spot"}))

	old := RuleInput{AdName: "Spot @other", AdSetName: "JBL Set @legacy", Start: started(2021)}
	assert.Equal(t, "legacy", Influencer(old))

	old.Start = started(2022)
	assert.Equal(t, "other", Influencer(old))

	old.Start = time.Time{}
	assert.Equal(t, "other", Influencer(old))
}

func TestCleanAdName(t *testing.T) {
	assert.Equal(t, "Mom's Day", CleanAdName("Mom€™s Day"))
	assert.Equal(t, "Creative", CleanAdName("Creative urn:li:sponsoredCreative:123"))
	assert.Equal(t, "Plain", CleanAdName("Plain"))
}

func TestRuleSet_FirstMatchingRuleDecides(t *testing.T) {
	set := RuleSet{
		Rules: []Rule{
			{Name: "never", When: func(RuleInput) bool { return false }, Derive: func(RuleInput) string { return "a" }},
			{Name: "ad", When: func(in RuleInput) bool { return in.AdName != "" }, Derive: func(in RuleInput) string { return in.AdName }},
		},
		Fallback: "fallback",
	}

	assert.Equal(t, "x", set.Apply(RuleInput{AdName: "x"}))
	assert.Equal(t, "fallback", set.Apply(RuleInput{}))
}
