package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/httpclient"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	policy := httpclient.RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond, Multiplier: 2}
	return New(config.LinkedIn{BaseURL: server.URL, Version: "202410", AccessToken: "tok"}, httpclient.New(policy, time.Second))
}

func TestClient_FetchPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "202410", r.Header.Get("Linkedin-Version"))

		switch {
		case r.URL.Path == "/adAccounts/9/adCampaignGroups":
			w.Write([]byte(`{"elements":[{"id":7,"name":"Q1 Group","runSchedule":{"start":1704067200000}}]}`))
		case r.URL.Path == "/adAccounts/9/adCampaigns":
			w.Write([]byte(`{"elements":[
				{"id":11,"name":"Lead - IT - Guide","campaignGroup":"urn:li:sponsoredCampaignGroup:7","objectiveType":"LEAD_GENERATION"},
				{"id":12,"name":"Orphan","campaignGroup":"urn:li:sponsoredCampaignGroup:99"},
				{"id":13,"name":"Awareness - All","campaignGroup":"urn:li:sponsoredCampaignGroup:7"}]}`))
		case r.URL.Path == "/adAnalytics":
			assert.Equal(t, "DAILY", r.URL.Query().Get("timeGranularity"))
			assert.Equal(t, "CREATIVE", r.URL.Query().Get("pivot"))
			if strings.Contains(r.URL.RawQuery, "sponsoredCampaign%3A11") {
				w.Write([]byte(`{"elements":[
					{"pivotValues":["urn:li:sponsoredCreative:1"],"dateRange":{"start":{"year":2024,"month":3,"day":1}},"impressions":10,"costInUsd":"1.5"},
					{"pivotValues":["urn:li:sponsoredCreative:2"],"impressions":4},
					{"pivotValues":["urn:li:sponsoredCreative:3"],"impressions":4}]}`))
				return
			}
			w.Write([]byte(`{"elements":[]}`))
		case strings.HasSuffix(r.URL.Path, "urn:li:sponsoredCreative:1"):
			w.Write([]byte(`{"content":{"reference":"urn:li:ugcPost:55"}}`))
		case strings.HasSuffix(r.URL.Path, "urn:li:sponsoredCreative:2"):
			w.WriteHeader(http.StatusForbidden)
		case strings.HasSuffix(r.URL.Path, "urn:li:sponsoredCreative:3"):
			w.Write([]byte(`{"intendedStatus":"CANCELED","content":{"reference":"urn:li:share:1"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	account := domain.PlatformAccount{ID: "9", Name: "Acme"}
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	window := domain.DateRange{Start: day, End: day}

	page, err := client.FetchPage(context.Background(), account, window, "")
	require.NoError(t, err)
	assert.Equal(t, "1", page.NextCursor)
	require.Len(t, page.Records, 3)

	first := page.Records[0]
	assert.Equal(t, "Q1 Group", first.Field("campaign_group_name"))
	assert.Equal(t, "Lead - IT - Guide", first.Field("campaign_name"))
	assert.Equal(t, "LEAD_GENERATION", first.Field("objective_type"))
	assert.Equal(t, "2024-01-01", first.Field("start_date"))
	assert.Equal(t, "", first.Field("end_date"))
	assert.Equal(t, "UGC Post", first.Field("creative_name"))
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, "1", first.AdID)

	assert.Equal(t, "AD Paused", page.Records[1].Field("creative_name"))
	assert.Equal(t, "Ad CANCELED", page.Records[2].Field("creative_name"))
	assert.Equal(t, "2024-03-01", page.Records[1].Date, "window start when the element has no date")

	page, err = client.FetchPage(context.Background(), account, window, "1")
	require.NoError(t, err)
	assert.Empty(t, page.NextCursor, "orphan campaigns are skipped")
	assert.Empty(t, page.Records)
}

func TestClient_ListAccounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/adAccounts", r.URL.Path)
		assert.Equal(t, "search", r.URL.Query().Get("q"))
		w.Write([]byte(`{"elements":[{"id":501,"name":"ACME Campus"}]}`))
	})

	accounts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.PlatformAccount{{ID: "501", Name: "ACME Campus"}}, accounts)
}

func TestAnalyticsQuery(t *testing.T) {
	window := domain.DateRange{
		Start: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}

	query := analyticsQuery(42, window)
	assert.Contains(t, query, "dateRange=(start:(year:2024,month:1,day:5),end:(year:2024,month:2,day:1))")
	assert.Contains(t, query, "campaigns=List(urn%3Ali%3AsponsoredCampaign%3A42)")
}
