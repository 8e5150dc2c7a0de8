package tiktok

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/httpclient"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pageSize = 1000

var reportMetrics = []string{
	"campaign_name", "campaign_id", "adgroup_name", "adgroup_id", "ad_name",
	"spend", "impressions", "reach", "clicks", "video_watched_2s",
	"likes", "comments", "shares", "follows", "profile_visits",
}

// advertiserMeta is what the report lacks: objectives and ad group schedules.
type advertiserMeta struct {
	objectives map[string]string
	adGroups   map[string]AdGroup
}

type Client struct {
	cfg  config.TikTok
	http *httpclient.Client

	mu   sync.Mutex
	meta map[string]*advertiserMeta
}

func New(cfg config.TikTok, http *httpclient.Client) *Client {
	return &Client{cfg: cfg, http: http, meta: make(map[string]*advertiserMeta)}
}

func (c *Client) Platform() domain.Platform {
	return domain.PlatformTikTok
}

func (c *Client) Ready() error {
	if c.cfg.AccessToken == "" {
		return errors.Wrap(domain.ErrMissingCredentials, "tiktok access token")
	}
	return nil
}

// ListAccounts lists the advertisers authorized for the app.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.PlatformAccount, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	if c.cfg.AppID == "" || c.cfg.Secret == "" {
		return nil, errors.Wrap(domain.ErrMissingCredentials, "tiktok app id and secret")
	}

	params := url.Values{}
	params.Add("app_id", c.cfg.AppID)
	params.Add("secret", c.cfg.Secret)

	var response envelope[listData[Advertiser]]
	if _, err := c.get(ctx, "oauth2/advertiser/get/", params, &response); err != nil {
		return nil, errors.Wrap(err, "tiktok: list advertisers")
	}

	accounts := make([]domain.PlatformAccount, 0, len(response.Data.List))
	for _, advertiser := range response.Data.List {
		accounts = append(accounts, domain.PlatformAccount{ID: advertiser.AdvertiserID, Name: advertiser.AdvertiserName})
	}
	return accounts, nil
}

// FetchPage reads one page of the ad-level daily report. The cursor is the
// 1-based page number.
func (c *Client) FetchPage(ctx context.Context, account domain.PlatformAccount, window domain.DateRange, cursor string) (*domain.RecordPage, error) {
	page := 1
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 1 {
			return nil, errors.Errorf("tiktok: invalid page cursor %q", cursor)
		}
		page = n
	}

	meta := c.advertiserMeta(ctx, account.ID)

	dimensions, _ := json.MarshalToString([]string{"ad_id", "stat_time_day"})
	metrics, _ := json.MarshalToString(reportMetrics)

	params := url.Values{}
	params.Add("advertiser_id", account.ID)
	params.Add("report_type", "BASIC")
	params.Add("data_level", "AUCTION_AD")
	params.Add("dimensions", dimensions)
	params.Add("metrics", metrics)
	params.Add("start_date", window.Start.Format(time.DateOnly))
	params.Add("end_date", window.End.Format(time.DateOnly))
	params.Add("page", strconv.Itoa(page))
	params.Add("page_size", strconv.Itoa(pageSize))

	var response envelope[listData[ReportRow]]
	resp, err := c.get(ctx, "report/integrated/get/", params, &response)
	if err != nil {
		return nil, errors.Wrapf(err, "tiktok: report of advertiser %s", account.ID)
	}

	result := &domain.RecordPage{Bytes: resp.Bytes}
	if info := response.Data.PageInfo; info.Page < info.TotalPage {
		result.NextCursor = strconv.Itoa(info.Page + 1)
	}

	for _, row := range response.Data.List {
		fields := make(map[string]any, len(row.Metrics)+len(row.Dimensions)+3)
		for k, v := range row.Metrics {
			fields[k] = v
		}
		for k, v := range row.Dimensions {
			fields[k] = v
		}

		campaignID := stringOf(fields["campaign_id"])
		if objective, ok := meta.objectives[campaignID]; ok {
			fields["objective_type"] = objective
		}
		if adGroup, ok := meta.adGroups[stringOf(fields["adgroup_id"])]; ok {
			fields["schedule_start_time"] = adGroup.ScheduleStartTime
			fields["schedule_end_time"] = adGroup.ScheduleEndTime
		}

		result.Records = append(result.Records, domain.RawRecord{
			Platform:    domain.PlatformTikTok,
			AccountID:   account.ID,
			AccountName: account.Name,
			CampaignID:  campaignID,
			AdID:        stringOf(fields["ad_id"]),
			Date:        dateOf(stringOf(fields["stat_time_day"])),
			Fields:      fields,
		})
	}
	return result, nil
}

// advertiserMeta loads campaign objectives and ad group schedules once per
// advertiser. Lookup failures leave the fields empty.
func (c *Client) advertiserMeta(ctx context.Context, advertiserID string) *advertiserMeta {
	c.mu.Lock()
	cached, ok := c.meta[advertiserID]
	c.mu.Unlock()
	if ok {
		return cached
	}

	meta := &advertiserMeta{objectives: map[string]string{}, adGroups: map[string]AdGroup{}}
	logger := logrus.WithFields(logrus.Fields{"platform": domain.PlatformTikTok, "advertiser_id": advertiserID})

	campaigns, err := listAll[Campaign](ctx, c, "campaign/get/", advertiserID, `["campaign_id","campaign_name","objective_type"]`)
	if err != nil {
		logger.WithError(err).Warn("tiktok: campaign objectives unavailable")
	}
	for _, campaign := range campaigns {
		meta.objectives[campaign.CampaignID] = campaign.ObjectiveType
	}

	adGroups, err := listAll[AdGroup](ctx, c, "adgroup/get/", advertiserID, `["adgroup_id","schedule_start_time","schedule_end_time"]`)
	if err != nil {
		logger.WithError(err).Warn("tiktok: ad group schedules unavailable")
	}
	for _, adGroup := range adGroups {
		meta.adGroups[adGroup.AdGroupID] = adGroup
	}

	c.mu.Lock()
	c.meta[advertiserID] = meta
	c.mu.Unlock()
	return meta
}

func listAll[T any](ctx context.Context, c *Client, path, advertiserID, fields string) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		params := url.Values{}
		params.Add("advertiser_id", advertiserID)
		params.Add("fields", fields)
		params.Add("page", strconv.Itoa(page))
		params.Add("page_size", strconv.Itoa(pageSize))

		var response envelope[listData[T]]
		if _, err := c.get(ctx, path, params, &response); err != nil {
			return all, err
		}
		all = append(all, response.Data.List...)

		if response.Data.PageInfo.Page >= response.Data.PageInfo.TotalPage {
			return all, nil
		}
	}
}

type apiResponse interface {
	err() error
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out apiResponse) (*httpclient.Response, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path + "?" + params.Encode()
	resp, err := c.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Access-Token", c.cfg.AccessToken)
		return req, nil
	}, out)
	if err != nil {
		return nil, err
	}
	if err := out.err(); err != nil {
		return nil, err
	}
	return resp, nil
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

// dateOf keeps the day of "2024-03-01 00:00:00".
func dateOf(s string) string {
	if len(s) >= len(time.DateOnly) {
		return s[:len(time.DateOnly)]
	}
	return s
}
