package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/httpclient"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

const (
	listPageSize    = 100
	analyticsFields = "pivotValues,dateRange,impressions,clicks,follows,reactions,shares,comments,totalEngagements,videoViews,costInUsd,landingPageClicks,otherEngagements"

	creativeUGC      = "UGC Post"
	creativeShare    = "Sponsored Share"
	creativeCanceled = "Ad CANCELED"
	creativePaused   = "AD Paused"
)

// Client reads creative-level daily analytics. A page is one campaign: the
// cursor is the index of the next campaign of the account.
type Client struct {
	cfg  config.LinkedIn
	http *httpclient.Client

	mu        sync.Mutex
	campaigns map[string][]campaignRef
	creatives map[string]string
}

func New(cfg config.LinkedIn, http *httpclient.Client) *Client {
	return &Client{
		cfg:       cfg,
		http:      http,
		campaigns: make(map[string][]campaignRef),
		creatives: make(map[string]string),
	}
}

func (c *Client) Platform() domain.Platform {
	return domain.PlatformLinkedIn
}

func (c *Client) Ready() error {
	if c.cfg.AccessToken == "" {
		return errors.Wrap(domain.ErrMissingCredentials, "linkedin access token")
	}
	return nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.PlatformAccount, error) {
	accounts, err := listAll[AdAccount](ctx, c, "adAccounts", url.Values{"q": {"search"}})
	if err != nil {
		return nil, errors.Wrap(err, "linkedin: list ad accounts")
	}

	out := make([]domain.PlatformAccount, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, domain.PlatformAccount{ID: strconv.FormatInt(account.ID, 10), Name: account.Name})
	}
	return out, nil
}

func (c *Client) FetchPage(ctx context.Context, account domain.PlatformAccount, window domain.DateRange, cursor string) (*domain.RecordPage, error) {
	index := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return nil, errors.Errorf("linkedin: invalid campaign cursor %q", cursor)
		}
		index = n
	}

	refs, err := c.accountCampaigns(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if index >= len(refs) {
		return &domain.RecordPage{}, nil
	}

	ref := refs[index]
	page := &domain.RecordPage{}
	if index+1 < len(refs) {
		page.NextCursor = strconv.Itoa(index + 1)
	}

	var analytics collection[map[string]any]
	resp, err := c.get(ctx, "adAnalytics", analyticsQuery(ref.campaign.ID, window), &analytics)
	if err != nil {
		return nil, errors.Wrapf(err, "linkedin: analytics of campaign %d", ref.campaign.ID)
	}
	page.Bytes = resp.Bytes

	for _, element := range analytics.Elements {
		creativeURN := firstPivot(element)
		fields := map[string]any{
			"campaign_group_name": ref.group.Name,
			"campaign_name":       ref.campaign.Name,
			"objective_type":      ref.campaign.ObjectiveType,
			"campaign_status":     ref.campaign.Status,
			"start_date":          msToDate(ref.group.RunSchedule.Start),
			"end_date":            msToDate(ref.group.RunSchedule.End),
			"creative_name":       c.creativeName(ctx, account.ID, creativeURN),
			"impressions":         element["impressions"],
			"clicks":              element["clicks"],
			"follows":             element["follows"],
			"reactions":           element["reactions"],
			"shares":              element["shares"],
			"comments":            element["comments"],
			"total_engagements":   element["totalEngagements"],
			"video_views":         element["videoViews"],
			"cost_in_usd":         element["costInUsd"],
			"landing_page_clicks": element["landingPageClicks"],
		}

		date := elementDate(element)
		if date == "" {
			date = window.Start.Format("2006-01-02")
		}
		fields["date"] = date

		page.Records = append(page.Records, domain.RawRecord{
			Platform:    domain.PlatformLinkedIn,
			AccountID:   account.ID,
			AccountName: account.Name,
			CampaignID:  strconv.FormatInt(ref.campaign.ID, 10),
			AdID:        urnID(creativeURN),
			Date:        date,
			Fields:      fields,
		})
	}
	return page, nil
}

// accountCampaigns lists campaign groups and campaigns once per account.
func (c *Client) accountCampaigns(ctx context.Context, accountID string) ([]campaignRef, error) {
	c.mu.Lock()
	cached, ok := c.campaigns[accountID]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	groups, err := listAll[CampaignGroup](ctx, c, "adAccounts/"+accountID+"/adCampaignGroups", url.Values{"q": {"search"}})
	if err != nil {
		return nil, errors.Wrapf(err, "linkedin: campaign groups of %s", accountID)
	}
	byID := make(map[int64]CampaignGroup, len(groups))
	for _, group := range groups {
		byID[group.ID] = group
	}

	campaigns, err := listAll[Campaign](ctx, c, "adAccounts/"+accountID+"/adCampaigns", url.Values{"q": {"search"}})
	if err != nil {
		return nil, errors.Wrapf(err, "linkedin: campaigns of %s", accountID)
	}

	refs := make([]campaignRef, 0, len(campaigns))
	for _, campaign := range campaigns {
		group, ok := byID[campaign.GroupID()]
		if !ok {
			continue
		}
		refs = append(refs, campaignRef{campaign: campaign, group: group})
	}

	c.mu.Lock()
	c.campaigns[accountID] = refs
	c.mu.Unlock()
	return refs, nil
}

// creativeName labels a creative by what it references. Lookups are cached;
// an unreadable creative yields an empty name.
func (c *Client) creativeName(ctx context.Context, accountID, urn string) string {
	if urn == "" {
		return ""
	}

	c.mu.Lock()
	name, ok := c.creatives[urn]
	c.mu.Unlock()
	if ok {
		return name
	}

	var creative Creative
	_, err := c.get(ctx, "adAccounts/"+accountID+"/creatives/"+url.QueryEscape(urn), nil, &creative)
	switch {
	case httpclient.StatusCode(err) == http.StatusForbidden:
		name = creativePaused
	case err != nil:
		logrus.WithFields(logrus.Fields{
			"platform": domain.PlatformLinkedIn,
			"creative": urn,
			"error":    err.Error(),
		}).Warn("linkedin: creative lookup failed")
		return ""
	case creative.IntendedStatus == "CANCELED" || creative.Content.Reference == "":
		name = creativeCanceled
	case strings.Contains(creative.Content.Reference, "ugcPost"):
		name = creativeUGC
	default:
		name = creativeShare
	}

	c.mu.Lock()
	c.creatives[urn] = name
	c.mu.Unlock()
	return name
}

func listAll[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var all []T
	for start := 0; ; start += listPageSize {
		query := url.Values{}
		for k, v := range params {
			query[k] = v
		}
		query.Set("start", strconv.Itoa(start))
		query.Set("count", strconv.Itoa(listPageSize))

		var page collection[T]
		if _, err := c.get(ctx, path, query.Encode(), &page); err != nil {
			return nil, err
		}
		all = append(all, page.Elements...)

		if len(page.Elements) < listPageSize || (page.Paging.Total > 0 && start+listPageSize >= page.Paging.Total) {
			return all, nil
		}
	}
}

// analyticsQuery is Rest.li encoded; parentheses and commas stay literal.
func analyticsQuery(campaignID int64, window domain.DateRange) string {
	campaign := url.QueryEscape(fmt.Sprintf("urn:li:sponsoredCampaign:%d", campaignID))
	return fmt.Sprintf(
		"q=analytics&pivot=CREATIVE&timeGranularity=DAILY&dateRange=(start:(year:%d,month:%d,day:%d),end:(year:%d,month:%d,day:%d))&campaigns=List(%s)&fields=%s",
		window.Start.Year(), int(window.Start.Month()), window.Start.Day(),
		window.End.Year(), int(window.End.Month()), window.End.Day(),
		campaign, analyticsFields,
	)
}

func (c *Client) get(ctx context.Context, path string, query any, out any) (*httpclient.Response, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
	switch q := query.(type) {
	case string:
		if q != "" {
			endpoint += "?" + q
		}
	case url.Values:
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
	}

	return c.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
		req.Header.Set("Linkedin-Version", c.cfg.Version)
		req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
		return req, nil
	}, out)
}

func firstPivot(element map[string]any) string {
	values, ok := element["pivotValues"].([]any)
	if !ok || len(values) == 0 {
		return ""
	}
	return utils.ToString(values[0])
}

// elementDate reads dateRange.start of a DAILY element as YYYY-MM-DD.
func elementDate(element map[string]any) string {
	dateRange, ok := element["dateRange"].(map[string]any)
	if !ok {
		return ""
	}
	start, ok := dateRange["start"].(map[string]any)
	if !ok {
		return ""
	}
	year, month, day := utils.ToInt(start["year"]), utils.ToInt(start["month"]), utils.ToInt(start["day"])
	if year == 0 || month == 0 || day == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
