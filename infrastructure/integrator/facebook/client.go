package facebook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	fbdomain "github.com/vfg2006/paid-media-etl/infrastructure/integrator/facebook/domain"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/httpclient"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	insightFields = "campaign_id,campaign_name,adset_id,adset_name,ad_id,ad_name,objective,spend,impressions,reach,actions,date_start,date_stop"
	actionFilter  = `[{"field":"action_type","operator":"IN","value":["post_reaction","post","comment","link_click","video_view","onsite_conversion.post_save","post_engagement"]}]`
	pageLimit     = "500"
)

// Client reads ad-level insights from the Graph API. Ad-set schedules are
// fetched once per account and cached for the life of the client; a failed
// lookup is cached too and not retried for that account.
type Client struct {
	cfg  config.Facebook
	http *httpclient.Client

	mu             sync.Mutex
	schedules      map[string]map[string]fbdomain.AdSet
	scheduleErrors map[string]error
}

func New(cfg config.Facebook, http *httpclient.Client) *Client {
	return &Client{
		cfg:            cfg,
		http:           http,
		schedules:      make(map[string]map[string]fbdomain.AdSet),
		scheduleErrors: make(map[string]error),
	}
}

func (c *Client) Platform() domain.Platform {
	return domain.PlatformFacebook
}

func (c *Client) Ready() error {
	if c.cfg.AccessToken == "" {
		return pkgerrors.Wrap(domain.ErrMissingCredentials, "facebook access token")
	}
	return nil
}

// ListAccounts returns every ad account visible to the token.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.PlatformAccount, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("fields", "adaccounts.limit(1000){name,id,account_id}")

	var response fbdomain.MeResponse
	if _, err := c.get(ctx, "me", params, &response); err != nil {
		return nil, pkgerrors.Wrap(err, "facebook: list ad accounts")
	}

	accounts := make([]domain.PlatformAccount, 0, len(response.AdAccounts.Data))
	for _, account := range response.AdAccounts.Data {
		accounts = append(accounts, domain.PlatformAccount{ID: accountPath(account.ID), Name: account.Name})
	}

	logrus.WithField("total_accounts", len(accounts)).Debug("facebook: listed ad accounts")
	return accounts, nil
}

// FetchPage reads one insights page of an account for a window.
func (c *Client) FetchPage(ctx context.Context, account domain.PlatformAccount, window domain.DateRange, cursor string) (*domain.RecordPage, error) {
	accountID := accountPath(account.ID)

	schedules, err := c.adSets(ctx, accountID)
	if err != nil {
		// schedules only enrich Start/End Date
		logrus.WithFields(logrus.Fields{
			"platform":   domain.PlatformFacebook,
			"account_id": accountID,
			"error":      err.Error(),
		}).Warn("facebook: ad set schedules unavailable")
	}

	timeRange, _ := json.MarshalToString(map[string]string{
		"since": window.Start.Format(time.DateOnly),
		"until": window.End.Format(time.DateOnly),
	})

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("level", "ad")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("breakdowns", "publisher_platform")
	params.Add("filtering", actionFilter)
	params.Add("limit", pageLimit)
	if cursor != "" {
		params.Add("after", cursor)
	}

	var response fbdomain.InsightsResponse
	resp, err := c.get(ctx, accountID+"/insights", params, &response)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "facebook: insights of %s", accountID)
	}

	page := &domain.RecordPage{NextCursor: response.Paging.NextCursor(), Bytes: resp.Bytes}
	for _, row := range response.Data {
		if adSet, ok := schedules[stringField(row, "adset_id")]; ok {
			row["start_time"] = adSet.StartTime
			row["end_time"] = adSet.EndTime
		}
		page.Records = append(page.Records, domain.RawRecord{
			Platform:    domain.PlatformFacebook,
			AccountID:   accountID,
			AccountName: account.Name,
			CampaignID:  stringField(row, "campaign_id"),
			AdID:        stringField(row, "ad_id"),
			Date:        stringField(row, "date_start"),
			Fields:      row,
		})
	}
	return page, nil
}

func (c *Client) adSets(ctx context.Context, accountID string) (map[string]fbdomain.AdSet, error) {
	c.mu.Lock()
	cached, ok := c.schedules[accountID]
	cachedErr := c.scheduleErrors[accountID]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}
	if cachedErr != nil {
		return nil, cachedErr
	}

	adSets := make(map[string]fbdomain.AdSet)
	cursor := ""
	for {
		params := url.Values{}
		params.Add("fields", "id,name,start_time,end_time,status")
		params.Add("limit", pageLimit)
		if cursor != "" {
			params.Add("after", cursor)
		}

		var response fbdomain.AdSetsResponse
		if _, err := c.get(ctx, accountID+"/adsets", params, &response); err != nil {
			err = pkgerrors.Wrapf(err, "facebook: ad sets of %s", accountID)
			if ctx.Err() == nil {
				c.mu.Lock()
				c.scheduleErrors[accountID] = err
				c.mu.Unlock()
			}
			return nil, err
		}
		for _, adSet := range response.Data {
			adSets[adSet.ID] = adSet
		}

		next := response.Paging.NextCursor()
		if next == "" || next == cursor {
			break
		}
		cursor = next
	}

	c.mu.Lock()
	c.schedules[accountID] = adSets
	c.mu.Unlock()
	return adSets, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (*httpclient.Response, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Version, path, params.Encode())

	resp, err := c.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		// header, not query string: request URLs end up in error text and the ops log
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
		return req, nil
	}, out)
	if err != nil {
		return nil, graphError(err)
	}
	return resp, nil
}

// graphError surfaces the Graph error envelope; expired tokens are reported as
// missing credentials.
func graphError(err error) error {
	var reqErr *httpclient.RequestError
	if !errors.As(err, &reqErr) || reqErr.Body == "" {
		return err
	}

	var envelope fbdomain.ErrorResponse
	if json.UnmarshalFromString(reqErr.Body, &envelope) != nil || envelope.Error.Message == "" {
		return err
	}

	if envelope.IsTokenExpired() {
		return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, envelope.String())
	}
	return pkgerrors.Wrap(err, envelope.String())
}

func accountPath(id string) string {
	if strings.HasPrefix(id, "act_") {
		return id
	}
	return "act_" + id
}

func stringField(row map[string]any, key string) string {
	if s, ok := row[key].(string); ok {
		return s
	}
	return ""
}
