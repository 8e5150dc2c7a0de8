package youtube

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/httpclient"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"golang.org/x/oauth2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const reportQuery = `SELECT customer.descriptive_name, campaign.name, ad_group.name, ad_group_ad.ad.id, ad_group_ad.ad.name,
  metrics.impressions, metrics.clicks, metrics.ctr, metrics.video_views, metrics.cost_micros, segments.date
FROM ad_group_ad
WHERE campaign.advertising_channel_type = 'VIDEO'
  AND segments.date BETWEEN '%s' AND '%s'`

const customerQuery = `SELECT customer.descriptive_name FROM customer LIMIT 1`

type searchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type searchResponse struct {
	Results       []searchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken"`
}

type searchRow struct {
	Customer struct {
		DescriptiveName string `json:"descriptiveName"`
	} `json:"customer"`
	Campaign struct {
		Name string `json:"name"`
	} `json:"campaign"`
	AdGroup struct {
		Name string `json:"name"`
	} `json:"adGroup"`
	AdGroupAd struct {
		Ad struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"ad"`
	} `json:"adGroupAd"`
	Metrics struct {
		Impressions string  `json:"impressions"`
		Clicks      string  `json:"clicks"`
		CTR         float64 `json:"ctr"`
		VideoViews  string  `json:"videoViews"`
		CostMicros  string  `json:"costMicros"`
	} `json:"metrics"`
	Segments struct {
		Date string `json:"date"`
	} `json:"segments"`
}

type listCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

// Client runs GAQL searches against the Google Ads REST API. The cursor is the
// search nextPageToken.
type Client struct {
	cfg    config.YouTube
	http   *httpclient.Client
	tokens oauth2.TokenSource
}

func New(cfg config.YouTube, http *httpclient.Client) *Client {
	return &Client{
		cfg:    cfg,
		http:   http,
		tokens: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}),
	}
}

// WithTokenSource replaces the static access token, e.g. with a refreshing source.
func (c *Client) WithTokenSource(tokens oauth2.TokenSource) *Client {
	c.tokens = tokens
	return c
}

func (c *Client) Platform() domain.Platform {
	return domain.PlatformYouTube
}

func (c *Client) Ready() error {
	if c.cfg.DeveloperToken == "" || c.cfg.AccessToken == "" {
		return errors.Wrap(domain.ErrMissingCredentials, "google ads developer token and access token")
	}
	return nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.PlatformAccount, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	var listed listCustomersResponse
	if _, err := c.do(ctx, http.MethodGet, "customers:listAccessibleCustomers", nil, &listed); err != nil {
		return nil, errors.Wrap(err, "youtube: list accessible customers")
	}

	accounts := make([]domain.PlatformAccount, 0, len(listed.ResourceNames))
	for _, resource := range listed.ResourceNames {
		customerID := strings.TrimPrefix(resource, "customers/")

		var response searchResponse
		_, err := c.do(ctx, http.MethodPost, "customers/"+customerID+"/googleAds:search", searchRequest{Query: customerQuery}, &response)
		if err != nil {
			return nil, errors.Wrapf(err, "youtube: describe customer %s", customerID)
		}

		name := customerID
		if len(response.Results) > 0 && response.Results[0].Customer.DescriptiveName != "" {
			name = response.Results[0].Customer.DescriptiveName
		}
		accounts = append(accounts, domain.PlatformAccount{ID: customerID, Name: name})
	}
	return accounts, nil
}

func (c *Client) FetchPage(ctx context.Context, account domain.PlatformAccount, window domain.DateRange, cursor string) (*domain.RecordPage, error) {
	customerID := strings.ReplaceAll(account.ID, "-", "")
	request := searchRequest{
		Query:     fmt.Sprintf(reportQuery, window.Start.Format(time.DateOnly), window.End.Format(time.DateOnly)),
		PageToken: cursor,
	}

	var response searchResponse
	resp, err := c.do(ctx, http.MethodPost, "customers/"+customerID+"/googleAds:search", request, &response)
	if err != nil {
		return nil, errors.Wrapf(err, "youtube: search customer %s", customerID)
	}

	page := &domain.RecordPage{NextCursor: response.NextPageToken, Bytes: resp.Bytes}
	for _, row := range response.Results {
		adName := row.AdGroupAd.Ad.Name
		if adName == "" {
			adName = "Unnamed"
		}

		page.Records = append(page.Records, domain.RawRecord{
			Platform:    domain.PlatformYouTube,
			AccountID:   customerID,
			AccountName: account.Name,
			AdID:        row.AdGroupAd.Ad.ID,
			Date:        row.Segments.Date,
			Fields: map[string]any{
				"customer_name": row.Customer.DescriptiveName,
				"campaign_name": row.Campaign.Name,
				"ad_group_name": row.AdGroup.Name,
				"ad_name":       adName,
				"date":          row.Segments.Date,
				"impressions":   row.Metrics.Impressions,
				"clicks":        row.Metrics.Clicks,
				"ctr":           row.Metrics.CTR,
				"video_views":   row.Metrics.VideoViews,
				"cost_micros":   row.Metrics.CostMicros,
			},
		})
	}
	return page, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*httpclient.Response, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, errors.Wrap(err, "youtube: access token")
	}

	var payload []byte
	if body != nil {
		if payload, err = json.Marshal(body); err != nil {
			return nil, err
		}
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
	return c.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		token.SetAuthHeader(req)
		req.Header.Set("developer-token", c.cfg.DeveloperToken)
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.LoginCustomerID != "" {
			req.Header.Set("login-customer-id", strings.ReplaceAll(c.cfg.LoginCustomerID, "-", ""))
		}
		return req, nil
	}, out)
}
