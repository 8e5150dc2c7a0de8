package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RetryPolicy bounds the attempts of one request. Delays grow from BaseDelay
// by Multiplier between attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

func RetryPolicyFrom(cfg config.Retry) RetryPolicy {
	policy := DefaultRetryPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseDelay > 0 {
		policy.BaseDelay = cfg.BaseDelay
	}
	if cfg.Multiplier >= 1 {
		policy.Multiplier = cfg.Multiplier
	}
	return policy
}

// RequestError is a failed HTTP exchange. Transient errors were retried
// before being returned.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Transient  bool
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying: 5xx, 429 and network errors.
func IsTransient(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Transient
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// StatusCode returns the HTTP status carried by err, 0 when none.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// Response is a decoded exchange.
type Response struct {
	StatusCode int
	Bytes      int
}

type Client struct {
	http   *http.Client
	policy RetryPolicy
}

func New(policy RetryPolicy, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		policy: policy,
	}
}

// WithHTTPClient swaps the underlying client (tests use httptest clients).
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.http = client
	return c
}

// RequestBuilder builds a fresh request per attempt, so bodies can be replayed.
type RequestBuilder func(ctx context.Context) (*http.Request, error)

// DoJSON executes the request with retry and decodes a 2xx body into out.
// 4xx responses and undecodable bodies fail on the first attempt.
func (c *Client) DoJSON(ctx context.Context, build RequestBuilder, out any) (*Response, error) {
	var resp *Response

	operation := func() error {
		req, err := build(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		r, body, err := c.do(req)
		if err != nil {
			if IsTransient(err) {
				logrus.WithFields(logrus.Fields{
					"method": req.Method,
					"url":    req.URL.Path,
					"error":  err.Error(),
				}).Warn("http: transient failure, retrying")
				return err
			}
			return backoff.Permanent(err)
		}

		if out != nil && len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				return backoff.Permanent(&RequestError{
					Method:     req.Method,
					URL:        redactURL(req.URL),
					StatusCode: r.StatusCode,
					Body:       "malformed payload",
					Err:        err,
				})
			}
		}

		resp = &Response{StatusCode: r.StatusCode, Bytes: len(body)}
		return nil
	}

	if err := backoff.Retry(operation, c.backoff(ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.policy.BaseDelay
	b.Multiplier = c.policy.Multiplier
	b.RandomizationFactor = 0
	b.MaxInterval = c.policy.BaseDelay * time.Duration(1<<uint(max(c.policy.MaxAttempts, 1)))
	b.MaxElapsedTime = 0

	retries := c.policy.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, nil, req.Context().Err()
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactURL(req.URL)
		}
		return nil, nil, &RequestError{Method: req.Method, URL: redactURL(req.URL), Transient: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &RequestError{Method: req.Method, URL: redactURL(req.URL), StatusCode: resp.StatusCode, Transient: true, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, body, &RequestError{
			Method:     req.Method,
			URL:        redactURL(req.URL),
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 512),
			Transient:  resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	return resp, body, nil
}

// secretParams are masked in URLs that reach error text
var secretParams = []string{"access_token", "token", "key", "api_key", "secret", "client_secret"}

// redactURL hides userinfo passwords and credential query parameters.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clone := *u
	query := clone.Query()
	changed := false
	for name := range query {
		for _, secret := range secretParams {
			if strings.EqualFold(name, secret) {
				query.Set(name, "xxxxx")
				changed = true
			}
		}
	}
	if changed {
		clone.RawQuery = query.Encode()
	}
	return clone.Redacted()
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
