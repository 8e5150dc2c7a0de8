package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/config"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}
}

func get(url string) RequestBuilder {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func TestClient_DoJSON_RetriesTransient(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	resp, err := New(fastPolicy(), time.Second).DoJSON(context.Background(), get(server.URL), &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_DoJSON_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := New(fastPolicy(), time.Second).DoJSON(context.Background(), get(server.URL), nil)
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_DoJSON_NoRetryOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"denied"}`))
	}))
	defer server.Close()

	_, err := New(fastPolicy(), time.Second).DoJSON(context.Background(), get(server.URL), nil)
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_DoJSON_MalformedPayloadNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	var out map[string]any
	_, err := New(fastPolicy(), time.Second).DoJSON(context.Background(), get(server.URL), &out)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryPolicyFrom(t *testing.T) {
	policy := RetryPolicyFrom(config.Retry{})
	assert.Equal(t, DefaultRetryPolicy(), policy)

	policy = RetryPolicyFrom(config.Retry{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond, Multiplier: 3})
	assert.Equal(t, RetryPolicy{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond, Multiplier: 3}, policy)
}

func TestClient_DoJSON_RedactsCredentialParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := New(fastPolicy(), time.Second).DoJSON(context.Background(), get(server.URL+"/insights?access_token=SECRET-1&level=ad"), nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-1")
	assert.Contains(t, err.Error(), "level=ad")
}

func TestClient_DoJSON_RedactsNetworkErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	address := server.URL
	server.Close()

	policy := RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond, Multiplier: 2}
	_, err := New(policy, time.Second).DoJSON(context.Background(), get(address+"/x?token=SECRET-2"), nil)
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.NotContains(t, err.Error(), "SECRET-2")
}

func TestTruncate_KeepsRunes(t *testing.T) {
	body := strings.Repeat("a", 9) + "ção"
	cut := truncate(body, 10)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("a", 9)+"...", cut)
	assert.Equal(t, "short", truncate("short", 10))
}
