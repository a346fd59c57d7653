package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"article-browser/internal/config"
	"article-browser/internal/domain"
)

func newTestGateway(baseURL string) *Gateway {
	return NewGateway(config.ProxyConfig{BaseURL: baseURL, TimeoutSeconds: 2}, zap.NewNop())
}

func TestForwardRelaysBodyVerbatim(t *testing.T) {
	const body = `{"articles":[{"_id":"1","content":"x","likes":"5"}],"total":1}`
	var gotQuery url.Values
	var gotPath, gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer upstream.Close()

	g := newTestGateway(upstream.URL + "/")
	params := url.Values{"page": {"2"}, "limit": {"10"}, "search": {"a&b c"}, "other": {"dropped"}}

	got, err := g.Forward(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, body, string(got))
	assert.Equal(t, "/api/articles", gotPath)
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "a&b c", gotQuery.Get("search"))
	assert.False(t, gotQuery.Has("other"))
	assert.Equal(t, "application/json", gotContentType)
}

func TestForwardOmitsAbsentParameters(t *testing.T) {
	var rawQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"articles":[],"total":0}`))
	}))
	defer upstream.Close()

	_, err := newTestGateway(upstream.URL).Forward(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Empty(t, rawQuery)
}

func TestForwardRelaysNonOKJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"upstream broke"}`))
	}))
	defer upstream.Close()

	got, err := newTestGateway(upstream.URL).Forward(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"upstream broke"}`, string(got))
}

func TestForwardRejectsNonJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer upstream.Close()

	_, err := newTestGateway(upstream.URL).Forward(context.Background(), url.Values{})
	assert.ErrorIs(t, err, domain.ErrMalformedUpstreamResponse)
}

func TestForwardUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	_, err := newTestGateway(addr).Forward(context.Background(), url.Values{})
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestForwardTimesOutHungUpstream(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()
	defer close(release)

	g := newTestGateway(upstream.URL)
	g.client.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := g.Forward(context.Background(), url.Values{})
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewGatewayThrottleSettings(t *testing.T) {
	unlimited := NewGateway(config.ProxyConfig{BaseURL: "http://x"}, zap.NewNop())
	assert.True(t, unlimited.limiter.Limit() > 1e9)

	throttled := NewGateway(config.ProxyConfig{BaseURL: "http://x", RequestsPerSecond: 2, BurstLimit: 3}, zap.NewNop())
	assert.InDelta(t, 2.0, float64(throttled.limiter.Limit()), 0.001)
	assert.Equal(t, 3, throttled.limiter.Burst())
	assert.Equal(t, "http://x/api/articles", throttled.Endpoint())
}
