// Path: internal/proxy/gateway.go
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"article-browser/internal/config"
	"article-browser/internal/domain"
)

const articlesPath = "/api/articles"

// forwardedParams are the only inbound query parameters passed upstream.
var forwardedParams = []string{"page", "limit", "search"}

// Gateway relays listing requests to a remote article API.
type Gateway struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewGateway creates and configures a new Gateway. A zero RequestsPerSecond
// disables throttling.
func NewGateway(cfg config.ProxyConfig, logger *zap.Logger) *Gateway {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.BurstLimit
	if burst < 1 {
		burst = 1
	}

	return &Gateway{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + articlesPath,
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Endpoint returns the upstream URL without a query string.
func (g *Gateway) Endpoint() string { return g.endpoint }

// Forward fetches the upstream listing for the page, limit and search values
// in params and returns the body unchanged. Absent values are not sent, so the
// upstream defaults apply. The body must decode as JSON.
func (g *Gateway) Forward(ctx context.Context, params url.Values) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrNetworkFailure, err)
	}

	query := url.Values{}
	for _, key := range forwardedParams {
		if params.Has(key) {
			query.Set(key, params.Get(key))
		}
	}
	target := g.endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrNetworkFailure, err)
	}

	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: upstream returned status %d with a non-JSON body",
			domain.ErrMalformedUpstreamResponse, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Upstream answered with a non-200 status, relaying body",
			zap.String("url", target), zap.Int("status", resp.StatusCode))
	}
	return body, nil
}
