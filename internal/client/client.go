// Path: internal/client/client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"article-browser/internal/domain"
)

// Client fetches article pages from a listing endpoint such as /api/proxy.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a client for the listing endpoint at baseURL+path.
func New(baseURL, path string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + path,
		http:     &http.Client{Timeout: timeout},
	}
}

type listingResponse struct {
	Articles *[]domain.Article `json:"articles"`
	Total    int64            `json:"total"`
}

// FetchArticles requests one page. A response without an articles array is
// reported as domain.ErrMalformedUpstreamResponse; transport failures as
// domain.ErrNetworkFailure.
func (c *Client) FetchArticles(ctx context.Context, page, limit int64, search string) (*domain.ArticlePage, error) {
	query := url.Values{}
	query.Set("page", strconv.FormatInt(page, 10))
	query.Set("limit", strconv.FormatInt(limit, 10))
	query.Set("search", search)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrNetworkFailure, err)
	}

	var decoded listingResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", domain.ErrMalformedUpstreamResponse, resp.StatusCode, err)
	}
	if decoded.Articles == nil {
		return nil, fmt.Errorf("%w: status %d: no articles array", domain.ErrMalformedUpstreamResponse, resp.StatusCode)
	}

	return &domain.ArticlePage{Articles: *decoded.Articles, Total: decoded.Total}, nil
}
