// Path: internal/delivery/rest/handlers.go
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"article-browser/internal/domain"
)

// articleService defines the interface required by the handlers from the core service.
// This keeps the delivery layer decoupled from the full service implementation.
type articleService interface {
	QueryArticles(ctx context.Context, q domain.ArticleQuery) (*domain.ArticlePage, error)
	CheckDatabase(ctx context.Context) (string, error)
}

// forwarder relays a listing request to another deployment.
type forwarder interface {
	Forward(ctx context.Context, params url.Values) ([]byte, error)
}

const (
	articlesErrorMessage = "Failed to fetch articles"
	proxyErrorMessage    = "Failed to fetch data"
)

type errorResponse struct {
	Error string `json:"error"`
}

type databaseStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// ArticleHandlers holds dependencies for article-related HTTP handlers.
type ArticleHandlers struct {
	service articleService
	logger  *zap.Logger
}

// NewArticleHandlers creates a new handler struct.
func NewArticleHandlers(s articleService, logger *zap.Logger) *ArticleHandlers {
	return &ArticleHandlers{service: s, logger: logger}
}

// ListArticles handles GET /api/articles?page=&limit=&search=.
func (h *ArticleHandlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := domain.ParseArticleQuery(params.Get("page"), params.Get("limit"), params.Get("search"))

	page, err := h.service.QueryArticles(r.Context(), q)
	if err != nil {
		h.logger.Error("Listing articles failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: articlesErrorMessage})
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CheckDatabase handles GET /api/health/db.
func (h *ArticleHandlers) CheckDatabase(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.CheckDatabase(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, databaseStatus{Status: "error", Database: name, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, databaseStatus{Status: "ok", Database: name})
}

// ProxyHandlers holds dependencies for the passthrough endpoint.
type ProxyHandlers struct {
	gateway forwarder
	logger  *zap.Logger
}

// NewProxyHandlers creates a new handler struct.
func NewProxyHandlers(g forwarder, logger *zap.Logger) *ProxyHandlers {
	return &ProxyHandlers{gateway: g, logger: logger}
}

// Forward handles GET /api/proxy by relaying the upstream body verbatim.
func (h *ProxyHandlers) Forward(w http.ResponseWriter, r *http.Request) {
	body, err := h.gateway.Forward(r.Context(), r.URL.Query())
	if err != nil {
		h.logger.Error("Error fetching data", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: proxyErrorMessage})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
