// Path: internal/delivery/rest/server.go
package rest

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server is the HTTP server for the read-only article API.
type Server struct {
	httpServer *http.Server
}

const (
	minWriteTimeout   = 30 * time.Second
	writeTimeoutSlack = 5 * time.Second
)

// NewServer creates and configures a new API server. upstreamTimeout is the
// longest a proxied request may wait on the remote service.
func NewServer(port string, upstreamTimeout time.Duration, articles articleService, gateway forwarder, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(articles, gateway, logger),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: writeTimeout(upstreamTimeout),
			IdleTimeout:  15 * time.Second,
		},
	}
}

// writeTimeout keeps the response deadline past the upstream deadline so a
// slow relay still gets its body or its error written.
func writeTimeout(upstream time.Duration) time.Duration {
	return max(minWriteTimeout, upstream+writeTimeoutSlack)
}

// NewRouter registers every route on a fresh ServeMux.
func NewRouter(articles articleService, gateway forwarder, logger *zap.Logger) http.Handler {
	articleHandlers := NewArticleHandlers(articles, logger)
	proxyHandlers := NewProxyHandlers(gateway, logger)
	m := newMetrics()

	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, m, logger, h))
	}
	route("GET /api/articles", articleHandlers.ListArticles)
	route("GET /api/proxy", proxyHandlers.Forward)
	route("GET /api/health/db", articleHandlers.CheckDatabase)
	mux.Handle("GET /metrics", m.handler())

	return mux
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
