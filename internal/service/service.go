// Path: internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"article-browser/internal/domain"
)

// Service answers article listing queries for the delivery layer.
type Service struct {
	storage ArticleStorage
	checker DatabaseChecker
	logger  *zap.Logger
}

// NewService creates a new article query service.
func NewService(storage ArticleStorage, checker DatabaseChecker, logger *zap.Logger) *Service {
	return &Service{
		storage: storage,
		checker: checker,
		logger:  logger,
	}
}

// QueryArticles returns the requested page of matching articles and the
// collection total. The page and the total are read concurrently.
func (s *Service) QueryArticles(ctx context.Context, q domain.ArticleQuery) (*domain.ArticlePage, error) {
	q = q.Normalize()

	var (
		articles []domain.Article
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.storage.SearchArticles(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.storage.CountArticles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Article query failed",
			zap.Int64("page", q.Page),
			zap.Int64("limit", q.Limit),
			zap.String("search", q.Search),
			zap.Error(err))
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		return nil, err
	}

	if articles == nil {
		articles = []domain.Article{}
	}
	s.logger.Debug("Article query served",
		zap.Int64("page", q.Page),
		zap.Int64("limit", q.Limit),
		zap.String("search", q.Search),
		zap.Int("returned", len(articles)),
		zap.Int64("total", total))

	return &domain.ArticlePage{Articles: articles, Total: total}, nil
}

// CheckDatabase pings the document store and returns the database name.
func (s *Service) CheckDatabase(ctx context.Context) (string, error) {
	name := s.checker.DatabaseName()
	if err := s.checker.Ping(ctx); err != nil {
		s.logger.Warn("Database check failed", zap.String("database", name), zap.Error(err))
		return name, err
	}
	return name, nil
}
