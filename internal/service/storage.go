// Path: internal/service/storage.go
package service

import (
	"context"

	"article-browser/internal/domain"
)

// ArticleStorage defines the interface for reading article documents.
type ArticleStorage interface {
	// SearchArticles returns one page of articles whose title or author contains
	// the search text, ordered by numeric likes, highest first.
	SearchArticles(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error)

	// CountArticles counts the documents of the counted collection. The search is not applied.
	CountArticles(ctx context.Context) (int64, error)
}

// DatabaseChecker reports whether the document store is reachable.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	DatabaseName() string
}
