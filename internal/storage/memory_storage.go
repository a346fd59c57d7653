// Path: internal/storage/memory_storage.go
package storage

import (
	"context"
	"sort"

	"article-browser/internal/domain"
)

// MemoryArticleStorage applies the same match, sort and paging rules as the
// Mongo pipeline to in-process slices. Used by tests and local runs.
type MemoryArticleStorage struct {
	searched []domain.Article
	counted  int64
}

// NewMemoryArticleStorage stores copies of the searched collection and the
// size of the counted one.
func NewMemoryArticleStorage(searched, counted []domain.Article) *MemoryArticleStorage {
	return &MemoryArticleStorage{
		searched: append([]domain.Article(nil), searched...),
		counted:  int64(len(counted)),
	}
}

// SearchArticles implements the ArticleStorage interface.
func (s *MemoryArticleStorage) SearchArticles(_ context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	q = q.Normalize()

	matched := make([]domain.Article, 0, len(s.searched))
	for _, a := range s.searched {
		if a.MatchesSearch(q.Search) {
			matched = append(matched, a)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		li, lj := matched[i].Likes.Int(), matched[j].Likes.Int()
		if li != lj {
			return li > lj
		}
		return matched[i].ID < matched[j].ID
	})

	skip := q.Skip()
	if skip >= int64(len(matched)) {
		return []domain.Article{}, nil
	}
	end := skip + min(q.Limit, int64(len(matched))-skip)
	return matched[skip:end], nil
}

// CountArticles implements the ArticleStorage interface.
func (s *MemoryArticleStorage) CountArticles(context.Context) (int64, error) {
	return s.counted, nil
}
