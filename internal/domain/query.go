// Path: internal/domain/query.go
package domain

import (
	"math"
	"strconv"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
)

// ArticleQuery holds the pagination and search parameters of a listing request.
type ArticleQuery struct {
	Page   int64
	Limit  int64
	Search string
}

// ParseArticleQuery builds a query from raw request parameters. Missing,
// non-numeric or non-positive page and limit values fall back to their defaults.
func ParseArticleQuery(page, limit, search string) ArticleQuery {
	return ArticleQuery{
		Page:   parsePositive(page, DefaultPage),
		Limit:  parsePositive(limit, DefaultLimit),
		Search: search,
	}.Normalize()
}

// Normalize replaces out-of-range values with defaults.
func (q ArticleQuery) Normalize() ArticleQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Skip is the number of matched documents before the requested page. It
// saturates at math.MaxInt64 instead of overflowing.
func (q ArticleQuery) Skip() int64 {
	q = q.Normalize()
	if q.Page-1 > math.MaxInt64/q.Limit {
		return math.MaxInt64
	}
	return (q.Page - 1) * q.Limit
}

func parsePositive(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
