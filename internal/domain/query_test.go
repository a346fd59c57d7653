package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArticleQuery(t *testing.T) {
	tests := []struct {
		name                string
		page, limit, search string
		want                ArticleQuery
	}{
		{"defaults", "", "", "", ArticleQuery{Page: 1, Limit: 10}},
		{"explicit", "3", "25", "go", ArticleQuery{Page: 3, Limit: 25, Search: "go"}},
		{"non-numeric", "abc", "x", "", ArticleQuery{Page: 1, Limit: 10}},
		{"zero and negative", "0", "-5", "", ArticleQuery{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArticleQuery(tt.page, tt.limit, tt.search))
		})
	}
}

func TestArticleQuerySkip(t *testing.T) {
	for page := int64(1); page <= 5; page++ {
		for limit := int64(1); limit <= 20; limit += 7 {
			q := ArticleQuery{Page: page, Limit: limit}
			assert.Equal(t, (page-1)*limit, q.Skip())
		}
	}
}

func TestArticleQuerySkipSaturates(t *testing.T) {
	tests := []struct {
		name string
		q    ArticleQuery
		want int64
	}{
		{"max page", ParseArticleQuery("9223372036854775807", "10", ""), math.MaxInt64},
		{"max limit", ParseArticleQuery("3", "9223372036854775807", ""), math.MaxInt64},
		{"max limit first page", ParseArticleQuery("1", "9223372036854775807", ""), 0},
		{"just fits", ArticleQuery{Page: math.MaxInt64/10 + 1, Limit: 10}, (math.MaxInt64 / 10) * 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Skip()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}
