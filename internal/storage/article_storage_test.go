package storage

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"article-browser/internal/domain"
)

// staticDatabase hands out a fixed handle, such as the one of an mtest mock deployment.
type staticDatabase struct {
	db *mongo.Database
}

func (s staticDatabase) Database(context.Context) (*mongo.Database, error) { return s.db, nil }

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, len(p))
	for i, stage := range p {
		names[i] = stage[0].Key
	}
	return names
}

func TestBuildSearchPipelineStages(t *testing.T) {
	all := buildSearchPipeline(domain.ArticleQuery{Page: 1, Limit: 10})
	assert.Equal(t, []string{"$addFields", "$sort", "$skip", "$limit", "$project"}, stageNames(all))

	filtered := buildSearchPipeline(domain.ArticleQuery{Page: 3, Limit: 5, Search: "smith"})
	assert.Equal(t, []string{"$match", "$addFields", "$sort", "$skip", "$limit", "$project"}, stageNames(filtered))

	assert.Equal(t, int64(10), filtered[3][0].Value)
	assert.Equal(t, int64(5), filtered[4][0].Value)
}

func TestBuildSearchPipelineEscapesSearchText(t *testing.T) {
	p := buildSearchPipeline(domain.ArticleQuery{Page: 1, Limit: 10, Search: "c++ (draft)"})

	match := p[0][0].Value.(bson.D)
	or := match[0].Value.(bson.A)
	require.Len(t, or, 2)

	title := or[0].(bson.D)
	assert.Equal(t, "title", title[0].Key)
	assert.Equal(t, primitive.Regex{Pattern: `c\+\+ \(draft\)`, Options: "i"}, title[0].Value)

	author := or[1].(bson.D)
	assert.Equal(t, "author", author[0].Key)
}

func TestBuildSearchPipelineNormalizesQuery(t *testing.T) {
	p := buildSearchPipeline(domain.ArticleQuery{Page: 0, Limit: 0})
	names := stageNames(p)
	require.Equal(t, "$skip", names[2])
	assert.Equal(t, int64(0), p[2][0].Value)
	assert.Equal(t, domain.DefaultLimit, p[3][0].Value)
}

func TestBuildSearchPipelineHugePageKeepsSkipNonNegative(t *testing.T) {
	p := buildSearchPipeline(domain.ParseArticleQuery("9223372036854775807", "10", ""))
	require.Equal(t, "$skip", stageNames(p)[2])
	assert.Equal(t, int64(math.MaxInt64), p[2][0].Value)
}

func TestMongoArticleStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("search decodes the aggregate batch", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		ns := mt.DB.Name() + ".article_data"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "title", Value: "First"}, {Key: "content", Value: "a"}, {Key: "likes", Value: "90"}},
			bson.D{{Key: "_id", Value: "slug"}, {Key: "author", Value: "Smith"}, {Key: "content", Value: "b"}, {Key: "likes", Value: int32(4)}},
		))

		store := NewMongoArticleStorage(staticDatabase{mt.DB}, "article_data", "articles")
		got, err := store.SearchArticles(context.Background(), domain.ArticleQuery{Page: 1, Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, got, 2)

		assert.Equal(mt, domain.DocumentID(oid.Hex()), got[0].ID)
		assert.Equal(mt, int64(90), got[0].Likes.Int())
		assert.Equal(mt, domain.DocumentID("slug"), got[1].ID)
		assert.Equal(mt, "Smith", got[1].Author)
	})

	mt.Run("search keeps a page with an odd document", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".article_data"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "ok"}, {Key: "title", Value: "Fine"}, {Key: "content", Value: "a"}},
			bson.D{{Key: "_id", Value: "odd"}, {Key: "title", Value: int64(42)}, {Key: "author", Value: bson.A{"x"}}, {Key: "content", Value: "b"}},
		))

		store := NewMongoArticleStorage(staticDatabase{mt.DB}, "article_data", "articles")
		got, err := store.SearchArticles(context.Background(), domain.ArticleQuery{Page: 1, Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "42", got[1].Title)
		assert.Equal(mt, "", got[1].Author)
	})

	mt.Run("search returns an empty slice, not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".article_data", mtest.FirstBatch))

		store := NewMongoArticleStorage(staticDatabase{mt.DB}, "article_data", "articles")
		got, err := store.SearchArticles(context.Background(), domain.ArticleQuery{Page: 9, Limit: 10})
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("search failure is storage unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		store := NewMongoArticleStorage(staticDatabase{mt.DB}, "article_data", "articles")
		_, err := store.SearchArticles(context.Background(), domain.ArticleQuery{Page: 1, Limit: 10})
		assert.ErrorIs(mt, err, domain.ErrStorageUnavailable)
	})

	mt.Run("count reads the counted collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".articles", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(25)}},
		))

		store := NewMongoArticleStorage(staticDatabase{mt.DB}, "article_data", "articles")
		n, err := store.CountArticles(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(25), n)
	})

	mt.Run("count failure is storage unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "denied"}))

		store := NewMongoArticleStorage(staticDatabase{mt.DB}, "article_data", "articles")
		_, err := store.CountArticles(context.Background())
		assert.ErrorIs(mt, err, domain.ErrStorageUnavailable)
	})
}
