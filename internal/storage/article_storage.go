// Path: internal/storage/article_storage.go
package storage

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"article-browser/internal/domain"
)

// sortKeyField is the derived numeric likes value the pipeline sorts on.
const sortKeyField = "likesNumeric"

// DatabaseProvider hands out a database handle. *Connector implements it.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// MongoArticleStorage is the MongoDB implementation of the ArticleStorage interface.
// Searches run against one collection; the total is counted on another.
type MongoArticleStorage struct {
	provider        DatabaseProvider
	collection      string
	countCollection string
}

// NewMongoArticleStorage creates a new storage adapter for articles.
func NewMongoArticleStorage(provider DatabaseProvider, collection, countCollection string) *MongoArticleStorage {
	return &MongoArticleStorage{
		provider:        provider,
		collection:      collection,
		countCollection: countCollection,
	}
}

// SearchArticles implements the ArticleStorage interface.
func (s *MongoArticleStorage) SearchArticles(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	db, err := s.provider.Database(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := db.Collection(s.collection).Aggregate(ctx, buildSearchPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate %s: %v", domain.ErrStorageUnavailable, s.collection, err)
	}

	articles := []domain.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorageUnavailable, s.collection, err)
	}
	return articles, nil
}

// CountArticles implements the ArticleStorage interface.
func (s *MongoArticleStorage) CountArticles(ctx context.Context) (int64, error) {
	db, err := s.provider.Database(ctx)
	if err != nil {
		return 0, err
	}

	n, err := db.Collection(s.countCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", domain.ErrStorageUnavailable, s.countCollection, err)
	}
	return n, nil
}

// buildSearchPipeline returns match -> derive sort key -> sort -> skip -> limit -> project.
func buildSearchPipeline(q domain.ArticleQuery) mongo.Pipeline {
	q = q.Normalize()
	pipeline := mongo.Pipeline{}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "$or", Value: bson.A{
				bson.D{{Key: "title", Value: pattern}},
				bson.D{{Key: "author", Value: pattern}},
			}},
		}}})
	}

	pipeline = append(pipeline,
		// Unparsable or missing likes sort as 0.
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: sortKeyField, Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$likes"},
				{Key: "to", Value: "long"},
				{Key: "onError", Value: int64(0)},
				{Key: "onNull", Value: int64(0)},
			}}}},
		}}},
		// _id breaks ties so the same page is returned on every call.
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: sortKeyField, Value: -1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$skip", Value: q.Skip()}},
		bson.D{{Key: "$limit", Value: q.Limit}},
		bson.D{{Key: "$project", Value: bson.D{{Key: sortKeyField, Value: 0}}}},
	)
	return pipeline
}
