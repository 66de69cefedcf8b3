package eventlog

import (
	"context"
	"time"

	"github.com/go-errors/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strrl/filmfind/pkg/search"
)

// MongoConfig locates the event collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

var _ Store = (*MongoStore)(nil)

// MongoStore keeps events in a MongoDB collection. Each call connects,
// runs one command and disconnects.
type MongoStore struct {
	withCollection func(ctx context.Context, fn func(coll *mongo.Collection) error) error
}

// NewMongoStore returns a store for the configured collection.
func NewMongoStore(cfg MongoConfig) *MongoStore {
	return &MongoStore{
		withCollection: func(ctx context.Context, fn func(coll *mongo.Collection) error) error {
			client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
			if err != nil {
				return errors.Errorf("connect mongo: %w", err)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			return fn(client.Database(cfg.Database).Collection(cfg.Collection))
		},
	}
}

// Insert writes one event document.
func (s *MongoStore) Insert(ctx context.Context, e Event) error {
	return s.withCollection(ctx, func(coll *mongo.Collection) error {
		if _, err := coll.InsertOne(ctx, e); err != nil {
			return errors.Errorf("insert event: %w", err)
		}
		return nil
	})
}

type popularDoc struct {
	ID struct {
		Keyword    *string `bson:"keyword"`
		CategoryID *int    `bson:"category_id"`
	} `bson:"_id"`
	Count        int       `bson:"count_query"`
	LastSearched time.Time `bson:"last_search_time"`
}

// TopPopular runs the grouping pipeline over params.keyword and
// params.category_id.
func (s *MongoStore) TopPopular(ctx context.Context, limit int) ([]PopularSearch, error) {
	var docs []popularDoc
	err := s.withCollection(ctx, func(coll *mongo.Collection) error {
		cur, err := coll.Aggregate(ctx, popularPipeline(limit))
		if err != nil {
			return errors.Errorf("aggregate popular: %w", err)
		}
		if err := cur.All(ctx, &docs); err != nil {
			return errors.Errorf("decode popular: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]PopularSearch, 0, len(docs))
	for _, d := range docs {
		p := PopularSearch{
			Type:         popularType(d.ID.Keyword, d.ID.CategoryID),
			Count:        d.Count,
			LastSearched: d.LastSearched,
		}
		if d.ID.Keyword != nil {
			p.Keyword = *d.ID.Keyword
		}
		if d.ID.CategoryID != nil {
			p.CategoryID = *d.ID.CategoryID
		}
		out = append(out, p)
	}
	return out, nil
}

type recentDoc struct {
	LastSearched time.Time   `bson:"last_search_time"`
	SearchType   search.Type `bson:"search_type"`
	Params       Params      `bson:"search_params"`
	ResultsCount int         `bson:"results_count"`
}

// LastUnique sorts by time, collapses each unique key to its first (latest)
// event and ranks the survivors by that event's time.
func (s *MongoStore) LastUnique(ctx context.Context, limit int) ([]RecentSearch, error) {
	var docs []recentDoc
	err := s.withCollection(ctx, func(coll *mongo.Collection) error {
		cur, err := coll.Aggregate(ctx, lastUniquePipeline(limit))
		if err != nil {
			return errors.Errorf("aggregate last unique: %w", err)
		}
		if err := cur.All(ctx, &docs); err != nil {
			return errors.Errorf("decode last unique: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]RecentSearch, 0, len(docs))
	for _, d := range docs {
		out = append(out, RecentSearch{
			Type:         d.SearchType,
			Params:       d.Params,
			LastSearched: d.LastSearched,
			ResultsCount: d.ResultsCount,
		})
	}
	return out, nil
}

func popularPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "keyword", Value: "$params.keyword"},
				{Key: "category_id", Value: "$params.category_id"},
			}},
			{Key: "count_query", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "last_search_time", Value: bson.D{{Key: "$max", Value: "$timestamp"}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "count_query", Value: -1},
			{Key: "last_search_time", Value: -1},
		}}},
		{{Key: "$limit", Value: limit}},
	}
}

func lastUniquePipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "unique_key", Value: bson.D{{Key: "$cond", Value: bson.D{
				{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{"$search_type", string(search.TypeKeyword)}}}},
				{Key: "then", Value: "$params.keyword"},
				{Key: "else", Value: "$params.category_id"},
			}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$unique_key"},
			{Key: "last_search_time", Value: bson.D{{Key: "$first", Value: "$timestamp"}}},
			{Key: "search_type", Value: bson.D{{Key: "$first", Value: "$search_type"}}},
			{Key: "search_params", Value: bson.D{{Key: "$first", Value: "$params"}}},
			{Key: "results_count", Value: bson.D{{Key: "$first", Value: "$results_count"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_search_time", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}
