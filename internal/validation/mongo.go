package validation

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
	"github.com/stonexiaolei/tuzhan-data/pkg/utils"
)

const (
	chainIDField    = "chain_id"
	createTimeField = "create_time"

	defaultQueryTimeout = 30 * time.Second
)

// MongoStore answers collection queries against the transactional
// document store. Timestamps are converted to UTC at this boundary;
// everything above works in the reference timezone.
type MongoStore struct {
	Client       *mongo.Client
	Database     string
	QueryTimeout time.Duration
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		Client:       client,
		Database:     database,
		QueryTimeout: defaultQueryTimeout,
	}
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.Client.Database(s.Database).Collection(name)
}

func (s *MongoStore) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.Client.Ping(pingCtx, readpref.Primary())
}

// CountInWindow counts the chain's records created inside the window,
// bounds inclusive.
func (s *MongoStore) CountInWindow(ctx context.Context, collection string, chainID int64, window models.ValidationWindow) (int64, error) {
	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	filter := bson.M{
		chainIDField: chainID,
		createTimeField: bson.M{
			"$gte": window.Start.UTC(),
			"$lte": window.End.UTC(),
		},
	}
	return s.collection(collection).CountDocuments(queryCtx, filter)
}

func (s *MongoStore) CountTotal(ctx context.Context, collection string, chainID int64) (int64, error) {
	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	return s.collection(collection).CountDocuments(queryCtx, bson.M{chainIDField: chainID})
}

// LatestCreateTime returns the newest create_time for the chain, or nil
// when the chain has no records in the collection at all.
func (s *MongoStore) LatestCreateTime(ctx context.Context, collection string, chainID int64) (*time.Time, error) {
	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: createTimeField, Value: -1}}).
		SetProjection(bson.M{createTimeField: 1})

	var doc bson.M
	err := s.collection(collection).FindOne(queryCtx, bson.M{chainIDField: chainID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw, ok := doc[createTimeField]
	if !ok || raw == nil {
		return nil, nil
	}

	t, err := utils.CoerceTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CountSince counts the chain's records created strictly after the
// given instant. Used by the statistics report.
func (s *MongoStore) CountSince(ctx context.Context, collection string, chainID int64, after time.Time) (int64, error) {
	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	filter := bson.M{
		chainIDField:    chainID,
		createTimeField: bson.M{"$gt": after.UTC()},
	}
	return s.collection(collection).CountDocuments(queryCtx, filter)
}

// EstimatedCount returns the collection's approximate document count
// across all chains, for report logging only.
func (s *MongoStore) EstimatedCount(ctx context.Context, collection string) (int64, error) {
	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	return s.collection(collection).EstimatedDocumentCount(queryCtx)
}
