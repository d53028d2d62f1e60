package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// MongoStore keeps the seen-set as one document per key.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	key        string
}

type seenDocument struct {
	Key       string    `bson:"_id"`
	IDs       []string  `bson:"ids"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and addresses database.collection. The
// driver dials in the background, so an unreachable server surfaces on the
// first Load or Save.
func NewMongoStore(ctx context.Context, uri, database, collection, key string) (*MongoStore, error) {
	clientOptions := options.Client().ApplyURI(uri)
	clientOptions.SetMaxPoolSize(2)
	clientOptions.SetTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		key:        key,
	}, nil
}

// Name implements SeenStore.
func (s *MongoStore) Name() string { return "mongo" }

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Load reads the document. A missing document is an empty set.
func (s *MongoStore) Load(ctx context.Context) (domain.SeenSet, error) {
	var doc seenDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.NewSeenSet(), nil
		}
		return nil, fmt.Errorf("finding seen-set document: %w", err)
	}
	return domain.NewSeenSet(doc.IDs...), nil
}

// Save replaces the document, creating it when absent.
func (s *MongoStore) Save(ctx context.Context, ids domain.SeenSet) error {
	doc := seenDocument{
		Key:       s.key,
		IDs:       ids.IDs(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": s.key},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replacing seen-set document: %w", err)
	}
	return nil
}
