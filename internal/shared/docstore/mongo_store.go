package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// storedDocument is the Mongo representation of one named JSON document.
// Content keeps the JSON text verbatim so arbitrary mock payloads survive unchanged.
type storedDocument struct {
	Name      string    `bson:"_id"`
	Content   string    `bson:"content"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps each document as a single record in a Mongo collection.
type MongoStore struct {
	KeyedMutex
	client     *mongo.Client
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoStore returns a store over database.collection.
func NewMongoStore(client *mongo.Client, database, collection string, log logger.Logger) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     log.WithComponent("docstore.mongo"),
	}
}

// ConnectMongo dials uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureExists inserts def under name unless a record is already there.
func (s *MongoStore) EnsureExists(ctx context.Context, name string, def interface{}) error {
	content, err := json.Marshal(def)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to serialize %s", name)).WithCause(err)
	}

	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$setOnInsert": bson.M{"content": string(content), "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to initialize %s", name)).WithCause(err)
	}
	if res.UpsertedCount > 0 {
		s.logger.Infof("Initialized %s with default content", name)
	}
	return nil
}

// Read decodes the stored JSON text into out.
func (s *MongoStore) Read(ctx context.Context, name string, out interface{}) error {
	var doc storedDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewStorageError(fmt.Sprintf("failed to read %s", name)).WithCause(apperrors.ErrDocumentMissing)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to read %s", name)).WithCause(err)
	}
	if err := json.Unmarshal([]byte(doc.Content), out); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to parse %s", name)).WithCause(err)
	}
	return nil
}

// Write replaces the stored JSON text for name.
func (s *MongoStore) Write(ctx context.Context, name string, value interface{}) error {
	content, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to serialize %s", name)).WithCause(err)
	}

	doc := storedDocument{Name: name, Content: string(content), UpdatedAt: time.Now().UTC()}
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true)); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", name)).WithCause(err)
	}
	return nil
}

// Ping checks the Mongo connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return apperrors.NewStorageError("MongoDB unavailable").WithCause(err)
	}
	return nil
}

// Close disconnects the Mongo client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
