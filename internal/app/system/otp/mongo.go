package otp

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection holds pending codes for the mongo store.
const MongoCollection = "otp_codes"

// MongoStore keeps codes in the otp_codes collection. A TTL index on
// expires_at removes stale records; the Manager still checks expiry because
// the TTL monitor runs only about once a minute.
type MongoStore struct {
	c *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection(MongoCollection)}
}

type mongoRecord struct {
	ID      string  `bson:"_id"`
	Purpose Purpose `bson:"purpose"`
	Email   string  `bson:"email"`
	Record  `bson:",inline"`
}

// IndexModels lists the TTL index that expires stale codes.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_otp_expires_ttl").SetExpireAfterSeconds(0),
		},
	}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

func (s *MongoStore) Put(ctx context.Context, key Key, rec Record) error {
	doc := mongoRecord{ID: key.String(), Purpose: key.Purpose, Email: key.Email, Record: rec}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, key Key) (Record, error) {
	var doc mongoRecord
	err := s.c.FindOne(ctx, bson.M{"_id": key.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("otp get: %w", err)
	}
	return doc.Record, nil
}

func (s *MongoStore) Delete(ctx context.Context, key Key) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": key.String()}); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}
