package pendingstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection backing the store.
const Collection = "pending_registrations"

// Store records emails that tried to log in before registering.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// IndexModels lists the indexes the store's queries rely on.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_pending_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_pending_created"),
		},
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Mark records email. Repeated calls leave the original marker untouched.
func (s *Store) Mark(ctx context.Context, email string) error {
	email = normalize.Email(email)
	_, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{"email": email, "created_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mark pending registration: %w", err)
	}
	return nil
}

// Clear removes the marker for email, if any.
func (s *Store) Clear(ctx context.Context, email string) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)}); err != nil {
		return fmt.Errorf("clear pending registration: %w", err)
	}
	return nil
}

// Get returns the marker for email, or nil when there is none.
func (s *Store) Get(ctx context.Context, email string) (*models.PendingRegistration, error) {
	var p models.PendingRegistration
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pending registration: %w", err)
	}
	return &p, nil
}

// Count returns the number of outstanding markers.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// DeleteOlderThan removes markers created before cutoff.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("delete stale pending registrations: %w", err)
	}
	return res.DeletedCount, nil
}
