package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qu-learn/qulearn-backend/models"
)

// MongoUserStore implements the engine's UserStore over the users
// collection.
type MongoUserStore struct {
	collection *mongo.Collection
}

// NewMongoUserStore returns a store over the connected database.
func NewMongoUserStore() *MongoUserStore {
	return &MongoUserStore{collection: GetCollection("users")}
}

// FindByID loads one user document. A missing user is (nil, nil); the
// engine treats it as a no-op rather than an error.
func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", id.Hex(), err)
	}
	return &user, nil
}

// FindByEmail loads one user by email, (nil, nil) when absent.
func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", email, err)
	}
	return &user, nil
}

// FindTopStudents returns students sorted by points descending, at most
// limit entries. Ties keep the store's natural order.
func (s *MongoUserStore) FindTopStudents(ctx context.Context, limit int) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.M{"role": models.RoleStudent}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding leaderboard users: %w", err)
	}
	return users, nil
}

// Save writes the whole user document back, creating it if needed.
func (s *MongoUserStore) Save(ctx context.Context, user *models.User) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts); err != nil {
		return fmt.Errorf("saving user %s: %w", user.ID.Hex(), err)
	}
	return nil
}
