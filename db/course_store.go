package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qu-learn/qulearn-backend/models"
)

// MongoCourseStore implements the engine's CourseStore over the courses
// collection.
type MongoCourseStore struct {
	collection *mongo.Collection
}

// NewMongoCourseStore returns a store over the connected database.
func NewMongoCourseStore() *MongoCourseStore {
	return &MongoCourseStore{collection: GetCollection("courses")}
}

// FindByID loads one course document, (nil, nil) when absent.
func (s *MongoCourseStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding course %s: %w", id.Hex(), err)
	}
	return &course, nil
}

// FindWithBadges returns every course that defines at least one badge.
func (s *MongoCourseStore) FindWithBadges(ctx context.Context) ([]models.Course, error) {
	filter := bson.M{"gamificationSettings.badges.0": bson.M{"$exists": true}}

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying badge catalog: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decoding badge catalog courses: %w", err)
	}
	return courses, nil
}

// FindBySimulation locates the course whose lessons reference the given
// simulation id, (nil, nil) when none does.
func (s *MongoCourseStore) FindBySimulation(ctx context.Context, simulationType, simulationID string) (*models.Course, error) {
	var field string
	switch simulationType {
	case models.SimulationTypeCircuit:
		field = "modules.lessons.circuitId"
	case models.SimulationTypeNetwork:
		field = "modules.lessons.networkId"
	default:
		return nil, nil
	}

	var course models.Course
	err := s.collection.FindOne(ctx, bson.M{field: simulationID}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding course for simulation %s: %w", simulationID, err)
	}
	return &course, nil
}
