package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/models"
)

// UserStore is the engine's contract with user persistence: load one
// document, mutate it in memory, write it back whole. Concurrent
// writers for the same user are last-writer-wins by design.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindTopStudents returns users with the student role sorted by
	// points descending, at most limit entries.
	FindTopStudents(ctx context.Context, limit int) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// CourseStore is the engine's read-mostly contract with course data.
type CourseStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	// FindWithBadges returns every course defining at least one badge.
	FindWithBadges(ctx context.Context) ([]models.Course, error)
	// FindBySimulation returns the course whose lessons reference the
	// given circuit or network simulation id, or nil when none does.
	FindBySimulation(ctx context.Context, simulationType, simulationID string) (*models.Course, error)
}
