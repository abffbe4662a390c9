package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge criteria types understood by the engine. Anything else is
// skipped during evaluation, never granted.
const (
	CriteriaCoursesCompleted = "courses-completed"
	CriteriaQuizzesAnswered  = "quizzes-answered"
	CriteriaSimulationsRun   = "simulations-run"
)

// Simulation types a lesson can reference.
const (
	SimulationTypeCircuit = "circuit"
	SimulationTypeNetwork = "network"
)

// Course is a published course document: modules with lessons, plus
// optional gamification settings. Absent settings mean gamification
// simply does not apply to the course.
type Course struct {
	ID                   primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	Title                string                `bson:"title" json:"title"`
	Description          string                `bson:"description" json:"description"`
	Modules              []Module              `bson:"modules" json:"modules"`
	GamificationSettings *GamificationSettings `bson:"gamificationSettings,omitempty" json:"gamificationSettings,omitempty"`
	CreatedAt            time.Time             `bson:"createdAt" json:"createdAt"`
}

// Module groups lessons within a course.
type Module struct {
	ID      string   `bson:"id" json:"id"`
	Title   string   `bson:"title" json:"title"`
	Lessons []Lesson `bson:"lessons" json:"lessons"`
}

// Lesson is a single unit of content. It may embed a quiz and may
// reference a circuit or network simulation.
type Lesson struct {
	ID        string `bson:"id" json:"id"`
	Title     string `bson:"title" json:"title"`
	Content   string `bson:"content,omitempty" json:"content,omitempty"`
	Quiz      *Quiz  `bson:"quiz,omitempty" json:"quiz,omitempty"`
	CircuitID string `bson:"circuitId,omitempty" json:"circuitId,omitempty"`
	NetworkID string `bson:"networkId,omitempty" json:"networkId,omitempty"`
}

// Quiz holds the questions for a lesson.
type Quiz struct {
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Questions   []Question `bson:"questions" json:"questions"`
}

// Question carries its answer key. Answers is a set; order is not
// significant.
type Question struct {
	ID      string   `bson:"id" json:"id"`
	Text    string   `bson:"text" json:"text"`
	Type    string   `bson:"type" json:"type"` // "single-choice", "multi-select"
	Options []string `bson:"options" json:"options"`
	Answers []string `bson:"answers" json:"answers"`
}

// GamificationSettings configures point values and badges per course.
type GamificationSettings struct {
	PointsPerLesson     int     `bson:"pointsPerLesson" json:"pointsPerLesson"`
	PointsPerQuiz       int     `bson:"pointsPerQuiz" json:"pointsPerQuiz"`
	PointsPerSimulation int     `bson:"pointsPerSimulation" json:"pointsPerSimulation"`
	Badges              []Badge `bson:"badges,omitempty" json:"badges,omitempty"`
}

// Badge is a course-defined achievement. Name is the unique key across
// the whole catalog.
type Badge struct {
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	IconURL     string        `bson:"iconUrl,omitempty" json:"iconUrl,omitempty"`
	Criteria    BadgeCriteria `bson:"criteria" json:"criteria"`
}

// BadgeCriteria gates a one-time grant: counter of Type must reach
// Threshold.
type BadgeCriteria struct {
	Type      string `bson:"type" json:"type"`
	Threshold int    `bson:"threshold" json:"threshold"`
}
