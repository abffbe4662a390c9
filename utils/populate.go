package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/db"
	"github.com/qu-learn/qulearn-backend/models"
)

// PopulateTestData inserts a sample course and students for local
// development. Skips seeding when the courses collection already has
// documents.
func PopulateTestData() {
	ctx := context.Background()
	courses := db.GetCollection("courses")

	count, err := courses.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return
	}

	course := models.Course{
		ID:          primitive.NewObjectID(),
		Title:       "Introduction to Quantum Computing",
		Description: "Qubits, gates, circuits and your first quantum network",
		Modules: []models.Module{
			{
				ID:    "qc-mod-1",
				Title: "Qubits and Superposition",
				Lessons: []models.Lesson{
					{
						ID:    "qc-les-1",
						Title: "What is a Qubit?",
						Quiz: &models.Quiz{
							Title: "Qubit Basics",
							Questions: []models.Question{
								{
									ID:      "q1",
									Text:    "Which states can a single qubit occupy?",
									Type:    "multi-select",
									Options: []string{"|0>", "|1>", "superpositions of |0> and |1>"},
									Answers: []string{"|0>", "|1>", "superpositions of |0> and |1>"},
								},
								{
									ID:      "q2",
									Text:    "Which gate creates an equal superposition from |0>?",
									Type:    "single-choice",
									Options: []string{"X", "H", "Z"},
									Answers: []string{"H"},
								},
							},
						},
					},
					{
						ID:        "qc-les-2",
						Title:     "Building a Bell Pair",
						CircuitID: "sim-bell-pair",
					},
				},
			},
			{
				ID:    "qc-mod-2",
				Title: "Quantum Networks",
				Lessons: []models.Lesson{
					{
						ID:        "qc-les-3",
						Title:     "Entanglement Distribution",
						NetworkID: "sim-repeater-chain",
					},
				},
			},
		},
		GamificationSettings: &models.GamificationSettings{
			PointsPerLesson:     5,
			PointsPerQuiz:       20,
			PointsPerSimulation: 15,
			Badges: []models.Badge{
				{
					Name:        "First Steps",
					Description: "Answer your first quiz",
					Criteria:    models.BadgeCriteria{Type: models.CriteriaQuizzesAnswered, Threshold: 1},
				},
				{
					Name:        "Circuit Builder",
					Description: "Run three simulations",
					Criteria:    models.BadgeCriteria{Type: models.CriteriaSimulationsRun, Threshold: 3},
				},
				{
					Name:        "Course Conqueror",
					Description: "Complete your first course",
					Criteria:    models.BadgeCriteria{Type: models.CriteriaCoursesCompleted, Threshold: 1},
				},
			},
		},
		CreatedAt: time.Now(),
	}

	if _, err := courses.InsertOne(ctx, course); err != nil {
		log.Printf("Seeding course failed: %v", err)
		return
	}

	users := db.GetCollection("users")
	students := []models.User{
		{
			ID:       primitive.NewObjectID(),
			Email:    "alice@example.com",
			FullName: "Alice Johnson",
			Role:     models.RoleStudent,
			Points:   30,
			Enrollments: []models.Enrollment{
				{CourseID: course.ID, EnrolledAt: time.Now()},
			},
			CreatedAt: time.Now(),
		},
		{
			ID:       primitive.NewObjectID(),
			Email:    "bob@example.com",
			FullName: "Bob Smith",
			Role:     models.RoleStudent,
			Points:   10,
			Enrollments: []models.Enrollment{
				{CourseID: course.ID, EnrolledAt: time.Now()},
			},
			CreatedAt: time.Now(),
		},
		{
			ID:        primitive.NewObjectID(),
			Email:     "carol@example.com",
			FullName:  "Carol Davis",
			Role:      models.RoleStudent,
			Points:    50,
			CreatedAt: time.Now(),
		},
	}
	for _, student := range students {
		if _, err := users.InsertOne(ctx, student); err != nil {
			log.Printf("Seeding user %s failed: %v", student.Email, err)
		}
	}
	log.Printf("Seeded %d students and 1 course", len(students))
}
