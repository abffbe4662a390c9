package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles stored on the user document.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User defines a user entity. Gamification counters and enrollments are
// embedded so the whole document is read, mutated in memory and written
// back in one store round trip.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email                string             `bson:"email" json:"email"`
	FullName             string             `bson:"fullName" json:"fullName"`
	Role                 string             `bson:"role" json:"role"`
	AvatarURL            string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Points               int                `bson:"points" json:"points"`
	LearningStreak       int                `bson:"learningStreak" json:"learningStreak"`
	LastActiveDate       *time.Time         `bson:"lastActiveDate,omitempty" json:"lastActiveDate,omitempty"`
	QuizzesAnswered      int                `bson:"quizzesAnswered" json:"quizzesAnswered"`
	SimulationsRun       int                `bson:"simulationsRun" json:"simulationsRun"`
	CompletedSimulations []string           `bson:"completedSimulations,omitempty" json:"completedSimulations,omitempty"`
	Achievements         []Achievement      `bson:"achievements,omitempty" json:"achievements,omitempty"`
	Enrollments          []Enrollment       `bson:"enrollments,omitempty" json:"enrollments,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Achievement records a badge grant. A badge name appears at most once
// per user.
type Achievement struct {
	BadgeName  string    `bson:"badgeName" json:"badgeName"`
	AchievedAt time.Time `bson:"achievedAt" json:"achievedAt"`
}

// Enrollment represents a student's relationship to one course.
type Enrollment struct {
	CourseID           primitive.ObjectID `bson:"courseId" json:"courseId"`
	ProgressPercentage int                `bson:"progressPercentage" json:"progressPercentage"`
	CompletedAt        *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Completions        []ModuleCompletion `bson:"completions,omitempty" json:"completions,omitempty"`
	QuizAttempts       []QuizAttempt      `bson:"quizAttempts,omitempty" json:"quizAttempts,omitempty"`
	ActivityHistory    []ActivityDay      `bson:"activityHistory,omitempty" json:"activityHistory,omitempty"`
	EnrolledAt         time.Time          `bson:"enrolledAt" json:"enrolledAt"`
}

// ModuleCompletion groups completed lessons under their module.
type ModuleCompletion struct {
	ModuleID string             `bson:"moduleId" json:"moduleId"`
	Lessons  []LessonCompletion `bson:"lessonIds" json:"lessonIds"`
}

// LessonCompletion marks a single lesson as done.
type LessonCompletion struct {
	LessonID    string    `bson:"lessonId" json:"lessonId"`
	CompletedAt time.Time `bson:"completedAt" json:"completedAt"`
}

// QuizAttempt is one quiz submission. Resubmission is allowed; every
// attempt is kept.
type QuizAttempt struct {
	QuizID      string            `bson:"quizId" json:"quizId"`
	Answers     []SubmittedAnswer `bson:"answers" json:"answers"`
	Score       int               `bson:"score" json:"score"`
	AttemptedAt time.Time         `bson:"attemptedAt" json:"attemptedAt"`
}

// SubmittedAnswer is the validated shape of one answered question.
type SubmittedAnswer struct {
	QuestionID string   `bson:"questionId" json:"questionId"`
	Answers    []string `bson:"answers" json:"answers"`
}

// ActivityDay is one calendar day (UTC midnight) with at least one
// lesson completion.
type ActivityDay struct {
	Date             time.Time `bson:"date" json:"date"`
	LessonsCompleted int       `bson:"lessonsCompleted" json:"lessonsCompleted"`
}
