package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/gamification"
	"github.com/qu-learn/qulearn-backend/models"
)

var gamificationService *GamificationService

// InitGamificationService wires the engine to its stores.
func InitGamificationService(users UserStore, courses CourseStore) {
	gamificationService = NewGamificationService(users, courses)
}

// GetGamificationService returns the singleton engine instance.
func GetGamificationService() *GamificationService {
	return gamificationService
}

// GamificationService derives points, streaks, badges and progress from
// student activity. It performs no I/O of its own outside the two
// injected stores; mutation methods leave the user document dirty for
// the caller to persist unless noted otherwise.
type GamificationService struct {
	users   UserStore
	courses CourseStore
	now     func() time.Time
}

// NewGamificationService creates an engine instance over the given stores.
func NewGamificationService(users UserStore, courses CourseStore) *GamificationService {
	return &GamificationService{users: users, courses: courses, now: time.Now}
}

// QuizSubmissionResult is what a quiz submission produces end to end.
type QuizSubmissionResult struct {
	gamification.QuizResult
	PointsAwarded      int                  `json:"pointsAwarded"`
	NewAchievements    []models.Achievement `json:"newAchievements,omitempty"`
	LessonCompleted    bool                 `json:"lessonCompleted"`
	CourseCompleted    bool                 `json:"courseCompleted"`
	ProgressPercentage int                  `json:"progressPercentage"`
}

// SubmitQuiz grades a submission, records the attempt, awards points
// and badges, and on a pass marks the lesson complete. The mutated user
// is saved once at the end, per the one-write-per-request contract.
func (s *GamificationService) SubmitQuiz(ctx context.Context, user *models.User, course *models.Course, moduleID, lessonID string, answers []models.SubmittedAnswer) (*QuizSubmissionResult, error) {
	lesson := findLesson(course, moduleID, lessonID)
	if lesson == nil || lesson.Quiz == nil {
		return nil, fmt.Errorf("no quiz found for lesson %s in course %s", lessonID, course.ID.Hex())
	}

	result := &QuizSubmissionResult{
		QuizResult: gamification.CalculateQuizScore(lesson.Quiz.Questions, answers),
	}

	enrollment := findEnrollment(user, course.ID)
	if enrollment == nil {
		return nil, fmt.Errorf("user %s is not enrolled in course %s", user.ID.Hex(), course.ID.Hex())
	}
	enrollment.QuizAttempts = append(enrollment.QuizAttempts, models.QuizAttempt{
		QuizID:      lessonID,
		Answers:     answers,
		Score:       result.Score,
		AttemptedAt: s.now(),
	})
	user.QuizzesAnswered++

	points, badges, err := s.AwardPointsForQuiz(ctx, user, course, result.Score)
	if err != nil {
		return nil, err
	}
	result.PointsAwarded = points
	result.NewAchievements = badges

	if result.IsPassed {
		completion := s.MarkLessonCompleted(user, course, moduleID, lessonID)
		result.LessonCompleted = completion.NewlyCompleted
		result.CourseCompleted = completion.CourseCompleted
		if completion.CourseCompleted {
			// Completing the course may unlock a courses-completed badge.
			more, err := s.CheckAndAwardBadges(ctx, user)
			if err != nil {
				log.Printf("badge check after course completion failed: %v", err)
			}
			result.NewAchievements = append(result.NewAchievements, more...)
		}
	}
	result.ProgressPercentage = enrollment.ProgressPercentage

	user.UpdatedAt = s.now()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user after quiz submission: %w", err)
	}
	return result, nil
}

// AwardPointsForQuiz applies the proportional quiz award and its side
// effects (streak update, badge check) to the in-memory user. A course
// without gamification settings awards nothing. The caller persists.
func (s *GamificationService) AwardPointsForQuiz(ctx context.Context, user *models.User, course *models.Course, score int) (int, []models.Achievement, error) {
	if course.GamificationSettings == nil {
		return 0, nil, nil
	}

	points := gamification.PointsForQuiz(course.GamificationSettings, score)
	user.Points += points
	gamification.UpdateLearningStreak(user, s.now())

	badges, err := s.CheckAndAwardBadges(ctx, user)
	if err != nil {
		return points, nil, err
	}
	return points, badges, nil
}

// AwardPointsForSimulation applies the flat simulation award to the
// in-memory user: points, simulationsRun counter, streak, badge check.
func (s *GamificationService) AwardPointsForSimulation(ctx context.Context, user *models.User, course *models.Course) (int, []models.Achievement, error) {
	if course.GamificationSettings == nil {
		return 0, nil, nil
	}

	points := gamification.PointsForSimulation(course.GamificationSettings)
	user.Points += points
	user.SimulationsRun++
	gamification.UpdateLearningStreak(user, s.now())

	badges, err := s.CheckAndAwardBadges(ctx, user)
	if err != nil {
		return points, nil, err
	}
	return points, badges, nil
}

// TrackSimulationRun grants the one-time-per-user-per-simulation award.
// Every missing precondition (not a student, already run, no owning
// course, course without gamification) is a silent no-op. This method
// saves the user itself since it owns the whole flow.
func (s *GamificationService) TrackSimulationRun(ctx context.Context, userID primitive.ObjectID, simulationID, simulationType string) (int, []models.Achievement, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("loading user %s: %w", userID.Hex(), err)
	}
	if user == nil || user.Role != models.RoleStudent {
		return 0, nil, nil
	}
	for _, done := range user.CompletedSimulations {
		if done == simulationID {
			return 0, nil, nil
		}
	}

	course, err := s.courses.FindBySimulation(ctx, simulationType, simulationID)
	if err != nil {
		return 0, nil, fmt.Errorf("locating course for simulation %s: %w", simulationID, err)
	}
	if course == nil || course.GamificationSettings == nil {
		return 0, nil, nil
	}

	user.CompletedSimulations = append(user.CompletedSimulations, simulationID)
	points, badges, err := s.AwardPointsForSimulation(ctx, user, course)
	if err != nil {
		return 0, nil, err
	}

	user.UpdatedAt = s.now()
	if err := s.users.Save(ctx, user); err != nil {
		return 0, nil, fmt.Errorf("saving user after simulation run: %w", err)
	}
	return points, badges, nil
}

// CheckAndAwardBadges gathers the badge catalog across all courses and
// appends any newly earned achievements to the in-memory user. A badge
// name is granted at most once, ever.
func (s *GamificationService) CheckAndAwardBadges(ctx context.Context, user *models.User) ([]models.Achievement, error) {
	coursesWithBadges, err := s.courses.FindWithBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading badge catalog: %w", err)
	}

	var catalog []models.Badge
	for _, c := range coursesWithBadges {
		if c.GamificationSettings == nil {
			continue
		}
		catalog = append(catalog, c.GamificationSettings.Badges...)
	}

	earned := gamification.EvaluateBadges(
		catalog,
		gamification.UserBadgeCounters(user),
		gamification.OwnedBadges(user),
		s.now(),
	)
	user.Achievements = append(user.Achievements, earned...)
	return earned, nil
}

// LessonCompletionResult reports what a completion attempt changed.
type LessonCompletionResult struct {
	NewlyCompleted     bool `json:"newlyCompleted"`
	CourseCompleted    bool `json:"courseCompleted"`
	PointsAwarded      int  `json:"pointsAwarded"`
	ProgressPercentage int  `json:"progressPercentage"`
}

// MarkLessonCompleted records a lesson completion on the user's
// enrollment: idempotent on re-completion, keeps the per-day activity
// history, recomputes progress and latches completedAt the first time
// progress reaches 100. The caller persists the user.
func (s *GamificationService) MarkLessonCompleted(user *models.User, course *models.Course, moduleID, lessonID string) LessonCompletionResult {
	var result LessonCompletionResult

	enrollment := findEnrollment(user, course.ID)
	if enrollment == nil {
		return result
	}
	lesson := findLesson(course, moduleID, lessonID)
	if lesson == nil {
		return result
	}
	result.ProgressPercentage = enrollment.ProgressPercentage

	completed := gamification.CompletedLessonIDs(enrollment)
	if _, done := completed[lessonID]; done {
		return result
	}

	now := s.now()
	appendCompletion(enrollment, moduleID, lessonID, now)
	recordActivity(enrollment, now)
	completed[lessonID] = struct{}{}

	if course.GamificationSettings != nil {
		result.PointsAwarded = gamification.PointsForLesson(course.GamificationSettings)
		user.Points += result.PointsAwarded
	}

	enrollment.ProgressPercentage = gamification.CalculateCourseProgress(course, completed)
	result.ProgressPercentage = enrollment.ProgressPercentage
	result.NewlyCompleted = true

	if enrollment.ProgressPercentage >= 100 && enrollment.CompletedAt == nil {
		enrollment.CompletedAt = &now
		result.CourseCompleted = true
	}
	return result
}

// appendCompletion adds the lesson under its module's completion record,
// creating the module entry on first use.
func appendCompletion(enrollment *models.Enrollment, moduleID, lessonID string, now time.Time) {
	lc := models.LessonCompletion{LessonID: lessonID, CompletedAt: now}
	for i := range enrollment.Completions {
		if enrollment.Completions[i].ModuleID == moduleID {
			enrollment.Completions[i].Lessons = append(enrollment.Completions[i].Lessons, lc)
			return
		}
	}
	enrollment.Completions = append(enrollment.Completions, models.ModuleCompletion{
		ModuleID: moduleID,
		Lessons:  []models.LessonCompletion{lc},
	})
}

// recordActivity bumps today's activity entry, appending one the first
// time a lesson is completed on a given calendar day.
func recordActivity(enrollment *models.Enrollment, now time.Time) {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	for i := range enrollment.ActivityHistory {
		if enrollment.ActivityHistory[i].Date.Equal(today) {
			enrollment.ActivityHistory[i].LessonsCompleted++
			return
		}
	}
	enrollment.ActivityHistory = append(enrollment.ActivityHistory, models.ActivityDay{
		Date:             today,
		LessonsCompleted: 1,
	})
}

func findEnrollment(user *models.User, courseID primitive.ObjectID) *models.Enrollment {
	for i := range user.Enrollments {
		if user.Enrollments[i].CourseID == courseID {
			return &user.Enrollments[i]
		}
	}
	return nil
}

func findLesson(course *models.Course, moduleID, lessonID string) *models.Lesson {
	for i := range course.Modules {
		m := &course.Modules[i]
		if moduleID != "" && m.ID != moduleID {
			continue
		}
		for j := range m.Lessons {
			if m.Lessons[j].ID == lessonID {
				return &m.Lessons[j]
			}
		}
	}
	return nil
}
