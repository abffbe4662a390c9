package services

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/gamification"
	"github.com/qu-learn/qulearn-backend/models"
)

// DefaultLeaderboardSize bounds the leaderboard when no limit is given.
const DefaultLeaderboardSize = 10

// DashboardData is the aggregate view behind the student dashboard.
// LearningStreak is the legacy incremental counter; CurrentStreak and
// LongestStreak are recomputed from the full activity history and may
// diverge from it when completions are backdated.
type DashboardData struct {
	Points          int                  `json:"points"`
	LearningStreak  int                  `json:"learningStreak"`
	CurrentStreak   int                  `json:"currentStreak"`
	LongestStreak   int                  `json:"longestStreak"`
	QuizzesAnswered int                  `json:"quizzesAnswered"`
	SimulationsRun  int                  `json:"simulationsRun"`
	Achievements    []AchievementView    `json:"achievements"`
	Enrollments     []EnrollmentProgress `json:"enrollments"`
}

// AchievementView decorates an earned badge with its icon.
type AchievementView struct {
	models.Achievement
	IconURL string `json:"iconUrl"`
}

// EnrollmentProgress summarizes one enrollment for the dashboard.
type EnrollmentProgress struct {
	CourseID           string `json:"courseId"`
	CourseTitle        string `json:"courseTitle"`
	ProgressPercentage int    `json:"progressPercentage"`
	Completed          bool   `json:"completed"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// GetDashboardData assembles the dashboard for one user: points,
// counters, both streak representations and per-course progress.
func (s *GamificationService) GetDashboardData(ctx context.Context, userID primitive.ObjectID) (*DashboardData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", userID.Hex(), err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID.Hex())
	}

	longest, current := gamification.ComputeStreaks(gamification.ActivityDays(user), s.now())

	data := &DashboardData{
		Points:          user.Points,
		LearningStreak:  user.LearningStreak,
		CurrentStreak:   current,
		LongestStreak:   longest,
		QuizzesAnswered: user.QuizzesAnswered,
		SimulationsRun:  user.SimulationsRun,
		Achievements:    make([]AchievementView, 0, len(user.Achievements)),
		Enrollments:     make([]EnrollmentProgress, 0, len(user.Enrollments)),
	}

	for _, a := range user.Achievements {
		data.Achievements = append(data.Achievements, AchievementView{
			Achievement: a,
			IconURL:     gamification.DefaultBadgeIcon(a.BadgeName),
		})
	}

	for _, e := range user.Enrollments {
		entry := EnrollmentProgress{
			CourseID:           e.CourseID.Hex(),
			ProgressPercentage: e.ProgressPercentage,
			Completed:          e.CompletedAt != nil,
		}
		// A deleted course should not take the whole dashboard down.
		course, err := s.courses.FindByID(ctx, e.CourseID)
		if err != nil {
			log.Printf("dashboard: course %s lookup failed: %v", e.CourseID.Hex(), err)
		} else if course != nil {
			entry.CourseTitle = course.Title
		}
		data.Enrollments = append(data.Enrollments, entry)
	}
	return data, nil
}

// GetLeaderboard ranks students by point total, top limit entries.
// Ranks are 1-based; ties keep store order.
func (s *GamificationService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	students, err := s.users.FindTopStudents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(students))
	for i, u := range students {
		entries = append(entries, LeaderboardEntry{
			Rank:      i + 1,
			UserID:    u.ID.Hex(),
			Name:      u.FullName,
			Points:    u.Points,
			AvatarURL: u.AvatarURL,
		})
	}
	return entries, nil
}
