package gamification

import (
	"math"

	"github.com/qu-learn/qulearn-backend/models"
)

// PointsForQuiz converts a quiz score into a point award proportional
// to the score: round(pointsPerQuiz * score / 100). A course without
// gamification settings awards nothing.
func PointsForQuiz(settings *models.GamificationSettings, score int) int {
	if settings == nil {
		return 0
	}
	return int(math.Round(float64(settings.PointsPerQuiz) * float64(score) / 100))
}

// PointsForSimulation is the flat per-simulation award.
func PointsForSimulation(settings *models.GamificationSettings) int {
	if settings == nil {
		return 0
	}
	return settings.PointsPerSimulation
}

// PointsForLesson is the flat per-lesson award.
func PointsForLesson(settings *models.GamificationSettings) int {
	if settings == nil {
		return 0
	}
	return settings.PointsPerLesson
}
