package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/models"
	"github.com/qu-learn/qulearn-backend/services"
	"github.com/qu-learn/qulearn-backend/websocket"
)

// SubmitQuizRequest carries the submitted answers for one lesson quiz.
type SubmitQuizRequest struct {
	Answers []models.SubmittedAnswer `json:"answers" binding:"required"`
}

// TrackSimulationRequest reports a finished simulation run.
type TrackSimulationRequest struct {
	SimulationID   string `json:"simulationId" binding:"required"`
	SimulationType string `json:"simulationType" binding:"required,oneof=circuit network"`
}

// SubmitQuiz grades a quiz submission and applies the full award chain:
// attempt history, points, streak, badges, and lesson completion on a
// pass.
func SubmitQuiz(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	courseID, err := primitive.ObjectIDFromHex(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}
	moduleID := c.Param("moduleId")
	lessonID := c.Param("lessonId")

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := userStore.FindByID(ctx, userID.(primitive.ObjectID))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	course, err := courseStore.FindByID(ctx, courseID)
	if err != nil || course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	result, err := services.GetGamificationService().SubmitQuiz(ctx, user, course, moduleID, lessonID, req.Answers)
	if err != nil {
		log.Printf("Quiz submission failed: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found or user not enrolled"})
		return
	}

	broadcastAwards(user, course, result.PointsAwarded, result.NewAchievements, result.CourseCompleted)

	c.JSON(http.StatusOK, result)
}

// TrackSimulationRun records a circuit or network simulation run and
// grants the one-time point award when it qualifies.
func TrackSimulationRun(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req TrackSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	points, badges, err := services.GetGamificationService().TrackSimulationRun(
		ctx, userID.(primitive.ObjectID), req.SimulationID, req.SimulationType)
	if err != nil {
		log.Printf("Simulation tracking failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track simulation run"})
		return
	}

	if points > 0 {
		user, _ := userStore.FindByID(ctx, userID.(primitive.ObjectID))
		if user != nil {
			broadcastAwards(user, nil, points, badges, false)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"pointsAwarded":   points,
		"newAchievements": badges,
	})
}

// broadcastAwards pushes the gamification side effects of a request out
// to connected dashboard clients.
func broadcastAwards(user *models.User, course *models.Course, points int, badges []models.Achievement, courseCompleted bool) {
	now := time.Now()

	if points > 0 {
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:      "points_awarded",
			UserID:    user.ID.Hex(),
			Points:    points,
			NewPoints: user.Points,
			Streak:    user.LearningStreak,
			Timestamp: now,
		})
	}
	for _, badge := range badges {
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:      "badge_awarded",
			UserID:    user.ID.Hex(),
			BadgeName: badge.BadgeName,
			Timestamp: now,
		})
	}
	if courseCompleted && course != nil {
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:      "course_completed",
			UserID:    user.ID.Hex(),
			CourseID:  course.ID.Hex(),
			Timestamp: now,
		})
	}
}
