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
)

// CompleteLesson marks a lesson as completed for the calling student.
// Re-completing an already finished lesson is a harmless no-op.
func CompleteLesson(c *gin.Context) {
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

	svc := services.GetGamificationService()
	result := svc.MarkLessonCompleted(user, course, moduleID, lessonID)

	var badges []models.Achievement
	if result.NewlyCompleted && result.CourseCompleted {
		// Completing the course can unlock courses-completed badges.
		badges, err = svc.CheckAndAwardBadges(ctx, user)
		if err != nil {
			log.Printf("Badge check after lesson completion failed: %v", err)
		}
	}

	if result.NewlyCompleted {
		user.UpdatedAt = time.Now()
		if err := userStore.Save(ctx, user); err != nil {
			log.Printf("Failed to save user after lesson completion: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
			return
		}
		broadcastAwards(user, course, result.PointsAwarded, badges, result.CourseCompleted)
	}

	c.JSON(http.StatusOK, result)
}

// GetQuizAttempts returns the full attempt history for one course
// enrollment of the calling user.
func GetQuizAttempts(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := userStore.FindByID(ctx, userID.(primitive.ObjectID))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	for _, e := range user.Enrollments {
		if e.CourseID == courseID {
			c.JSON(http.StatusOK, gin.H{"attempts": e.QuizAttempts})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Enrollment not found"})
}
