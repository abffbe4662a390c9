package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/gamification"
	"github.com/qu-learn/qulearn-backend/utils"
)

// GetProfile returns the calling user's public profile with decorated
// achievements.
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := userStore.FindByID(ctx, userID.(primitive.ObjectID))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	name := user.FullName
	if name == "" {
		name = utils.ExtractNameFromEmail(user.Email)
	}

	achievements := make([]gin.H, 0, len(user.Achievements))
	for _, a := range user.Achievements {
		achievements = append(achievements, gin.H{
			"badgeName":  a.BadgeName,
			"achievedAt": a.AchievedAt,
			"iconUrl":    gamification.DefaultBadgeIcon(a.BadgeName),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID.Hex(),
		"email":           user.Email,
		"fullName":        name,
		"role":            user.Role,
		"avatarUrl":       user.AvatarURL,
		"points":          user.Points,
		"learningStreak":  user.LearningStreak,
		"quizzesAnswered": user.QuizzesAnswered,
		"simulationsRun":  user.SimulationsRun,
		"achievements":    achievements,
	})
}
