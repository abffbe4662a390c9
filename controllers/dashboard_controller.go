package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qu-learn/qulearn-backend/services"
)

// GetDashboard returns the calling user's gamification dashboard:
// points, both streak views, counters, achievements and per-course
// progress.
func GetDashboard(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := services.GetGamificationService().GetDashboardData(ctx, userID.(primitive.ObjectID))
	if err != nil {
		log.Printf("Failed to build dashboard: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, data)
}
