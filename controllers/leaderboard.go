package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qu-learn/qulearn-backend/services"
)

// GetLeaderboard returns the top students ranked by point total.
// Default 10, capped at 100 via the limit query parameter.
func GetLeaderboard(c *gin.Context) {
	limit := services.DefaultLeaderboardSize
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := parseInt(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := services.GetGamificationService().GetLeaderboard(ctx, limit)
	if err != nil {
		log.Printf("Failed to fetch leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"total":       len(entries),
	})
}
