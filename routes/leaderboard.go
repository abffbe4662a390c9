package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qu-learn/qulearn-backend/controllers"
)

func GetLeaderboardRouteHandler(c *gin.Context) {
	controllers.GetLeaderboard(c)
}
