package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qu-learn/qulearn-backend/controllers"
)

func GetProfileRouteHandler(c *gin.Context) {
	controllers.GetProfile(c)
}

func GetDashboardRouteHandler(c *gin.Context) {
	controllers.GetDashboard(c)
}
