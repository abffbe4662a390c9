package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qu-learn/qulearn-backend/controllers"
)

func SubmitQuizRouteHandler(c *gin.Context) {
	controllers.SubmitQuiz(c)
}

func TrackSimulationRunRouteHandler(c *gin.Context) {
	controllers.TrackSimulationRun(c)
}

func CompleteLessonRouteHandler(c *gin.Context) {
	controllers.CompleteLesson(c)
}

func GetQuizAttemptsRouteHandler(c *gin.Context) {
	controllers.GetQuizAttempts(c)
}
