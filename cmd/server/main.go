package main

import (
	"log"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/qu-learn/qulearn-backend/config"
	"github.com/qu-learn/qulearn-backend/controllers"
	"github.com/qu-learn/qulearn-backend/db"
	"github.com/qu-learn/qulearn-backend/middlewares"
	"github.com/qu-learn/qulearn-backend/models"
	"github.com/qu-learn/qulearn-backend/routes"
	"github.com/qu-learn/qulearn-backend/services"
	"github.com/qu-learn/qulearn-backend/utils"
	"github.com/qu-learn/qulearn-backend/websocket"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	controllers.InitControllers()
	services.InitGamificationService(db.NewMongoUserStore(), db.NewMongoCourseStore())

	if cfg.Server.SeedData {
		utils.PopulateTestData()
	}

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg.JWT.Secret))
	{
		auth.GET("/user/profile", routes.GetProfileRouteHandler)
		auth.GET("/user/dashboard", routes.GetDashboardRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		auth.POST("/courses/:courseId/modules/:moduleId/lessons/:lessonId/quiz", routes.SubmitQuizRouteHandler)
		auth.POST("/courses/:courseId/modules/:moduleId/lessons/:lessonId/complete", routes.CompleteLessonRouteHandler)
		auth.GET("/courses/:courseId/quiz-attempts", routes.GetQuizAttemptsRouteHandler)

		auth.POST("/simulations/run", middlewares.RequireRole(models.RoleStudent), routes.TrackSimulationRunRouteHandler)

		// WebSocket feed for live gamification updates
		auth.GET("/ws/gamification", websocket.GamificationWebSocketHandler(cfg.JWT.Secret))
	}

	return router
}
