package main

import (
	"fmt"
	"log"
	"os"

	"backend/config"
	"backend/handler"
	"backend/middleware"
	"backend/repository"
	"backend/services"
	"backend/usecase"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"CHALLENGE_COLLECTION",
		"TEAMS_COLLECTION",
		"SESSIONS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()

	// Redis is optional: without it the challenge cache and token
	// blacklist stay disabled and every read goes to Mongo.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		challengeCfg := config.LoadChallengeConfig()
		cache, err := services.NewChallengeCache(redisURL, challengeCfg.CacheTTL)
		if err != nil {
			log.Printf("Warning: challenge cache disabled: %v", err)
		} else {
			services.GlobalChallengeCache = cache
		}

		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Printf("Warning: token blacklist disabled: %v", err)
		} else {
			services.TokenBlacklist = blacklist
		}
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	challengeRepo := repository.GetChallengeRepo(utils.MongoClient)
	teamRepo := repository.GetTeamRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)

	challengeService := usecase.NewChallengeService(challengeRepo, config.LoadChallengeConfig())
	leaderboardService := &usecase.LeaderboardService{Challenge: challengeService}

	challengeHandler := handler.NewChallengeHandler(challengeService)
	teamHandler := handler.NewTeamHandler(teamRepo, userRepo, leaderboardService)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
		}

		challenge := protected.Group("/challenge")
		{
			challenge.GET("/", challengeHandler.GetChallenge)
			challenge.POST("/", challengeHandler.ReplaceChallenge)
			challenge.GET("/today", challengeHandler.GetToday)
			challenge.GET("/summary", challengeHandler.GetSummary)
			challenge.PATCH("/day/:date", challengeHandler.UpdateDay)
			challenge.PUT("/supplements", challengeHandler.UpdateSupplements)
			challenge.PUT("/settings", challengeHandler.UpdateSettings)
		}

		teams := protected.Group("/teams")
		{
			teams.POST("/", teamHandler.CreateTeam)
			teams.POST("/join", teamHandler.JoinTeam)
			teams.GET("/:code", teamHandler.GetTeam)
		}
	}

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
