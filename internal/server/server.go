package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evelynagreer/survey-vote/backend/internal/database"
	"github.com/evelynagreer/survey-vote/backend/internal/handlers"
	"github.com/evelynagreer/survey-vote/backend/internal/logger"
	"github.com/evelynagreer/survey-vote/backend/internal/metrics"
	"github.com/evelynagreer/survey-vote/backend/internal/middleware"
	"github.com/evelynagreer/survey-vote/backend/internal/repository"
	"github.com/evelynagreer/survey-vote/backend/internal/security"
	"github.com/evelynagreer/survey-vote/backend/internal/service"
)

type Server struct {
	db      *database.Database
	auth    *service.AuthService
	handler *handlers.Handler
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	appLog := logger.NewLogger("survey-vote")

	// Initialize database
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	gormDB := database.New().GetDB()

	accounts := repository.NewAccountRepository(gormDB)
	surveys := repository.NewSurveyRepository(gormDB)
	answers := repository.NewSurveyAnswerRepository(gormDB)

	hasher := security.NewBcryptHasher(0)
	codec := security.NewJWTCodec([]byte(os.Getenv("JWT_SECRET")))

	authService := service.NewAuthService(accounts, hasher, hasher, codec)
	surveyService := service.NewSurveyService(surveys)
	resultService := service.NewResultService(surveys, answers)

	handler := handlers.NewHandler(authService, surveyService, resultService, appLog)

	newServer := &Server{
		db:      db,
		auth:    authService,
		handler: handler,
		metrics: metrics.NewMetrics("api"),
		log:     appLog,
	}

	// Keep the connection pool gauges current.
	go func() {
		for range time.Tick(15 * time.Second) {
			newServer.metrics.CollectDBStats(db.DB)
		}
	}()

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	appLog.WithField("port", port).Info("server starting")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "x-access-token"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.Use(middleware.RequestID(s.log))
	r.Use(s.metrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/signup", s.handler.Auth.SignUp)
		api.POST("/login", s.handler.Auth.Login)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.Auth(s.auth))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.GET("/surveys", s.handler.Survey.GetSurveys)
			protected.PUT("/surveys/:surveyId/results", s.handler.Survey.SaveResult)
			protected.GET("/surveys/:surveyId/results", s.handler.Survey.GetResult)
		}

		// Admin routes (admin role required)
		admin := api.Group("")
		admin.Use(middleware.AuthWithRole(s.auth, "admin"))
		{
			admin.POST("/surveys", s.handler.Survey.CreateSurvey)
		}
	}

	return r
}
