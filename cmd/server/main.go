package main

import (
	"net/http"
	"time"

	"interview-engine-backend/internal/config"
	"interview-engine-backend/internal/database"
	"interview-engine-backend/internal/handlers"
	"interview-engine-backend/internal/llm"
	"interview-engine-backend/internal/logger"
	"interview-engine-backend/internal/services"
	"interview-engine-backend/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Adaptive Interview Engine API
// @version         1.0
// @description     Adaptive interview sessions with generative questions, answer evaluation and final reports
// @host            localhost:8080
// @BasePath        /

func main() {
	cfg := config.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var provider llm.Provider
	if cfg.OpenAIAPIKey != "" {
		provider, err = llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIAPIURL,
			Model:   cfg.OpenAIModel,
			Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		})
		if err != nil {
			log.Fatal("failed to configure generative provider", zap.Error(err))
		}
	} else {
		log.Warn("no API key configured, running on fallback content only")
		provider = llm.NewDisabledProvider()
	}

	var archiveService *services.ArchiveService
	if cfg.ArchiveEnabled {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		archiveService = services.NewArchiveService(db)
		log.Info("interview archive enabled")
	}

	bank, err := services.NewQuestionBank()
	if err != nil {
		log.Fatal("failed to load question bank", zap.Error(err))
	}

	hub := ws.NewHub(log)
	generator := services.NewQuestionGenerator(provider, bank, log)
	sequencer := services.NewSequencer(generator)
	evaluator := services.NewEvaluator(provider, log)
	scoring := services.NewScoringService()
	sessionService := services.NewSessionService(sequencer, evaluator, scoring, archiveService, log)
	jobPostingService := services.NewJobPostingService(provider, log)

	interviewHandler := handlers.NewInterviewHandler(sessionService, hub)
	jobPostingHandler := handlers.NewJobPostingHandler(jobPostingService)
	wsHandler := handlers.NewWSHandler(hub, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: "internal server error"})
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "unknown action"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/interviews", interviewHandler.Start)
		api.GET("/interviews/:id", interviewHandler.Get)
		api.POST("/interviews/:id/question", interviewHandler.NextQuestion)
		api.POST("/interviews/:id/answer", interviewHandler.SubmitAnswer)
		api.POST("/interviews/:id/pause", interviewHandler.Pause)
		api.POST("/interviews/:id/resume", interviewHandler.Resume)
		api.GET("/interviews/:id/results", interviewHandler.Results)

		api.POST("/job-postings/parse", jobPostingHandler.Parse)

		if archiveService != nil {
			archiveHandler := handlers.NewArchiveHandler(archiveService)
			api.GET("/archives", archiveHandler.List)
			api.GET("/archives/:id", archiveHandler.Get)
		}
	}

	r.GET("/ws/interviews/:id", wsHandler.HandleWebSocket)

	log.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
