package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/handler"
	"github.com/dnflvus-wq/engTest-sub000/internal/middleware"
	"github.com/dnflvus-wq/engTest-sub000/internal/response"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	User        *handler.UserHandler
	Round       *handler.RoundHandler
	Question    *handler.QuestionHandler
	Vocabulary  *handler.VocabularyHandler
	Material    *handler.MaterialHandler
	Exam        *handler.ExamHandler
	Achievement *handler.AchievementHandler
	Badge       *handler.BadgeHandler
	Action      *handler.ActionHandler
	Progress    *handler.ProgressHandler
	Stats       *handler.StatsHandler
	Log         *handler.LogHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// A configured origin list restricts access; an empty one allows all
	// so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Archived answer sheet photos never change once written.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Public (Rate Limited) ─────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(30, time.Minute)
	public := router.Group("/api")
	public.Use(loginLimiter.Middleware())
	{
		public.POST("/users/login", handlers.User.Login)
	}

	// ─── Authenticated API ─────────────────────────────────────────────
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(authService))
	{
		// Profiles
		api.GET("/users", handlers.User.GetAll)
		api.GET("/users/:id", handlers.User.Get)
		api.GET("/users/:id/stats", handlers.User.Stats)
		api.GET("/users/:id/exams", handlers.Exam.History)
		api.GET("/users/:id/badges", handlers.Badge.Equipped)

		// Rounds
		api.GET("/rounds", handlers.Round.GetAll)
		api.POST("/rounds", handlers.Round.Create)
		api.GET("/rounds/:id", handlers.Round.Get)
		api.PUT("/rounds/:id", handlers.Round.Update)
		api.PATCH("/rounds/:id/status", handlers.Round.UpdateStatus)
		api.DELETE("/rounds/:id", handlers.Round.Delete)
		api.GET("/rounds/:id/previous", handlers.Round.Previous)
		api.GET("/rounds/:id/participants", handlers.Round.Participants)
		api.GET("/rounds/:id/stats", handlers.Round.Stats)
		api.GET("/rounds/:id/ranking", handlers.Round.Ranking)
		api.POST("/rounds/:id/review", handlers.Round.GenerateReview)
		api.DELETE("/rounds/:id/review", handlers.Round.DeleteReview)
		api.PUT("/rounds/:id/chapters", handlers.Progress.AssignChapters)

		// Questions and vocabulary
		api.GET("/rounds/:id/questions", handlers.Question.GetByRound)
		api.POST("/rounds/:id/questions", handlers.Question.Create)
		api.PUT("/questions/:id", handlers.Question.Update)
		api.DELETE("/questions/:id", handlers.Question.Delete)
		api.GET("/rounds/:id/vocabulary", handlers.Vocabulary.GetByRound)
		api.POST("/rounds/:id/vocabulary", handlers.Vocabulary.Add)
		api.DELETE("/vocabulary/:id", handlers.Vocabulary.Delete)

		// Study materials
		api.GET("/rounds/:id/materials", handlers.Material.GetByRound)
		api.POST("/rounds/:id/materials/youtube", handlers.Material.AddYouTube)
		api.POST("/rounds/:id/materials/file", handlers.Material.AddFile)
		api.DELETE("/materials/:id", handlers.Material.Delete)

		// Exams
		api.POST("/exams/start", handlers.Exam.Start)
		api.GET("/exams", handlers.Exam.GetAll)
		api.GET("/exams/:id", handlers.Exam.Get)
		api.PUT("/exams/:id/answers/:questionId", handlers.Exam.SaveAnswer)
		api.POST("/exams/:id/submit", handlers.Exam.Submit)
		api.POST("/exams/:id/submit-offline", handlers.Exam.SubmitOffline)
		api.POST("/exams/:id/ocr", handlers.Exam.ExtractAnswers)
		api.GET("/exams/:id/answers", handlers.Exam.Answers)
		api.GET("/exams/:id/wrong-answers", handlers.Exam.WrongAnswers)
		api.DELETE("/exams/:id", handlers.Exam.Delete)

		// Achievements and badges
		api.GET("/achievements", handlers.Achievement.Catalog)
		api.GET("/achievements/me", handlers.Achievement.Mine)
		api.GET("/achievements/me/summary", handlers.Achievement.Summary)
		api.GET("/achievements/me/unread", handlers.Achievement.Unread)
		api.POST("/achievements/me/read", handlers.Achievement.MarkRead)
		api.GET("/badges", handlers.Badge.Catalog)
		api.GET("/badges/me", handlers.Badge.Mine)
		api.POST("/badges/equip", handlers.Badge.Equip)
		api.POST("/badges/unequip", handlers.Badge.Unequip)

		// Study tracking and progress
		api.POST("/actions/track", handlers.Action.Track)
		api.GET("/actions/me", handlers.Action.Counters)
		api.GET("/progress/chapters", handlers.Progress.Chapters)
		api.GET("/progress/me", handlers.Progress.Mine)

		// Analytics and logs
		api.GET("/stats/dashboard", handlers.Stats.Dashboard)
		api.POST("/logs", handlers.Log.Record)
		api.GET("/logs", handlers.Log.GetAll)
		api.GET("/logs/actions", handlers.Log.Actions)
		api.DELETE("/logs", handlers.Log.Cleanup)
	}

	// ─── WebSocket ─────────────────────────────────────────────────────
	ws := router.Group("/ws")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/achievements", handlers.WS.AchievementStream)
	}

	return router
}
