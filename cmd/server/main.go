package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/database"
	"github.com/dnflvus-wq/engTest-sub000/internal/handler"
	"github.com/dnflvus-wq/engTest-sub000/internal/logger"
	"github.com/dnflvus-wq/engTest-sub000/internal/ocr"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
	"github.com/dnflvus-wq/engTest-sub000/internal/router"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
	"github.com/dnflvus-wq/engTest-sub000/internal/validator"
	"github.com/dnflvus-wq/engTest-sub000/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting engTest Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	roundRepo := repository.NewRoundRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	vocabularyRepo := repository.NewVocabularyRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	answerRepo := repository.NewExamAnswerRepository(pool)
	achievementRepo := repository.NewAchievementRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)
	counterRepo := repository.NewCounterRepository(pool)
	logRepo := repository.NewActivityLogRepository(pool)
	chapterRepo := repository.NewChapterRepository(pool)
	metricsRepo := repository.NewMetricsRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	eventQueue := service.NewEventQueue(rdb)
	userService := service.NewUserService(userRepo, examRepo, authService, eventQueue, log)
	roundService := service.NewRoundService(roundRepo, questionRepo, rdb, log)
	questionService := service.NewQuestionService(questionRepo, roundService, log)
	vocabularyService := service.NewVocabularyService(vocabularyRepo, roundService, log)
	materialService := service.NewMaterialService(materialRepo, roundService, cfg.UploadDir, log)
	examService := service.NewExamService(examRepo, answerRepo, questionRepo, roundRepo, userRepo, eventQueue, rdb, log)

	var visionProvider ocr.Provider = ocr.Disabled{}
	if cfg.VisionAPIKey != "" {
		visionProvider = ocr.NewGeminiProvider(cfg.VisionAPIKey, cfg.VisionModel, cfg.VisionEndpoint, cfg.VisionTimeout)
	}
	ocrService := service.NewOCRService(visionProvider, examService, questionRepo, cfg.UploadDir, log)
	log.Info().Str("provider", visionProvider.Name()).Msg("Answer-sheet OCR provider selected")

	checkService := service.NewAchievementCheckService(achievementRepo, badgeRepo, counterRepo, logRepo, metricsRepo, rdb)
	achievementService := service.NewAchievementService(achievementRepo, badgeRepo)
	badgeService := service.NewBadgeService(badgeRepo)
	progressService := service.NewProgressService(chapterRepo)
	logService := service.NewActivityLogService(logRepo, eventQueue)
	actionService := service.NewActionService(counterRepo, eventQueue)
	statsService := service.NewStatsService(examRepo, roundRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		User:        handler.NewUserHandler(userService),
		Round:       handler.NewRoundHandler(roundService, examService, statsService, materialService),
		Question:    handler.NewQuestionHandler(questionService),
		Vocabulary:  handler.NewVocabularyHandler(vocabularyService),
		Material:    handler.NewMaterialHandler(materialService, cfg.MaxUploadBytes),
		Exam:        handler.NewExamHandler(examService, ocrService, cfg.MaxUploadBytes),
		Achievement: handler.NewAchievementHandler(achievementService),
		Badge:       handler.NewBadgeHandler(badgeService),
		Action:      handler.NewActionHandler(actionService),
		Progress:    handler.NewProgressHandler(progressService),
		Stats:       handler.NewStatsHandler(statsService),
		Log:         handler.NewLogHandler(logService),
		WS:          handler.NewWSHandler(rdb, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	achievementWorker := worker.NewAchievementWorker(checkService, rdb)
	logWorker := worker.NewActivityLogWorker(logRepo, rdb, cfg.LogRetentionDays)

	go achievementWorker.Start(workerCtx)
	go logWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load active rounds into Redis BEFORE accepting traffic so the
	// first wave of exam starts never races the lazy loader.
	if err := roundService.PrewarmActiveRounds(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}
