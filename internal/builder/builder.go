package builder

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/careerforge/interview-backend/internal/api"
	intakeapi "github.com/careerforge/interview-backend/internal/api/intake"
	interviewapi "github.com/careerforge/interview-backend/internal/api/interview"
	"github.com/careerforge/interview-backend/internal/config"
	"github.com/careerforge/interview-backend/internal/integration/asr"
	"github.com/careerforge/interview-backend/internal/integration/callback"
	"github.com/careerforge/interview-backend/internal/integration/llm"
	"github.com/careerforge/interview-backend/internal/pkg/followup"
	"github.com/careerforge/interview-backend/internal/pkg/validator"
	"github.com/careerforge/interview-backend/internal/repository"
	"github.com/careerforge/interview-backend/internal/telegram"
	"github.com/careerforge/interview-backend/internal/usecase/interview"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	fileValidator := validator.New(cfg.UploadCfg, cfg.DefaultMaxQuestions)

	uc, err := buildInterviewUsecase(cfg, db, fileValidator, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Setup API handlers
	interviewHandler := interviewapi.NewHandler(uc, fileValidator)
	intakeHandler := intakeapi.NewHandler(fileValidator)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(interviewHandler, intakeHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	uc, err := buildInterviewUsecase(cfg, db, validator.New(cfg.UploadCfg, cfg.DefaultMaxQuestions), logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	bot, err := telegram.New(&cfg.TelegramCfg, uc, cfg.DefaultMaxQuestions, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func buildInterviewUsecase(cfg *config.Config, db *pgxpool.Pool, fileValidator *validator.Validator, logger *zap.Logger) (*interview.InterviewUsecase, error) {
	sessionRepo := repository.NewCachedSessionRepository(
		repository.NewSessionPostgres(db),
		cfg.SessionCacheTTL,
		cfg.SessionCacheCleanup,
	)
	logger.Info("Repositories initialized")

	callbackConnector := callback.NewConnector(cfg.CallbackCfg, logger)

	var generator interview.Generator
	var transcriber interview.Transcriber

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		generator = llm.NewMockConnector(logger)
		transcriber = asr.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		generator = llm.NewConnector(cfg.GeneratorCfg, logger)
		transcriber = asr.NewConnector(cfg.ASRCfg, logger)
	}

	picker := followup.NewPicker(cfg.FollowUpPrompts, rand.New(rand.NewSource(time.Now().UnixNano())))

	uc := interview.NewUsecase(
		sessionRepo,
		fileValidator,
		generator,
		transcriber,
		callbackConnector,
		picker,
		logger,
	)
	logger.Info("Use cases initialized")

	return uc, nil
}
