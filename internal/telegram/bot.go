package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careerforge/interview-backend/internal/config"
	"github.com/careerforge/interview-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// InterviewUsecase is the slice of the interview use case the bot needs.
type InterviewUsecase interface {
	StartSession(ctx context.Context, req *entity.StartInterviewRequest) (*entity.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *entity.SubmitAnswerRequest) (*entity.AnswerResponse, error)
	CancelSession(ctx context.Context, sessionID string) error
	GetOrCreateReport(ctx context.Context, sessionID string) (*entity.FeedbackReport, error)
}

// chatStateTTL bounds how long an idle chat keeps its active session binding.
const chatStateTTL = 2 * time.Hour

// Bot conducts interviews over Telegram chat. Each chat holds at most one
// active session; plain messages are submitted as answers.
type Bot struct {
	api                 *tgbotapi.BotAPI
	cfg                 *config.TelegramConfig
	usecase             InterviewUsecase
	chats               *gocache.Cache
	limiter             *rateLimiter
	logger              *zap.Logger
	defaultMaxQuestions int

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Telegram bot
func New(cfg *config.TelegramConfig, usecase InterviewUsecase, defaultMaxQuestions int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:                 api,
		cfg:                 cfg,
		usecase:             usecase,
		chats:               gocache.New(chatStateTTL, 30*time.Minute),
		limiter:             newRateLimiter(cfg.RateLimitPerMinute),
		logger:              logger,
		defaultMaxQuestions: defaultMaxQuestions,
		stopChan:            make(chan struct{}),
	}, nil
}

// Start starts the bot update loop
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx, updates)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-updates:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateSafe(ctx, u)
			}(update)
		}
	}
}

// handleUpdateSafe applies rate limiting and panic recovery around the
// actual handler.
func (b *Bot) handleUpdateSafe(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic recovered in telegram handler",
				zap.Any("panic", r),
				zap.Int("update_id", update.UpdateID),
			)
			b.send(chatID, "Something went wrong. Please try again or send /start.")
		}
	}()

	if !b.limiter.allow(chatID) {
		b.logger.Warn("rate limit exceeded", zap.Int64("chat_id", chatID))
		return
	}

	b.handleMessage(ctx, update.Message)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send telegram message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
