package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerforge/interview-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const welcomeText = `Welcome to the mock interview bot.

/interview <role> - start an interview (e.g. /interview Backend Engineer)
/end - finish the current interview
/feedback - get your feedback report
`

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	b.handleAnswer(ctx, message)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		b.send(chatID, welcomeText)
	case "interview":
		b.startInterview(ctx, chatID, strings.TrimSpace(message.CommandArguments()))
	case "end":
		b.endInterview(ctx, chatID)
	case "feedback":
		b.sendFeedback(ctx, chatID)
	default:
		b.send(chatID, "Unknown command. Send /start for the list of commands.")
	}
}

func (b *Bot) startInterview(ctx context.Context, chatID int64, role string) {
	if _, found := b.chats.Get(chatKey(chatID)); found {
		b.send(chatID, "You already have an interview in progress. Finish it with /end first.")
		return
	}

	if role == "" {
		role = "Software Engineer"
	}

	resp, err := b.usecase.StartSession(ctx, &entity.StartInterviewRequest{
		Config: entity.InterviewConfig{
			Role:            role,
			ExperienceLevel: entity.LevelMid,
			MaxQuestions:    b.defaultMaxQuestions,
		},
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to start interview from telegram",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.send(chatID, "Could not start the interview right now. Please try again later.")
		return
	}

	b.chats.SetDefault(chatKey(chatID), resp.SessionID)
	b.send(chatID, resp.Message)
}

func (b *Bot) handleAnswer(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	sessionID, found := b.activeSession(chatID)
	if !found {
		b.send(chatID, "No interview in progress. Start one with /interview <role>.")
		return
	}

	resp, err := b.usecase.SubmitAnswer(ctx, sessionID, &entity.SubmitAnswerRequest{
		Answer: message.Text,
	})
	if err != nil {
		if errors.Is(err, entity.ErrSessionCompleted) {
			b.chats.Delete(chatKey(chatID))
			b.send(chatID, "This interview is already over. Get your report with /feedback.")
			return
		}
		ctxzap.Error(ctx, "failed to submit telegram answer",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		b.send(chatID, "Could not process your answer. Please try again.")
		return
	}

	b.send(chatID, resp.Message)

	if resp.IsInterviewEnded {
		b.send(chatID, "The interview is finished. Send /feedback to get your report.")
	}
}

func (b *Bot) endInterview(ctx context.Context, chatID int64) {
	sessionID, found := b.activeSession(chatID)
	if !found {
		b.send(chatID, "No interview in progress.")
		return
	}

	if err := b.usecase.CancelSession(ctx, sessionID); err != nil && !errors.Is(err, entity.ErrSessionCompleted) {
		ctxzap.Error(ctx, "failed to cancel telegram session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		b.send(chatID, "Could not finish the interview. Please try again.")
		return
	}

	b.send(chatID, "Interview finished. Send /feedback to get your report.")
}

func (b *Bot) sendFeedback(ctx context.Context, chatID int64) {
	sessionID, found := b.activeSession(chatID)
	if !found {
		b.send(chatID, "No interview found. Start one with /interview <role>.")
		return
	}

	report, err := b.usecase.GetOrCreateReport(ctx, sessionID)
	if err != nil {
		ctxzap.Error(ctx, "failed to build telegram feedback report",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		b.send(chatID, "Could not build your feedback report. Please try again.")
		return
	}

	b.chats.Delete(chatKey(chatID))
	b.send(chatID, renderReport(report))
}

// activeSession returns the session bound to the chat, if any.
func (b *Bot) activeSession(chatID int64) (string, bool) {
	value, found := b.chats.Get(chatKey(chatID))
	if !found {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("chat:%d", chatID)
}

func renderReport(report *entity.FeedbackReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Overall score: %d/100\n\n%s\n", report.Score, report.Summary)

	if len(report.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range report.Strengths {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}

	if len(report.Improvements) > 0 {
		sb.WriteString("\nAreas for improvement:\n")
		for _, s := range report.Improvements {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}

	if vm := report.VoiceMetrics; vm != nil {
		fmt.Fprintf(&sb, "\nDelivery: %.0f wpm (%s), clarity %.0f, confidence %.0f\n",
			vm.WordsPerMinute, vm.PaceRating, vm.ClarityScore, vm.ConfidenceScore)
	}

	return sb.String()
}
