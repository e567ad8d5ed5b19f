package interview

import (
	"context"

	"github.com/careerforge/interview-backend/internal/entity"
)

type Generator interface {
	Generate(ctx context.Context, directive string, cfg entity.InterviewConfig) (string, error)
	Evaluate(ctx context.Context, transcript string) (string, error)
}

type Transcriber interface {
	TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error)
}

type CallbackSender interface {
	SendReport(ctx context.Context, callbackURL string, requestID string, sessionID string, report *entity.FeedbackReport)
	SendError(ctx context.Context, callbackURL string, requestID string, message string, details map[string]any)
}
