package asr

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a stand-in transcriber used when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("empty audio data provided")
	}

	ctxzap.Info(ctx, "[MOCK] transcribing audio via ASR",
		zap.String("filename", filename),
		zap.Int("size", len(audioData)),
	)

	mockTranscription := "In my last role I led the migration of our monolith to a set of services. " +
		"I designed the rollout plan, coordinated with two other teams, and we cut deployment time " +
		"from an hour to under ten minutes while keeping error rates flat."

	ctxzap.Info(ctx, "[MOCK] audio transcribed", zap.Int("transcription_length", len(mockTranscription)))
	return mockTranscription, nil
}
