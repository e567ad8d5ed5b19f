package llm

import (
	"context"

	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a stand-in generator used when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, directive string, cfg entity.InterviewConfig) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating interviewer message",
		zap.String("role", cfg.Role),
		zap.Int("directive_length", len(directive)),
	)

	message := "Thank you for joining. To start, could you tell me about a recent project " +
		"you worked on as a " + cfg.Role + " and what your role in it was?"

	return message, nil
}

func (m *MockConnector) Evaluate(ctx context.Context, transcript string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] evaluating transcript", zap.Int("transcript_length", len(transcript)))

	// Fenced on purpose so the full parsing path is exercised against mocks.
	result := "```json\n" + `{
  "score": 72,
  "summary": "The candidate gave structured answers with concrete examples, though some responses lacked depth on trade-offs.",
  "strengths": ["Clear communication", "Concrete project examples"],
  "improvements": ["Discuss trade-offs in more depth", "Quantify outcomes"],
  "communication_score": 78,
  "technical_score": 70,
  "problem_solving_score": 68,
  "culture_fit_score": 75,
  "improvement_tips": ["Practice the STAR method", "Prepare metrics for past projects"],
  "recommended_resources": ["Cracking the Coding Interview", "System Design Primer"]
}` + "\n```"

	return result, nil
}
