package interview

import (
	"context"

	"github.com/careerforge/interview-backend/internal/entity"
)

type InterviewUsecase interface {
	StartSession(ctx context.Context, req *entity.StartInterviewRequest) (*entity.StartInterviewResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *entity.SubmitAnswerRequest) (*entity.AnswerResponse, error)
	SubmitAudioAnswer(ctx context.Context, sessionID string, audioData []byte, filename string, durationSeconds float64) (*entity.AnswerResponse, error)
	CancelSession(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	GetOrCreateReport(ctx context.Context, sessionID string) (*entity.FeedbackReport, error)
	History(ctx context.Context, limit, offset int) ([]entity.InterviewRecord, error)
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
}
