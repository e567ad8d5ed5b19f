package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/careerforge/interview-backend/internal/pkg/followup"
	"github.com/careerforge/interview-backend/internal/pkg/validator"
	"github.com/careerforge/interview-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// InterviewUsecase implements the interview session business logic.
type InterviewUsecase struct {
	sessionRepo repository.SessionRepository
	validator   *validator.Validator
	generator   Generator
	transcriber Transcriber
	callback    CallbackSender
	picker      *followup.Picker
	logger      *zap.Logger
}

// NewUsecase creates a new interview use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	validator *validator.Validator,
	generator Generator,
	transcriber Transcriber,
	callback CallbackSender,
	picker *followup.Picker,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		sessionRepo: sessionRepo,
		validator:   validator,
		generator:   generator,
		transcriber: transcriber,
		callback:    callback,
		picker:      picker,
		logger:      logger,
	}
}

// StartSession creates a session and produces the opening interviewer turn.
// The session is persisted only after the opening generation succeeds, so a
// failed start leaves nothing behind and can simply be retried.
func (uc *InterviewUsecase) StartSession(ctx context.Context, req *entity.StartInterviewRequest) (*entity.StartInterviewResponse, error) {
	if err := uc.validator.ValidateStartInterview(req); err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	ctxzap.Info(ctx, "starting interview session",
		zap.String("session_id", sessionID),
		zap.String("role", req.Config.Role),
		zap.String("experience_level", string(req.Config.ExperienceLevel)),
	)

	opening, err := uc.generator.Generate(ctx, openingDirective, req.Config)
	if err != nil {
		return nil, fmt.Errorf("generate opening: %w", err)
	}

	session := &entity.Session{
		ID:          sessionID,
		Config:      req.Config,
		CallbackURL: req.CallbackURL,
		Turns: []entity.Turn{
			{Role: entity.RoleInterviewer, Text: opening, Timestamp: time.Now().UTC()},
		},
	}

	created, err := uc.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &entity.StartInterviewResponse{
		SessionID: created.ID,
		Message:   opening,
	}, nil
}

// SubmitAnswer advances the session state machine with a candidate answer.
// Turns are appended to the session only after the generator reply succeeds,
// so a failed submit leaves the session untouched and retryable.
func (uc *InterviewUsecase) SubmitAnswer(ctx context.Context, sessionID string, req *entity.SubmitAnswerRequest) (*entity.AnswerResponse, error) {
	if err := uc.validator.ValidateSubmitAnswer(req); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Completed {
		return nil, entity.ErrSessionCompleted
	}

	var (
		directive string
		followUp  = followup.ShouldFollowUp(req.Answer, session.FollowUpCount)
		ended     bool
	)

	switch {
	case followUp:
		directive = followUpDirective(req.Answer, uc.picker.Pick())
	case session.QuestionCount+1 >= session.Config.MaxQuestions:
		directive = closingDirective(req.Answer)
		ended = true
	default:
		directive = advanceDirective(req.Answer)
	}

	reply, err := uc.generator.Generate(ctx, directive, session.Config)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	now := time.Now().UTC()
	session.Turns = append(session.Turns,
		entity.Turn{Role: entity.RoleCandidate, Text: req.Answer, Timestamp: now},
		entity.Turn{Role: entity.RoleInterviewer, Text: reply, Timestamp: now},
	)

	if followUp {
		session.FollowUpCount++
	} else {
		session.FollowUpCount = 0
		session.QuestionCount++
	}

	session.AnswerSeconds += req.DurationSeconds

	if ended {
		session.Completed = true
		session.CompletedAt = &now
	}

	if _, err := uc.sessionRepo.UpdateSessionProgress(ctx, session); err != nil {
		return nil, fmt.Errorf("update session progress: %w", err)
	}

	ctxzap.Info(ctx, "answer processed",
		zap.String("session_id", sessionID),
		zap.Bool("follow_up", followUp),
		zap.Int("question_count", session.QuestionCount),
		zap.Bool("ended", ended),
	)

	return &entity.AnswerResponse{
		Message:          reply,
		IsInterviewEnded: ended,
	}, nil
}

// SubmitAudioAnswer transcribes the audio and submits the result as a text
// answer through the same state machine.
func (uc *InterviewUsecase) SubmitAudioAnswer(ctx context.Context, sessionID string, audioData []byte, filename string, durationSeconds float64) (*entity.AnswerResponse, error) {
	transcription, err := uc.transcriber.TranscribeBytes(ctx, audioData, filename)
	if err != nil {
		return nil, fmt.Errorf("transcribe answer: %w", err)
	}

	return uc.SubmitAnswer(ctx, sessionID, &entity.SubmitAnswerRequest{
		Answer:          transcription,
		DurationSeconds: durationSeconds,
	})
}

// CancelSession marks the session terminal without a closing generation call.
func (uc *InterviewUsecase) CancelSession(ctx context.Context, sessionID string) error {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	if session.Completed {
		return entity.ErrSessionCompleted
	}

	now := time.Now().UTC()
	session.Completed = true
	session.CompletedAt = &now

	if _, err := uc.sessionRepo.UpdateSessionProgress(ctx, session); err != nil {
		return fmt.Errorf("update session progress: %w", err)
	}

	ctxzap.Info(ctx, "session cancelled", zap.String("session_id", sessionID))
	return nil
}

// GetSession returns the session status DTO.
func (uc *InterviewUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return toSessionDTO(session), nil
}

// History lists past sessions, newest first.
func (uc *InterviewUsecase) History(ctx context.Context, limit, offset int) ([]entity.InterviewRecord, error) {
	sessions, err := uc.sessionRepo.ListSessions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	records := make([]entity.InterviewRecord, 0, len(sessions))
	for i := range sessions {
		records = append(records, toInterviewRecord(&sessions[i]))
	}

	return records, nil
}

// Dashboard aggregates statistics over all stored sessions.
func (uc *InterviewUsecase) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	sessions, err := uc.sessionRepo.ListSessions(ctx, dashboardWindow, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return computeDashboard(sessions), nil
}
