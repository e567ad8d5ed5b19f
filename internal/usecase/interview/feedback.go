package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/careerforge/interview-backend/internal/pkg/speech"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// minScorableWords is the candidate word count below which the transcript is
// judged too thin to be worth an evaluation call.
const minScorableWords = 10

// GetOrCreateReport returns the feedback report for a session, generating and
// persisting it on first request. Repeat calls return the stored report
// verbatim with no side effects.
func (uc *InterviewUsecase) GetOrCreateReport(ctx context.Context, sessionID string) (*entity.FeedbackReport, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Scored() {
		ctxzap.Debug(ctx, "returning stored feedback report", zap.String("session_id", sessionID))
		return session.Report, nil
	}

	if session.Turns == nil {
		return nil, entity.ErrSessionStateUnavailable
	}

	if candidateWordCount(session.Turns) < minScorableWords {
		ctxzap.Info(ctx, "transcript too thin, synthesizing low-participation report",
			zap.String("session_id", sessionID),
		)
		return uc.persistReport(ctx, session, lowParticipationReport(session.Turns))
	}

	// Metrics are computed locally while the evaluation call is in flight.
	metricsCh := make(chan entity.VoiceMetrics, 1)
	go func() {
		metricsCh <- speech.AnalyzeTranscript(session.Turns, session.AnswerSeconds)
	}()

	raw, err := uc.generator.Evaluate(ctx, formatTranscript(session.Turns))
	metrics := <-metricsCh
	if err != nil {
		return nil, fmt.Errorf("evaluate transcript: %w", err)
	}

	report := buildReport(raw, metrics)
	report.Transcript = session.Turns

	persisted, err := uc.persistReport(ctx, session, report)
	if err != nil {
		return nil, err
	}

	if session.CallbackURL != "" && uc.callback != nil {
		go uc.callback.SendReport(context.WithoutCancel(ctx), session.CallbackURL, session.ID, session.ID, persisted)
	}

	return persisted, nil
}

func (uc *InterviewUsecase) persistReport(ctx context.Context, session *entity.Session, report *entity.FeedbackReport) (*entity.FeedbackReport, error) {
	if _, err := uc.sessionRepo.UpdateSessionReport(ctx, session.ID, report); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}

	ctxzap.Info(ctx, "feedback report persisted",
		zap.String("session_id", session.ID),
		zap.Int("score", report.Score),
	)

	return report, nil
}

// buildReport parses the raw evaluation payload and merges it with the
// computed voice metrics. A payload that fails to parse degrades to a fixed
// fallback report rather than an error.
func buildReport(raw string, metrics entity.VoiceMetrics) *entity.FeedbackReport {
	eval, err := parseEvaluation(raw)
	if err != nil {
		return fallbackReport(metrics)
	}

	return &entity.FeedbackReport{
		Score:                eval.Score,
		Summary:              eval.Summary,
		Strengths:            eval.Strengths,
		Improvements:         eval.Improvements,
		CommunicationScore:   eval.CommunicationScore,
		TechnicalScore:       eval.TechnicalScore,
		ProblemSolvingScore:  eval.ProblemSolvingScore,
		CultureFitScore:      eval.CultureFitScore,
		ImprovementTips:      eval.ImprovementTips,
		RecommendedResources: eval.RecommendedResources,
		VoiceMetrics:         &metrics,
	}
}

func candidateWordCount(turns []entity.Turn) int {
	total := 0
	for _, turn := range turns {
		if turn.Role == entity.RoleCandidate {
			total += len(strings.Fields(turn.Text))
		}
	}
	return total
}
