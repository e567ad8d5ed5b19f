package interview

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/careerforge/interview-backend/internal/entity"
)

// openingDirective asks the generator to open the interview. The generator
// receives the interview configuration alongside and frames the question
// accordingly.
const openingDirective = "Please start the interview by introducing yourself and asking the first question."

func followUpDirective(answer, prompt string) string {
	return fmt.Sprintf(
		"The candidate answered: %q. Acknowledge the answer briefly, then ask this follow-up question: %s",
		answer, prompt,
	)
}

func advanceDirective(answer string) string {
	return fmt.Sprintf(
		"The candidate answered: %q. Acknowledge the answer briefly, then ask the next interview question.",
		answer,
	)
}

func closingDirective(answer string) string {
	return fmt.Sprintf(
		"The candidate answered: %q. Thank the candidate for their time and formally conclude the interview.",
		answer,
	)
}

// formatTranscript renders the turn log as the plain-text transcript the
// evaluator is prompted with.
func formatTranscript(turns []entity.Turn) string {
	var sb strings.Builder
	for _, turn := range turns {
		sb.WriteString(strings.ToUpper(string(turn.Role)))
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// parseEvaluation decodes the evaluator payload, tolerating markdown code
// fences around the JSON body.
func parseEvaluation(raw string) (*entity.Evaluation, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var eval entity.Evaluation
	if err := json.Unmarshal([]byte(cleaned), &eval); err != nil {
		return nil, fmt.Errorf("parse evaluation payload: %w", err)
	}

	return &eval, nil
}

func lowParticipationReport(turns []entity.Turn) *entity.FeedbackReport {
	return &entity.FeedbackReport{
		Score:   10,
		Summary: "The interview was too short or lacked candidate participation to provide a meaningful score.",
		Strengths: []string{
			"Attendance",
		},
		Improvements: []string{
			"Please answer the questions provided.",
			"Provide more detailed responses.",
		},
		CommunicationScore:  10,
		TechnicalScore:      10,
		ProblemSolvingScore: 10,
		CultureFitScore:     10,
		ImprovementTips: []string{
			"Engage with each question and give complete answers.",
		},
		Transcript: turns,
	}
}

func fallbackReport(metrics entity.VoiceMetrics) *entity.FeedbackReport {
	return &entity.FeedbackReport{
		Score:   50,
		Summary: "Could not parse detailed feedback. However, the interview is complete.",
		Strengths: []string{
			"Completed the interview",
		},
		Improvements: []string{
			"System error in report generation",
		},
		CommunicationScore:  50,
		TechnicalScore:      50,
		ProblemSolvingScore: 50,
		CultureFitScore:     50,
		ImprovementTips: []string{
			"Request a new evaluation of this session.",
		},
		VoiceMetrics: &metrics,
	}
}

func toSessionDTO(session *entity.Session) *entity.SessionDTO {
	dto := &entity.SessionDTO{
		ID:              session.ID,
		Role:            session.Config.Role,
		ExperienceLevel: session.Config.ExperienceLevel,
		InterviewType:   session.Config.InterviewType,
		Company:         session.Config.Company,
		QuestionCount:   session.QuestionCount,
		MaxQuestions:    session.Config.MaxQuestions,
		FollowUpCount:   session.FollowUpCount,
		Completed:       session.Completed,
		CreatedAt:       session.CreatedAt,
		CompletedAt:     session.CompletedAt,
	}

	if session.Report != nil {
		score := session.Report.Score
		dto.Score = &score
	}

	return dto
}

func toInterviewRecord(session *entity.Session) entity.InterviewRecord {
	record := entity.InterviewRecord{
		SessionID:       session.ID,
		Role:            session.Config.Role,
		ExperienceLevel: session.Config.ExperienceLevel,
		InterviewType:   session.Config.InterviewType,
		Company:         session.Config.Company,
		StartedAt:       session.CreatedAt,
		CompletedAt:     session.CompletedAt,
	}

	if session.Report != nil {
		score := session.Report.Score
		record.Score = &score
	}

	return record
}

// dashboardWindow bounds how many recent sessions feed the dashboard
// aggregates.
const dashboardWindow = 500

// trendSpan is how many recent scores are compared against the span before
// them when classifying the trend.
const trendSpan = 3

func computeDashboard(sessions []entity.Session) *entity.DashboardStats {
	stats := &entity.DashboardStats{
		TotalInterviews: len(sessions),
		RecentTrend:     "neutral",
	}

	// scores ordered newest first, matching the listing order
	var scores []int
	var sumComm, sumTech, sumProb, sumCult float64

	for i := range sessions {
		s := &sessions[i]
		if s.Completed {
			stats.CompletedInterviews++
		}
		if s.Report == nil {
			continue
		}

		scores = append(scores, s.Report.Score)
		if s.Report.Score > stats.BestScore {
			stats.BestScore = s.Report.Score
		}
		sumComm += float64(s.Report.CommunicationScore)
		sumTech += float64(s.Report.TechnicalScore)
		sumProb += float64(s.Report.ProblemSolvingScore)
		sumCult += float64(s.Report.CultureFitScore)
	}

	if len(scores) == 0 {
		return stats
	}

	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	n := float64(len(scores))
	stats.AverageScore = round1(sum / n)
	stats.CategoryAverages = entity.CategoryAverages{
		Communication:  round1(sumComm / n),
		Technical:      round1(sumTech / n),
		ProblemSolving: round1(sumProb / n),
		CultureFit:     round1(sumCult / n),
	}
	stats.RecentTrend = classifyTrend(scores)

	return stats
}

// classifyTrend compares the average of the trendSpan most recent scores
// against the average of the trendSpan scores before them.
func classifyTrend(scores []int) string {
	if len(scores) < 2*trendSpan {
		return "neutral"
	}

	recent := avg(scores[:trendSpan])
	prior := avg(scores[trendSpan : 2*trendSpan])

	switch {
	case recent-prior > 2:
		return "improving"
	case prior-recent > 2:
		return "declining"
	default:
		return "stable"
	}
}

func avg(scores []int) float64 {
	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	return sum / float64(len(scores))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
