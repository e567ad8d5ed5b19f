package entity

import (
	"fmt"
	"time"
)

type StartInterviewRequest struct {
	Config      InterviewConfig `json:"config"`
	CallbackURL string          `json:"callback_url,omitempty"`
}

type StartInterviewResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
	// DurationSeconds is how long the candidate actually spent on the
	// answer, when the client measured it. Zero means unknown.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

type AnswerResponse struct {
	Message          string `json:"message"`
	IsInterviewEnded bool   `json:"is_interview_ended"`
}

type SessionDTO struct {
	ID              string          `json:"session_id"`
	Role            string          `json:"role"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	InterviewType   string          `json:"interview_type,omitempty"`
	Company         string          `json:"company,omitempty"`
	QuestionCount   int             `json:"question_count"`
	MaxQuestions    int             `json:"max_questions"`
	FollowUpCount   int             `json:"follow_up_count"`
	Completed       bool            `json:"completed"`
	Score           *int            `json:"score,omitempty"`
	CreatedAt       time.Time       `json:"started_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// InterviewRecord is one row of the interview history listing.
type InterviewRecord struct {
	SessionID       string          `json:"session_id"`
	Role            string          `json:"role"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	InterviewType   string          `json:"interview_type,omitempty"`
	Company         string          `json:"company,omitempty"`
	Score           *int            `json:"score,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

type CategoryAverages struct {
	Communication  float64 `json:"communication"`
	Technical      float64 `json:"technical"`
	ProblemSolving float64 `json:"problem_solving"`
	CultureFit     float64 `json:"culture_fit"`
}

type DashboardStats struct {
	TotalInterviews     int              `json:"total_interviews"`
	CompletedInterviews int              `json:"completed_interviews"`
	AverageScore        float64          `json:"average_score"`
	BestScore           int              `json:"best_score"`
	RecentTrend         string           `json:"recent_trend"`
	CategoryAverages    CategoryAverages `json:"category_averages"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ParseJobDescriptionRequest struct {
	Text string `json:"text"`
}

// ReportFormat selects the export rendering of a feedback report.
type ReportFormat string

const (
	FormatJSON     ReportFormat = "json"
	FormatMarkdown ReportFormat = "markdown"
	FormatPDF      ReportFormat = "pdf"
	FormatDOCX     ReportFormat = "docx"
)

func (f ReportFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

func (f ReportFormat) Validate() error {
	if !f.IsValid() {
		return fmt.Errorf("%w: format must be one of: json, markdown, pdf, docx", ErrInvalidParameter)
	}
	return nil
}
