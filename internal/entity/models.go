package entity

import (
	"fmt"
	"time"
)

// TurnRole identifies the speaker of a conversation turn.
type TurnRole string

const (
	RoleCandidate   TurnRole = "candidate"
	RoleInterviewer TurnRole = "interviewer"
	RoleSystem      TurnRole = "system"
)

// Turn is a single utterance in the interview transcript. The transcript is
// append-only; slice order is conversation order.
type Turn struct {
	Role      TurnRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "Junior"
	LevelMid    ExperienceLevel = "Mid-Level"
	LevelSenior ExperienceLevel = "Senior"
	LevelLead   ExperienceLevel = "Lead"
)

func (el ExperienceLevel) Validate() error {
	switch el {
	case LevelJunior, LevelMid, LevelSenior, LevelLead:
		return nil
	default:
		return fmt.Errorf("unknown experience level: %s", el)
	}
}

// InterviewConfig describes a single interview. It is set once at session
// start and never mutated afterwards.
type InterviewConfig struct {
	Role             string          `json:"role"`
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	InterviewType    string          `json:"interview_type,omitempty"`
	InterviewerStyle string          `json:"interviewer_style,omitempty"`
	Company          string          `json:"company,omitempty"`
	Language         string          `json:"language,omitempty"`
	TimePerQuestion  int             `json:"time_per_question,omitempty"` // seconds
	MaxQuestions     int             `json:"max_questions"`
	ResumeContext    string          `json:"resume_context,omitempty"`
	JobDescription   string          `json:"job_description,omitempty"`
}

// Session is the mutable interview aggregate. QuestionCount never exceeds
// Config.MaxQuestions; FollowUpCount resets whenever QuestionCount advances;
// Completed, once set, is never cleared.
type Session struct {
	ID            string          `json:"session_id"`
	Config        InterviewConfig `json:"config"`
	Turns         []Turn          `json:"turns"`
	QuestionCount int             `json:"question_count"`
	FollowUpCount int             `json:"follow_up_count"`
	// AnswerSeconds accumulates real elapsed answer time when the client
	// reports it; zero means no timing data and pace is estimated.
	AnswerSeconds float64         `json:"answer_seconds"`
	Completed     bool            `json:"completed"`
	CallbackURL   string          `json:"callback_url,omitempty"`
	Report        *FeedbackReport `json:"report,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// Scored reports whether a feedback report has already been generated and
// persisted for this session.
func (s *Session) Scored() bool {
	return s.Report != nil
}

// Clone returns a deep copy of the session. Callers that hold sessions across
// goroutines or cache them hand out clones so an in-flight mutation can never
// leak into other readers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s

	if s.Turns != nil {
		clone.Turns = make([]Turn, len(s.Turns))
		copy(clone.Turns, s.Turns)
	}

	if s.CompletedAt != nil {
		completedAt := *s.CompletedAt
		clone.CompletedAt = &completedAt
	}

	clone.Report = s.Report.Clone()

	return &clone
}

// Clone returns a deep copy of the report.
func (r *FeedbackReport) Clone() *FeedbackReport {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Strengths = cloneStrings(r.Strengths)
	clone.Improvements = cloneStrings(r.Improvements)
	clone.ImprovementTips = cloneStrings(r.ImprovementTips)
	clone.RecommendedResources = cloneStrings(r.RecommendedResources)

	if r.VoiceMetrics != nil {
		metrics := *r.VoiceMetrics
		metrics.FillerWordsList = cloneStrings(r.VoiceMetrics.FillerWordsList)
		metrics.Feedback = cloneStrings(r.VoiceMetrics.Feedback)
		clone.VoiceMetrics = &metrics
	}

	if r.Transcript != nil {
		clone.Transcript = make([]Turn, len(r.Transcript))
		copy(clone.Transcript, r.Transcript)
	}

	return &clone
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// VoiceMetrics is a derived snapshot of paralinguistic signals computed from
// the candidate side of the transcript. It is recomputed per report, never
// maintained incrementally.
type VoiceMetrics struct {
	WordsPerMinute           float64  `json:"words_per_minute"`
	FillerWordCount          int      `json:"filler_word_count"`
	FillerWordsList          []string `json:"filler_words_list"`
	TotalWords               int      `json:"total_words"`
	EstimatedDurationSeconds float64  `json:"estimated_duration_seconds"`
	ConfidenceScore          float64  `json:"confidence_score"`
	ClarityScore             float64  `json:"clarity_score"`
	PaceRating               string   `json:"pace_rating"`
	Feedback                 []string `json:"feedback"`
}

// FeedbackReport is the final structured evaluation of a completed session.
// It is created exactly once and treated as immutable afterwards.
type FeedbackReport struct {
	Score                int           `json:"score"`
	Summary              string        `json:"summary"`
	Strengths            []string      `json:"strengths"`
	Improvements         []string      `json:"improvements"`
	CommunicationScore   int           `json:"communication_score"`
	TechnicalScore       int           `json:"technical_score"`
	ProblemSolvingScore  int           `json:"problem_solving_score"`
	CultureFitScore      int           `json:"culture_fit_score"`
	ImprovementTips      []string      `json:"improvement_tips"`
	RecommendedResources []string      `json:"recommended_resources,omitempty"`
	VoiceMetrics         *VoiceMetrics `json:"voice_metrics,omitempty"`
	Transcript           []Turn        `json:"transcript,omitempty"`
}
