package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	CreateSession(ctx context.Context, session *entity.Session) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSessionProgress(ctx context.Context, session *entity.Session) (*entity.Session, error)
	UpdateSessionReport(ctx context.Context, id string, report *entity.FeedbackReport) (*entity.Session, error)
	ListSessions(ctx context.Context, limit, offset int) ([]entity.Session, error)
}

var _ SessionRepository = &SessionPostgres{}

// SessionPostgres implements SessionRepository using PostgreSQL
type SessionPostgres struct {
	db *pgxpool.Pool
}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

const sessionColumns = `id, role, experience_level, interview_type, interviewer_style, company,
	language, time_per_question, max_questions, resume_context, job_description,
	turns, question_count, follow_up_count, answer_seconds, completed,
	callback_url, report, created_at, updated_at, completed_at`

func (r *SessionPostgres) CreateSession(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	sessionID, err := parseSessionID(session.ID)
	if err != nil {
		return nil, err
	}

	turnsJSON, err := json.Marshal(session.Turns)
	if err != nil {
		return nil, fmt.Errorf("marshal turns: %w", err)
	}

	cfg := session.Config
	row := r.db.QueryRow(ctx, `
		INSERT INTO sessions (
			id, role, experience_level, interview_type, interviewer_style, company,
			language, time_per_question, max_questions, resume_context, job_description,
			turns, callback_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+sessionColumns,
		sessionID, cfg.Role, string(cfg.ExperienceLevel), cfg.InterviewType, cfg.InterviewerStyle,
		cfg.Company, cfg.Language, cfg.TimePerQuestion, cfg.MaxQuestions, cfg.ResumeContext,
		cfg.JobDescription, turnsJSON, session.CallbackURL,
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return created, nil
}

func (r *SessionPostgres) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := parseSessionID(id)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, sessionID)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

// UpdateSessionProgress persists the mutable conversation state. Counters are
// written explicitly, never recomputed from the transcript.
func (r *SessionPostgres) UpdateSessionProgress(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	sessionID, err := parseSessionID(session.ID)
	if err != nil {
		return nil, err
	}

	turnsJSON, err := json.Marshal(session.Turns)
	if err != nil {
		return nil, fmt.Errorf("marshal turns: %w", err)
	}

	var completedAt pgtype.Timestamptz
	if session.CompletedAt != nil {
		completedAt = pgtype.Timestamptz{Time: *session.CompletedAt, Valid: true}
	}

	row := r.db.QueryRow(ctx, `
		UPDATE sessions
		SET turns = $2,
		    question_count = $3,
		    follow_up_count = $4,
		    answer_seconds = $5,
		    completed = $6,
		    completed_at = $7,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+sessionColumns,
		sessionID, turnsJSON, session.QuestionCount, session.FollowUpCount,
		session.AnswerSeconds, session.Completed, completedAt,
	)

	updated, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update session progress: %w", err)
	}

	return updated, nil
}

func (r *SessionPostgres) UpdateSessionReport(ctx context.Context, id string, report *entity.FeedbackReport) (*entity.Session, error) {
	sessionID, err := parseSessionID(id)
	if err != nil {
		return nil, err
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE sessions
		SET report = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+sessionColumns,
		sessionID, reportJSON,
	)

	updated, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update session report: %w", err)
	}

	return updated, nil
}

func (r *SessionPostgres) ListSessions(ctx context.Context, limit, offset int) ([]entity.Session, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]entity.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}

	return sessions, nil
}

func parseSessionID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid session ID: %w", err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var (
		session     entity.Session
		id          pgtype.UUID
		turnsJSON   []byte
		reportJSON  []byte
		completedAt pgtype.Timestamptz
		level       string
	)

	err := row.Scan(
		&id, &session.Config.Role, &level, &session.Config.InterviewType,
		&session.Config.InterviewerStyle, &session.Config.Company, &session.Config.Language,
		&session.Config.TimePerQuestion, &session.Config.MaxQuestions,
		&session.Config.ResumeContext, &session.Config.JobDescription,
		&turnsJSON, &session.QuestionCount, &session.FollowUpCount,
		&session.AnswerSeconds, &session.Completed,
		&session.CallbackURL, &reportJSON,
		&session.CreatedAt, &session.UpdatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	session.ID = uuid.UUID(id.Bytes).String()
	session.Config.ExperienceLevel = entity.ExperienceLevel(level)

	if err := json.Unmarshal(turnsJSON, &session.Turns); err != nil {
		return nil, fmt.Errorf("unmarshal turns: %w", err)
	}

	if len(reportJSON) > 0 {
		var report entity.FeedbackReport
		if err := json.Unmarshal(reportJSON, &report); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		session.Report = &report
	}

	if completedAt.Valid {
		t := completedAt.Time.UTC()
		session.CompletedAt = &t
	}
	session.CreatedAt = session.CreatedAt.UTC()
	session.UpdatedAt = session.UpdatedAt.UTC()

	return &session, nil
}
