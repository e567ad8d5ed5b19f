package interview

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/careerforge/interview-backend/internal/config"
	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/careerforge/interview-backend/internal/pkg/followup"
	"github.com/careerforge/interview-backend/internal/pkg/validator"
	"github.com/careerforge/interview-backend/internal/repository"
	"go.uber.org/zap"
)

// substantiveAnswer is long enough and free of hedging language, so it never
// triggers a follow-up.
const substantiveAnswer = "In my previous role I designed and shipped a payment reconciliation service " +
	"that processed several million transactions per day. I led the architecture work, wrote the core " +
	"matching engine, and coordinated the rollout with three partner teams over two quarters."

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session *entity.Session) (*entity.Session, error) {
	stored := *session
	f.sessions[session.ID] = &stored
	return &stored, nil
}

func (f *fakeSessionRepo) GetSessionByID(_ context.Context, id string) (*entity.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) UpdateSessionProgress(_ context.Context, session *entity.Session) (*entity.Session, error) {
	if _, ok := f.sessions[session.ID]; !ok {
		return nil, entity.ErrSessionNotFound
	}
	stored := *session
	f.sessions[session.ID] = &stored
	return &stored, nil
}

func (f *fakeSessionRepo) UpdateSessionReport(_ context.Context, id string, report *entity.FeedbackReport) (*entity.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	session.Report = report
	return session, nil
}

func (f *fakeSessionRepo) ListSessions(_ context.Context, _, _ int) ([]entity.Session, error) {
	out := make([]entity.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	return out, nil
}

type fakeGenerator struct {
	generateCalls  int
	evaluateCalls  int
	generateErr    error
	evaluateResult string
	lastDirective  string
}

func (f *fakeGenerator) Generate(_ context.Context, directive string, _ entity.InterviewConfig) (string, error) {
	f.generateCalls++
	f.lastDirective = directive
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "Thanks. Next question: tell me about a hard bug you fixed.", nil
}

func (f *fakeGenerator) Evaluate(_ context.Context, _ string) (string, error) {
	f.evaluateCalls++
	if f.evaluateResult != "" {
		return f.evaluateResult, nil
	}
	return `{"score":80,"summary":"Strong answers.","strengths":["Clarity"],"improvements":["More metrics"],` +
		`"communication_score":82,"technical_score":78,"problem_solving_score":75,"culture_fit_score":85,` +
		`"improvement_tips":["Use STAR"],"recommended_resources":["System Design Primer"]}`, nil
}

type fakeTranscriber struct {
	result string
}

func (f *fakeTranscriber) TranscribeBytes(_ context.Context, _ []byte, _ string) (string, error) {
	return f.result, nil
}

func newTestUsecase(repo *fakeSessionRepo, gen *fakeGenerator) *InterviewUsecase {
	v := validator.New(config.UploadConfig{MaxAudioFileSize: 1 << 20, MaxResumeFileSize: 1 << 20}, 5)
	picker := followup.NewPicker(nil, rand.New(rand.NewSource(1)))
	return NewUsecase(repo, v, gen, &fakeTranscriber{result: substantiveAnswer}, nil, picker, zap.NewNop())
}

func startSession(t *testing.T, uc *InterviewUsecase, maxQuestions int) string {
	t.Helper()
	resp, err := uc.StartSession(context.Background(), &entity.StartInterviewRequest{
		Config: entity.InterviewConfig{
			Role:            "Backend Engineer",
			ExperienceLevel: entity.LevelMid,
			MaxQuestions:    maxQuestions,
		},
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if resp.Message == "" {
		t.Fatal("StartSession returned empty opening message")
	}
	return resp.SessionID
}

func TestFullInterviewFlow(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 3)

	for i := 1; i <= 3; i++ {
		resp, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer})
		if err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i, err)
		}
		wantEnded := i == 3
		if resp.IsInterviewEnded != wantEnded {
			t.Fatalf("answer %d: IsInterviewEnded = %v, want %v", i, resp.IsInterviewEnded, wantEnded)
		}
	}

	session := repo.sessions[id]
	if !session.Completed {
		t.Error("session not marked completed after budget exhausted")
	}
	if session.QuestionCount != 3 {
		t.Errorf("QuestionCount = %d, want 3", session.QuestionCount)
	}
	// opening + 3 x (candidate + interviewer)
	if len(session.Turns) != 7 {
		t.Errorf("turn count = %d, want 7", len(session.Turns))
	}
	if session.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
}

func TestFollowUpDepthCap(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 5)

	// short answers trigger follow-up probes, but at most two per question
	for i := 1; i <= 2; i++ {
		resp, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: "I used Go."})
		if err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i, err)
		}
		if resp.IsInterviewEnded {
			t.Fatalf("probe %d unexpectedly ended the interview", i)
		}
		if got := repo.sessions[id].FollowUpCount; got != i {
			t.Fatalf("FollowUpCount after probe %d = %d, want %d", i, got, i)
		}
		if repo.sessions[id].QuestionCount != 0 {
			t.Fatalf("QuestionCount advanced during probe %d", i)
		}
	}

	// third short answer must advance regardless of content
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: "I used Go."}); err != nil {
		t.Fatalf("SubmitAnswer after cap: %v", err)
	}
	session := repo.sessions[id]
	if session.QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1 after forced advance", session.QuestionCount)
	}
	if session.FollowUpCount != 0 {
		t.Errorf("FollowUpCount = %d, want 0 after advance", session.FollowUpCount)
	}
}

func TestSubmitAfterTerminal(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := newTestUsecase(repo, &fakeGenerator{})
	ctx := context.Background()

	id := startSession(t, uc, 3)
	if err := uc.CancelSession(ctx, id); err != nil {
		t.Fatalf("CancelSession: %v", err)
	}

	_, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer})
	if !errors.Is(err, entity.ErrSessionCompleted) {
		t.Fatalf("err = %v, want ErrSessionCompleted", err)
	}
}

func TestGenerationFailureLeavesSessionUntouched(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 3)
	before := len(repo.sessions[id].Turns)

	gen.generateErr = entity.ErrGenerationTimeout
	_, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer})
	if !errors.Is(err, entity.ErrGenerationTimeout) {
		t.Fatalf("err = %v, want ErrGenerationTimeout", err)
	}

	session := repo.sessions[id]
	if len(session.Turns) != before {
		t.Errorf("turns appended despite generation failure: %d -> %d", before, len(session.Turns))
	}
	if session.QuestionCount != 0 || session.FollowUpCount != 0 {
		t.Errorf("counters mutated despite generation failure: q=%d f=%d", session.QuestionCount, session.FollowUpCount)
	}

	// session stays usable
	gen.generateErr = nil
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer}); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestAudioAnswerGoesThroughStateMachine(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := newTestUsecase(repo, &fakeGenerator{})
	ctx := context.Background()

	id := startSession(t, uc, 3)

	resp, err := uc.SubmitAudioAnswer(ctx, id, []byte("riff"), "answer.wav", 42.5)
	if err != nil {
		t.Fatalf("SubmitAudioAnswer: %v", err)
	}
	if resp.IsInterviewEnded {
		t.Error("first audio answer unexpectedly ended the interview")
	}

	session := repo.sessions[id]
	if session.AnswerSeconds != 42.5 {
		t.Errorf("AnswerSeconds = %v, want 42.5", session.AnswerSeconds)
	}
	if got := session.Turns[1].Text; got != substantiveAnswer {
		t.Errorf("candidate turn text = %q, want transcription", got)
	}
}

func TestReportLowParticipation(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 3)
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: "No."}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	report, err := uc.GetOrCreateReport(ctx, id)
	if err != nil {
		t.Fatalf("GetOrCreateReport: %v", err)
	}

	if report.Score != 10 {
		t.Errorf("Score = %d, want 10", report.Score)
	}
	if report.CommunicationScore != 10 || report.TechnicalScore != 10 ||
		report.ProblemSolvingScore != 10 || report.CultureFitScore != 10 {
		t.Error("sub-scores not fixed at 10")
	}
	if gen.evaluateCalls != 0 {
		t.Errorf("Evaluate called %d times for a near-empty transcript, want 0", gen.evaluateCalls)
	}
}

func TestReportIdempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 3)
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	first, err := uc.GetOrCreateReport(ctx, id)
	if err != nil {
		t.Fatalf("first GetOrCreateReport: %v", err)
	}
	second, err := uc.GetOrCreateReport(ctx, id)
	if err != nil {
		t.Fatalf("second GetOrCreateReport: %v", err)
	}

	if gen.evaluateCalls != 1 {
		t.Errorf("Evaluate called %d times, want 1", gen.evaluateCalls)
	}
	if first.Score != second.Score || first.Summary != second.Summary {
		t.Error("repeat report differs from stored report")
	}
}

func TestReportParsesFencedPayload(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{
		evaluateResult: "```json\n{\"score\":65,\"summary\":\"Fine.\",\"strengths\":[\"A\"],\"improvements\":[\"B\"]," +
			"\"communication_score\":60,\"technical_score\":61,\"problem_solving_score\":62,\"culture_fit_score\":63," +
			"\"improvement_tips\":[\"C\"]}\n```",
	}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 3)
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	report, err := uc.GetOrCreateReport(ctx, id)
	if err != nil {
		t.Fatalf("GetOrCreateReport: %v", err)
	}
	if report.Score != 65 {
		t.Errorf("Score = %d, want 65 (fences not stripped?)", report.Score)
	}
	if report.VoiceMetrics == nil {
		t.Error("VoiceMetrics missing from merged report")
	}
	if len(report.Transcript) == 0 {
		t.Error("Transcript missing from merged report")
	}
}

func TestReportFallbackOnParseFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	gen := &fakeGenerator{evaluateResult: "I'm sorry, I can't produce JSON today."}
	uc := newTestUsecase(repo, gen)
	ctx := context.Background()

	id := startSession(t, uc, 3)
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	report, err := uc.GetOrCreateReport(ctx, id)
	if err != nil {
		t.Fatalf("GetOrCreateReport should not fail on parse error, got %v", err)
	}
	if report.Score != 50 {
		t.Errorf("fallback Score = %d, want 50", report.Score)
	}
	if report.VoiceMetrics == nil {
		t.Error("fallback report missing computed voice metrics")
	}
}

func TestReportSessionNotFound(t *testing.T) {
	uc := newTestUsecase(newFakeSessionRepo(), &fakeGenerator{})

	_, err := uc.GetOrCreateReport(context.Background(), "missing")
	if !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestCancelIsTerminal(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := newTestUsecase(repo, &fakeGenerator{})
	ctx := context.Background()

	id := startSession(t, uc, 3)
	if err := uc.CancelSession(ctx, id); err != nil {
		t.Fatalf("CancelSession: %v", err)
	}
	if err := uc.CancelSession(ctx, id); !errors.Is(err, entity.ErrSessionCompleted) {
		t.Fatalf("second cancel err = %v, want ErrSessionCompleted", err)
	}
}

func TestDashboardTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   string
	}{
		{"too few scores", []int{80, 70}, "neutral"},
		{"improving", []int{90, 88, 86, 70, 72, 71}, "improving"},
		{"declining", []int{60, 62, 61, 85, 84, 88}, "declining"},
		{"stable", []int{75, 76, 74, 75, 74, 76}, "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTrend(tt.scores); got != tt.want {
				t.Errorf("classifyTrend(%v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

func TestTranscriptFormatting(t *testing.T) {
	turns := []entity.Turn{
		{Role: entity.RoleInterviewer, Text: "Hello."},
		{Role: entity.RoleCandidate, Text: "Hi."},
	}

	got := formatTranscript(turns)
	want := "INTERVIEWER: Hello.\nCANDIDATE: Hi.\n"
	if got != want {
		t.Errorf("formatTranscript = %q, want %q", got, want)
	}
}

// unreliableSessionRepo fails a configured number of progress updates before
// recovering, simulating a transient database outage.
type unreliableSessionRepo struct {
	*fakeSessionRepo
	failUpdates int
}

func (f *unreliableSessionRepo) UpdateSessionProgress(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if f.failUpdates > 0 {
		f.failUpdates--
		return nil, errors.New("connection reset by peer")
	}
	return f.fakeSessionRepo.UpdateSessionProgress(ctx, session)
}

func TestSubmitRetryAfterPersistFailure(t *testing.T) {
	inner := &unreliableSessionRepo{fakeSessionRepo: newFakeSessionRepo(), failUpdates: 1}
	repo := repository.NewCachedSessionRepository(inner, time.Minute, time.Minute)
	gen := &fakeGenerator{}
	v := validator.New(config.UploadConfig{MaxAudioFileSize: 1 << 20, MaxResumeFileSize: 1 << 20}, 5)
	picker := followup.NewPicker(nil, rand.New(rand.NewSource(1)))
	uc := NewUsecase(repo, v, gen, &fakeTranscriber{result: substantiveAnswer}, nil, picker, zap.NewNop())
	ctx := context.Background()

	id := startSession(t, uc, 3)

	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer}); err == nil {
		t.Fatal("SubmitAnswer succeeded despite persist failure")
	}

	// The failed persist must not leave the answer half-applied anywhere;
	// retrying the same turn applies it exactly once.
	if _, err := uc.SubmitAnswer(ctx, id, &entity.SubmitAnswerRequest{Answer: substantiveAnswer}); err != nil {
		t.Fatalf("retry after persist failure: %v", err)
	}

	session, err := repo.GetSessionByID(ctx, id)
	if err != nil {
		t.Fatalf("GetSessionByID: %v", err)
	}

	candidateTurns := 0
	for _, turn := range session.Turns {
		if turn.Role == entity.RoleCandidate {
			candidateTurns++
		}
	}
	if candidateTurns != 1 {
		t.Errorf("candidate turns = %d, want 1", candidateTurns)
	}
	if session.QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1", session.QuestionCount)
	}
	if len(session.Turns) != 3 {
		t.Errorf("total turns = %d, want 3 (opening + one exchange)", len(session.Turns))
	}
}

func TestFollowUpDirectiveContainsPrompt(t *testing.T) {
	d := followUpDirective("answer", "How did you measure the outcome?")
	if !strings.Contains(d, "How did you measure the outcome?") {
		t.Errorf("directive missing prompt: %q", d)
	}
}
