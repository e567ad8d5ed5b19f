package speech

import (
	"strings"
	"testing"

	"github.com/careerforge/interview-backend/internal/entity"
)

func TestAnalyze_EmptyText(t *testing.T) {
	m := Analyze("")

	if m.TotalWords != 0 || m.WordsPerMinute != 0 || m.FillerWordCount != 0 {
		t.Errorf("empty text should yield zero counts, got %+v", m)
	}
	if m.PaceRating != "Normal" {
		t.Errorf("PaceRating = %q, want Normal", m.PaceRating)
	}
	if len(m.Feedback) != 0 {
		t.Errorf("empty text should yield no feedback, got %v", m.Feedback)
	}
	if len(m.FillerWordsList) != 0 {
		t.Errorf("empty text should yield no fillers, got %v", m.FillerWordsList)
	}
}

func TestAnalyze_ClarityStepFunction(t *testing.T) {
	// 3 filler occurrences in 100 words: ratio 0.03 lands in the 80 band.
	words := make([]string, 0, 100)
	words = append(words, "um", "um", "um")
	for len(words) < 100 {
		words = append(words, "sample")
	}
	m := Analyze(strings.Join(words, " "))

	if m.TotalWords != 100 {
		t.Fatalf("TotalWords = %d, want 100", m.TotalWords)
	}
	if m.FillerWordCount != 3 {
		t.Fatalf("FillerWordCount = %d, want 3", m.FillerWordCount)
	}
	if m.ClarityScore != 80 {
		t.Errorf("ClarityScore = %v, want 80", m.ClarityScore)
	}
}

func TestAnalyze_ClarityBands(t *testing.T) {
	tests := []struct {
		fillers int
		total   int
		want    float64
	}{
		{0, 100, 95},  // ratio 0.00
		{4, 100, 80},  // ratio 0.04
		{9, 100, 60},  // ratio 0.09
		{15, 100, 40}, // ratio 0.15
	}

	for _, tt := range tests {
		words := make([]string, 0, tt.total)
		for i := 0; i < tt.fillers; i++ {
			words = append(words, "um")
		}
		for len(words) < tt.total {
			words = append(words, "sample")
		}
		m := Analyze(strings.Join(words, " "))
		if m.ClarityScore != tt.want {
			t.Errorf("clarity for %d/%d fillers = %v, want %v", tt.fillers, tt.total, m.ClarityScore, tt.want)
		}
	}
}

func TestAnalyze_EstimatedPaceIsReferenceRate(t *testing.T) {
	// Without a measured duration the estimate is circular: it resolves to
	// the reference rate and therefore the Normal band.
	m := Analyze(strings.TrimSpace(strings.Repeat("sample ", 80)))

	if m.WordsPerMinute != 150 {
		t.Errorf("WordsPerMinute = %v, want 150", m.WordsPerMinute)
	}
	if m.PaceRating != "Normal" {
		t.Errorf("PaceRating = %q, want Normal", m.PaceRating)
	}
}

func TestAnalyzeWithDuration_PaceBands(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("sample ", 100)) // 100 words

	tests := []struct {
		seconds float64
		want    string
	}{
		{80, "Too Slow"},       // 75 wpm
		{50, "Slightly Slow"},  // 120 wpm
		{40, "Normal"},         // 150 wpm
		{33, "Slightly Fast"},  // ~182 wpm
		{25, "Too Fast"},       // 240 wpm
	}

	for _, tt := range tests {
		m := AnalyzeWithDuration(text, tt.seconds)
		if m.PaceRating != tt.want {
			t.Errorf("pace at %vs = %q, want %q", tt.seconds, m.PaceRating, tt.want)
		}
	}
}

func TestAnalyze_ConfidenceScore(t *testing.T) {
	pad := strings.TrimSpace(strings.Repeat("sample ", 60))

	t.Run("confident language raises score", func(t *testing.T) {
		m := Analyze(pad + " I believe this worked and I successfully shipped it. Definitely.")
		// base 70 + 3 indicators * 5, no fillers or uncertainty
		if m.ConfidenceScore != 85 {
			t.Errorf("ConfidenceScore = %v, want 85", m.ConfidenceScore)
		}
	})

	t.Run("uncertain language lowers score", func(t *testing.T) {
		m := Analyze(pad + " perhaps it might be possibly done")
		// base 70 - 3 indicators * 10
		if m.ConfidenceScore != 40 {
			t.Errorf("ConfidenceScore = %v, want 40", m.ConfidenceScore)
		}
	})

	t.Run("clamped to zero", func(t *testing.T) {
		m := Analyze("perhaps possibly i guess i'm not sure i don't know might be could be i think maybe")
		if m.ConfidenceScore != 0 {
			t.Errorf("ConfidenceScore = %v, want 0", m.ConfidenceScore)
		}
	})
}

func TestAnalyze_FeedbackTriggers(t *testing.T) {
	// Over 5 fillers and under 50 words: filler warning plus brevity warning.
	m := Analyze("um uh like basically um uh this answer")

	if m.FillerWordCount <= 5 {
		t.Fatalf("FillerWordCount = %d, want > 5", m.FillerWordCount)
	}

	var hasFillerWarning, hasBrevityWarning bool
	for _, line := range m.Feedback {
		if strings.Contains(line, "filler words") {
			hasFillerWarning = true
		}
		if strings.Contains(line, "quite short") {
			hasBrevityWarning = true
		}
	}
	if !hasFillerWarning {
		t.Errorf("missing filler warning in %v", m.Feedback)
	}
	if !hasBrevityWarning {
		t.Errorf("missing brevity warning in %v", m.Feedback)
	}
}

func TestAnalyzeTranscript_CandidateTurnsOnly(t *testing.T) {
	turns := []entity.Turn{
		{Role: entity.RoleInterviewer, Text: "um uh tell me about yourself"},
		{Role: entity.RoleCandidate, Text: "I have experience building services"},
		{Role: entity.RoleInterviewer, Text: "go on"},
		{Role: entity.RoleCandidate, Text: "definitely shipped several of them"},
	}
	m := AnalyzeTranscript(turns, 0)

	if m.TotalWords != 10 {
		t.Errorf("TotalWords = %d, want 10 (candidate words only)", m.TotalWords)
	}
	if m.FillerWordCount != 0 {
		t.Errorf("interviewer fillers must not count, got %d", m.FillerWordCount)
	}
}
