package formatter

import (
	"strings"
	"testing"

	"github.com/careerforge/interview-backend/internal/entity"
)

func sampleReport() *entity.FeedbackReport {
	return &entity.FeedbackReport{
		Score:               72,
		Summary:             "Solid performance with room to grow.",
		Strengths:           []string{"Clear communication"},
		Improvements:        []string{"Quantify outcomes"},
		CommunicationScore:  78,
		TechnicalScore:      70,
		ProblemSolvingScore: 68,
		CultureFitScore:     75,
		ImprovementTips:     []string{"Practice the STAR method"},
		VoiceMetrics: &entity.VoiceMetrics{
			WordsPerMinute:  148.2,
			TotalWords:      412,
			FillerWordCount: 4,
			ClarityScore:    80,
			ConfidenceScore: 71,
			PaceRating:      "Normal",
		},
	}
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format      entity.ReportFormat
		contentType string
		extension   string
	}{
		{entity.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		{entity.FormatPDF, "application/pdf", ".pdf"},
		{entity.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := factory.Create(tt.format)
			if err != nil {
				t.Fatalf("Create(%s): %v", tt.format, err)
			}
			if f.ContentType() != tt.contentType {
				t.Errorf("ContentType = %q, want %q", f.ContentType(), tt.contentType)
			}
			if f.FileExtension() != tt.extension {
				t.Errorf("FileExtension = %q, want %q", f.FileExtension(), tt.extension)
			}
		})
	}
}

func TestFactoryCreateUnsupported(t *testing.T) {
	if _, err := NewFactory().Create(entity.ReportFormat("xml")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestMarkdownFormatterContent(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleReport())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"# " + baseTitle,
		"Score: 72/100",
		"## Strengths",
		"Clear communication",
		"## Delivery",
		"Words per minute: 148.2 (Normal)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleReport())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Error("output does not look like a PDF document")
	}
}
