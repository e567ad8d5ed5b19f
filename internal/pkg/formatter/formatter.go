package formatter

import (
	"fmt"

	"github.com/careerforge/interview-backend/internal/entity"
)

const baseTitle = "Interview Feedback Report"

// Formatter renders a feedback report into a downloadable document.
type Formatter interface {
	Format(report *entity.FeedbackReport) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// section is one titled block of report content, shared by all renderers.
type section struct {
	title string
	lines []string
}

func reportSections(report *entity.FeedbackReport) []section {
	sections := []section{
		{
			title: "Overall",
			lines: []string{
				fmt.Sprintf("Score: %d/100", report.Score),
				report.Summary,
			},
		},
		{
			title: "Category Scores",
			lines: []string{
				fmt.Sprintf("Communication: %d", report.CommunicationScore),
				fmt.Sprintf("Technical: %d", report.TechnicalScore),
				fmt.Sprintf("Problem Solving: %d", report.ProblemSolvingScore),
				fmt.Sprintf("Culture Fit: %d", report.CultureFitScore),
			},
		},
		{title: "Strengths", lines: report.Strengths},
		{title: "Areas for Improvement", lines: report.Improvements},
	}

	if len(report.ImprovementTips) > 0 {
		sections = append(sections, section{title: "Improvement Tips", lines: report.ImprovementTips})
	}
	if len(report.RecommendedResources) > 0 {
		sections = append(sections, section{title: "Recommended Resources", lines: report.RecommendedResources})
	}

	if vm := report.VoiceMetrics; vm != nil {
		lines := []string{
			fmt.Sprintf("Words per minute: %.1f (%s)", vm.WordsPerMinute, vm.PaceRating),
			fmt.Sprintf("Total words: %d", vm.TotalWords),
			fmt.Sprintf("Filler words: %d", vm.FillerWordCount),
			fmt.Sprintf("Clarity: %.0f/100", vm.ClarityScore),
			fmt.Sprintf("Confidence: %.0f/100", vm.ConfidenceScore),
		}
		lines = append(lines, vm.Feedback...)
		sections = append(sections, section{title: "Delivery", lines: lines})
	}

	return sections
}
