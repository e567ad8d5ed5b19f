package resume

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeData is the structured result of parsing a resume PDF.
type ResumeData struct {
	RawText string   `json:"raw_text"`
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Skills  []string `json:"skills"`
	Summary string   `json:"summary,omitempty"`
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?1?[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`),
	regexp.MustCompile(`\+91[-.\s]?[0-9]{10}`),
	regexp.MustCompile(`[0-9]{10}`),
}

// skillKeywords is the fixed vocabulary scanned for in resumes. Matches are
// substring based; a resume mentioning a keyword anywhere counts.
var skillKeywords = []string{
	"python", "javascript", "typescript", "java", "c++", "c#", "go", "rust", "ruby", "php",
	"react", "vue", "angular", "next.js", "node.js", "express", "django", "flask", "fastapi",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform", "jenkins", "ci/cd",
	"git", "github", "gitlab", "agile", "scrum", "jira",
	"machine learning", "deep learning", "nlp", "computer vision", "tensorflow", "pytorch",
	"data analysis", "pandas", "numpy", "scikit-learn", "tableau", "power bi",
	"html", "css", "sass", "tailwind", "bootstrap", "figma", "adobe xd",
	"rest api", "graphql", "microservices", "system design", "oop", "design patterns",
	"leadership", "communication", "problem solving", "teamwork", "project management",
}

const summaryLimit = 500

// Parse extracts text from a resume PDF and applies field heuristics.
func Parse(pdfContent []byte) (*ResumeData, error) {
	text, err := extractText(pdfContent)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}

	data := &ResumeData{
		RawText: text,
		Name:    extractName(text),
		Email:   emailPattern.FindString(text),
		Phone:   extractPhone(text),
		Skills:  extractSkills(text),
		Summary: truncate(text, summaryLimit),
	}

	return data, nil
}

func extractText(pdfContent []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfContent), int64(len(pdfContent)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages, keep what we can
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// extractName takes the first line unless it looks like something other than
// a person's name.
func extractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 {
		return ""
	}

	name := strings.TrimSpace(lines[0])
	if len(name) > 50 || strings.Contains(name, "@") || strings.ContainsAny(name, "0123456789") {
		return ""
	}

	return name
}

func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make([]string, 0)
	for _, skill := range skillKeywords {
		if strings.Contains(lower, skill) {
			found = append(found, displaySkill(skill))
		}
	}

	return found
}

// displaySkill renders a matched keyword for output: short names are
// upper-cased acronym style, longer ones title-cased.
func displaySkill(skill string) string {
	if len(skill) <= 3 {
		return strings.ToUpper(skill)
	}

	words := strings.Fields(skill)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Context renders the parsed resume as interview configuration context.
func (r *ResumeData) Context() string {
	var parts []string

	if r.Name != "" {
		parts = append(parts, "Candidate Name: "+r.Name)
	}
	if len(r.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(capList(r.Skills, 15), ", "))
	}
	if r.Summary != "" {
		parts = append(parts, "Background Summary: "+truncate(r.Summary, 300))
	}

	return strings.Join(parts, "\n")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func capList(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
