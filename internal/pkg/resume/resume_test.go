package resume

import (
	"strings"
	"testing"
)

func TestExtractEmailAndPhone(t *testing.T) {
	text := "Jane Candidate\njane.candidate@example.com\n+1 (415) 555-0134\n"

	if got := emailPattern.FindString(text); got != "jane.candidate@example.com" {
		t.Errorf("email = %q", got)
	}
	if got := extractPhone(text); got == "" {
		t.Error("phone not extracted")
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain name", "Jane Candidate\nBackend Engineer", "Jane Candidate"},
		{"email first line", "jane@example.com\nJane", ""},
		{"digits in line", "Jane Candidate 2024\nmore", ""},
		{"overlong line", strings.Repeat("x", 60) + "\nmore", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractName(tt.text); got != tt.want {
				t.Errorf("extractName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSkills(t *testing.T) {
	text := "Experienced with Python, Docker and PostgreSQL. Strong leadership."

	got := extractSkills(text)
	for _, want := range []string{"Python", "Docker", "Postgresql", "Leadership"} {
		if !contains(got, want) {
			t.Errorf("skills %v missing %q", got, want)
		}
	}
}

func TestDisplaySkill(t *testing.T) {
	if got := displaySkill("aws"); got != "AWS" {
		t.Errorf("displaySkill(aws) = %q", got)
	}
	if got := displaySkill("machine learning"); got != "Machine Learning" {
		t.Errorf("displaySkill(machine learning) = %q", got)
	}
}

func TestParseJobDescription(t *testing.T) {
	jd := `Senior Backend Engineer
Acme Corp is hiring.

Requirements:
- 7 years building distributed systems in production
- Deep experience with PostgreSQL and Redis

Responsibilities:
- Design and operate high-throughput services
- Mentor junior engineers on the team
`

	parsed := ParseJobDescription(jd)

	if parsed.Title != "Senior Backend Engineer" {
		t.Errorf("Title = %q", parsed.Title)
	}
	if parsed.ExperienceLevel != "Senior" {
		t.Errorf("ExperienceLevel = %q, want Senior", parsed.ExperienceLevel)
	}
	if len(parsed.Requirements) != 2 {
		t.Errorf("Requirements = %v, want 2 items", parsed.Requirements)
	}
	if len(parsed.Responsibilities) != 2 {
		t.Errorf("Responsibilities = %v, want 2 items", parsed.Responsibilities)
	}
	if !contains(parsed.Skills, "Postgresql") {
		t.Errorf("Skills %v missing Postgresql", parsed.Skills)
	}

	ctx := parsed.Context()
	if !strings.Contains(ctx, "Position: Senior Backend Engineer") {
		t.Errorf("Context missing position: %q", ctx)
	}
}

func TestParseJobDescriptionTooShort(t *testing.T) {
	parsed := ParseJobDescription("short")
	if parsed.Summary != "Job description too short to parse." {
		t.Errorf("Summary = %q", parsed.Summary)
	}
	if parsed.Title != "" || len(parsed.Skills) != 0 {
		t.Error("short input should produce an empty parse")
	}
}

func TestExperienceLevelDefault(t *testing.T) {
	text := strings.Repeat("We are hiring a backend engineer to build services. ", 3)
	if got := extractExperienceLevel(text); got != "Mid-Level" {
		t.Errorf("default level = %q, want Mid-Level", got)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
