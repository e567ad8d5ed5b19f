package resume

import (
	"regexp"
	"strings"
)

// ParsedJobDescription is the structured result of parsing a pasted job
// description.
type ParsedJobDescription struct {
	Title            string   `json:"title,omitempty"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Skills           []string `json:"skills"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	Summary          string   `json:"summary"`
}

const minParsableJDLength = 50

var jdSkillKeywords = []string{
	"python", "javascript", "typescript", "java", "c++", "c#", "go", "rust", "ruby", "php", "swift", "kotlin",
	"react", "vue", "angular", "next.js", "node.js", "express", "django", "flask", "fastapi", "spring",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "dynamodb", "cassandra",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform", "jenkins", "ci/cd", "github actions",
	"git", "agile", "scrum", "jira", "confluence",
	"machine learning", "deep learning", "nlp", "computer vision", "tensorflow", "pytorch", "scikit-learn",
	"data analysis", "pandas", "numpy", "tableau", "power bi", "spark", "hadoop",
	"rest api", "graphql", "microservices", "system design", "distributed systems",
	"leadership", "communication", "problem solving", "teamwork", "project management",
}

var bulletItemPattern = regexp.MustCompile(`[-•*]\s*(.+)`)

var seniorityBands = []struct {
	level   string
	phrases []string
}{
	{"Senior", []string{"10+ years", "10 years", "senior", "lead", "principal", "staff"}},
	{"Mid-Level", []string{"5+ years", "5 years", "6 years", "7 years", "mid-level", "mid level"}},
	{"Junior", []string{"2+ years", "3+ years", "2 years", "3 years", "junior"}},
	{"Intern", []string{"entry level", "entry-level", "0-2 years", "intern", "graduate", "fresher"}},
}

// ParseJobDescription applies the fixed heuristics to a pasted job
// description. Very short input produces an empty result with an explanatory
// summary rather than an error.
func ParseJobDescription(text string) *ParsedJobDescription {
	if len(strings.TrimSpace(text)) < minParsableJDLength {
		return &ParsedJobDescription{
			Requirements:     []string{},
			Responsibilities: []string{},
			Skills:           []string{},
			Summary:          "Job description too short to parse.",
		}
	}

	return &ParsedJobDescription{
		Title:            extractTitle(text),
		Requirements:     extractListItems(text, []string{"requirements", "qualifications", "what you need", "must have"}),
		Responsibilities: extractListItems(text, []string{"responsibilities", "what you'll do", "duties", "role"}),
		Skills:           extractJDSkills(text),
		ExperienceLevel:  extractExperienceLevel(text),
		Summary:          truncate(text, summaryLimit),
	}
}

// extractTitle looks for a plausible title line near the top.
func extractTitle(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if i >= 5 {
			break
		}
		clean := strings.TrimSpace(line)
		if len(clean) > 10 && len(clean) < 100 && !strings.HasPrefix(clean, "•") &&
			!strings.HasPrefix(clean, "-") && !strings.HasPrefix(clean, "*") {
			return clean
		}
	}
	return ""
}

// extractJDSkills matches the skill vocabulary on word boundaries, unlike the
// looser substring matching used for resumes.
func extractJDSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make([]string, 0)
	for _, skill := range jdSkillKeywords {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
		if pattern.MatchString(lower) {
			found = append(found, displaySkill(skill))
		}
	}

	return found
}

func extractExperienceLevel(text string) string {
	lower := strings.ToLower(text)

	for _, band := range seniorityBands {
		for _, phrase := range band.phrases {
			if strings.Contains(lower, phrase) {
				return band.level
			}
		}
	}

	return "Mid-Level"
}

const maxListItems = 10

func extractListItems(text string, sectionHeaders []string) []string {
	items := make([]string, 0)

	for _, header := range sectionHeaders {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(header) + `[:\s]*\n?((?:[-•*]\s*.+\n?)+)`)
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		for _, bullet := range bulletItemPattern.FindAllStringSubmatch(match[1], -1) {
			item := strings.TrimSpace(bullet[1])
			if len(item) > 10 {
				items = append(items, item)
			}
		}
	}

	return capList(items, maxListItems)
}

// Context renders the parsed job description as interview configuration
// context.
func (jd *ParsedJobDescription) Context() string {
	var parts []string

	if jd.Title != "" {
		parts = append(parts, "Position: "+jd.Title)
	}
	if len(jd.Skills) > 0 {
		parts = append(parts, "Required Skills: "+strings.Join(capList(jd.Skills, 10), ", "))
	}
	if len(jd.Requirements) > 0 {
		parts = append(parts, "Key Requirements: "+strings.Join(capList(jd.Requirements, 5), "; "))
	}
	if len(jd.Responsibilities) > 0 {
		parts = append(parts, "Responsibilities: "+strings.Join(capList(jd.Responsibilities, 5), "; "))
	}

	return strings.Join(parts, "\n")
}
