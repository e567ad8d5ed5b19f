// Package speech computes paralinguistic metrics from candidate answer text.
// All thresholds are fixed design constants; changing them changes scoring
// behavior for every historical report comparison.
package speech

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/careerforge/interview-backend/internal/entity"
)

// referenceWPM is the assumed speaking rate used to estimate duration when
// no real elapsed time is available. Pace derived from this estimate is
// self-referential and will resolve near "Normal"; callers should supply
// measured durations whenever they have them.
const referenceWPM = 150

var fillerWords = []string{
	"um", "uh", "uhh", "umm", "er", "err", "ah", "ahh",
	"like", "you know", "basically", "actually", "literally",
	"so", "well", "i mean", "kind of", "sort of", "right",
	"okay so", "yeah so", "i guess", "i think like",
}

var confidenceIndicators = []string{
	"i believe", "i am confident", "definitely", "certainly",
	"absolutely", "i know", "i have experience", "i successfully",
}

var uncertaintyIndicators = []string{
	"i think maybe", "i'm not sure", "i don't know", "perhaps",
	"possibly", "might be", "could be", "i guess",
}

var fillerPatterns = compileWordPatterns(fillerWords)

func compileWordPatterns(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	}
	return patterns
}

// Analyze computes metrics for the given text assuming the reference
// speaking rate for duration estimation.
func Analyze(text string) entity.VoiceMetrics {
	return analyze(text, 0)
}

// AnalyzeWithDuration computes metrics using a measured answer duration.
// A non-positive duration falls back to the reference-rate estimate.
func AnalyzeWithDuration(text string, durationSeconds float64) entity.VoiceMetrics {
	return analyze(text, durationSeconds)
}

// AnalyzeTranscript concatenates all candidate turns and analyzes them as
// one body of text. elapsedSeconds is the accumulated real answer time, or
// zero when unknown.
func AnalyzeTranscript(turns []entity.Turn, elapsedSeconds float64) entity.VoiceMetrics {
	var parts []string
	for _, turn := range turns {
		if turn.Role == entity.RoleCandidate {
			parts = append(parts, turn.Text)
		}
	}
	return analyze(strings.Join(parts, " "), elapsedSeconds)
}

func analyze(text string, durationSeconds float64) entity.VoiceMetrics {
	if text == "" {
		return entity.VoiceMetrics{
			FillerWordsList: []string{},
			PaceRating:      "Normal",
			Feedback:        []string{},
		}
	}

	lower := strings.ToLower(text)
	totalWords := len(strings.Fields(lower))

	if durationSeconds <= 0 {
		durationSeconds = float64(totalWords) / referenceWPM * 60
	}

	var wordsPerMinute float64
	if durationSeconds > 0 {
		wordsPerMinute = float64(totalWords) / durationSeconds * 60
	}

	fillerCount := 0
	var foundFillers []string
	for i, pattern := range fillerPatterns {
		n := len(pattern.FindAllStringIndex(lower, -1))
		if n > 0 {
			fillerCount += n
			for j := 0; j < n; j++ {
				foundFillers = append(foundFillers, fillerWords[i])
			}
		}
	}

	var fillerRatio float64
	if totalWords > 0 {
		fillerRatio = float64(fillerCount) / float64(totalWords)
	}

	var clarityScore float64
	switch {
	case fillerRatio < 0.02:
		clarityScore = 95
	case fillerRatio < 0.05:
		clarityScore = 80
	case fillerRatio < 0.10:
		clarityScore = 60
	default:
		clarityScore = 40
	}

	var paceRating, paceFeedback string
	switch {
	case wordsPerMinute < 100:
		paceRating = "Too Slow"
		paceFeedback = "Try to speak a bit faster to maintain engagement."
	case wordsPerMinute < 130:
		paceRating = "Slightly Slow"
		paceFeedback = "Your pace is good but could be slightly faster."
	case wordsPerMinute < 170:
		paceRating = "Normal"
		paceFeedback = "Great speaking pace!"
	case wordsPerMinute < 200:
		paceRating = "Slightly Fast"
		paceFeedback = "Consider slowing down slightly for clarity."
	default:
		paceRating = "Too Fast"
		paceFeedback = "Slow down to ensure your points are understood."
	}

	confidenceCount := countPhrases(lower, confidenceIndicators)
	uncertaintyCount := countPhrases(lower, uncertaintyIndicators)

	confidenceScore := 70 + float64(confidenceCount)*5 - float64(uncertaintyCount)*10 - fillerRatio*100
	confidenceScore = math.Min(100, math.Max(0, confidenceScore))

	feedback := []string{paceFeedback}

	if fillerCount > 5 {
		feedback = append(feedback, fmt.Sprintf(
			"Try to reduce filler words like: %s", strings.Join(distinct(foundFillers, 3), ", ")))
	}
	if uncertaintyCount > 3 {
		feedback = append(feedback, "Use more confident language. Replace 'I think' with 'I believe' or 'I know'.")
	}
	if totalWords < 50 {
		feedback = append(feedback, "Your responses are quite short. Try to elaborate more with examples.")
	}

	return entity.VoiceMetrics{
		WordsPerMinute:           round1(wordsPerMinute),
		FillerWordCount:          fillerCount,
		FillerWordsList:          head(foundFillers, 10),
		TotalWords:               totalWords,
		EstimatedDurationSeconds: round1(durationSeconds),
		ConfidenceScore:          round1(confidenceScore),
		ClarityScore:             clarityScore,
		PaceRating:               paceRating,
		Feedback:                 feedback,
	}
}

// countPhrases counts how many of the given phrases occur in the text at
// least once. Repeats of the same phrase count once.
func countPhrases(lower string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

func distinct(words []string, limit int) []string {
	seen := make(map[string]bool, len(words))
	var out []string
	for _, word := range words {
		if !seen[word] {
			seen[word] = true
			out = append(out, word)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func head(words []string, limit int) []string {
	if words == nil {
		return []string{}
	}
	if len(words) > limit {
		return words[:limit]
	}
	return words
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
