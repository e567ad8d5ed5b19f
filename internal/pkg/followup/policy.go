package followup

import "strings"

// MaxDepth is the hard cap on consecutive follow-up probes per question.
const MaxDepth = 2

// minSubstantiveWords is the word count below which an answer is judged too
// shallow to advance on.
const minSubstantiveWords = 30

// hedgingPhrases flag a vague answer when two or more distinct phrases occur.
var hedgingPhrases = []string{
	"i think",
	"maybe",
	"sometimes",
	"usually",
	"kind of",
	"sort of",
	"i guess",
	"probably",
}

// ShouldFollowUp decides whether to probe deeper into the candidate's last
// answer instead of advancing to the next question. It is a cheap
// deterministic gate evaluated before any generator call: depth is capped at
// MaxDepth regardless of content, short answers always trigger a probe, and
// otherwise the answer is scanned for hedging language.
func ShouldFollowUp(text string, depth int) bool {
	if depth >= MaxDepth {
		return false
	}

	if len(strings.Fields(text)) < minSubstantiveWords {
		return true
	}

	lower := strings.ToLower(text)
	distinct := 0
	for _, phrase := range hedgingPhrases {
		if strings.Contains(lower, phrase) {
			distinct++
			if distinct >= 2 {
				return true
			}
		}
	}

	return false
}
