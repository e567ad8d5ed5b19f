package entity

// Wire contracts for the response generator service. The core supplies the
// full needed context in the directive string; the service may additionally
// inject config-derived system context on its side.

type GenerateRequest struct {
	Directive string          `json:"directive"`
	Config    InterviewConfig `json:"config"`
}

type GenerateResponse struct {
	Message string `json:"message"`
}

type EvaluateRequest struct {
	Transcript string `json:"transcript"`
}

// EvaluateResponse carries the raw evaluation text. The payload is expected
// to parse as an Evaluation, possibly wrapped in markdown code fences.
type EvaluateResponse struct {
	Result string `json:"result"`
}

// Evaluation is the structured payload the evaluator is prompted to return.
type Evaluation struct {
	Score                int      `json:"score"`
	Summary              string   `json:"summary"`
	Strengths            []string `json:"strengths"`
	Improvements         []string `json:"improvements"`
	CommunicationScore   int      `json:"communication_score"`
	TechnicalScore       int      `json:"technical_score"`
	ProblemSolvingScore  int      `json:"problem_solving_score"`
	CultureFitScore      int      `json:"culture_fit_score"`
	ImprovementTips      []string `json:"improvement_tips"`
	RecommendedResources []string `json:"recommended_resources"`
}

type ASRTranscribeResponse struct {
	Transcriptions string `json:"transcriptions"`
}
