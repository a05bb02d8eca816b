package models

// Evaluation is derived from a Question plus an Answer. It is computed at
// submit time and cached by the store; it is never persisted as session state.
type Evaluation struct {
	QuestionID             string    `json:"question_id"`
	Score                  float64   `json:"score"`
	MaxScore               float64   `json:"max_score"`
	Feedback               string    `json:"feedback"`
	Strengths              []string  `json:"strengths"`
	Weaknesses             []string  `json:"weaknesses"`
	Suggestions            []string  `json:"suggestions"`
	Subscores              Subscores `json:"subscores"`
	JobFitScore            *float64  `json:"job_fit_score,omitempty"`
	RoleCompetencyScore    *float64  `json:"role_competency_score,omitempty"`
	TopicAnalysis          string    `json:"topic_analysis,omitempty"`
	ImprovementSuggestions []string  `json:"improvement_suggestions"`
	NextSteps              string    `json:"next_steps,omitempty"`
}

// Subscores are each on a 0-10 scale.
type Subscores struct {
	TechnicalAccuracy   float64 `json:"technical_accuracy"`
	CommunicationSkills float64 `json:"communication_skills"`
	ProblemSolving      float64 `json:"problem_solving"`
	Confidence          float64 `json:"confidence"`
	Relevance           float64 `json:"relevance"`
}
