package models

type Question struct {
	ID               string   `json:"id"`
	QuestionCode     string   `json:"question_code,omitempty"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Text             string   `json:"text"`
	ExpectedKeywords []string `json:"expected_keywords,omitempty"`
	SampleAnswers    []string `json:"sample_answers,omitempty"`
	TimeLimit        int      `json:"time_limit"`
	MaxScore         float64  `json:"max_score"`
	RoleSpecific     bool     `json:"role_specific"`
	Topic            string   `json:"topic,omitempty"`
	Depth            string   `json:"depth,omitempty"`
	Context          string   `json:"context,omitempty"`
	FollowUpStrategy string   `json:"follow_up_strategy,omitempty"`
}

const (
	QuestionDepthIntroductory = "introductory"
	QuestionDepthAdvanced     = "advanced"
)

const (
	CategoryIntroduction      = "introduction"
	CategoryTechnical         = "technical"
	CategoryBehavioral        = "behavioral"
	CategorySalaryNegotiation = "salary-negotiation"
)
