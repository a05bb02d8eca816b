package models

type OverallScore struct {
	TotalScore       float64 `json:"total_score"`
	MaxPossibleScore float64 `json:"max_possible_score"`
	Percentage       float64 `json:"percentage"`
	Grade            string  `json:"grade"`
}

type TopicStat struct {
	QuestionCount       int     `json:"question_count"`
	AverageScorePercent float64 `json:"average_score_percent"`
	PerformanceLabel    string  `json:"performance_label"`
}

type Report struct {
	Performance     string               `json:"performance"`
	Recommendations []string             `json:"recommendations"`
	TopicAnalysis   map[string]TopicStat `json:"topic_analysis"`
	Strengths       []string             `json:"strengths"`
	Weaknesses      []string             `json:"weaknesses"`
	JobFit          string               `json:"job_fit,omitempty"`
	LearningPath    []string             `json:"learning_path"`
}

type InterviewResults struct {
	Session      *Session     `json:"session"`
	OverallScore OverallScore `json:"overall_score"`
	Summary      Report       `json:"summary"`
	Evaluations  []Evaluation `json:"evaluations"`
}
