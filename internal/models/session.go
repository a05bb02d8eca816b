package models

import "time"

type Session struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Industry        string     `json:"industry"`
	Position        string     `json:"position"`
	Difficulty      string     `json:"difficulty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	CandidateName   string     `json:"candidate_name,omitempty"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentQuestion int        `json:"current_question_index"`
	Status          string     `json:"status"`
	Questions       []Question `json:"questions"`
	Answers         []Answer   `json:"answers"`
	// ScoreHistory[i] is the score awarded for Answers[i]. Kept on the
	// session so topic adaptation can read per-question results without
	// re-running the evaluator.
	ScoreHistory     []float64  `json:"score_history"`
	TotalScore       float64    `json:"total_score"`
	MaxPossibleScore float64    `json:"max_possible_score"`
	JobRequirements  []string   `json:"job_requirements,omitempty"`
	RoleCompetencies []string   `json:"role_competencies,omitempty"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
}

const (
	SessionStatusActive    = "active"
	SessionStatusPaused    = "paused"
	SessionStatusCompleted = "completed"
)

const (
	InterviewTypeTechnical   = "technical"
	InterviewTypeBehavioral  = "behavioral"
	InterviewTypeMixed       = "mixed"
	InterviewTypeRoleBased   = "role-based"
	InterviewTypeJobSpecific = "job-specific"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)
