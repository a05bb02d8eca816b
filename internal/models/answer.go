package models

import "time"

type Answer struct {
	QuestionID       string    `json:"question_id"`
	QuestionCode     string    `json:"question_code,omitempty"`
	Text             string    `json:"text"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
