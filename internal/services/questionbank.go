package services

import (
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"interview-engine-backend/internal/models"

	"github.com/google/uuid"
)

//go:embed questionbank.yaml
var questionBankYAML []byte

type bankEntry struct {
	Text          string   `yaml:"text"`
	Keywords      []string `yaml:"keywords"`
	SampleAnswers []string `yaml:"sample_answers"`
	Topic         string   `yaml:"topic"`
	TimeLimit     int      `yaml:"time_limit"`
	MaxScore      float64  `yaml:"max_score"`
}

type bankFile struct {
	Version   int                                          `yaml:"version"`
	Positions map[string]map[string]map[string][]bankEntry `yaml:"positions"`
}

// QuestionBank is the static fallback taxonomy, authored in YAML and keyed
// by position, category and difficulty.
type QuestionBank struct {
	version   int
	positions map[string]map[string]map[string][]bankEntry
}

func NewQuestionBank() (*QuestionBank, error) {
	var f bankFile
	if err := yaml.Unmarshal(questionBankYAML, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return &QuestionBank{version: f.Version, positions: f.Positions}, nil
}

// Pick returns a random bank question for the exact position/category/
// difficulty, skipping texts already used in the session. When every
// candidate has been used the unfiltered set is reused: repeating a question
// beats returning nothing. Nil means the taxonomy has no matching entries.
func (b *QuestionBank) Pick(position, category, difficulty string, usedTexts []string) *models.Question {
	byCategory, ok := b.positions[position]
	if !ok {
		return nil
	}
	byDifficulty, ok := byCategory[category]
	if !ok {
		return nil
	}
	entries, ok := byDifficulty[difficulty]
	if !ok || len(entries) == 0 {
		return nil
	}

	used := make(map[string]bool, len(usedTexts))
	for _, t := range usedTexts {
		used[t] = true
	}

	var fresh []bankEntry
	for _, e := range entries {
		if !used[e.Text] {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) == 0 {
		fresh = entries
	}

	e := fresh[rand.Intn(len(fresh))]

	q := &models.Question{
		ID:               uuid.NewString(),
		QuestionCode:     newQuestionCode(),
		Category:         category,
		Difficulty:       difficulty,
		Text:             e.Text,
		ExpectedKeywords: append([]string(nil), e.Keywords...),
		SampleAnswers:    append([]string(nil), e.SampleAnswers...),
		TimeLimit:        e.TimeLimit,
		MaxScore:         e.MaxScore,
		Topic:            e.Topic,
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = defaultTimeLimit
	}
	if q.MaxScore <= 0 {
		q.MaxScore = defaultMaxScore
	}
	return q
}

func newQuestionCode() string {
	return fmt.Sprintf("Q-%06d", rand.Intn(1000000))
}
