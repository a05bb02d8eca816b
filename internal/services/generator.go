package services

import (
	"context"
	"fmt"
	"strings"

	"interview-engine-backend/internal/llm"
	"interview-engine-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeLimit = 240
	defaultMaxScore  = 10
)

// QuestionGenerator produces interior interview questions through the
// generative service, degrading to the static bank whenever the service is
// unavailable or returns something unusable.
type QuestionGenerator struct {
	provider llm.Provider
	bank     *QuestionBank
	logger   *zap.Logger
}

func NewQuestionGenerator(provider llm.Provider, bank *QuestionBank, logger *zap.Logger) *QuestionGenerator {
	return &QuestionGenerator{provider: provider, bank: bank, logger: logger}
}

type generatedQuestion struct {
	Text             string   `json:"text"`
	Category         string   `json:"category"`
	ExpectedKeywords []string `json:"expected_keywords"`
	SampleAnswers    []string `json:"sample_answers"`
	TimeLimit        int      `json:"time_limit"`
	MaxScore         float64  `json:"max_score"`
	Topic            string   `json:"topic"`
	Context          string   `json:"context"`
	FollowUpStrategy string   `json:"follow_up_strategy"`
}

const questionSystemPrompt = `You are a senior technical interviewer. Respond with ONLY a valid JSON object (no markdown, no code fences) of the form:

{
  "text": "the interview question",
  "category": "technical",
  "expected_keywords": ["keyword1", "keyword2"],
  "sample_answers": ["a strong sample answer"],
  "time_limit": 240,
  "max_score": 10,
  "topic": "the topic tag",
  "context": "one sentence of interviewer context",
  "follow_up_strategy": "what to probe next"
}`

// Generate asks the service for one question on the given topic. Any failure
// along the way falls back to the bank; an error is returned only when the
// bank also has nothing for this position.
func (g *QuestionGenerator) Generate(ctx context.Context, session *models.Session, topic string, deepen bool) (*models.Question, error) {
	prompt := g.buildPrompt(session, topic, deepen)

	content, err := g.provider.Complete(ctx, questionSystemPrompt, prompt)
	if err != nil {
		g.logger.Warn("question generation failed, using bank",
			zap.String("session_id", session.ID),
			zap.String("topic", topic),
			zap.Error(err))
		return g.fromBank(session)
	}

	var gen generatedQuestion
	if err := decodeModelJSON(content, &gen); err != nil || strings.TrimSpace(gen.Text) == "" {
		g.logger.Warn("unusable generated question, using bank",
			zap.String("session_id", session.ID),
			zap.String("topic", topic))
		return g.fromBank(session)
	}

	q := g.normalize(gen, session, topic, deepen)
	return q, nil
}

// normalize fills defaults and mints fresh identifiers. Whatever ids the
// service returned are discarded.
func (g *QuestionGenerator) normalize(gen generatedQuestion, session *models.Session, topic string, deepen bool) *models.Question {
	q := &models.Question{
		ID:               uuid.NewString(),
		QuestionCode:     newQuestionCode(),
		Category:         gen.Category,
		Difficulty:       session.Difficulty,
		Text:             strings.TrimSpace(gen.Text),
		ExpectedKeywords: gen.ExpectedKeywords,
		SampleAnswers:    gen.SampleAnswers,
		TimeLimit:        gen.TimeLimit,
		MaxScore:         gen.MaxScore,
		RoleSpecific:     session.Type == models.InterviewTypeRoleBased || session.Type == models.InterviewTypeJobSpecific,
		Topic:            gen.Topic,
		Context:          gen.Context,
		FollowUpStrategy: gen.FollowUpStrategy,
	}
	if q.Category == "" {
		q.Category = models.CategoryTechnical
	}
	if q.Topic == "" {
		q.Topic = topic
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = defaultTimeLimit
	}
	if q.MaxScore <= 0 {
		q.MaxScore = defaultMaxScore
	}
	if deepen {
		q.Depth = models.QuestionDepthAdvanced
	} else {
		q.Depth = models.QuestionDepthIntroductory
	}
	return q
}

func (g *QuestionGenerator) fromBank(session *models.Session) (*models.Question, error) {
	used := make([]string, 0, len(session.Questions))
	for _, q := range session.Questions {
		used = append(used, q.Text)
	}

	q := g.bank.Pick(session.Position, models.CategoryTechnical, session.Difficulty, used)
	if q == nil {
		return nil, &QuestionGenerationError{
			Position: session.Position,
			Reason:   "generative service unavailable and the fallback bank has no entries",
		}
	}
	return q, nil
}

func (g *QuestionGenerator) buildPrompt(session *models.Session, topic string, deepen bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate one %s interview question for a %s candidate in the %s industry.\n",
		session.Difficulty, session.Position, session.Industry)
	if session.ExperienceLevel != "" {
		fmt.Fprintf(&b, "Experience level: %s.\n", session.ExperienceLevel)
	}
	if len(session.JobRequirements) > 0 {
		fmt.Fprintf(&b, "Job requirements: %s.\n", strings.Join(session.JobRequirements, ", "))
	}
	if len(session.RoleCompetencies) > 0 {
		fmt.Fprintf(&b, "Role competencies to probe: %s.\n", strings.Join(session.RoleCompetencies, ", "))
	}

	if deepen {
		fmt.Fprintf(&b, "The candidate is doing well on %q. Ask a deeper, more advanced question on the same topic.\n", topic)
	} else {
		fmt.Fprintf(&b, "Move to a new topic: %q. Ask an introductory question on it.\n", topic)
	}

	// Up to the last 3 exchanges so the question builds on the conversation.
	start := len(session.Answers) - 3
	if start < 0 {
		start = 0
	}
	if len(session.Answers) > start {
		b.WriteString("\nRecent exchanges:\n")
		for i := start; i < len(session.Answers); i++ {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", session.Questions[i].Text, session.Answers[i].Text)
		}
	}

	return b.String()
}
