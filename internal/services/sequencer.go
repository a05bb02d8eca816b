package services

import (
	"context"
	"fmt"

	"interview-engine-backend/internal/models"

	"github.com/google/uuid"
)

// Sequencer decides what question N is. Index 0 is always the personalized
// opener (pre-seeded at session creation), the last index is always the
// salary-negotiation closer, and everything in between goes through topic
// adaptation and the generator.
type Sequencer struct {
	generator *QuestionGenerator
}

func NewSequencer(generator *QuestionGenerator) *Sequencer {
	return &Sequencer{generator: generator}
}

// NextQuestion returns the question for session.CurrentQuestion, appending
// it (and its max score) to the session when it is newly synthesized. On
// error the session is left untouched.
func (s *Sequencer) NextQuestion(ctx context.Context, session *models.Session) (*models.Question, error) {
	idx := session.CurrentQuestion

	// Index 0 is pre-seeded at creation; later indices may already exist if
	// the caller asks for the same question twice.
	if idx < len(session.Questions) {
		return &session.Questions[idx], nil
	}

	var q *models.Question
	if idx == session.TotalQuestions-1 {
		q = BuildSalaryCloser(session)
	} else {
		topic, deepen := DecideTopic(session)
		generated, err := s.generator.Generate(ctx, session, topic, deepen)
		if err != nil {
			return nil, err
		}
		q = generated
	}

	session.Questions = append(session.Questions, *q)
	session.MaxPossibleScore += q.MaxScore
	return &session.Questions[len(session.Questions)-1], nil
}

// BuildOpener synthesizes the personalized opening question from session
// attributes alone. No generative call is involved, so session creation
// always succeeds with a first question in place.
func BuildOpener(session *models.Session) *models.Question {
	greeting := "Tell me about yourself"
	if session.CandidateName != "" {
		greeting = fmt.Sprintf("Welcome, %s. Tell me about yourself", session.CandidateName)
	}

	text := fmt.Sprintf(
		"%s and walk me through your experience as a %s. What drew you to the %s industry, and what are you most proud of in your career so far?",
		greeting, session.Position, session.Industry)

	return &models.Question{
		ID:               uuid.NewString(),
		QuestionCode:     newQuestionCode(),
		Category:         models.CategoryIntroduction,
		Difficulty:       session.Difficulty,
		Text:             text,
		ExpectedKeywords: []string{"experience", "background", "motivation"},
		TimeLimit:        defaultTimeLimit,
		MaxScore:         defaultMaxScore,
		RoleSpecific:     true,
		Topic:            "introduction",
		Depth:            models.QuestionDepthIntroductory,
	}
}

// BuildSalaryCloser synthesizes the deterministic closing question.
func BuildSalaryCloser(session *models.Session) *models.Question {
	text := fmt.Sprintf(
		"Let's close with compensation. What salary range would you expect for a %s role in the %s industry, and how would you negotiate if the initial offer came in below it?",
		session.Position, session.Industry)

	return &models.Question{
		ID:               uuid.NewString(),
		QuestionCode:     newQuestionCode(),
		Category:         models.CategorySalaryNegotiation,
		Difficulty:       session.Difficulty,
		Text:             text,
		ExpectedKeywords: []string{"market research", "range", "negotiation", "total compensation"},
		TimeLimit:        defaultTimeLimit,
		MaxScore:         defaultMaxScore,
		RoleSpecific:     true,
		Topic:            "salary_negotiation",
		Depth:            models.QuestionDepthIntroductory,
	}
}
