package services

import (
	"context"
	"errors"
	"testing"

	"interview-engine-backend/internal/llm"
	"interview-engine-backend/internal/models"

	"go.uber.org/zap"
)

func testQuestion(maxScore float64) *models.Question {
	return &models.Question{
		ID:               "q-1",
		Category:         models.CategoryTechnical,
		Difficulty:       models.DifficultyMedium,
		Text:             "Explain indexing.",
		ExpectedKeywords: []string{"b-tree"},
		TimeLimit:        240,
		MaxScore:         maxScore,
		Topic:            "databases",
	}
}

func evaluateWith(t *testing.T, question *models.Question, responses ...llm.MockResponse) *models.Evaluation {
	t.Helper()
	e := NewEvaluator(llm.NewMockProvider(responses...), zap.NewNop())
	return e.Evaluate(context.Background(), question, "my answer", 100, backendSession())
}

func TestEvaluateParsesScores(t *testing.T) {
	ev := evaluateWith(t, testQuestion(10), llm.MockResponse{
		Content: `{"score": 8.5, "feedback": "good depth", "strengths": ["examples"], "weaknesses": ["brevity"], "technical_accuracy": 9, "communication_skills": 7, "problem_solving": 8, "confidence": 6, "relevance": 9}`,
	})

	if ev.Score != 8.5 {
		t.Errorf("expected 8.5, got %v", ev.Score)
	}
	if ev.MaxScore != 10 {
		t.Errorf("expected max 10, got %v", ev.MaxScore)
	}
	if ev.Feedback != "good depth" {
		t.Errorf("unexpected feedback %q", ev.Feedback)
	}
	if ev.Subscores.TechnicalAccuracy != 9 {
		t.Errorf("unexpected subscore %v", ev.Subscores.TechnicalAccuracy)
	}
}

func TestEvaluateClampsHugeScore(t *testing.T) {
	ev := evaluateWith(t, testQuestion(10), llm.MockResponse{
		Content: `{"score": 9000, "technical_accuracy": 55}`,
	})

	if ev.Score != 10 {
		t.Errorf("score must be clamped to max, got %v", ev.Score)
	}
	if ev.Subscores.TechnicalAccuracy != 10 {
		t.Errorf("subscores clamp to 10, got %v", ev.Subscores.TechnicalAccuracy)
	}
}

func TestEvaluateClampsNegativeScore(t *testing.T) {
	ev := evaluateWith(t, testQuestion(10), llm.MockResponse{
		Content: `{"score": -42}`,
	})

	if ev.Score != 0 {
		t.Errorf("score must be clamped to 0, got %v", ev.Score)
	}
}

func TestEvaluateNeutralOnServiceError(t *testing.T) {
	ev := evaluateWith(t, testQuestion(10), llm.MockResponse{Err: errors.New("down")})

	if ev.Score != 5 {
		t.Errorf("neutral score should be 5, got %v", ev.Score)
	}
	if ev.Feedback == "" {
		t.Error("neutral evaluation still carries feedback")
	}
	if ev.Subscores.Relevance != 5 {
		t.Errorf("neutral subscores sit at the midpoint, got %v", ev.Subscores.Relevance)
	}
}

func TestEvaluateNeutralRespectsSmallMaxScore(t *testing.T) {
	ev := evaluateWith(t, testQuestion(3), llm.MockResponse{Err: errors.New("down")})

	if ev.Score != 3 {
		t.Errorf("neutral score is min(5, max), got %v", ev.Score)
	}
}

func TestEvaluateNeutralOnGarbage(t *testing.T) {
	ev := evaluateWith(t, testQuestion(10), llm.MockResponse{Content: "no json here"})

	if ev.Score != 5 {
		t.Errorf("garbage responses degrade to neutral, got %v", ev.Score)
	}
}
