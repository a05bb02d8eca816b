package services

import (
	"context"
	"errors"
	"testing"

	"interview-engine-backend/internal/llm"
	"interview-engine-backend/internal/models"

	"go.uber.org/zap"
)

func testGenerator(t *testing.T, responses ...llm.MockResponse) *QuestionGenerator {
	t.Helper()
	bank, err := NewQuestionBank()
	if err != nil {
		t.Fatalf("loading bank: %v", err)
	}
	return NewQuestionGenerator(llm.NewMockProvider(responses...), bank, zap.NewNop())
}

func backendSession() *models.Session {
	return &models.Session{
		ID:         "test-session",
		Type:       models.InterviewTypeTechnical,
		Industry:   "Finance",
		Position:   "Backend Engineer",
		Difficulty: models.DifficultyMedium,
	}
}

func TestGenerateNormalizesDefaults(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{
		Content: `{"text": "Explain sharding.", "topic": ""}`,
	})

	q, err := gen.Generate(context.Background(), backendSession(), "databases", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Explain sharding." {
		t.Errorf("unexpected text %q", q.Text)
	}
	if q.TimeLimit != defaultTimeLimit {
		t.Errorf("missing time limit should default to %d, got %d", defaultTimeLimit, q.TimeLimit)
	}
	if q.MaxScore != defaultMaxScore {
		t.Errorf("missing max score should default to %v, got %v", float64(defaultMaxScore), q.MaxScore)
	}
	if q.Topic != "databases" {
		t.Errorf("empty topic should fall back to the requested one, got %q", q.Topic)
	}
	if q.Depth != models.QuestionDepthIntroductory {
		t.Errorf("advance questions are introductory, got %q", q.Depth)
	}
	if q.ID == "" || q.QuestionCode == "" {
		t.Error("identifiers must be minted")
	}
}

func TestGenerateDeepenSetsAdvancedDepth(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{
		Content: `{"text": "Harder question.", "topic": "databases"}`,
	})

	q, err := gen.Generate(context.Background(), backendSession(), "databases", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Depth != models.QuestionDepthAdvanced {
		t.Errorf("deepened questions are advanced, got %q", q.Depth)
	}
}

func TestGenerateParsesFencedJSON(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{
		Content: "Here you go!\n```json\n{\"text\": \"What is a WAL?\", \"topic\": \"databases\"}\n```",
	})

	q, err := gen.Generate(context.Background(), backendSession(), "databases", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "What is a WAL?" {
		t.Errorf("second-chance parse failed, got %q", q.Text)
	}
}

func TestGenerateFallsBackOnServiceError(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{Err: errors.New("boom")})

	q, err := gen.Generate(context.Background(), backendSession(), "databases", false)
	if err != nil {
		t.Fatalf("fallback should absorb the error, got %v", err)
	}
	if q.Text == "" {
		t.Error("bank question expected")
	}
}

func TestGenerateFallsBackOnGarbage(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{Content: "I can't answer that, sorry."})

	q, err := gen.Generate(context.Background(), backendSession(), "databases", false)
	if err != nil {
		t.Fatalf("fallback should absorb garbage, got %v", err)
	}
	if q.Text == "" {
		t.Error("bank question expected")
	}
}

func TestGenerateFailsWhenBankEmptyToo(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{Err: errors.New("boom")})

	session := backendSession()
	session.Position = "Underwater Basket Weaver"

	_, err := gen.Generate(context.Background(), session, "databases", false)
	var genErr *QuestionGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected QuestionGenerationError, got %v", err)
	}
}

func TestGenerateBankAvoidsUsedTexts(t *testing.T) {
	gen := testGenerator(t, llm.MockResponse{Err: errors.New("boom")})

	session := backendSession()
	first, err := gen.Generate(context.Background(), session, "databases", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session.Questions = append(session.Questions, *first)

	second, err := gen.Generate(context.Background(), session, "databases", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Text == first.Text {
		t.Errorf("bank should avoid repeating %q while alternatives remain", first.Text)
	}
}
