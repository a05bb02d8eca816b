package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"interview-engine-backend/internal/llm"
	"interview-engine-backend/internal/models"

	"go.uber.org/zap"
)

func newTestService(t *testing.T, responses ...llm.MockResponse) *SessionService {
	t.Helper()
	bank, err := NewQuestionBank()
	if err != nil {
		t.Fatalf("loading question bank: %v", err)
	}
	provider := llm.NewMockProvider(responses...)
	log := zap.NewNop()
	generator := NewQuestionGenerator(provider, bank, log)
	return NewSessionService(
		NewSequencer(generator),
		NewEvaluator(provider, log),
		NewScoringService(),
		nil,
		log,
	)
}

func backendInput(total int) CreateSessionInput {
	return CreateSessionInput{
		Type:           models.InterviewTypeTechnical,
		Industry:       "Finance",
		Position:       "Backend Engineer",
		Difficulty:     models.DifficultyMedium,
		TotalQuestions: total,
	}
}

func failingProvider() llm.MockResponse {
	return llm.MockResponse{Err: errors.New("service unavailable")}
}

func TestCreateReportsAllViolations(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Create(CreateSessionInput{Type: "psychic", Difficulty: "impossible"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// type, industry, position, difficulty, total_questions all invalid.
	if len(verr.Violations) != 5 {
		t.Errorf("expected 5 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}
}

func TestCreateRequiresRoleFields(t *testing.T) {
	svc := newTestService(t)

	in := backendInput(3)
	in.Type = models.InterviewTypeRoleBased
	_, _, err := svc.Create(in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 2 {
		t.Errorf("expected experience_level and role_competencies violations, got %v", verr.Violations)
	}
}

func TestCreateSeedsOpener(t *testing.T) {
	svc := newTestService(t)

	session, opener, err := svc.Create(backendInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Status != models.SessionStatusActive {
		t.Errorf("expected active status, got %q", session.Status)
	}
	if len(session.Questions) != 1 {
		t.Fatalf("expected 1 pre-seeded question, got %d", len(session.Questions))
	}
	if session.CurrentQuestion != 0 {
		t.Errorf("expected index 0, got %d", session.CurrentQuestion)
	}
	if opener.Category != models.CategoryIntroduction {
		t.Errorf("expected introduction opener, got %q", opener.Category)
	}
	if session.MaxPossibleScore != opener.MaxScore {
		t.Errorf("max possible %v should equal opener max %v", session.MaxPossibleScore, opener.MaxScore)
	}
	if !strings.Contains(opener.Text, "Backend Engineer") || !strings.Contains(opener.Text, "Finance") {
		t.Errorf("opener not personalized: %q", opener.Text)
	}
}

func TestOneQuestionInterviewStillGetsCloser(t *testing.T) {
	svc := newTestService(t, failingProvider())

	session, _, err := svc.Create(backendInput(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Questions) != 2 {
		t.Fatalf("expected opener and closer, got %d questions", len(session.Questions))
	}
	if session.Questions[1].Category != models.CategorySalaryNegotiation {
		t.Errorf("second question should be the salary closer, got %q", session.Questions[1].Category)
	}

	_, snap, complete, err := svc.SubmitAnswer(context.Background(), session.ID, "my answer", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !complete || snap.Status != models.SessionStatusCompleted {
		t.Errorf("one-question interview should complete after one answer")
	}
}

func TestFullInterviewWithServiceDown(t *testing.T) {
	svc := newTestService(t, failingProvider())
	ctx := context.Background()

	session, _, err := svc.Create(backendInput(3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := session.ID

	// Q1: the opener is already current; answer it.
	eval, snap, complete, err := svc.SubmitAnswer(ctx, id, "I have eight years of backend experience.", 90)
	if err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if complete {
		t.Fatal("should not be complete after 1 of 3")
	}
	if eval.Score != 5 {
		t.Errorf("neutral evaluation should score 5, got %v", eval.Score)
	}
	if len(snap.Answers) != snap.CurrentQuestion {
		t.Errorf("answers (%d) must track index (%d)", len(snap.Answers), snap.CurrentQuestion)
	}

	// Q2: interior question comes from the fallback bank.
	q2, err := svc.NextQuestion(ctx, id)
	if err != nil {
		t.Fatalf("next 2: %v", err)
	}
	if q2.Category != models.CategoryTechnical {
		t.Errorf("bank fallback should be technical, got %q", q2.Category)
	}
	if _, _, _, err := svc.SubmitAnswer(ctx, id, "I would use a covering index.", 120); err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	// Q3: the last question is always the salary closer.
	q3, err := svc.NextQuestion(ctx, id)
	if err != nil {
		t.Fatalf("next 3: %v", err)
	}
	if q3.Category != models.CategorySalaryNegotiation {
		t.Errorf("final question should be salary negotiation, got %q", q3.Category)
	}

	_, snap, complete, err = svc.SubmitAnswer(ctx, id, "I would research market rates first.", 100)
	if err != nil {
		t.Fatalf("submit 3: %v", err)
	}
	if !complete {
		t.Fatal("expected completion")
	}
	if snap.Status != models.SessionStatusCompleted {
		t.Errorf("expected completed status, got %q", snap.Status)
	}
	if snap.EndTime == nil {
		t.Error("end time should be set on completion")
	}
	if snap.TotalScore > snap.MaxPossibleScore {
		t.Errorf("total %v exceeds max %v", snap.TotalScore, snap.MaxPossibleScore)
	}

	// Results remain valid with the service fully down.
	results, err := svc.Results(id)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if results.OverallScore.Percentage < 0 || results.OverallScore.Percentage > 100 {
		t.Errorf("percentage out of range: %v", results.OverallScore.Percentage)
	}
	if results.Summary.Performance == "" {
		t.Error("summary must not be empty")
	}
	if len(results.Evaluations) != 3 {
		t.Errorf("expected 3 evaluations, got %d", len(results.Evaluations))
	}
}

func TestGeneratedQuestionPath(t *testing.T) {
	evalJSON := `{"score": 8, "feedback": "solid", "strengths": ["clear"], "technical_accuracy": 8, "communication_skills": 7, "problem_solving": 8, "confidence": 7, "relevance": 9}`
	genJSON := `{"text": "How do B-tree indexes degrade under random inserts?", "topic": "databases", "expected_keywords": ["page splits"], "max_score": 10}`

	svc := newTestService(t,
		llm.MockResponse{Content: evalJSON},
		llm.MockResponse{Content: genJSON},
		llm.MockResponse{Content: evalJSON},
	)
	ctx := context.Background()

	session, _, err := svc.Create(backendInput(3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, _, err := svc.SubmitAnswer(ctx, session.ID, "answer one", 60); err != nil {
		t.Fatalf("submit: %v", err)
	}

	q2, err := svc.NextQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if q2.Text != "How do B-tree indexes degrade under random inserts?" {
		t.Errorf("unexpected question text: %q", q2.Text)
	}
	if q2.ID == "" || q2.QuestionCode == "" {
		t.Error("generated question must carry freshly minted identifiers")
	}

	// Asking again for the same index returns the same question, not a new one.
	again, err := svc.NextQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("repeat next: %v", err)
	}
	if again.ID != q2.ID {
		t.Error("repeated next-question at the same index should be stable")
	}
}

func TestPauseResume(t *testing.T) {
	svc := newTestService(t, failingProvider())
	ctx := context.Background()

	session, _, _ := svc.Create(backendInput(3))
	id := session.ID

	if _, _, _, err := svc.SubmitAnswer(ctx, id, "first", 10); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before, _ := svc.Get(id)

	if err := svc.Pause(id); err != nil {
		t.Fatalf("pause: %v", err)
	}

	// Mutations are rejected while paused.
	if _, err := svc.NextQuestion(ctx, id); err == nil {
		t.Error("next-question should fail while paused")
	}
	var stateErr *InvalidStateError
	if _, _, _, err := svc.SubmitAnswer(ctx, id, "x", 1); !errors.As(err, &stateErr) {
		t.Errorf("expected InvalidStateError while paused, got %v", err)
	}
	// Results are not available on a paused session either.
	if _, err := svc.Results(id); !errors.As(err, &stateErr) {
		t.Errorf("expected InvalidStateError for paused results, got %v", err)
	}

	if err := svc.Pause(id); err == nil {
		t.Error("pausing a paused session should fail")
	}
	if err := svc.Resume(id); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := svc.Resume(id); err == nil {
		t.Error("resuming an active session should fail")
	}

	after, _ := svc.Get(id)
	if after.CurrentQuestion != before.CurrentQuestion ||
		len(after.Questions) != len(before.Questions) ||
		len(after.Answers) != len(before.Answers) {
		t.Error("pause/resume must not change interview progress")
	}
}

func TestUnknownSession(t *testing.T) {
	svc := newTestService(t)

	var nf *NotFoundError
	if _, err := svc.Get("nope"); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if err := svc.Pause("nope"); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestConcurrentSubmitDoesNotDoubleAdvance(t *testing.T) {
	svc := newTestService(t, failingProvider())
	ctx := context.Background()

	session, _, _ := svc.Create(backendInput(3))
	id := session.ID

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, _, errs[i] = svc.SubmitAnswer(ctx, id, "concurrent answer", 30)
		}(i)
	}
	wg.Wait()

	// Only one question existed, so exactly one submission can win.
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 successful submit, got %d", succeeded)
	}

	snap, _ := svc.Get(id)
	if snap.CurrentQuestion != 1 || len(snap.Answers) != 1 {
		t.Errorf("index advanced %d times for one question", snap.CurrentQuestion)
	}
	if snap.TotalScore > snap.MaxPossibleScore {
		t.Errorf("double-counted score: %v > %v", snap.TotalScore, snap.MaxPossibleScore)
	}
}
