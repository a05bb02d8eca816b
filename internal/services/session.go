package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"interview-engine-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService owns the session lifecycle. Sessions live in memory;
// operations on the same session are serialized by a per-session mutex while
// distinct sessions proceed in parallel.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	sequencer *Sequencer
	evaluator *Evaluator
	scoring   *ScoringService
	archive   *ArchiveService
	logger    *zap.Logger
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
	// Evaluations are derived state, cached here rather than stored on the
	// session so results stay consistent with the accumulated score.
	evaluations []models.Evaluation
}

func NewSessionService(sequencer *Sequencer, evaluator *Evaluator, scoring *ScoringService, archive *ArchiveService, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:  make(map[string]*sessionEntry),
		sequencer: sequencer,
		evaluator: evaluator,
		scoring:   scoring,
		archive:   archive,
		logger:    logger,
	}
}

type CreateSessionInput struct {
	Type             string   `json:"type"`
	Industry         string   `json:"industry"`
	Position         string   `json:"position"`
	Difficulty       string   `json:"difficulty"`
	TotalQuestions   int      `json:"total_questions"`
	ExperienceLevel  string   `json:"experience_level"`
	CandidateName    string   `json:"candidate_name"`
	JobRequirements  []string `json:"job_requirements"`
	RoleCompetencies []string `json:"role_competencies"`
}

var validTypes = map[string]bool{
	models.InterviewTypeTechnical:   true,
	models.InterviewTypeBehavioral:  true,
	models.InterviewTypeMixed:       true,
	models.InterviewTypeRoleBased:   true,
	models.InterviewTypeJobSpecific: true,
}

var validDifficulties = map[string]bool{
	models.DifficultyEasy:   true,
	models.DifficultyMedium: true,
	models.DifficultyHard:   true,
}

func validateCreate(in CreateSessionInput) error {
	var violations []string

	if !validTypes[in.Type] {
		violations = append(violations, fmt.Sprintf("type must be one of technical, behavioral, mixed, role-based, job-specific (got %q)", in.Type))
	}
	if in.Industry == "" {
		violations = append(violations, "industry is required")
	}
	if in.Position == "" {
		violations = append(violations, "position is required")
	}
	if !validDifficulties[in.Difficulty] {
		violations = append(violations, fmt.Sprintf("difficulty must be one of easy, medium, hard (got %q)", in.Difficulty))
	}
	if in.TotalQuestions < 1 {
		violations = append(violations, "total_questions must be at least 1")
	}
	if in.Type == models.InterviewTypeRoleBased {
		if in.ExperienceLevel == "" {
			violations = append(violations, "experience_level is required for role-based interviews")
		}
		if len(in.RoleCompetencies) == 0 {
			violations = append(violations, "role_competencies are required for role-based interviews")
		}
	}
	if in.Type == models.InterviewTypeJobSpecific && len(in.JobRequirements) == 0 {
		violations = append(violations, "job_requirements are required for job-specific interviews")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Create validates the request, seeds the deterministic opener (and, for a
// one-question interview, the salary closer) and registers the session.
func (s *SessionService) Create(in CreateSessionInput) (*models.Session, *models.Question, error) {
	if err := validateCreate(in); err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		ID:               uuid.NewString(),
		Type:             in.Type,
		Industry:         in.Industry,
		Position:         in.Position,
		Difficulty:       in.Difficulty,
		ExperienceLevel:  in.ExperienceLevel,
		CandidateName:    in.CandidateName,
		TotalQuestions:   in.TotalQuestions,
		Status:           models.SessionStatusActive,
		JobRequirements:  in.JobRequirements,
		RoleCompetencies: in.RoleCompetencies,
		StartTime:        time.Now(),
	}

	opener := BuildOpener(session)
	session.Questions = append(session.Questions, *opener)
	session.MaxPossibleScore += opener.MaxScore

	// A one-question interview still gets its closer so the opener/closer
	// pairing holds; only the opener is ever asked.
	if in.TotalQuestions == 1 {
		closer := BuildSalaryCloser(session)
		session.Questions = append(session.Questions, *closer)
		session.MaxPossibleScore += closer.MaxScore
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Info("interview session created",
		zap.String("session_id", session.ID),
		zap.String("type", session.Type),
		zap.String("position", session.Position),
		zap.Int("total_questions", session.TotalQuestions))

	snap := snapshot(session)
	return snap, &snap.Questions[0], nil
}

func (s *SessionService) entry(id string) (*sessionEntry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Resource: "session", ID: id}
	}
	return e, nil
}

// Get returns a point-in-time copy of the session.
func (s *SessionService) Get(id string) (*models.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.session), nil
}

func (s *SessionService) Pause(id string) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Status != models.SessionStatusActive {
		return &InvalidStateError{Current: e.session.Status, Expected: models.SessionStatusActive}
	}
	e.session.Status = models.SessionStatusPaused
	return nil
}

func (s *SessionService) Resume(id string) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Status != models.SessionStatusPaused {
		return &InvalidStateError{Current: e.session.Status, Expected: models.SessionStatusPaused}
	}
	e.session.Status = models.SessionStatusActive
	return nil
}

// NextQuestion materializes the question at the current index. The index
// itself only moves on submit-answer, so a generation failure leaves the
// session exactly where it was.
func (s *SessionService) NextQuestion(ctx context.Context, id string) (*models.Question, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.session
	if session.Status != models.SessionStatusActive {
		return nil, &InvalidStateError{Current: session.Status, Expected: models.SessionStatusActive}
	}
	if session.CurrentQuestion >= session.TotalQuestions {
		return nil, &InvalidStateError{Current: "all questions asked", Expected: "an unanswered question"}
	}

	q, err := s.sequencer.NextQuestion(ctx, session)
	if err != nil {
		return nil, err
	}

	copied := *q
	return &copied, nil
}

// SubmitAnswer evaluates the answer for the current question, records both,
// and advances the interview, completing it after the final question.
// Evaluation failures never surface: the evaluator degrades internally.
func (s *SessionService) SubmitAnswer(ctx context.Context, id, answerText string, timeSpent int) (*models.Evaluation, *models.Session, bool, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, nil, false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.session
	if session.Status != models.SessionStatusActive {
		return nil, nil, false, &InvalidStateError{Current: session.Status, Expected: models.SessionStatusActive}
	}
	idx := session.CurrentQuestion
	if idx >= session.TotalQuestions || idx >= len(session.Questions) {
		return nil, nil, false, &InvalidStateError{Current: "no current question", Expected: "a question awaiting an answer"}
	}

	question := &session.Questions[idx]
	evaluation := s.evaluator.Evaluate(ctx, question, answerText, timeSpent, session)

	session.Answers = append(session.Answers, models.Answer{
		QuestionID:       question.ID,
		QuestionCode:     question.QuestionCode,
		Text:             answerText,
		TimeSpentSeconds: timeSpent,
		SubmittedAt:      time.Now(),
	})
	session.ScoreHistory = append(session.ScoreHistory, evaluation.Score)
	session.TotalScore += evaluation.Score
	e.evaluations = append(e.evaluations, *evaluation)

	session.CurrentQuestion++
	complete := session.CurrentQuestion >= session.TotalQuestions
	if complete {
		session.Status = models.SessionStatusCompleted
		now := time.Now()
		session.EndTime = &now
		s.archiveCompleted(e)
	}

	return evaluation, snapshot(session), complete, nil
}

// Results is only available once the interview has completed. A paused
// session with every answer in is still not completed; callers must resume
// and finish it.
func (s *SessionService) Results(id string) (*models.InterviewResults, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.session
	if session.Status != models.SessionStatusCompleted {
		return nil, &InvalidStateError{Current: session.Status, Expected: models.SessionStatusCompleted}
	}

	evaluations := append([]models.Evaluation(nil), e.evaluations...)
	return &models.InterviewResults{
		Session:      snapshot(session),
		OverallScore: s.scoring.OverallScore(evaluations),
		Summary:      s.scoring.Summary(session, evaluations),
		Evaluations:  evaluations,
	}, nil
}

// archiveCompleted hands the finished session to the archive, best-effort
// and off the request path. Called with the entry lock held, so it copies
// everything it needs first.
func (s *SessionService) archiveCompleted(e *sessionEntry) {
	if s.archive == nil {
		return
	}

	session := snapshot(e.session)
	evaluations := append([]models.Evaluation(nil), e.evaluations...)
	overall := s.scoring.OverallScore(evaluations)
	summary := s.scoring.Summary(session, evaluations)

	go func() {
		if err := s.archive.Save(session, overall, summary, evaluations); err != nil {
			s.logger.Warn("failed to archive completed session",
				zap.String("session_id", session.ID),
				zap.Error(err))
		}
	}()
}

// snapshot copies a session so callers can serialize it without racing
// against the next mutation.
func snapshot(s *models.Session) *models.Session {
	c := *s
	c.Questions = append([]models.Question(nil), s.Questions...)
	c.Answers = append([]models.Answer(nil), s.Answers...)
	c.ScoreHistory = append([]float64(nil), s.ScoreHistory...)
	c.JobRequirements = append([]string(nil), s.JobRequirements...)
	c.RoleCompetencies = append([]string(nil), s.RoleCompetencies...)
	return &c
}
