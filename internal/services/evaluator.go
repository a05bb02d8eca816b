package services

import (
	"context"
	"fmt"
	"strings"

	"interview-engine-backend/internal/llm"
	"interview-engine-backend/internal/models"

	"go.uber.org/zap"
)

// Evaluator scores one answer against its question. Evaluation failure is
// always absorbed: callers get a neutral evaluation, never an error.
type Evaluator struct {
	provider llm.Provider
	logger   *zap.Logger
}

func NewEvaluator(provider llm.Provider, logger *zap.Logger) *Evaluator {
	return &Evaluator{provider: provider, logger: logger}
}

type evaluatedAnswer struct {
	Score                  float64  `json:"score"`
	Feedback               string   `json:"feedback"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	Suggestions            []string `json:"suggestions"`
	TechnicalAccuracy      float64  `json:"technical_accuracy"`
	CommunicationSkills    float64  `json:"communication_skills"`
	ProblemSolving         float64  `json:"problem_solving"`
	Confidence             float64  `json:"confidence"`
	Relevance              float64  `json:"relevance"`
	JobFitScore            *float64 `json:"job_fit_score"`
	RoleCompetencyScore    *float64 `json:"role_competency_score"`
	TopicAnalysis          string   `json:"topic_analysis"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	NextSteps              string   `json:"next_steps"`
}

const evaluationSystemPrompt = `You are an experienced interviewer scoring a candidate's answer. Respond with ONLY a valid JSON object (no markdown, no code fences) of the form:

{
  "score": 7.5,
  "feedback": "two or three sentences of direct feedback",
  "strengths": ["..."],
  "weaknesses": ["..."],
  "suggestions": ["..."],
  "technical_accuracy": 7,
  "communication_skills": 7,
  "problem_solving": 7,
  "confidence": 7,
  "relevance": 7,
  "topic_analysis": "one sentence on topic mastery",
  "improvement_suggestions": ["..."],
  "next_steps": "one concrete next step"
}

"score" is on the question's own scale (its maximum is given in the prompt); the five sub-scores are each 0-10.`

// Evaluate scores answerText for question. On any service or parse failure
// it returns the neutral evaluation instead.
func (e *Evaluator) Evaluate(ctx context.Context, question *models.Question, answerText string, timeSpent int, session *models.Session) *models.Evaluation {
	prompt := e.buildPrompt(question, answerText, timeSpent, session)

	content, err := e.provider.Complete(ctx, evaluationSystemPrompt, prompt)
	if err != nil {
		e.logger.Warn("evaluation failed, using neutral result",
			zap.String("session_id", session.ID),
			zap.String("question_id", question.ID),
			zap.Error(err))
		return e.neutral(question)
	}

	var ev evaluatedAnswer
	if err := decodeModelJSON(content, &ev); err != nil {
		e.logger.Warn("unusable evaluation response, using neutral result",
			zap.String("session_id", session.ID),
			zap.String("question_id", question.ID))
		return e.neutral(question)
	}

	return &models.Evaluation{
		QuestionID:             question.ID,
		Score:                  clamp(ev.Score, 0, question.MaxScore),
		MaxScore:               question.MaxScore,
		Feedback:               ev.Feedback,
		Strengths:              ev.Strengths,
		Weaknesses:             ev.Weaknesses,
		Suggestions:            ev.Suggestions,
		Subscores: models.Subscores{
			TechnicalAccuracy:   clamp(ev.TechnicalAccuracy, 0, 10),
			CommunicationSkills: clamp(ev.CommunicationSkills, 0, 10),
			ProblemSolving:      clamp(ev.ProblemSolving, 0, 10),
			Confidence:          clamp(ev.Confidence, 0, 10),
			Relevance:           clamp(ev.Relevance, 0, 10),
		},
		JobFitScore:            clampPtr(ev.JobFitScore, 0, 10),
		RoleCompetencyScore:    clampPtr(ev.RoleCompetencyScore, 0, 10),
		TopicAnalysis:          ev.TopicAnalysis,
		ImprovementSuggestions: ev.ImprovementSuggestions,
		NextSteps:              ev.NextSteps,
	}
}

// neutral is the degraded evaluation: a middle-of-the-road score so an
// outage neither rewards nor punishes the candidate.
func (e *Evaluator) neutral(question *models.Question) *models.Evaluation {
	score := 5.0
	if question.MaxScore < score {
		score = question.MaxScore
	}
	return &models.Evaluation{
		QuestionID: question.ID,
		Score:      score,
		MaxScore:   question.MaxScore,
		Feedback:   "Your answer has been recorded. Detailed feedback is unavailable right now; a neutral score was assigned.",
		Subscores: models.Subscores{
			TechnicalAccuracy:   5,
			CommunicationSkills: 5,
			ProblemSolving:      5,
			Confidence:          5,
			Relevance:           5,
		},
		ImprovementSuggestions: []string{"Review this topic and compare your answer with authoritative sources."},
	}
}

func (e *Evaluator) buildPrompt(question *models.Question, answerText string, timeSpent int, session *models.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Position: %s (%s industry, %s difficulty).\n", session.Position, session.Industry, session.Difficulty)
	fmt.Fprintf(&b, "Question: %s\n", question.Text)
	if question.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s (depth: %s)\n", question.Topic, question.Depth)
	}
	if len(question.ExpectedKeywords) > 0 {
		fmt.Fprintf(&b, "Expected keywords: %s\n", strings.Join(question.ExpectedKeywords, ", "))
	}
	fmt.Fprintf(&b, "Maximum score: %.0f\n", question.MaxScore)
	fmt.Fprintf(&b, "Time spent: %d seconds (limit %d).\n", timeSpent, question.TimeLimit)
	if session.Type == models.InterviewTypeJobSpecific && len(session.JobRequirements) > 0 {
		fmt.Fprintf(&b, "Job requirements: %s. Include \"job_fit_score\" (0-10).\n", strings.Join(session.JobRequirements, ", "))
	}
	if session.Type == models.InterviewTypeRoleBased && len(session.RoleCompetencies) > 0 {
		fmt.Fprintf(&b, "Role competencies: %s. Include \"role_competency_score\" (0-10).\n", strings.Join(session.RoleCompetencies, ", "))
	}
	fmt.Fprintf(&b, "\nCandidate's answer:\n%s\n", answerText)

	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampPtr(v *float64, lo, hi float64) *float64 {
	if v == nil {
		return nil
	}
	c := clamp(*v, lo, hi)
	return &c
}
