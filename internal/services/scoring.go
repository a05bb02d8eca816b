package services

import (
	"fmt"
	"sort"
	"strings"

	"interview-engine-backend/internal/models"
)

// ScoringService aggregates evaluations into the final report. All methods
// are pure functions over the session history.
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Grade bands. The same thresholds label per-topic performance.
const (
	gradeExcellentMin = 85.0
	gradeGoodMin      = 70.0
	gradeFairMin      = 55.0
)

func gradeForPercentage(p float64) string {
	switch {
	case p >= gradeExcellentMin:
		return "Excellent"
	case p >= gradeGoodMin:
		return "Good"
	case p >= gradeFairMin:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func (s *ScoringService) OverallScore(evaluations []models.Evaluation) models.OverallScore {
	var total, max float64
	for _, ev := range evaluations {
		total += ev.Score
		max += ev.MaxScore
	}

	percentage := 0.0
	if max > 0 {
		percentage = total / max * 100
	}

	return models.OverallScore{
		TotalScore:       total,
		MaxPossibleScore: max,
		Percentage:       percentage,
		Grade:            gradeForPercentage(percentage),
	}
}

// TopicAnalysis groups evaluations by their question's topic. Questions
// without a topic fall under "general". evaluations[i] corresponds to
// session.Questions[i].
func (s *ScoringService) TopicAnalysis(session *models.Session, evaluations []models.Evaluation) map[string]models.TopicStat {
	type acc struct {
		count int
		score float64
		max   float64
	}
	byTopic := make(map[string]*acc)

	for i, ev := range evaluations {
		topic := "general"
		if i < len(session.Questions) && session.Questions[i].Topic != "" {
			topic = session.Questions[i].Topic
		}
		a := byTopic[topic]
		if a == nil {
			a = &acc{}
			byTopic[topic] = a
		}
		a.count++
		a.score += ev.Score
		a.max += ev.MaxScore
	}

	result := make(map[string]models.TopicStat, len(byTopic))
	for topic, a := range byTopic {
		pct := 0.0
		if a.max > 0 {
			pct = a.score / a.max * 100
		}
		result[topic] = models.TopicStat{
			QuestionCount:       a.count,
			AverageScorePercent: pct,
			PerformanceLabel:    gradeForPercentage(pct),
		}
	}
	return result
}

// RankedStrengthsWeaknesses counts strength and weakness strings verbatim
// across all evaluations and returns the five most frequent of each. Ties
// keep first-seen order.
func (s *ScoringService) RankedStrengthsWeaknesses(evaluations []models.Evaluation) (strengths, weaknesses []string) {
	collect := func(pick func(models.Evaluation) []string) []string {
		counts := make(map[string]int)
		var order []string
		for _, ev := range evaluations {
			for _, item := range pick(ev) {
				if counts[item] == 0 {
					order = append(order, item)
				}
				counts[item]++
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return counts[order[a]] > counts[order[b]]
		})
		if len(order) > 5 {
			order = order[:5]
		}
		return order
	}

	strengths = collect(func(ev models.Evaluation) []string { return ev.Strengths })
	weaknesses = collect(func(ev models.Evaluation) []string { return ev.Weaknesses })
	return strengths, weaknesses
}

// Summary composes the final human-readable report. It stays valid on empty
// input: no evaluations yields the needs-improvement floor text and a
// learning path that still has its constant closing item.
func (s *ScoringService) Summary(session *models.Session, evaluations []models.Evaluation) models.Report {
	overall := s.OverallScore(evaluations)
	topics := s.TopicAnalysis(session, evaluations)
	strengths, weaknesses := s.RankedStrengthsWeaknesses(evaluations)

	report := models.Report{
		Performance:     s.performanceText(session, overall),
		Recommendations: s.recommendations(overall, topics),
		TopicAnalysis:   topics,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		LearningPath:    s.learningPath(session, topics),
	}

	if fit := averageJobFit(evaluations); fit != nil {
		report.JobFit = fmt.Sprintf(
			"Estimated fit for the described role: %.1f/10 based on how answers matched the job requirements.", *fit)
	}

	return report
}

func (s *ScoringService) performanceText(session *models.Session, overall models.OverallScore) string {
	switch overall.Grade {
	case "Excellent":
		return fmt.Sprintf(
			"Outstanding interview for the %s position: %.1f of %.1f points (%.0f%%). Answers were consistently strong across topics.",
			session.Position, overall.TotalScore, overall.MaxPossibleScore, overall.Percentage)
	case "Good":
		return fmt.Sprintf(
			"Solid interview for the %s position: %.1f of %.1f points (%.0f%%). Most answers landed well, with a few areas to polish.",
			session.Position, overall.TotalScore, overall.MaxPossibleScore, overall.Percentage)
	case "Fair":
		return fmt.Sprintf(
			"A fair interview for the %s position: %.1f of %.1f points (%.0f%%). The fundamentals are there, but several answers lacked depth.",
			session.Position, overall.TotalScore, overall.MaxPossibleScore, overall.Percentage)
	default:
		return fmt.Sprintf(
			"This interview for the %s position scored %.1f of %.1f points (%.0f%%). Focused preparation on the weak topics below will make the biggest difference.",
			session.Position, overall.TotalScore, overall.MaxPossibleScore, overall.Percentage)
	}
}

func (s *ScoringService) recommendations(overall models.OverallScore, topics map[string]models.TopicStat) []string {
	var recs []string

	switch overall.Grade {
	case "Excellent":
		recs = append(recs, "Keep interviewing at this level; consider mentoring others to consolidate your strengths.")
	case "Good":
		recs = append(recs, "Practice structuring answers: situation, approach, result. You are close to the top band.")
	case "Fair":
		recs = append(recs, "Rehearse answers aloud with a time limit to build depth and fluency.")
	default:
		recs = append(recs, "Build a study plan around the weak topics below and re-run a practice interview weekly.")
	}

	// Topic-specific items, weak first, deterministic order.
	for _, name := range sortedTopicNames(topics) {
		stat := topics[name]
		if stat.AverageScorePercent < gradeGoodMin {
			recs = append(recs, fmt.Sprintf("Focus on %s: averaged %.0f%% across %d question(s).", name, stat.AverageScorePercent, stat.QuestionCount))
		}
	}
	for _, name := range sortedTopicNames(topics) {
		stat := topics[name]
		if stat.AverageScorePercent >= gradeExcellentMin {
			recs = append(recs, fmt.Sprintf("You excel at %s; consider specializing further there.", name))
		}
	}

	if len(recs) > 8 {
		recs = recs[:8]
	}
	return recs
}

func (s *ScoringService) learningPath(session *models.Session, topics map[string]models.TopicStat) []string {
	var path []string

	if weak := pickTopic(topics, func(p float64) bool { return p < gradeGoodMin }); weak != "" {
		path = append(path, fmt.Sprintf("Deep-dive on %s: work through a structured course and apply it in a small project.", weak))
	}
	if strong := pickTopic(topics, func(p float64) bool { return p >= gradeExcellentMin }); strong != "" {
		path = append(path, fmt.Sprintf("Specialize in %s: take on harder problems and share what you learn.", strong))
	}

	role := strings.ToLower(session.Position)
	switch {
	case strings.Contains(role, "backend"):
		path = append(path, "Advanced learning: distributed systems patterns, database internals and API design at scale.")
	case strings.Contains(role, "frontend"):
		path = append(path, "Advanced learning: rendering performance, accessibility and large-scale state management.")
	case strings.Contains(role, "data"):
		path = append(path, "Advanced learning: experiment design, ML system design and data pipeline reliability.")
	case strings.Contains(role, "devops"), strings.Contains(role, "sre"):
		path = append(path, "Advanced learning: SLO-driven operations, infrastructure as code and incident management.")
	default:
		path = append(path, "Advanced learning: system design fundamentals and the architecture of services you use daily.")
	}

	path = append(path, "Schedule a follow-up mock interview in two weeks to measure progress.")
	return path
}

func sortedTopicNames(topics map[string]models.TopicStat) []string {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pickTopic returns the matching topic with the most questions; name order
// breaks ties so output is stable.
func pickTopic(topics map[string]models.TopicStat, match func(float64) bool) string {
	best := ""
	bestCount := -1
	for _, name := range sortedTopicNames(topics) {
		stat := topics[name]
		if match(stat.AverageScorePercent) && stat.QuestionCount > bestCount {
			best = name
			bestCount = stat.QuestionCount
		}
	}
	return best
}

func averageJobFit(evaluations []models.Evaluation) *float64 {
	var sum float64
	n := 0
	for _, ev := range evaluations {
		if ev.JobFitScore != nil {
			sum += *ev.JobFitScore
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
