package services

import (
	"math/rand"

	"interview-engine-backend/internal/models"
)

// canonicalTopics is the fixed order in which fresh topics are introduced.
var canonicalTopics = []string{
	"algorithms",
	"databases",
	"system-design",
	"networking",
	"performance",
	"testing",
	"security",
	"cloud-computing",
	"microservices",
	"scalability",
	"architecture",
	"devops",
}

// deepPotentialTopics are the topics worth a follow-up question when the
// candidate is doing well on them.
var deepPotentialTopics = map[string]bool{
	"system-design":   true,
	"algorithms":      true,
	"databases":       true,
	"networking":      true,
	"security":        true,
	"cloud-computing": true,
	"microservices":   true,
	"performance":     true,
	"scalability":     true,
	"architecture":    true,
	"testing":         true,
	"devops":          true,
}

const (
	deepenScoreThreshold = 7.0
	maxQuestionsPerTopic = 3
)

// DecideTopic is the adaptation step: continue drilling into the current
// topic, or move on to the next one. Pure function over session history.
func DecideTopic(s *models.Session) (topic string, deepen bool) {
	current := currentTopic(s)

	if shouldDeepen(s, current) {
		return current, true
	}
	return nextTopic(s), false
}

func currentTopic(s *models.Session) string {
	if len(s.Questions) == 0 {
		return "introduction"
	}
	for i := len(s.Questions) - 1; i >= 0; i-- {
		if s.Questions[i].Topic != "" {
			return s.Questions[i].Topic
		}
	}
	return "general_technical"
}

func shouldDeepen(s *models.Session, topic string) bool {
	if !deepPotentialTopics[topic] {
		return false
	}

	asked := 0
	for _, q := range s.Questions {
		if q.Topic == topic {
			asked++
		}
	}
	if asked >= maxQuestionsPerTopic {
		return false
	}

	// Scores of answered questions on this topic, most recent last.
	var scores []float64
	for i, q := range s.Questions {
		if i >= len(s.ScoreHistory) {
			break
		}
		if q.Topic == topic {
			scores = append(scores, s.ScoreHistory[i])
		}
	}
	if len(scores) < 2 {
		return false
	}

	lastTwo := scores[len(scores)-2:]
	mean := (lastTwo[0] + lastTwo[1]) / 2
	return mean >= deepenScoreThreshold
}

func nextTopic(s *models.Session) string {
	seen := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		if q.Topic != "" {
			seen[q.Topic] = true
		}
	}

	for _, t := range canonicalTopics {
		if !seen[t] {
			return t
		}
	}

	// Every canonical topic has been visited; revisiting is allowed.
	return canonicalTopics[rand.Intn(len(canonicalTopics))]
}
