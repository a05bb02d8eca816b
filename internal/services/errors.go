package services

import (
	"fmt"
	"strings"
)

// ValidationError carries every violation found in a request, not just the
// first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NotFoundError marks an unknown session id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// InvalidStateError marks an action that is not legal in the session's
// current status.
type InvalidStateError struct {
	Current  string
	Expected string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("session is %s, expected %s", e.Current, e.Expected)
}

// QuestionGenerationError means both the generative service and the fallback
// bank produced nothing usable. It never crosses the handler boundary with
// an advanced question index.
type QuestionGenerationError struct {
	Position string
	Reason   string
}

func (e *QuestionGenerationError) Error() string {
	return fmt.Sprintf("could not produce a question for %q: %s", e.Position, e.Reason)
}
