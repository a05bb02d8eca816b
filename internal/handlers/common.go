package handlers

import (
	"errors"
	"net/http"

	"interview-engine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error" example:"something went wrong"`
}

// respondError maps the service error taxonomy onto HTTP statuses: input
// problems are 400, unknown sessions 404, everything unanticipated a generic
// 500 that leaks nothing.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		stateErr      *services.InvalidStateError
		genErr        *services.QuestionGenerationError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: stateErr.Error()})
	case errors.As(err, &genErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not produce a question, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
