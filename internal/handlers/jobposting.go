package handlers

import (
	"net/http"

	"interview-engine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type JobPostingHandler struct {
	parser *services.JobPostingService
}

func NewJobPostingHandler(parser *services.JobPostingService) *JobPostingHandler {
	return &JobPostingHandler{parser: parser}
}

type ParseJobPostingRequest struct {
	JobPosting string `json:"job_posting" binding:"required"`
}

// Parse godoc
// @Summary      Parse a job posting into structured data
// @Description  Always succeeds; unusable model output degrades to templated data
// @Tags         job-postings
// @Accept       json
// @Produce      json
// @Param        request body ParseJobPostingRequest true "Job posting text"
// @Router       /api/v1/job-postings/parse [post]
func (h *JobPostingHandler) Parse(c *gin.Context) {
	var req ParseJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	data := h.parser.Parse(c.Request.Context(), req.JobPosting)
	c.JSON(http.StatusOK, gin.H{"success": true, "job_data": data})
}
