package handlers

import (
	"net/http"

	"interview-engine-backend/internal/services"
	"interview-engine-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	sessions *services.SessionService
	hub      *ws.Hub
}

func NewInterviewHandler(sessions *services.SessionService, hub *ws.Hub) *InterviewHandler {
	return &InterviewHandler{sessions: sessions, hub: hub}
}

// Start godoc
// @Summary      Start an interview session
// @Description  Creates a session and returns the personalized opening question
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        request body services.CreateSessionInput true "Interview parameters"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/interviews [post]
func (h *InterviewHandler) Start(c *gin.Context) {
	var req services.CreateSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, opener, err := h.sessions.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":          true,
		"session":          session,
		"current_question": opener,
	})
}

// Get godoc
// @Summary      Get a session snapshot
// @Tags         interviews
// @Produce      json
// @Param        id path string true "Session ID"
// @Router       /api/v1/interviews/{id} [get]
func (h *InterviewHandler) Get(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// NextQuestion godoc
// @Summary      Get the next interview question
// @Tags         interviews
// @Produce      json
// @Param        id path string true "Session ID"
// @Router       /api/v1/interviews/{id}/question [post]
func (h *InterviewHandler) NextQuestion(c *gin.Context) {
	id := c.Param("id")

	question, err := h.sessions.NextQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.WSMessage{Type: ws.EventQuestionAsked, Data: question})
	c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}

type SubmitAnswerRequest struct {
	Answer    string `json:"answer" binding:"required"`
	TimeSpent int    `json:"time_spent"`
}

// SubmitAnswer godoc
// @Summary      Submit an answer for the current question
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body SubmitAnswerRequest true "Answer"
// @Router       /api/v1/interviews/{id}/answer [post]
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	id := c.Param("id")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	evaluation, session, complete, err := h.sessions.SubmitAnswer(c.Request.Context(), id, req.Answer, req.TimeSpent)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.WSMessage{Type: ws.EventAnswerEvaluated, Data: evaluation})
	if complete {
		h.hub.Broadcast(id, ws.WSMessage{Type: ws.EventSessionCompleted, Data: session})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"evaluation":  evaluation,
		"session":     session,
		"is_complete": complete,
	})
}

// Pause godoc
// @Summary      Pause an active session
// @Tags         interviews
// @Produce      json
// @Param        id path string true "Session ID"
// @Router       /api/v1/interviews/{id}/pause [post]
func (h *InterviewHandler) Pause(c *gin.Context) {
	id := c.Param("id")

	if err := h.sessions.Pause(id); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.WSMessage{Type: ws.EventSessionPaused})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "interview paused"})
}

// Resume godoc
// @Summary      Resume a paused session
// @Tags         interviews
// @Produce      json
// @Param        id path string true "Session ID"
// @Router       /api/v1/interviews/{id}/resume [post]
func (h *InterviewHandler) Resume(c *gin.Context) {
	id := c.Param("id")

	if err := h.sessions.Resume(id); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(id, ws.WSMessage{Type: ws.EventSessionResumed})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "interview resumed"})
}

// Results godoc
// @Summary      Get final results for a completed session
// @Tags         interviews
// @Produce      json
// @Param        id path string true "Session ID"
// @Router       /api/v1/interviews/{id}/results [get]
func (h *InterviewHandler) Results(c *gin.Context) {
	results, err := h.sessions.Results(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
