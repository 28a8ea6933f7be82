package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

// SessionHandler serves the participant-facing quiz flow. These endpoints
// carry no admin identity; the session token is the only credential.
type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// StartSession opens a new session against a published quiz
func (h *SessionHandler) StartSession(c *gin.Context) {
	quizID := parseIDParam(c, "id")
	if quizID == 0 {
		return
	}

	started, err := h.sessionService.Start(c.Request.Context(), quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, started)
}

// BeginSession moves a session off the welcome screen
func (h *SessionHandler) BeginSession(c *gin.Context) {
	progress, err := h.sessionService.Begin(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// SetNameRequest carries the participant's display name
type SetNameRequest struct {
	Name string `json:"name"`
}

// SetName records the participant name and starts the quiz clock
func (h *SessionHandler) SetName(c *gin.Context) {
	var req SetNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	progress, err := h.sessionService.SetName(c.Request.Context(), c.Param("token"), req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetCurrentQuestion returns the question awaiting an answer
func (h *SessionHandler) GetCurrentQuestion(c *gin.Context) {
	view, err := h.sessionService.CurrentQuestion(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitAnswer scores one submission against the current question
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.sessionService.SubmitAnswer(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// GetProgress reports the session state including time remaining
func (h *SessionHandler) GetProgress(c *gin.Context) {
	progress, err := h.sessionService.Progress(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// FinalizeSession ends the session and returns its outcome
func (h *SessionHandler) FinalizeSession(c *gin.Context) {
	outcome, err := h.sessionService.Finalize(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
