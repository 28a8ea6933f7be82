package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// CreateQuiz creates a new draft quiz
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz retrieves a quiz by ID
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes lists the calling admin's quizzes
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	list, err := h.quizService.List(c.Request.Context(), adminID, h.parseQuizFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateQuiz updates a draft quiz
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz soft deletes a quiz
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id, adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Quiz deleted"})
}

// PublishQuiz moves a draft quiz live and assigns its access code
func (h *QuizHandler) PublishQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	h.LogRequest(c, "Publishing quiz", "quiz_id", id)

	quiz, err := h.quizService.Publish(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ArchiveQuiz retires a published quiz
func (h *QuizHandler) ArchiveQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	quiz, err := h.quizService.Archive(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// GetShareInfo returns the share link and access code for a published quiz
func (h *QuizHandler) GetShareInfo(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if quiz.Status != models.QuizPublished {
		c.JSON(http.StatusConflict, ErrorResponse{Message: "quiz is not published"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"share_link":  quiz.ShareLink,
		"access_code": quiz.AccessCode,
	})
}

func (h *QuizHandler) parseQuizFilters(c *gin.Context) repositories.QuizFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 20)

	filters := repositories.QuizFilters{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     size,
		Offset:    (page - 1) * size,
	}
	if status := c.Query("status"); status != "" {
		s := models.QuizStatus(status)
		filters.Status = &s
	}
	return filters
}
