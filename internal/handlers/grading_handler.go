package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

type GradingHandler struct {
	BaseHandler
	gradingService services.GradingService
}

func NewGradingHandler(gradingService services.GradingService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
	}
}

// GradeShortAnswer awards points for one short answer question on a stored
// result and recomputes the total score.
func (h *GradingHandler) GradeShortAnswer(c *gin.Context) {
	resultID := parseIDParam(c, "id")
	if resultID == 0 {
		return
	}
	questionID := parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	var req services.GradeShortAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.QuestionID = questionID

	h.LogRequest(c, "Grading short answer", "result_id", resultID, "question_id", req.QuestionID)

	result, err := h.gradingService.GradeShortAnswer(c.Request.Context(), resultID, &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
