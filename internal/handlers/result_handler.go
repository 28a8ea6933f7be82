package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	exportService services.ExportService
}

func NewResultHandler(resultService services.ResultService, exportService services.ExportService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		exportService: exportService,
	}
}

// ListResults lists stored results for one quiz
func (h *ResultHandler) ListResults(c *gin.Context) {
	quizID := parseIDParam(c, "id")
	if quizID == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	list, err := h.resultService.ListByQuiz(c.Request.Context(), quizID, adminID, h.parseResultFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetResult retrieves a single result with its question details
func (h *ResultHandler) GetResult(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	result, err := h.resultService.GetByID(c.Request.Context(), id, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPendingGrading lists results that still carry ungraded short answers
func (h *ResultHandler) GetPendingGrading(c *gin.Context) {
	quizID := parseIDParam(c, "id")
	if quizID == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	results, err := h.resultService.GetPendingGrading(c.Request.Context(), quizID, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// DeleteResult removes a stored result
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	if err := h.resultService.Delete(c.Request.Context(), id, adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Result deleted"})
}

// ExportResults streams the quiz's results as an xlsx or csv attachment
func (h *ResultHandler) ExportResults(c *gin.Context) {
	quizID := parseIDParam(c, "id")
	if quizID == 0 {
		return
	}
	adminID := requireAdminID(c)
	if adminID == "" {
		return
	}

	format := c.DefaultQuery("format", "xlsx")

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)
	switch format {
	case "xlsx":
		data, filename, err = h.exportService.ExportResultsXLSX(c.Request.Context(), quizID, adminID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, filename, err = h.exportService.ExportResultsCSV(c.Request.Context(), quizID, adminID)
		contentType = "text/csv"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "format must be xlsx or csv"})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ResultHandler) parseResultFilters(c *gin.Context) repositories.ResultFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 20)

	filters := repositories.ResultFilters{
		ParticipantName: c.Query("participant"),
		PendingOnly:     c.Query("pending") == "true",
		SortBy:          c.Query("sort_by"),
		SortOrder:       c.Query("sort_order"),
		Limit:           size,
		Offset:          (page - 1) * size,
	}
	if from := c.Query("date_from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = &parsed
		}
	}
	if to := c.Query("date_to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = &parsed
		}
	}
	return filters
}
