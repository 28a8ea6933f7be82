package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler     *QuizHandler
	questionHandler *QuestionHandler
	sessionHandler  *SessionHandler
	resultHandler   *ResultHandler
	gradingHandler  *GradingHandler
	userHandler     *UserHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:     NewQuizHandler(serviceManager.Quiz(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		sessionHandler:  NewSessionHandler(serviceManager.Session(), logger),
		resultHandler:   NewResultHandler(serviceManager.Result(), serviceManager.Export(), logger),
		gradingHandler:  NewGradingHandler(serviceManager.Grading(), logger),
		userHandler:     NewUserHandler(serviceManager.User(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.POST("/:id/publish", hm.quizHandler.PublishQuiz)
			quizzes.POST("/:id/archive", hm.quizHandler.ArchiveQuiz)
			quizzes.GET("/:id/share", hm.quizHandler.GetShareInfo)

			// Question management
			quizzes.POST("/:id/questions", hm.questionHandler.CreateQuestion)
			quizzes.GET("/:id/questions", hm.questionHandler.ListQuestions)
			quizzes.PUT("/:id/questions/reorder", hm.questionHandler.ReorderQuestions)

			// Participant entry point
			quizzes.POST("/:id/sessions", hm.sessionHandler.StartSession)

			// Result management
			quizzes.GET("/:id/results", hm.resultHandler.ListResults)
			quizzes.GET("/:id/results/pending", hm.resultHandler.GetPendingGrading)
			quizzes.GET("/:id/results/export", hm.resultHandler.ExportResults)
		}

		// Question routes
		questions := v1.Group("/questions")
		{
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		// Session routes (participant facing)
		sessions := v1.Group("/sessions")
		{
			sessions.POST("/:token/begin", hm.sessionHandler.BeginSession)
			sessions.POST("/:token/name", hm.sessionHandler.SetName)
			sessions.GET("/:token/question", hm.sessionHandler.GetCurrentQuestion)
			sessions.POST("/:token/answer", hm.sessionHandler.SubmitAnswer)
			sessions.GET("/:token", hm.sessionHandler.GetProgress)
			sessions.POST("/:token/finalize", hm.sessionHandler.FinalizeSession)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.GET("/:id", hm.resultHandler.GetResult)
			results.DELETE("/:id", hm.resultHandler.DeleteResult)

			// Manual grading
			results.POST("/:id/questions/:question_id", hm.gradingHandler.GradeShortAnswer)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	})
}
