package services

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/session"
)

// ===== QUIZ =====

type CreateQuizRequest struct {
	Title              string  `json:"title" validate:"required,min=1,max=200"`
	Description        *string `json:"description" validate:"omitempty,max=1000"`
	DurationMinutes    int     `json:"duration_minutes" validate:"min=0,max=300"`
	RandomizeQuestions bool    `json:"randomize_questions"`
	RandomizeOptions   bool    `json:"randomize_options"`
}

type UpdateQuizRequest struct {
	Title              *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description        *string `json:"description" validate:"omitempty,max=1000"`
	DurationMinutes    *int    `json:"duration_minutes" validate:"omitempty,min=0,max=300"`
	RandomizeQuestions *bool   `json:"randomize_questions"`
	RandomizeOptions   *bool   `json:"randomize_options"`
}

// QuizResponse wraps the stored quiz with the participant-facing share link,
// which only exists once the quiz is published.
type QuizResponse struct {
	models.Quiz
	ShareLink string `json:"share_link,omitempty"`
}

type QuizListResponse struct {
	Quizzes []*QuizResponse `json:"quizzes"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, adminID string) (*QuizResponse, error)
	GetByID(ctx context.Context, id uint, adminID string) (*QuizResponse, error)
	List(ctx context.Context, adminID string, filters repositories.QuizFilters) (*QuizListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateQuizRequest, adminID string) (*QuizResponse, error)
	Delete(ctx context.Context, id uint, adminID string) error

	Publish(ctx context.Context, id uint, adminID string) (*QuizResponse, error)
	Archive(ctx context.Context, id uint, adminID string) (*QuizResponse, error)
}

// ===== QUESTION =====

type CreateQuestionRequest struct {
	Type          models.QuestionType `json:"type" validate:"required,question_type"`
	Text          string              `json:"text" validate:"required,min=1,max=2000"`
	Options       []string            `json:"options" validate:"omitempty,max=10"`
	CorrectAnswer string              `json:"correct_answer" validate:"required,max=500"`
	Points        int                 `json:"points" validate:"omitempty,min=1,max=100"`
}

type UpdateQuestionRequest struct {
	Text          *string  `json:"text" validate:"omitempty,min=1,max=2000"`
	Options       []string `json:"options" validate:"omitempty,max=10"`
	CorrectAnswer *string  `json:"correct_answer" validate:"omitempty,max=500"`
	Points        *int     `json:"points" validate:"omitempty,min=1,max=100"`
}

type QuestionService interface {
	Create(ctx context.Context, quizID uint, req *CreateQuestionRequest, adminID string) (*models.Question, error)
	GetByID(ctx context.Context, id uint, adminID string) (*models.Question, error)
	ListByQuiz(ctx context.Context, quizID uint, adminID string) ([]*models.Question, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest, adminID string) (*models.Question, error)
	Delete(ctx context.Context, id uint, adminID string) error
	Reorder(ctx context.Context, quizID uint, questionIDs []uint, adminID string) error
}

// ===== SESSION =====

type StartSessionResponse struct {
	Token           string        `json:"token"`
	State           session.State `json:"state"`
	QuizID          uint          `json:"quiz_id"`
	QuizTitle       string        `json:"quiz_title"`
	TotalQuestions  int           `json:"total_questions"`
	DurationMinutes int           `json:"duration_minutes"`
}

// QuestionView is the participant-facing question payload. It never carries
// the correct answer.
type QuestionView struct {
	ID               uint                `json:"id"`
	Type             models.QuestionType `json:"type"`
	Text             string              `json:"text"`
	Options          []string            `json:"options,omitempty"`
	Points           int                 `json:"points"`
	Index            int                 `json:"index"`
	TotalQuestions   int                 `json:"total_questions"`
	AttemptsUsed     int                 `json:"attempts_used"`
	RemainingSeconds *int                `json:"remaining_seconds,omitempty"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type SessionOutcomeResponse struct {
	State            session.State           `json:"state"`
	QuizID           uint                    `json:"quiz_id"`
	ParticipantName  string                  `json:"participant_name"`
	TotalScore       int                     `json:"total_score"`
	TotalQuestions   int                     `json:"total_questions"`
	TimeSpentSeconds int                     `json:"time_spent_seconds"`
	EndReason        session.EndReason       `json:"end_reason"`
	Details          []models.QuestionDetail `json:"details"`
}

type SessionService interface {
	Start(ctx context.Context, quizID uint) (*StartSessionResponse, error)
	Begin(ctx context.Context, token string) (*session.Progress, error)
	SetName(ctx context.Context, token, name string) (*session.Progress, error)
	CurrentQuestion(ctx context.Context, token string) (*QuestionView, error)
	SubmitAnswer(ctx context.Context, token string, req *SubmitAnswerRequest) (*session.Submission, error)
	Progress(ctx context.Context, token string) (*session.Progress, error)
	Finalize(ctx context.Context, token string) (*SessionOutcomeResponse, error)

	// FinalizeExpired force-finalizes one expired session; the reaper calls
	// this on every sweep hit.
	FinalizeExpired(sess *session.Session)
}

// ===== RESULT =====

type ResultListResponse struct {
	Results []*models.Result `json:"results"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type ResultService interface {
	GetByID(ctx context.Context, id uint, adminID string) (*models.Result, error)
	ListByQuiz(ctx context.Context, quizID uint, adminID string, filters repositories.ResultFilters) (*ResultListResponse, error)
	GetPendingGrading(ctx context.Context, quizID uint, adminID string) ([]*models.Result, error)
	Delete(ctx context.Context, id uint, adminID string) error
}

// ===== GRADING =====

type GradeShortAnswerRequest struct {
	QuestionID    uint `json:"question_id" validate:"required"`
	PointsAwarded int  `json:"points_awarded" validate:"min=0"`
}

type GradingService interface {
	GradeShortAnswer(ctx context.Context, resultID uint, req *GradeShortAnswerRequest, adminID string) (*models.Result, error)
}

// ===== EXPORT =====

type ExportService interface {
	ExportResultsXLSX(ctx context.Context, quizID uint, adminID string) ([]byte, string, error)
	ExportResultsCSV(ctx context.Context, quizID uint, adminID string) ([]byte, string, error)
}

// ===== USER =====

type CreateUserRequest struct {
	ID       string `json:"id" validate:"required,max=255"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

type UserListResponse struct {
	Users  []*models.User `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
