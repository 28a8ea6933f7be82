package repositories

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
)

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error // Soft delete

	// Query operations
	ListByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error)
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)

	// Ordering
	NextPosition(ctx context.Context, quizID uint) (int, error)
	Reorder(ctx context.Context, quizID uint, questionIDs []uint) error
}
