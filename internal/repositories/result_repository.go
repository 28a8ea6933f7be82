package repositories

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
)

// ResultRepository interface for result-specific operations
type ResultRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id uint) (*models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	ListByQuiz(ctx context.Context, quizID uint, filters ResultFilters) ([]*models.Result, int64, error)
	GetAllByQuiz(ctx context.Context, quizID uint) ([]*models.Result, error)
	GetPendingGrading(ctx context.Context, quizID uint) ([]*models.Result, error)
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)
}
