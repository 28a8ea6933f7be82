package repositories

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
)

// QuizRepository interface for quiz-specific operations
type QuizRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error // Soft delete

	// Query operations
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	GetByCreator(ctx context.Context, creatorID string, filters QuizFilters) ([]*models.Quiz, int64, error)
	GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error)

	// Status management
	UpdateStatus(ctx context.Context, id uint, status models.QuizStatus) error

	// Validation helpers
	ExistsByTitle(ctx context.Context, title, creatorID string, excludeID *uint) (bool, error)
	IsOwner(ctx context.Context, quizID uint, userID string) (bool, error)

	// Counts for list views
	CountQuestions(ctx context.Context, quizID uint) (int64, error)
	CountResults(ctx context.Context, quizID uint) (int64, error)
}
