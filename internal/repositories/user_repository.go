package repositories

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
)

// UserRepository interface for user-specific operations
type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error // Soft delete

	// Query operations
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// Validation helpers
	ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error)
}
