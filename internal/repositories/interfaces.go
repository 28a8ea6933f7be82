package repositories

import (
	"errors"
	"time"

	"github.com/quizdesk/quiz-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	Status    *models.QuizStatus `json:"status"`
	CreatedBy *string            `json:"created_by"`
	Search    string             `json:"search"`
	DateFrom  *time.Time         `json:"date_from"`
	DateTo    *time.Time         `json:"date_to"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`    // "created_at", "title", "published_at"
	SortOrder string             `json:"sort_order"` // "asc", "desc"
}

type ResultFilters struct {
	ParticipantName string     `json:"participant_name"`
	PendingOnly     bool       `json:"pending_only"`
	DateFrom        *time.Time `json:"date_from"`
	DateTo          *time.Time `json:"date_to"`
	Limit           int        `json:"limit"`
	Offset          int        `json:"offset"`
	SortBy          string     `json:"sort_by"`    // "completed_at", "total_score", "participant_name"
	SortOrder       string     `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	IsActive *bool  `json:"is_active"`
	Search   string `json:"search"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// Repository bundles the per-entity repositories behind one dependency so
// services take a single constructor argument.
type Repository interface {
	Quiz() QuizRepository
	Question() QuestionRepository
	Result() ResultRepository
	User() UserRepository
}

// IsNotFoundError reports whether err is the backing store's missing-record
// error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
