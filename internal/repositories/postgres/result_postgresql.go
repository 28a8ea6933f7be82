package postgres

import (
	"context"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r ResultPostgreSQL) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r ResultPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r ResultPostgreSQL) Update(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r ResultPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Result{}, id).Error
}

func (r ResultPostgreSQL) ListByQuiz(ctx context.Context, quizID uint, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	var results []*models.Result
	var total int64

	// apply filter first
	query := r.db.WithContext(ctx).Model(&models.Result{}).Where("quiz_id = ?", quizID)
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "completed_at"
	}
	query = applyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r ResultPostgreSQL) GetAllByQuiz(ctx context.Context, quizID uint) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("completed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r ResultPostgreSQL) GetPendingGrading(ctx context.Context, quizID uint) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Where("question_details @> ?", `[{"pending": true}]`).
		Order("completed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r ResultPostgreSQL) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Result{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// applyFilters applies common filters to a query
func (r ResultPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	if filters.ParticipantName != "" {
		query = query.Where("participant_name ILIKE ?", "%"+filters.ParticipantName+"%")
	}
	if filters.PendingOnly {
		query = query.Where("question_details @> ?", `[{"pending": true}]`)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}
	return query
}
