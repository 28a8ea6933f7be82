package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
)

type resultService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewResultService(repo repositories.Repository, logger *slog.Logger) ResultService {
	return &resultService{
		repo:   repo,
		logger: logger,
	}
}

func (s *resultService) GetByID(ctx context.Context, id uint, adminID string) (*models.Result, error) {
	result, err := s.repo.Result().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if err := s.checkQuizOwnership(ctx, result.QuizID, adminID, "read result"); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *resultService) ListByQuiz(ctx context.Context, quizID uint, adminID string, filters repositories.ResultFilters) (*ResultListResponse, error) {
	if err := s.checkQuizOwnership(ctx, quizID, adminID, "list results"); err != nil {
		return nil, err
	}

	results, total, err := s.repo.Result().ListByQuiz(ctx, quizID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return &ResultListResponse{
		Results: results,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *resultService) GetPendingGrading(ctx context.Context, quizID uint, adminID string) ([]*models.Result, error) {
	if err := s.checkQuizOwnership(ctx, quizID, adminID, "list pending grading"); err != nil {
		return nil, err
	}

	results, err := s.repo.Result().GetPendingGrading(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending results: %w", err)
	}
	return results, nil
}

func (s *resultService) Delete(ctx context.Context, id uint, adminID string) error {
	s.logger.Info("Deleting result", "result_id", id, "admin_id", adminID)

	result, err := s.repo.Result().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrResultNotFound
		}
		return fmt.Errorf("failed to get result: %w", err)
	}
	if err := s.checkQuizOwnership(ctx, result.QuizID, adminID, "delete result"); err != nil {
		return err
	}

	if err := s.repo.Result().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

func (s *resultService) checkQuizOwnership(ctx context.Context, quizID uint, adminID, action string) error {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != adminID {
		return NewPermissionError(adminID, quizID, "quiz", action, "not owner")
	}
	return nil
}
