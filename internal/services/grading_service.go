package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/validator"
)

type gradingService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewGradingService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
) GradingService {
	return &gradingService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// GradeShortAnswer awards manual points to one short-answer entry and
// recomputes the stored total from the full detail list. Re-grading the same
// question overwrites the previous award; grading a question twice with the
// same points changes nothing.
func (s *gradingService) GradeShortAnswer(ctx context.Context, resultID uint, req *GradeShortAnswerRequest, adminID string) (*models.Result, error) {
	s.logger.Info("Grading short answer",
		"result_id", resultID,
		"question_id", req.QuestionID,
		"points", req.PointsAwarded,
		"admin_id", adminID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.repo.Result().GetByID(ctx, resultID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, result.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != adminID {
		return nil, NewPermissionError(adminID, result.QuizID, "quiz", "grade", "not owner")
	}

	details, err := result.Details()
	if err != nil {
		return nil, err
	}

	graded := false
	for i := range details {
		if details[i].QuestionID != req.QuestionID {
			continue
		}
		if details[i].QuestionType != models.ShortAnswer {
			return nil, ErrGradingNotAllowed
		}
		if req.PointsAwarded > details[i].Points {
			return nil, ErrGradingInvalidScore
		}

		awarded := req.PointsAwarded
		details[i].PointsAwarded = &awarded
		details[i].Pending = false
		graded = true
		break
	}
	if !graded {
		return nil, ErrQuestionNotFound
	}

	result.TotalScore = RecomputeTotal(details)
	if err := result.SetDetails(details); err != nil {
		return nil, err
	}

	if err := s.repo.Result().Update(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to update result: %w", err)
	}

	event := events.NewResultRegradedEvent(events.ResultRegradedEvent{
		ResultID:   result.ID,
		QuizID:     result.QuizID,
		QuestionID: req.QuestionID,
		GradedBy:   adminID,
		TotalScore: result.TotalScore,
	})
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}

	s.logger.Info("Short answer graded",
		"result_id", result.ID,
		"total_score", result.TotalScore)
	return result, nil
}

// RecomputeTotal derives the total score from the detail list alone. Auto
// scored questions contribute their points when answered correctly; short
// answers contribute only what manual grading awarded them.
func RecomputeTotal(details []models.QuestionDetail) int {
	total := 0
	for _, d := range details {
		if d.QuestionType == models.ShortAnswer {
			if d.PointsAwarded != nil {
				total += *d.PointsAwarded
			}
			continue
		}
		if d.IsCorrect {
			total += d.Points
		}
	}
	return total
}
