package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/session"
	"github.com/quizdesk/quiz-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     cache.CacheService
}

func NewQuestionService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheService cache.CacheService,
) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		validator: v,
		cache:     cacheService,
	}
}

func (s *questionService) Create(ctx context.Context, quizID uint, req *CreateQuestionRequest, adminID string) (*models.Question, error) {
	s.logger.Info("Creating question", "quiz_id", quizID, "admin_id", adminID, "type", req.Type)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.getEditableQuiz(ctx, quizID, adminID)
	if err != nil {
		return nil, err
	}

	options := normalizeOptions(req.Options)
	if errs := s.validator.Question().ValidateContent(req.Type, options, req.CorrectAnswer); len(errs) > 0 {
		return nil, errs
	}

	position, err := s.repo.Question().NextPosition(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute question position: %w", err)
	}

	points := req.Points
	if points == 0 {
		points = 1
	}

	question := &models.Question{
		QuizID:        quiz.ID,
		Type:          req.Type,
		Text:          strings.TrimSpace(req.Text),
		CorrectAnswer: session.ResolveCorrectAnswer(req.Type, req.CorrectAnswer, options),
		Points:        points,
		Position:      position,
	}
	if err := question.SetOptionList(options); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.invalidateSnapshot(ctx, quiz.ID)
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint, adminID string) (*models.Question, error) {
	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedQuiz(ctx, question.QuizID, adminID); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionService) ListByQuiz(ctx context.Context, quizID uint, adminID string) ([]*models.Question, error) {
	if _, err := s.getOwnedQuiz(ctx, quizID, adminID); err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest, adminID string) (*models.Question, error) {
	s.logger.Info("Updating question", "question_id", id, "admin_id", adminID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.getEditableQuiz(ctx, question.QuizID, adminID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		question.Text = strings.TrimSpace(*req.Text)
	}
	if req.Points != nil {
		question.Points = *req.Points
	}

	options, err := question.OptionList()
	if err != nil {
		return nil, err
	}
	if req.Options != nil {
		options = normalizeOptions(req.Options)
	}
	correctAnswer := question.CorrectAnswer
	if req.CorrectAnswer != nil {
		correctAnswer = *req.CorrectAnswer
	}

	if errs := s.validator.Question().ValidateContent(question.Type, options, correctAnswer); len(errs) > 0 {
		return nil, errs
	}

	question.CorrectAnswer = session.ResolveCorrectAnswer(question.Type, correctAnswer, options)
	if err := question.SetOptionList(options); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.invalidateSnapshot(ctx, question.QuizID)
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint, adminID string) error {
	s.logger.Info("Deleting question", "question_id", id, "admin_id", adminID)

	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.getEditableQuiz(ctx, question.QuizID, adminID); err != nil {
		return err
	}

	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.invalidateSnapshot(ctx, question.QuizID)
	return nil
}

func (s *questionService) Reorder(ctx context.Context, quizID uint, questionIDs []uint, adminID string) error {
	s.logger.Info("Reordering questions", "quiz_id", quizID, "admin_id", adminID)

	if _, err := s.getEditableQuiz(ctx, quizID, adminID); err != nil {
		return err
	}

	if err := s.repo.Question().Reorder(ctx, quizID, questionIDs); err != nil {
		return fmt.Errorf("failed to reorder questions: %w", err)
	}

	s.invalidateSnapshot(ctx, quizID)
	return nil
}

// ===== HELPERS =====

func (s *questionService) getQuestion(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) getOwnedQuiz(ctx context.Context, quizID uint, adminID string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != adminID {
		return nil, NewPermissionError(adminID, quizID, "quiz", "manage questions", "not owner")
	}
	return quiz, nil
}

func (s *questionService) getEditableQuiz(ctx context.Context, quizID uint, adminID string) (*models.Quiz, error) {
	quiz, err := s.getOwnedQuiz(ctx, quizID, adminID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != models.QuizDraft {
		return nil, ErrQuizNotEditable
	}
	return quiz, nil
}

func (s *questionService) invalidateSnapshot(ctx context.Context, quizID uint) {
	if err := s.cache.Delete(ctx, quizSnapshotKey(quizID)); err != nil {
		s.logger.Warn("Failed to invalidate quiz snapshot", "quiz_id", quizID, "error", err)
	}
}

// normalizeOptions trims each option so the stored array matches what
// participants will see.
func normalizeOptions(options []string) []string {
	if options == nil {
		return nil
	}
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, strings.TrimSpace(opt))
	}
	return out
}
