package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/validator"
)

type quizService struct {
	repo        repositories.Repository
	logger      *slog.Logger
	validator   *validator.Validator
	cache       cache.CacheService
	publisher   events.EventPublisher
	shareOrigin string
}

func NewQuizService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	shareOrigin string,
) QuizService {
	return &quizService{
		repo:        repo,
		logger:      logger,
		validator:   v,
		cache:       cacheService,
		publisher:   publisher,
		shareOrigin: shareOrigin,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, adminID string) (*QuizResponse, error) {
	s.logger.Info("Creating quiz", "admin_id", adminID, "title", req.Title)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Quiz().ExistsByTitle(ctx, req.Title, adminID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
	}
	if exists {
		return nil, ErrQuizDuplicateTitle
	}

	quiz := &models.Quiz{
		Title:              req.Title,
		Description:        req.Description,
		Status:             models.QuizDraft,
		DurationMinutes:    req.DurationMinutes,
		RandomizeQuestions: req.RandomizeQuestions,
		RandomizeOptions:   req.RandomizeOptions,
		CreatedBy:          adminID,
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID)
	return s.buildResponse(ctx, quiz), nil
}

func (s *quizService) GetByID(ctx context.Context, id uint, adminID string) (*QuizResponse, error) {
	quiz, err := s.getOwnedQuiz(ctx, id, adminID, "read")
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, quiz), nil
}

func (s *quizService) List(ctx context.Context, adminID string, filters repositories.QuizFilters) (*QuizListResponse, error) {
	quizzes, total, err := s.repo.Quiz().GetByCreator(ctx, adminID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	responses := make([]*QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, s.buildResponse(ctx, quiz))
	}

	return &QuizListResponse{
		Quizzes: responses,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *UpdateQuizRequest, adminID string) (*QuizResponse, error) {
	s.logger.Info("Updating quiz", "quiz_id", id, "admin_id", adminID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.getOwnedQuiz(ctx, id, adminID, "update")
	if err != nil {
		return nil, err
	}
	if quiz.Status != models.QuizDraft {
		return nil, ErrQuizNotEditable
	}

	if req.Title != nil && *req.Title != quiz.Title {
		exists, err := s.repo.Quiz().ExistsByTitle(ctx, *req.Title, adminID, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
		}
		if exists {
			return nil, ErrQuizDuplicateTitle
		}
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = req.Description
	}
	if req.DurationMinutes != nil {
		quiz.DurationMinutes = *req.DurationMinutes
	}
	if req.RandomizeQuestions != nil {
		quiz.RandomizeQuestions = *req.RandomizeQuestions
	}
	if req.RandomizeOptions != nil {
		quiz.RandomizeOptions = *req.RandomizeOptions
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidateSnapshot(ctx, id)
	return s.buildResponse(ctx, quiz), nil
}

func (s *quizService) Delete(ctx context.Context, id uint, adminID string) error {
	s.logger.Info("Deleting quiz", "quiz_id", id, "admin_id", adminID)

	if _, err := s.getOwnedQuiz(ctx, id, adminID, "delete"); err != nil {
		return err
	}

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.invalidateSnapshot(ctx, id)
	return nil
}

// ===== STATUS MANAGEMENT =====

func (s *quizService) Publish(ctx context.Context, id uint, adminID string) (*QuizResponse, error) {
	s.logger.Info("Publishing quiz", "quiz_id", id, "admin_id", adminID)

	quiz, err := s.getOwnedQuiz(ctx, id, adminID, "publish")
	if err != nil {
		return nil, err
	}
	if quiz.Status != models.QuizDraft {
		return nil, ErrQuizInvalidStatus
	}

	count, err := s.repo.Quiz().CountQuestions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if count == 0 {
		return nil, ErrQuizNotPublishable
	}

	code, err := generateAccessCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access code: %w", err)
	}

	now := nowUTC()
	quiz.Status = models.QuizPublished
	quiz.AccessCode = &code
	quiz.PublishedAt = &now

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to publish quiz: %w", err)
	}

	s.invalidateSnapshot(ctx, id)
	s.publishEvent(ctx, events.NewQuizPublishedEvent(events.QuizPublishedEvent{
		QuizID:     quiz.ID,
		Title:      quiz.Title,
		AdminID:    adminID,
		ShareLink:  quiz.ShareLink(s.shareOrigin),
		AccessCode: quiz.AccessCode,
	}))

	s.logger.Info("Quiz published", "quiz_id", id, "access_code", code)
	return s.buildResponse(ctx, quiz), nil
}

func (s *quizService) Archive(ctx context.Context, id uint, adminID string) (*QuizResponse, error) {
	s.logger.Info("Archiving quiz", "quiz_id", id, "admin_id", adminID)

	quiz, err := s.getOwnedQuiz(ctx, id, adminID, "archive")
	if err != nil {
		return nil, err
	}
	if quiz.Status != models.QuizPublished {
		return nil, ErrQuizInvalidStatus
	}

	quiz.Status = models.QuizArchived
	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to archive quiz: %w", err)
	}

	s.invalidateSnapshot(ctx, id)
	return s.buildResponse(ctx, quiz), nil
}

// ===== HELPERS =====

func (s *quizService) getOwnedQuiz(ctx context.Context, id uint, adminID, action string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != adminID {
		return nil, NewPermissionError(adminID, id, "quiz", action, "not owner")
	}
	return quiz, nil
}

func (s *quizService) buildResponse(ctx context.Context, quiz *models.Quiz) *QuizResponse {
	if count, err := s.repo.Quiz().CountQuestions(ctx, quiz.ID); err == nil {
		quiz.QuestionsCount = int(count)
	}
	if count, err := s.repo.Quiz().CountResults(ctx, quiz.ID); err == nil {
		quiz.ResultsCount = int(count)
	}

	resp := &QuizResponse{Quiz: *quiz}
	if quiz.Status == models.QuizPublished {
		resp.ShareLink = quiz.ShareLink(s.shareOrigin)
	}
	return resp
}

func (s *quizService) invalidateSnapshot(ctx context.Context, quizID uint) {
	if err := s.cache.Delete(ctx, quizSnapshotKey(quizID)); err != nil {
		s.logger.Warn("Failed to invalidate quiz snapshot", "quiz_id", quizID, "error", err)
	}
}

func (s *quizService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

const accessCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateAccessCode returns a 6-character base36 code for informal sharing.
func generateAccessCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return string(buf), nil
}
