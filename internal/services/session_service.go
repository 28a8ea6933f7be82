package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/session"
)

// quizSnapshot is the cached takeable form of a published quiz. Sessions are
// built from it without touching Postgres on the hot path.
type quizSnapshot struct {
	Config    session.Config     `json:"config"`
	Questions []session.Question `json:"questions"`
}

type sessionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	cache     cache.CacheService
	publisher events.EventPublisher
	store     *session.Store
	cacheTTL  time.Duration

	mu        sync.Mutex
	persisted map[string]bool
}

func NewSessionService(
	repo repositories.Repository,
	logger *slog.Logger,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	store *session.Store,
	cacheTTL time.Duration,
) SessionService {
	return &sessionService{
		repo:      repo,
		logger:    logger,
		cache:     cacheService,
		publisher: publisher,
		store:     store,
		cacheTTL:  cacheTTL,
		persisted: make(map[string]bool),
	}
}

func (s *sessionService) Start(ctx context.Context, quizID uint) (*StartSessionResponse, error) {
	snap, err := s.loadSnapshot(ctx, quizID)
	if err != nil {
		return nil, err
	}

	sess := session.New(snap.Config, snap.Questions)
	s.store.Put(sess)

	s.logger.Info("Session started", "quiz_id", quizID, "token", sess.Token())
	return &StartSessionResponse{
		Token:           sess.Token(),
		State:           sess.State(),
		QuizID:          snap.Config.QuizID,
		QuizTitle:       snap.Config.QuizTitle,
		TotalQuestions:  len(snap.Questions),
		DurationMinutes: snap.Config.DurationMinutes,
	}, nil
}

func (s *sessionService) Begin(ctx context.Context, token string) (*session.Progress, error) {
	sess, err := s.get(token)
	if err != nil {
		return nil, err
	}
	if err := sess.Begin(); err != nil {
		return nil, err
	}
	progress := sess.Progress()
	return &progress, nil
}

func (s *sessionService) SetName(ctx context.Context, token, name string) (*session.Progress, error) {
	sess, err := s.get(token)
	if err != nil {
		return nil, err
	}
	if err := sess.SetParticipantName(name); err != nil {
		return nil, err
	}

	// A quiz with zero questions finishes immediately.
	if outcome, done := sess.Outcome(); done {
		s.persistOnce(sess, outcome)
	}

	progress := sess.Progress()
	return &progress, nil
}

func (s *sessionService) CurrentQuestion(ctx context.Context, token string) (*QuestionView, error) {
	sess, err := s.get(token)
	if err != nil {
		return nil, err
	}

	q, ok := sess.CurrentQuestion()
	if !ok {
		if sess.State() == session.StateThankYou {
			return nil, session.ErrSessionFinished
		}
		return nil, session.ErrInvalidTransition
	}

	progress := sess.Progress()
	return &QuestionView{
		ID:               q.ID,
		Type:             q.Type,
		Text:             q.Text,
		Options:          q.Options,
		Points:           q.Points,
		Index:            progress.CurrentIndex,
		TotalQuestions:   progress.TotalQuestions,
		AttemptsUsed:     progress.AttemptsUsed,
		RemainingSeconds: progress.RemainingSeconds,
	}, nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, token string, req *SubmitAnswerRequest) (*session.Submission, error) {
	sess, err := s.get(token)
	if err != nil {
		return nil, err
	}

	sub, err := sess.SubmitAnswer(req.Answer)
	if err != nil {
		if errors.Is(err, session.ErrTimeExpired) {
			if outcome, done := sess.Outcome(); done {
				s.persistOnce(sess, outcome)
			}
		}
		return nil, err
	}

	if sub.Completed {
		if outcome, done := sess.Outcome(); done {
			s.persistOnce(sess, outcome)
		}
	}
	return &sub, nil
}

func (s *sessionService) Progress(ctx context.Context, token string) (*session.Progress, error) {
	sess, err := s.get(token)
	if err != nil {
		return nil, err
	}
	progress := sess.Progress()
	return &progress, nil
}

func (s *sessionService) Finalize(ctx context.Context, token string) (*SessionOutcomeResponse, error) {
	sess, err := s.get(token)
	if err != nil {
		return nil, err
	}

	outcome, err := sess.Finalize(session.EndReasonCompleted)
	if err != nil {
		return nil, err
	}
	s.persistOnce(sess, outcome)

	return buildOutcomeResponse(outcome), nil
}

// FinalizeExpired force-finalizes a session whose countdown ran out. Whatever
// answers were recorded stand; unanswered questions score zero.
func (s *sessionService) FinalizeExpired(sess *session.Session) {
	outcome, err := sess.Finalize(session.EndReasonTimeout)
	if err != nil {
		return
	}
	s.logger.Info("Session expired", "token", sess.Token(), "quiz_id", sess.QuizID())
	s.persistOnce(sess, outcome)
}

// ===== HELPERS =====

func (s *sessionService) get(token string) (*session.Session, error) {
	sess, ok := s.store.Get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// loadSnapshot serves the takeable quiz from Redis, falling back to Postgres
// and repopulating the cache on a miss.
func (s *sessionService) loadSnapshot(ctx context.Context, quizID uint) (*quizSnapshot, error) {
	var snap quizSnapshot
	err := s.cache.Get(ctx, quizSnapshotKey(quizID), &snap)
	if err == nil {
		return &snap, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Quiz snapshot cache read failed", "quiz_id", quizID, "error", err)
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	if !quiz.IsTakeable() {
		return nil, ErrQuizNotPublished
	}

	questions := make([]session.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		normalized, err := session.FromModel(q)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize question %d: %w", q.ID, err)
		}
		questions = append(questions, normalized)
	}

	snap = quizSnapshot{
		Config: session.Config{
			QuizID:             quiz.ID,
			QuizTitle:          quiz.Title,
			DurationMinutes:    quiz.DurationMinutes,
			RandomizeQuestions: quiz.RandomizeQuestions,
			RandomizeOptions:   quiz.RandomizeOptions,
		},
		Questions: questions,
	}

	if err := s.cache.Set(ctx, quizSnapshotKey(quizID), snap, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache quiz snapshot", "quiz_id", quizID, "error", err)
	}
	return &snap, nil
}

// persistOnce stores a finished session's result exactly once. Persistence is
// fire and forget: a failure is logged and the participant's flow is never
// blocked on it.
func (s *sessionService) persistOnce(sess *session.Session, outcome *session.Outcome) {
	s.mu.Lock()
	// A session absent from the store was already persisted and cleaned up;
	// a stale pointer from the reaper sweep must not store it twice.
	if _, live := s.store.Get(sess.Token()); !live || s.persisted[sess.Token()] {
		s.mu.Unlock()
		return
	}
	s.persisted[sess.Token()] = true
	s.mu.Unlock()

	go s.persistOutcome(sess.Token(), outcome)
}

func (s *sessionService) persistOutcome(token string, outcome *session.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := &models.Result{
		QuizID:           outcome.QuizID,
		ParticipantName:  outcome.ParticipantName,
		TotalScore:       outcome.TotalScore,
		TotalQuestions:   outcome.TotalQuestions,
		TimeSpentSeconds: outcome.TimeSpentSeconds,
		CompletedAt:      outcome.CompletedAt,
	}
	if err := result.SetDetails(outcome.Details); err != nil {
		s.logger.Error("Failed to encode result details", "token", token, "error", err)
		s.cleanup(token)
		return
	}

	if err := s.repo.Result().Create(ctx, result); err != nil {
		s.logger.Error("Failed to persist result",
			"token", token,
			"quiz_id", outcome.QuizID,
			"participant", outcome.ParticipantName,
			"error", err)
		s.cleanup(token)
		return
	}

	s.logger.Info("Result persisted",
		"result_id", result.ID,
		"quiz_id", outcome.QuizID,
		"total_score", outcome.TotalScore)

	event := events.NewResultSubmittedEvent(events.ResultSubmittedEvent{
		ResultID:        result.ID,
		QuizID:          outcome.QuizID,
		ParticipantName: outcome.ParticipantName,
		TotalScore:      outcome.TotalScore,
		TotalQuestions:  outcome.TotalQuestions,
		EndReason:       string(outcome.EndReason),
	})
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}

	s.cleanup(token)
}

func (s *sessionService) cleanup(token string) {
	s.store.Delete(token)
	s.mu.Lock()
	delete(s.persisted, token)
	s.mu.Unlock()
}

func buildOutcomeResponse(outcome *session.Outcome) *SessionOutcomeResponse {
	return &SessionOutcomeResponse{
		State:            session.StateThankYou,
		QuizID:           outcome.QuizID,
		ParticipantName:  outcome.ParticipantName,
		TotalScore:       outcome.TotalScore,
		TotalQuestions:   outcome.TotalQuestions,
		TimeSpentSeconds: outcome.TimeSpentSeconds,
		EndReason:        outcome.EndReason,
		Details:          outcome.Details,
	}
}
