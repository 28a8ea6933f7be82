package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestEnv wires the shared service dependencies against in-memory fakes.
func newTestEnv(t *testing.T) (*fakeRepository, cache.CacheService, *events.MockEventPublisher, *slog.Logger) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newFakeRepository(), cache.NewRedisCache(client, logger), events.NewMockEventPublisher(logger), logger
}

// fakeRepository is an in-memory repositories.Repository for service tests.
type fakeRepository struct {
	quiz     *fakeQuizRepo
	question *fakeQuestionRepo
	result   *fakeResultRepo
	user     *fakeUserRepo
}

func newFakeRepository() *fakeRepository {
	f := &fakeRepository{
		quiz:     &fakeQuizRepo{quizzes: make(map[uint]*models.Quiz)},
		question: &fakeQuestionRepo{questions: make(map[uint]*models.Question)},
		result:   &fakeResultRepo{results: make(map[uint]*models.Result)},
		user:     &fakeUserRepo{users: make(map[string]*models.User)},
	}
	f.quiz.questions = f.question
	f.quiz.results = f.result
	return f
}

func (f *fakeRepository) Quiz() repositories.QuizRepository         { return f.quiz }
func (f *fakeRepository) Question() repositories.QuestionRepository { return f.question }
func (f *fakeRepository) Result() repositories.ResultRepository     { return f.result }
func (f *fakeRepository) User() repositories.UserRepository         { return f.user }

// ===== QUIZ =====

type fakeQuizRepo struct {
	mu      sync.Mutex
	quizzes map[uint]*models.Quiz
	nextID  uint

	// wired by tests that need relations resolved
	questions *fakeQuestionRepo
	results   *fakeResultRepo
}

func (f *fakeQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	quiz.ID = f.nextID
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizRepo) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (f *fakeQuizRepo) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.questions != nil {
		list, err := f.questions.ListByQuiz(ctx, id)
		if err != nil {
			return nil, err
		}
		quiz.Questions = make([]models.Question, 0, len(list))
		for _, q := range list {
			quiz.Questions = append(quiz.Questions, *q)
		}
	}
	return quiz, nil
}

func (f *fakeQuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.quizzes[quiz.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizRepo) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Quiz
	for _, quiz := range f.quizzes {
		if filters.CreatedBy != nil && quiz.CreatedBy != *filters.CreatedBy {
			continue
		}
		if filters.Status != nil && quiz.Status != *filters.Status {
			continue
		}
		out = append(out, quiz)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeQuizRepo) GetByCreator(ctx context.Context, creatorID string, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	filters.CreatedBy = &creatorID
	return f.List(ctx, filters)
}

func (f *fakeQuizRepo) GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, quiz := range f.quizzes {
		if quiz.AccessCode != nil && *quiz.AccessCode == code {
			return quiz, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuizRepo) UpdateStatus(ctx context.Context, id uint, status models.QuizStatus) error {
	quiz, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	quiz.Status = status
	return nil
}

func (f *fakeQuizRepo) ExistsByTitle(ctx context.Context, title, creatorID string, excludeID *uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, quiz := range f.quizzes {
		if excludeID != nil && quiz.ID == *excludeID {
			continue
		}
		if quiz.CreatedBy == creatorID && strings.EqualFold(quiz.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQuizRepo) IsOwner(ctx context.Context, quizID uint, userID string) (bool, error) {
	quiz, err := f.GetByID(ctx, quizID)
	if err != nil {
		return false, err
	}
	return quiz.CreatedBy == userID, nil
}

func (f *fakeQuizRepo) CountQuestions(ctx context.Context, quizID uint) (int64, error) {
	if f.questions == nil {
		return 0, nil
	}
	return f.questions.CountByQuiz(ctx, quizID)
}

func (f *fakeQuizRepo) CountResults(ctx context.Context, quizID uint) (int64, error) {
	if f.results == nil {
		return 0, nil
	}
	return f.results.CountByQuiz(ctx, quizID)
}

// ===== QUESTION =====

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[uint]*models.Question
	nextID    uint
}

func (f *fakeQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	question.ID = f.nextID
	f.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	question, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) ListByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Question
	for _, question := range f.questions {
		if question.QuizID == quizID {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeQuestionRepo) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	list, err := f.ListByQuiz(ctx, quizID)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (f *fakeQuestionRepo) NextPosition(ctx context.Context, quizID uint) (int, error) {
	list, err := f.ListByQuiz(ctx, quizID)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, q := range list {
		if q.Position > max {
			max = q.Position
		}
	}
	return max + 1, nil
}

func (f *fakeQuestionRepo) Reorder(ctx context.Context, quizID uint, questionIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, id := range questionIDs {
		if q, ok := f.questions[id]; ok && q.QuizID == quizID {
			q.Position = i + 1
		}
	}
	return nil
}

// ===== RESULT =====

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[uint]*models.Result
	nextID  uint
}

func (f *fakeResultRepo) Create(ctx context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	result.ID = f.nextID
	f.results[result.ID] = result
	return nil
}

func (f *fakeResultRepo) GetByID(ctx context.Context, id uint) (*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result, ok := f.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (f *fakeResultRepo) Update(ctx context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.results[result.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.results[result.ID] = result
	return nil
}

func (f *fakeResultRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.results, id)
	return nil
}

func (f *fakeResultRepo) ListByQuiz(ctx context.Context, quizID uint, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	list, err := f.GetAllByQuiz(ctx, quizID)
	if err != nil {
		return nil, 0, err
	}
	return list, int64(len(list)), nil
}

func (f *fakeResultRepo) GetAllByQuiz(ctx context.Context, quizID uint) ([]*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Result
	for _, result := range f.results {
		if result.QuizID == quizID {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeResultRepo) GetPendingGrading(ctx context.Context, quizID uint) ([]*models.Result, error) {
	list, err := f.GetAllByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	var out []*models.Result
	for _, result := range list {
		pending, err := result.HasPendingGrading()
		if err != nil {
			return nil, err
		}
		if pending {
			out = append(out, result)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	list, err := f.GetAllByQuiz(ctx, quizID)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

// ===== USER =====

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, user := range f.users {
		if filters.IsActive != nil && user.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if excludeID != nil && user.ID == *excludeID {
			continue
		}
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
