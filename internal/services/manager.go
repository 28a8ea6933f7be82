package services

import (
	"log/slog"
	"time"

	"github.com/quizdesk/quiz-service/internal/cache"
	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/quizdesk/quiz-service/internal/session"
	"github.com/quizdesk/quiz-service/internal/validator"
)

// ServiceManager bundles every service behind one dependency so the HTTP
// layer takes a single constructor argument.
type ServiceManager interface {
	Quiz() QuizService
	Question() QuestionService
	Session() SessionService
	Result() ResultService
	Grading() GradingService
	Export() ExportService
	User() UserService
}

type serviceManager struct {
	quiz     QuizService
	question QuestionService
	session  SessionService
	result   ResultService
	grading  GradingService
	export   ExportService
	user     UserService
}

func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	store *session.Store,
	cacheTTL time.Duration,
	shareOrigin string,
) ServiceManager {
	return &serviceManager{
		quiz:     NewQuizService(repo, logger, v, cacheService, publisher, shareOrigin),
		question: NewQuestionService(repo, logger, v, cacheService),
		session:  NewSessionService(repo, logger, cacheService, publisher, store, cacheTTL),
		result:   NewResultService(repo, logger),
		grading:  NewGradingService(repo, logger, v, publisher),
		export:   NewExportService(repo, logger),
		user:     NewUserService(repo, logger, v),
	}
}

func (m *serviceManager) Quiz() QuizService         { return m.quiz }
func (m *serviceManager) Question() QuestionService { return m.question }
func (m *serviceManager) Session() SessionService   { return m.session }
func (m *serviceManager) Result() ResultService     { return m.result }
func (m *serviceManager) Grading() GradingService   { return m.grading }
func (m *serviceManager) Export() ExportService     { return m.export }
func (m *serviceManager) User() UserService         { return m.user }
