package postgres

import (
	"github.com/quizdesk/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	result   repositories.ResultRepository
	user     repositories.UserRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		quiz:     NewQuizPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		result:   NewResultPostgreSQL(db),
		user:     NewUserPostgreSQL(db),
	}
}

func (r *Repository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *Repository) Question() repositories.QuestionRepository { return r.question }
func (r *Repository) Result() repositories.ResultRepository     { return r.result }
func (r *Repository) User() repositories.UserRepository         { return r.user }
