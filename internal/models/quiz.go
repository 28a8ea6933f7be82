package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type QuizStatus string

const (
	QuizDraft     QuizStatus = "draft"
	QuizPublished QuizStatus = "published"
	QuizArchived  QuizStatus = "archived"
)

type Quiz struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string    `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Status      QuizStatus `json:"status" gorm:"default:draft;index" validate:"omitempty,oneof=draft published archived"`

	// DurationMinutes of 0 means the quiz is untimed.
	DurationMinutes int `json:"duration_minutes" gorm:"default:0" validate:"min=0,max=300"`

	RandomizeQuestions bool `json:"randomize_questions" gorm:"default:false"`
	RandomizeOptions   bool `json:"randomize_options" gorm:"default:false"`

	// AccessCode is a 6-character base36 token assigned at publish time.
	// It is a convenience for informal sharing and carries no access control.
	AccessCode *string `json:"access_code" gorm:"size:6"`

	CreatedBy   string         `json:"created_by" gorm:"not null;size:255;index"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	Creator   User       `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	// Computed fields (not stored)
	QuestionsCount int `json:"questions_count" gorm:"-"`
	ResultsCount   int `json:"results_count" gorm:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// ShareLink builds the participant-facing start URL for this quiz.
func (q *Quiz) ShareLink(origin string) string {
	return fmt.Sprintf("%s/quiz/%d/start", origin, q.ID)
}

// IsTakeable reports whether participants may start sessions against this quiz.
func (q *Quiz) IsTakeable() bool {
	return q.Status == QuizPublished
}
