package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

type Question struct {
	ID     uint         `json:"id" gorm:"primaryKey"`
	QuizID uint         `json:"quiz_id" gorm:"not null;index"`
	Type   QuestionType `json:"type" gorm:"not null;size:20" validate:"required,question_type"`
	Text   string       `json:"text" gorm:"not null;type:text" validate:"required,min=1,max=2000"`

	// Options is the ordered list of option texts, stored as a JSON array.
	// Only multiple_choice questions carry options; the stored shape is always
	// a flat array, never a letter-keyed object.
	Options datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`

	// CorrectAnswer holds the canonical answer as option text. Letter forms
	// ("A".."Z") are resolved to option text before the record is written.
	CorrectAnswer string `json:"correct_answer" gorm:"not null;size:500" validate:"required"`

	Points   int `json:"points" gorm:"default:1" validate:"min=1,max=100"`
	Position int `json:"position" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the stored options array. A question without options
// (true_false, short_answer) yields an empty slice.
func (q *Question) OptionList() ([]string, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil, fmt.Errorf("failed to decode question options: %w", err)
	}
	return options, nil
}

// SetOptionList encodes an ordered option list into the stored JSON column.
func (q *Question) SetOptionList(options []string) error {
	if options == nil {
		q.Options = nil
		return nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to encode question options: %w", err)
	}
	q.Options = data
	return nil
}
