package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// QuestionDetail is one per-question snapshot inside a result's
// question_details column. The field set is a wire contract shared with the
// grading and export flows; renaming a JSON key here breaks stored rows.
type QuestionDetail struct {
	QuestionID       uint         `json:"question_id"`
	QuestionText     string       `json:"question_text"`
	QuestionType     QuestionType `json:"question_type"`
	UserAnswer       *string      `json:"user_answer"`
	CorrectAnswer    string       `json:"correct_answer"`
	Attempts         int          `json:"attempts"`
	CorrectAttempt   *int         `json:"correct_attempt"`
	IsCorrect        bool         `json:"is_correct"`
	TimeSpentSeconds int          `json:"time_spent_seconds"`

	// Grading extensions. Points is the question's worth at submission time.
	// PointsAwarded is set only by manual grading of short answers; Pending
	// stays true until an admin awards points.
	Points        int  `json:"points"`
	PointsAwarded *int `json:"points_awarded,omitempty"`
	Pending       bool `json:"pending,omitempty"`
}

type Result struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	QuizID          uint   `json:"quiz_id" gorm:"not null;index"`
	ParticipantName string `json:"participant_name" gorm:"not null;size:100"`

	TotalScore     int `json:"total_score" gorm:"not null"`
	TotalQuestions int `json:"total_questions" gorm:"not null"`

	QuestionDetails datatypes.JSON `json:"question_details" gorm:"type:jsonb"`

	TimeSpentSeconds int       `json:"time_spent_seconds" gorm:"default:0"`
	CompletedAt      time.Time `json:"completed_at"`
	CreatedAt        time.Time `json:"created_at"`

	// Relations
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID"`
}

func (Result) TableName() string {
	return "results"
}

// Details decodes the stored question_details array.
func (r *Result) Details() ([]QuestionDetail, error) {
	if len(r.QuestionDetails) == 0 {
		return nil, nil
	}
	var details []QuestionDetail
	if err := json.Unmarshal(r.QuestionDetails, &details); err != nil {
		return nil, fmt.Errorf("failed to decode question details: %w", err)
	}
	return details, nil
}

// SetDetails encodes per-question snapshots into the stored JSON column.
func (r *Result) SetDetails(details []QuestionDetail) error {
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode question details: %w", err)
	}
	r.QuestionDetails = data
	return nil
}

// HasPendingGrading reports whether any short-answer entry still awaits a
// manual point award.
func (r *Result) HasPendingGrading() (bool, error) {
	details, err := r.Details()
	if err != nil {
		return false, err
	}
	for _, d := range details {
		if d.Pending {
			return true, nil
		}
	}
	return false, nil
}
