package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventQuizPublished   EventType = "quiz.published"
	EventResultSubmitted EventType = "result.submitted"
	EventResultRegraded  EventType = "result.regraded"
)

// QuizEvent is the envelope every published event shares. Consumers key off
// Type and decode Data accordingly.
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// QuizPublishedEvent is emitted when an admin publishes a quiz.
type QuizPublishedEvent struct {
	QuizID     uint    `json:"quiz_id"`
	Title      string  `json:"title"`
	AdminID    string  `json:"admin_id"`
	ShareLink  string  `json:"share_link"`
	AccessCode *string `json:"access_code,omitempty"`
}

// ResultSubmittedEvent is emitted after a participant session finalizes and
// its result row is stored.
type ResultSubmittedEvent struct {
	ResultID        uint   `json:"result_id"`
	QuizID          uint   `json:"quiz_id"`
	ParticipantName string `json:"participant_name"`
	TotalScore      int    `json:"total_score"`
	TotalQuestions  int    `json:"total_questions"`
	EndReason       string `json:"end_reason"`
}

// ResultRegradedEvent is emitted when manual grading changes a stored total.
type ResultRegradedEvent struct {
	ResultID   uint   `json:"result_id"`
	QuizID     uint   `json:"quiz_id"`
	QuestionID uint   `json:"question_id"`
	GradedBy   string `json:"graded_by"`
	TotalScore int    `json:"total_score"`
}

func newQuizEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "quiz-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func NewQuizPublishedEvent(data QuizPublishedEvent) *QuizEvent {
	return newQuizEvent(EventQuizPublished, data)
}

func NewResultSubmittedEvent(data ResultSubmittedEvent) *QuizEvent {
	return newQuizEvent(EventResultSubmitted, data)
}

func NewResultRegradedEvent(data ResultRegradedEvent) *QuizEvent {
	return newQuizEvent(EventResultRegraded, data)
}
