package session

import (
	"fmt"
	"strings"

	"github.com/quizdesk/quiz-service/internal/models"
)

// ScoreResult is the outcome of comparing one submitted value against a
// question's canonical answer.
type ScoreResult struct {
	IsCorrect bool

	// Pending is set for every short_answer submission: the automatic match
	// pre-fills the grading screen, but points are only ever awarded manually.
	Pending bool
}

// Score compares a submitted value to the question's correct answer.
//
// Comparison policy per type:
//   - multiple_choice: case-sensitive equality after trimming. Option text is
//     compared literally; "paris" does not match "Paris".
//   - true_false: case-insensitive after trimming.
//   - short_answer: case-insensitive after trimming, always flagged pending.
func Score(q Question, submitted string) ScoreResult {
	sub := strings.TrimSpace(submitted)
	want := strings.TrimSpace(q.CorrectAnswer)

	switch q.Type {
	case models.MultipleChoice:
		return ScoreResult{IsCorrect: sub == want}
	case models.TrueFalse:
		return ScoreResult{IsCorrect: strings.EqualFold(sub, want)}
	case models.ShortAnswer:
		return ScoreResult{IsCorrect: strings.EqualFold(sub, want), Pending: true}
	default:
		return ScoreResult{}
	}
}

// Feedback renders the participant-facing message for a scored attempt.
// attempt is 1-based; the final wrong attempt reveals the answer.
func Feedback(q Question, res ScoreResult, attempt int) string {
	if res.IsCorrect {
		return "Correct!"
	}

	switch attempt {
	case 1:
		return "Incorrect. You have 2 attempts remaining."
	case 2:
		return "Incorrect. You have 1 attempt remaining."
	default:
		return fmt.Sprintf("All attempts used. The correct answer was: %s", q.CorrectAnswer)
	}
}
