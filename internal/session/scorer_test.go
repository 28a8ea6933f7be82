package session

import (
	"testing"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScore_MultipleChoiceIsCaseSensitive(t *testing.T) {
	q := Question{
		Type:          models.MultipleChoice,
		Options:       []string{"Paris", "London", "Berlin"},
		CorrectAnswer: "Paris",
	}

	assert.True(t, Score(q, "Paris").IsCorrect)
	assert.True(t, Score(q, "  Paris  ").IsCorrect, "values are trimmed before comparison")
	assert.False(t, Score(q, "paris").IsCorrect, "option text comparison is case-sensitive")
	assert.False(t, Score(q, "London").IsCorrect)
}

func TestScore_TrueFalseIsCaseInsensitive(t *testing.T) {
	q := Question{Type: models.TrueFalse, CorrectAnswer: "true"}

	assert.True(t, Score(q, "true").IsCorrect)
	assert.True(t, Score(q, "True").IsCorrect)
	assert.True(t, Score(q, " TRUE ").IsCorrect)
	assert.False(t, Score(q, "false").IsCorrect)
}

func TestScore_ShortAnswerAlwaysPending(t *testing.T) {
	q := Question{Type: models.ShortAnswer, CorrectAnswer: "photosynthesis"}

	match := Score(q, "Photosynthesis")
	assert.True(t, match.IsCorrect, "automatic comparator is case-insensitive")
	assert.True(t, match.Pending, "a matching short answer still awaits manual grading")

	miss := Score(q, "respiration")
	assert.False(t, miss.IsCorrect)
	assert.True(t, miss.Pending, "a missed short answer still awaits manual grading")
}

func TestFeedback_VariesByAttempt(t *testing.T) {
	q := Question{Type: models.MultipleChoice, CorrectAnswer: "Paris"}
	wrong := ScoreResult{}

	assert.Equal(t, "Correct!", Feedback(q, ScoreResult{IsCorrect: true}, 1))
	assert.Equal(t, "Incorrect. You have 2 attempts remaining.", Feedback(q, wrong, 1))
	assert.Equal(t, "Incorrect. You have 1 attempt remaining.", Feedback(q, wrong, 2))
	assert.Equal(t, "All attempts used. The correct answer was: Paris", Feedback(q, wrong, 3))
}

func TestResolveCorrectAnswer(t *testing.T) {
	options := []string{"Paris", "London", "Berlin"}

	t.Run("letter resolves to option text", func(t *testing.T) {
		assert.Equal(t, "Paris", ResolveCorrectAnswer(models.MultipleChoice, "A", options))
		assert.Equal(t, "London", ResolveCorrectAnswer(models.MultipleChoice, "b", options))
		assert.Equal(t, "Berlin", ResolveCorrectAnswer(models.MultipleChoice, " C ", options))
	})

	t.Run("option text passes through", func(t *testing.T) {
		assert.Equal(t, "Paris", ResolveCorrectAnswer(models.MultipleChoice, "Paris", options))
	})

	t.Run("option text that looks like a letter wins over index resolution", func(t *testing.T) {
		letterish := []string{"B", "A", "C"}
		assert.Equal(t, "A", ResolveCorrectAnswer(models.MultipleChoice, "A", letterish))
	})

	t.Run("letter out of range is kept", func(t *testing.T) {
		assert.Equal(t, "Z", ResolveCorrectAnswer(models.MultipleChoice, "Z", options))
	})

	t.Run("non multiple_choice is untouched", func(t *testing.T) {
		assert.Equal(t, "A", ResolveCorrectAnswer(models.TrueFalse, "A", nil))
	})
}
