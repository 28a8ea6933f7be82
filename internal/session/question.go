package session

import (
	"strings"

	"github.com/quizdesk/quiz-service/internal/models"
)

// Question is the normalized, in-memory form a session works with. Options
// are always an ordered list and CorrectAnswer is always literal answer text;
// the persistence boundary resolves any stored letter form before a session
// sees it.
type Question struct {
	ID            uint
	Type          models.QuestionType
	Text          string
	Options       []string
	CorrectAnswer string
	Points        int
}

// ResolveCorrectAnswer maps a stored correct-answer value to option text.
// A value that already matches an option is kept as-is; a single letter
// ("A".."Z", case-insensitive) is treated as an option index. Anything else
// is returned unchanged so the scorer's string comparison still applies.
func ResolveCorrectAnswer(qType models.QuestionType, correct string, options []string) string {
	if qType != models.MultipleChoice {
		return correct
	}

	trimmed := strings.TrimSpace(correct)
	for _, opt := range options {
		if strings.TrimSpace(opt) == trimmed {
			return correct
		}
	}

	if len(trimmed) == 1 {
		c := trimmed[0]
		var idx int
		switch {
		case c >= 'A' && c <= 'Z':
			idx = int(c - 'A')
		case c >= 'a' && c <= 'z':
			idx = int(c - 'a')
		default:
			return correct
		}
		if idx < len(options) {
			return options[idx]
		}
	}

	return correct
}

// FromModel converts a stored question into its normalized session form.
func FromModel(q models.Question) (Question, error) {
	options, err := q.OptionList()
	if err != nil {
		return Question{}, err
	}
	return Question{
		ID:            q.ID,
		Type:          q.Type,
		Text:          q.Text,
		Options:       options,
		CorrectAnswer: ResolveCorrectAnswer(q.Type, q.CorrectAnswer, options),
		Points:        q.Points,
	}, nil
}
