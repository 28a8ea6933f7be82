package validator

import (
	"strings"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/session"
)

// QuestionValidator enforces per-type content rules before a question record
// is written. Struct tags cover shape; this covers the type-specific pieces
// tags cannot express.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

const (
	minOptions = 2
	maxOptions = 10
)

// ValidateContent returns every content rule violation for the given
// question fields. An empty result means the question is storable.
func (qv *QuestionValidator) ValidateContent(qType models.QuestionType, options []string, correctAnswer string) ValidationErrors {
	switch qType {
	case models.MultipleChoice:
		return qv.validateMultipleChoice(options, correctAnswer)
	case models.TrueFalse:
		return qv.validateTrueFalse(options, correctAnswer)
	case models.ShortAnswer:
		return qv.validateShortAnswer(options, correctAnswer)
	default:
		return ValidationErrors{{Field: "type", Message: "unknown question type", Value: string(qType)}}
	}
}

func (qv *QuestionValidator) validateMultipleChoice(options []string, correctAnswer string) ValidationErrors {
	var errs ValidationErrors

	if len(options) < minOptions {
		errs = append(errs, ValidationError{Field: "options", Message: "needs at least 2 options", Value: len(options)})
	}
	if len(options) > maxOptions {
		errs = append(errs, ValidationError{Field: "options", Message: "allows at most 10 options", Value: len(options)})
	}

	seen := make(map[string]bool, len(options))
	for i, opt := range options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			errs = append(errs, ValidationError{Field: "options", Message: "option text cannot be blank", Value: i})
			continue
		}
		if seen[trimmed] {
			errs = append(errs, ValidationError{Field: "options", Message: "duplicate option text", Value: trimmed})
		}
		seen[trimmed] = true
	}

	// The correct answer must resolve to one of the options, either as
	// literal text or as a letter index.
	resolved := session.ResolveCorrectAnswer(models.MultipleChoice, correctAnswer, options)
	if len(options) > 0 && !seen[strings.TrimSpace(resolved)] {
		errs = append(errs, ValidationError{Field: "correct_answer", Message: "must match one of the options", Value: correctAnswer})
	}

	return errs
}

func (qv *QuestionValidator) validateTrueFalse(options []string, correctAnswer string) ValidationErrors {
	var errs ValidationErrors

	if len(options) > 0 {
		errs = append(errs, ValidationError{Field: "options", Message: "true/false questions carry no options", Value: len(options)})
	}

	answer := strings.ToLower(strings.TrimSpace(correctAnswer))
	if answer != "true" && answer != "false" {
		errs = append(errs, ValidationError{Field: "correct_answer", Message: "must be true or false", Value: correctAnswer})
	}

	return errs
}

func (qv *QuestionValidator) validateShortAnswer(options []string, correctAnswer string) ValidationErrors {
	var errs ValidationErrors

	if len(options) > 0 {
		errs = append(errs, ValidationError{Field: "options", Message: "short answer questions carry no options", Value: len(options)})
	}
	if strings.TrimSpace(correctAnswer) == "" {
		errs = append(errs, ValidationError{Field: "correct_answer", Message: "is required", Value: correctAnswer})
	}

	return errs
}
