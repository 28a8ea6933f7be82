package services

import (
	"errors"
	"fmt"

	apperrors "github.com/quizdesk/quiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Quiz specific errors
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizAccessDenied   = errors.New("access denied to quiz")
	ErrQuizNotEditable    = errors.New("quiz cannot be edited in current status")
	ErrQuizNotPublishable = errors.New("quiz cannot be published without questions")
	ErrQuizNotPublished   = errors.New("quiz is not published")
	ErrQuizDuplicateTitle = errors.New("quiz title already exists for this user")
	ErrQuizInvalidStatus  = errors.New("invalid quiz status transition")

	// Question specific errors
	ErrQuestionNotFound       = errors.New("question not found")
	ErrQuestionInvalidContent = errors.New("invalid question content for type")

	// Session specific errors
	ErrSessionNotFound = errors.New("session not found")

	// Result / grading specific errors
	ErrResultNotFound      = errors.New("result not found")
	ErrGradingNotAllowed   = errors.New("grading not allowed for this question type")
	ErrGradingInvalidScore = errors.New("awarded points exceed the question's worth")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDuplicateEmail = errors.New("email already registered")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsForbidden checks if error represents a permission failure
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrQuizAccessDenied) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrQuestionInvalidContent) ||
		errors.Is(err, ErrGradingInvalidScore) ||
		errors.Is(err, ErrGradingNotAllowed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrQuizDuplicateTitle) ||
		errors.Is(err, ErrQuizNotEditable) ||
		errors.Is(err, ErrQuizNotPublishable) ||
		errors.Is(err, ErrQuizNotPublished) ||
		errors.Is(err, ErrQuizInvalidStatus) ||
		errors.Is(err, ErrUserDuplicateEmail)
}
