package services

import (
	"context"
	"testing"
	"time"

	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGradingService(t *testing.T) (GradingService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()
	repo, _, publisher, logger := newTestEnv(t)
	svc := NewGradingService(repo, logger, validator.New(), publisher)
	return svc, repo, publisher
}

// seedGradableResult stores a result with one correct multiple choice answer
// (2 points), one missed true/false (1 point) and one pending short answer
// worth 3 points. The auto-scored total is 2.
func seedGradableResult(t *testing.T, repo *fakeRepository) *models.Result {
	t.Helper()
	ctx := context.Background()

	quiz := &models.Quiz{Title: "Geography", Status: models.QuizPublished, CreatedBy: "admin-1"}
	require.NoError(t, repo.quiz.Create(ctx, quiz))

	answer := "Paris"
	wrong := "false"
	essay := "The Seine flows through Paris."
	first := 1
	details := []models.QuestionDetail{
		{
			QuestionID: 1, QuestionText: "Capital of France?", QuestionType: models.MultipleChoice,
			UserAnswer: &answer, CorrectAnswer: "Paris", Attempts: 1, CorrectAttempt: &first,
			IsCorrect: true, Points: 2,
		},
		{
			QuestionID: 2, QuestionText: "France borders Spain.", QuestionType: models.TrueFalse,
			UserAnswer: &wrong, CorrectAnswer: "true", Attempts: 3, IsCorrect: false, Points: 1,
		},
		{
			QuestionID: 3, QuestionText: "Name a river in France.", QuestionType: models.ShortAnswer,
			UserAnswer: &essay, CorrectAnswer: "Seine", Attempts: 1, IsCorrect: false,
			Points: 3, Pending: true,
		},
	}

	result := &models.Result{
		QuizID:          quiz.ID,
		ParticipantName: "Ada",
		TotalScore:      2,
		TotalQuestions:  3,
		CompletedAt:     time.Now().UTC(),
	}
	require.NoError(t, result.SetDetails(details))
	require.NoError(t, repo.result.Create(ctx, result))
	return result
}

func TestGradingService_AwardPoints(t *testing.T) {
	svc, repo, publisher := newGradingService(t)
	ctx := context.Background()
	result := seedGradableResult(t, repo)

	graded, err := svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 3, PointsAwarded: 2}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 4, graded.TotalScore)

	details, err := graded.Details()
	require.NoError(t, err)
	require.NotNil(t, details[2].PointsAwarded)
	assert.Equal(t, 2, *details[2].PointsAwarded)
	assert.False(t, details[2].Pending)

	pending, err := graded.HasPendingGrading()
	require.NoError(t, err)
	assert.False(t, pending)

	eventList := publisher.PublishedEvents()
	require.Len(t, eventList, 1)
	assert.Equal(t, events.EventResultRegraded, eventList[0].Type)
}

func TestGradingService_RegradeOverwrites(t *testing.T) {
	svc, repo, _ := newGradingService(t)
	ctx := context.Background()
	result := seedGradableResult(t, repo)

	graded, err := svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 3, PointsAwarded: 3}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 5, graded.TotalScore)

	// Same award again changes nothing.
	graded, err = svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 3, PointsAwarded: 3}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 5, graded.TotalScore)

	// A lower award replaces the old one instead of stacking.
	graded, err = svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 3, PointsAwarded: 0}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 2, graded.TotalScore)
}

func TestGradingService_RejectsAutoGradedQuestion(t *testing.T) {
	svc, repo, _ := newGradingService(t)
	ctx := context.Background()
	result := seedGradableResult(t, repo)

	_, err := svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 1, PointsAwarded: 1}, "admin-1")
	assert.ErrorIs(t, err, ErrGradingNotAllowed)
}

func TestGradingService_RejectsOverAward(t *testing.T) {
	svc, repo, _ := newGradingService(t)
	ctx := context.Background()
	result := seedGradableResult(t, repo)

	_, err := svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 3, PointsAwarded: 5}, "admin-1")
	assert.ErrorIs(t, err, ErrGradingInvalidScore)
}

func TestGradingService_NotOwner(t *testing.T) {
	svc, repo, _ := newGradingService(t)
	ctx := context.Background()
	result := seedGradableResult(t, repo)

	_, err := svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 3, PointsAwarded: 1}, "admin-2")
	assert.True(t, IsForbidden(err))
}

func TestGradingService_UnknownQuestion(t *testing.T) {
	svc, repo, _ := newGradingService(t)
	ctx := context.Background()
	result := seedGradableResult(t, repo)

	_, err := svc.GradeShortAnswer(ctx, result.ID, &GradeShortAnswerRequest{QuestionID: 99, PointsAwarded: 1}, "admin-1")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestRecomputeTotal(t *testing.T) {
	two := 2
	details := []models.QuestionDetail{
		{QuestionType: models.MultipleChoice, IsCorrect: true, Points: 2},
		{QuestionType: models.TrueFalse, IsCorrect: false, Points: 1},
		{QuestionType: models.ShortAnswer, Points: 3, PointsAwarded: &two},
		{QuestionType: models.ShortAnswer, Points: 3, Pending: true},
	}
	assert.Equal(t, 4, RecomputeTotal(details))
}
