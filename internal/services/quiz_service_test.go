package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/quizdesk/quiz-service/internal/events"
	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://quiz.example.com"

func newQuizService(t *testing.T) (QuizService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()
	repo, cacheService, publisher, logger := newTestEnv(t)
	svc := NewQuizService(repo, logger, validator.New(), cacheService, publisher, testOrigin)
	return svc, repo, publisher
}

func seedQuestion(t *testing.T, repo *fakeRepository, quizID uint) *models.Question {
	t.Helper()
	question := &models.Question{
		QuizID:        quizID,
		Type:          models.MultipleChoice,
		Text:          "Capital of France?",
		CorrectAnswer: "Paris",
		Points:        2,
		Position:      1,
	}
	require.NoError(t, question.SetOptionList([]string{"Paris", "London", "Berlin"}))
	require.NoError(t, repo.question.Create(context.Background(), question))
	return question
}

func TestQuizService_CreateAndPublish(t *testing.T) {
	svc, repo, publisher := newQuizService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizDraft, created.Status)
	assert.Empty(t, created.ShareLink)

	// No questions yet, publishing must be refused.
	_, err = svc.Publish(ctx, created.ID, "admin-1")
	assert.ErrorIs(t, err, ErrQuizNotPublishable)

	seedQuestion(t, repo, created.ID)

	published, err := svc.Publish(ctx, created.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizPublished, published.Status)
	require.NotNil(t, published.AccessCode)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-Z]{6}$`), *published.AccessCode)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, "https://quiz.example.com/quiz/1/start", published.ShareLink)

	eventList := publisher.PublishedEvents()
	require.Len(t, eventList, 1)
	assert.Equal(t, events.EventQuizPublished, eventList[0].Type)

	// Publishing twice is a status conflict.
	_, err = svc.Publish(ctx, created.ID, "admin-1")
	assert.ErrorIs(t, err, ErrQuizInvalidStatus)
}

func TestQuizService_DuplicateTitle(t *testing.T) {
	svc, _, _ := newQuizService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-1")
	assert.ErrorIs(t, err, ErrQuizDuplicateTitle)

	// Another admin may reuse the title.
	_, err = svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-2")
	assert.NoError(t, err)
}

func TestQuizService_UpdateRequiresDraft(t *testing.T) {
	svc, repo, _ := newQuizService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-1")
	require.NoError(t, err)
	seedQuestion(t, repo, created.ID)

	_, err = svc.Publish(ctx, created.ID, "admin-1")
	require.NoError(t, err)

	newTitle := "Geography II"
	_, err = svc.Update(ctx, created.ID, &UpdateQuizRequest{Title: &newTitle}, "admin-1")
	assert.ErrorIs(t, err, ErrQuizNotEditable)
}

func TestQuizService_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newQuizService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-1")
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.ID, "admin-2")
	assert.True(t, IsForbidden(err))

	err = svc.Delete(ctx, created.ID, "admin-2")
	assert.True(t, IsForbidden(err))
}

func TestQuizService_ArchiveFlow(t *testing.T) {
	svc, repo, _ := newQuizService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateQuizRequest{Title: "Geography"}, "admin-1")
	require.NoError(t, err)

	// Drafts cannot be archived directly.
	_, err = svc.Archive(ctx, created.ID, "admin-1")
	assert.ErrorIs(t, err, ErrQuizInvalidStatus)

	seedQuestion(t, repo, created.ID)
	_, err = svc.Publish(ctx, created.ID, "admin-1")
	require.NoError(t, err)

	archived, err := svc.Archive(ctx, created.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizArchived, archived.Status)
}
