package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func capitalQuestion() Question {
	return Question{
		ID:            1,
		Type:          models.MultipleChoice,
		Text:          "Capital of France?",
		Options:       []string{"Paris", "London", "Berlin"},
		CorrectAnswer: "Paris",
		Points:        2,
	}
}

func boolQuestion() Question {
	return Question{
		ID:            2,
		Type:          models.TrueFalse,
		Text:          "The sky is blue.",
		CorrectAnswer: "true",
		Points:        1,
	}
}

func essayQuestion() Question {
	return Question{
		ID:            3,
		Type:          models.ShortAnswer,
		Text:          "Name the process plants use to make food.",
		CorrectAnswer: "photosynthesis",
		Points:        5,
	}
}

func startedSession(t *testing.T, cfg Config, questions []Question, clock *fakeClock) *Session {
	t.Helper()
	s := New(cfg, questions, WithClock(clock.Now), WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, s.Begin())
	require.NoError(t, s.SetParticipantName("Ada"))
	return s
}

func TestSession_StateTransitions(t *testing.T) {
	s := New(Config{QuizID: 1}, []Question{capitalQuestion()}, WithClock(newFakeClock().Now))

	assert.Equal(t, StateWelcome, s.State())

	_, err := s.SubmitAnswer("Paris")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Begin())
	assert.Equal(t, StateNameEntry, s.State())
	assert.ErrorIs(t, s.Begin(), ErrInvalidTransition)

	assert.ErrorIs(t, s.SetParticipantName("   "), ErrNameRequired)
	require.NoError(t, s.SetParticipantName("Ada"))
	assert.Equal(t, StateQuiz, s.State())
}

func TestSession_CorrectFirstAttemptAdvances(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 1}, []Question{capitalQuestion(), boolQuestion()}, clock)

	sub, err := s.SubmitAnswer("Paris")
	require.NoError(t, err)
	assert.True(t, sub.IsCorrect)
	assert.True(t, sub.Resolved)
	assert.False(t, sub.Completed)
	assert.Equal(t, 1, sub.AttemptsUsed)
	assert.Equal(t, "Correct!", sub.Feedback)

	current, ok := s.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, uint(2), current.ID)
}

func TestSession_AttemptCapAndClosure(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 1}, []Question{capitalQuestion(), boolQuestion()}, clock)

	sub, err := s.SubmitAnswer("London")
	require.NoError(t, err)
	assert.Equal(t, "Incorrect. You have 2 attempts remaining.", sub.Feedback)
	assert.False(t, sub.Resolved)

	sub, err = s.SubmitAnswer("Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Incorrect. You have 1 attempt remaining.", sub.Feedback)
	assert.False(t, sub.Resolved)

	sub, err = s.SubmitAnswer("paris")
	require.NoError(t, err)
	assert.False(t, sub.IsCorrect, "case-sensitive comparison rejects the final attempt")
	assert.True(t, sub.Resolved, "three misses close the question")
	assert.Equal(t, 3, sub.AttemptsUsed)
	assert.Equal(t, "All attempts used. The correct answer was: Paris", sub.Feedback)

	// The session advanced past the exhausted question.
	current, ok := s.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, uint(2), current.ID)
}

func TestSession_NoSubmissionAfterCorrect(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 1}, []Question{capitalQuestion()}, clock)

	sub, err := s.SubmitAnswer("Paris")
	require.NoError(t, err)
	assert.True(t, sub.Completed, "resolving the last question finalizes the session")

	_, err = s.SubmitAnswer("Paris")
	assert.ErrorIs(t, err, ErrSessionFinished)

	outcome, ok := s.Outcome()
	require.True(t, ok)
	require.Len(t, outcome.Details, 1)
	assert.LessOrEqual(t, outcome.Details[0].Attempts, MaxAttempts)
}

func TestSession_TimeAccumulatesAcrossAttempts(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 1}, []Question{capitalQuestion()}, clock)

	clock.Advance(10 * time.Second)
	_, err := s.SubmitAnswer("London")
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	sub, err := s.SubmitAnswer("Paris")
	require.NoError(t, err)
	require.True(t, sub.Completed)

	outcome, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, 15, outcome.Details[0].TimeSpentSeconds,
		"per-question time sums attempt durations, not wall-clock session time")
	correctAttempt := outcome.Details[0].CorrectAttempt
	require.NotNil(t, correctAttempt)
	assert.Equal(t, 2, *correctAttempt)
}

func TestSession_CountdownForcesFinalize(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 7, DurationMinutes: 1}, []Question{capitalQuestion()}, clock)

	remaining := s.Remaining()
	require.NotNil(t, remaining)
	assert.Equal(t, 60, *remaining)

	clock.Advance(60 * time.Second)
	require.True(t, s.Expired())

	_, err := s.SubmitAnswer("Paris")
	assert.ErrorIs(t, err, ErrTimeExpired)

	outcome, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, EndReasonTimeout, outcome.EndReason)
	assert.Equal(t, 0, outcome.TotalScore)
	assert.Equal(t, 1, outcome.TotalQuestions)
	assert.Equal(t, 60, outcome.TimeSpentSeconds)

	require.Len(t, outcome.Details, 1)
	detail := outcome.Details[0]
	assert.Equal(t, 0, detail.Attempts)
	assert.False(t, detail.IsCorrect)
	assert.Nil(t, detail.UserAnswer, "an unanswered question is written with a null user_answer")
	assert.Nil(t, detail.CorrectAttempt)
}

func TestSession_TotalScoreRoundTrip(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 1}, []Question{capitalQuestion(), boolQuestion(), essayQuestion()}, clock)

	_, err := s.SubmitAnswer("Paris")
	require.NoError(t, err)
	_, err = s.SubmitAnswer("True")
	require.NoError(t, err)
	sub, err := s.SubmitAnswer("Photosynthesis")
	require.NoError(t, err)
	require.True(t, sub.Completed)

	outcome, ok := s.Outcome()
	require.True(t, ok)

	// Short answers match automatically but score nothing until manually
	// graded: 2 (multiple choice) + 1 (true/false).
	assert.Equal(t, 3, outcome.TotalScore)

	recomputed := 0
	for _, d := range outcome.Details {
		if d.IsCorrect && d.QuestionType != models.ShortAnswer {
			recomputed += d.Points
		}
	}
	assert.Equal(t, outcome.TotalScore, recomputed,
		"total recomputed from details equals the stored total")

	essay := outcome.Details[2]
	assert.True(t, essay.IsCorrect, "the automatic flag is recorded")
	assert.True(t, essay.Pending, "but the entry stays pending for manual grading")
}

func TestSession_FinalizeIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, Config{QuizID: 1}, []Question{capitalQuestion()}, clock)

	first, err := s.Finalize(EndReasonTimeout)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	second, err := s.Finalize(EndReasonCompleted)
	require.NoError(t, err)
	assert.Same(t, first, second, "a finished session keeps its original outcome")
}

func TestSession_RandomizationHappensOnceAtLoad(t *testing.T) {
	questions := []Question{capitalQuestion(), boolQuestion(), essayQuestion()}
	cfg := Config{QuizID: 1, RandomizeQuestions: true, RandomizeOptions: true}

	a := New(cfg, questions, WithRand(rand.New(rand.NewSource(42))))
	b := New(cfg, questions, WithRand(rand.New(rand.NewSource(42))))

	require.NoError(t, a.Begin())
	require.NoError(t, a.SetParticipantName("Ada"))
	require.NoError(t, b.Begin())
	require.NoError(t, b.SetParticipantName("Ada"))

	qa, ok := a.CurrentQuestion()
	require.True(t, ok)
	qb, ok := b.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, qa.ID, qb.ID, "same seed yields the same fixed order")

	// The source slice is never mutated by shuffling.
	assert.Equal(t, uint(1), questions[0].ID)
	assert.Equal(t, []string{"Paris", "London", "Berlin"}, questions[0].Options)
}

func TestStore_ExpiredSessions(t *testing.T) {
	clock := newFakeClock()
	store := NewStore()

	timed := startedSession(t, Config{QuizID: 1, DurationMinutes: 1}, []Question{capitalQuestion()}, clock)
	untimed := startedSession(t, Config{QuizID: 2}, []Question{capitalQuestion()}, clock)
	store.Put(timed)
	store.Put(untimed)
	assert.Equal(t, 2, store.Len())

	assert.Empty(t, store.Expired())

	clock.Advance(61 * time.Second)
	expired := store.Expired()
	require.Len(t, expired, 1)
	assert.Equal(t, timed.Token(), expired[0].Token())

	store.Delete(timed.Token())
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(timed.Token())
	assert.False(t, ok)
}
