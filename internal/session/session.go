package session

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quizdesk/quiz-service/internal/models"
)

// State is the participant-facing phase of one quiz session.
type State string

const (
	StateWelcome   State = "welcome"
	StateNameEntry State = "name_entry"
	StateQuiz      State = "quiz"
	StateThankYou  State = "thank_you"
)

// MaxAttempts is the per-question submission cap.
const MaxAttempts = 3

type EndReason string

const (
	EndReasonCompleted EndReason = "completed"
	EndReasonTimeout   EndReason = "timeout"
)

var (
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrNameRequired      = errors.New("participant name is required")
	ErrSessionFinished   = errors.New("session already finished")
	ErrQuestionClosed    = errors.New("no further submissions accepted for this question")
	ErrTimeExpired       = errors.New("session time has expired")
)

// AttemptState tracks the live per-question counters for one session. It is
// created lazily on the first submission and folded into the result's
// question_details at finalize time.
type AttemptState struct {
	AttemptsUsed     int
	LastAnswer       *string
	IsCorrect        bool
	CorrectOnAttempt *int
	TimeSpentSeconds int
	Pending          bool
}

// CanSubmit reports whether the question is still open.
func (a *AttemptState) CanSubmit() bool {
	return a.AttemptsUsed < MaxAttempts && !a.IsCorrect
}

// Submission is the outcome of one answer submission.
type Submission struct {
	QuestionID   uint   `json:"question_id"`
	IsCorrect    bool   `json:"is_correct"`
	Pending      bool   `json:"pending,omitempty"`
	AttemptsUsed int    `json:"attempts_used"`
	Feedback     string `json:"feedback"`
	Resolved     bool   `json:"resolved"`
	Completed    bool   `json:"completed"`
}

// Outcome is the immutable snapshot a finished session produces; the result
// submission path persists it verbatim.
type Outcome struct {
	QuizID           uint
	ParticipantName  string
	TotalScore       int
	TotalQuestions   int
	Details          []models.QuestionDetail
	TimeSpentSeconds int
	CompletedAt      time.Time
	EndReason        EndReason
}

// Progress is a read-only view of where a session currently stands.
type Progress struct {
	State            State  `json:"state"`
	ParticipantName  string `json:"participant_name,omitempty"`
	CurrentIndex     int    `json:"current_index"`
	TotalQuestions   int    `json:"total_questions"`
	AttemptsUsed     int    `json:"attempts_used"`
	RemainingSeconds *int   `json:"remaining_seconds,omitempty"`
}

// Config carries the quiz settings a session needs at load time.
type Config struct {
	QuizID             uint
	QuizTitle          string
	DurationMinutes    int
	RandomizeQuestions bool
	RandomizeOptions   bool
}

type Option func(*Session)

// WithClock makes timestamps deterministic in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand fixes the shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// Session drives one participant through welcome → name_entry → quiz →
// thank_you. It owns the answer loop: each submission goes through the
// scorer, updates the attempt tracker, and on resolution either advances the
// index or finalizes.
type Session struct {
	token     string
	cfg       Config
	questions []Question

	mu              sync.Mutex
	state           State
	participantName string
	current         int
	attempts        map[uint]*AttemptState

	startedAt         time.Time
	deadline          *time.Time
	questionStartedAt time.Time
	outcome           *Outcome

	now func() time.Time
	rng *rand.Rand
}

// New builds a session over a normalized question list. Question order and,
// if configured, option order are randomized once here and never again.
func New(cfg Config, questions []Question, opts ...Option) *Session {
	s := &Session{
		token:     uuid.NewString(),
		cfg:       cfg,
		state:     StateWelcome,
		attempts:  make(map[uint]*AttemptState),
		questions: make([]Question, len(questions)),
		now:       time.Now,
	}
	copy(s.questions, questions)

	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}

	if cfg.RandomizeQuestions {
		s.rng.Shuffle(len(s.questions), func(i, j int) {
			s.questions[i], s.questions[j] = s.questions[j], s.questions[i]
		})
	}
	if cfg.RandomizeOptions {
		for i := range s.questions {
			options := make([]string, len(s.questions[i].Options))
			copy(options, s.questions[i].Options)
			s.rng.Shuffle(len(options), func(a, b int) {
				options[a], options[b] = options[b], options[a]
			})
			s.questions[i].Options = options
		}
	}

	return s
}

func (s *Session) Token() string { return s.token }

func (s *Session) QuizID() uint { return s.cfg.QuizID }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin moves the session off the welcome screen.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateWelcome {
		return ErrInvalidTransition
	}
	s.state = StateNameEntry
	return nil
}

// SetParticipantName enters the quiz proper: records the session start,
// arms the countdown if the quiz is timed, and starts the timer for the
// first question.
func (s *Session) SetParticipantName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNameEntry {
		return ErrInvalidTransition
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	s.participantName = name
	s.state = StateQuiz
	s.startedAt = s.now()
	s.questionStartedAt = s.startedAt

	if s.cfg.DurationMinutes > 0 {
		deadline := s.startedAt.Add(time.Duration(s.cfg.DurationMinutes) * time.Minute)
		s.deadline = &deadline
	}

	if len(s.questions) == 0 {
		s.finalizeLocked(EndReasonCompleted)
	}
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateQuiz || s.current >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// SubmitAnswer scores one submission against the current question. A wrong
// non-final attempt keeps the question open and restarts its timer; a
// correct answer or the third miss resolves it and advances the index, and
// resolving the last question finalizes the session. A submission that
// arrives after the countdown ran out force-finalizes with whatever answers
// are recorded.
func (s *Session) SubmitAnswer(value string) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateThankYou {
		return Submission{}, ErrSessionFinished
	}
	if s.state != StateQuiz {
		return Submission{}, ErrInvalidTransition
	}
	if s.expiredLocked() {
		s.finalizeLocked(EndReasonTimeout)
		return Submission{}, ErrTimeExpired
	}

	q := s.questions[s.current]
	st := s.attempts[q.ID]
	if st == nil {
		st = &AttemptState{}
		s.attempts[q.ID] = st
	}
	if !st.CanSubmit() {
		return Submission{}, ErrQuestionClosed
	}

	res := Score(q, value)
	now := s.now()

	st.AttemptsUsed++
	answer := value
	st.LastAnswer = &answer
	st.Pending = res.Pending
	st.TimeSpentSeconds += int(now.Sub(s.questionStartedAt).Seconds())
	if res.IsCorrect {
		st.IsCorrect = true
		attempt := st.AttemptsUsed
		st.CorrectOnAttempt = &attempt
	}

	sub := Submission{
		QuestionID:   q.ID,
		IsCorrect:    res.IsCorrect,
		Pending:      res.Pending,
		AttemptsUsed: st.AttemptsUsed,
		Feedback:     Feedback(q, res, st.AttemptsUsed),
		Resolved:     res.IsCorrect || st.AttemptsUsed >= MaxAttempts,
	}

	// The timer accumulates across attempts: every submission restarts it,
	// whether the question stays open or the next one comes up.
	s.questionStartedAt = now

	if sub.Resolved {
		s.current++
		if s.current >= len(s.questions) {
			s.finalizeLocked(EndReasonCompleted)
			sub.Completed = true
		}
	}

	return sub, nil
}

// Expired reports whether a timed session's countdown has run out.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiredLocked()
}

func (s *Session) expiredLocked() bool {
	return s.state == StateQuiz && s.deadline != nil && !s.now().Before(*s.deadline)
}

// Remaining returns the countdown in whole seconds, or nil for untimed
// sessions or sessions not yet in the quiz state.
func (s *Session) Remaining() *int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateQuiz || s.deadline == nil {
		return nil
	}
	remaining := int(s.deadline.Sub(s.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// Progress returns a read-only view of the session.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Progress{
		State:           s.state,
		ParticipantName: s.participantName,
		CurrentIndex:    s.current,
		TotalQuestions:  len(s.questions),
	}
	if s.state == StateQuiz && s.current < len(s.questions) {
		if st := s.attempts[s.questions[s.current].ID]; st != nil {
			p.AttemptsUsed = st.AttemptsUsed
		}
	}
	if s.state == StateQuiz && s.deadline != nil {
		remaining := int(s.deadline.Sub(s.now()).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		p.RemainingSeconds = &remaining
	}
	return p
}

// Finalize ends the session and produces its outcome. Finalizing an already
// finished session returns the original outcome unchanged.
func (s *Session) Finalize(reason EndReason) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateThankYou {
		return s.outcome, nil
	}
	if s.state != StateQuiz {
		return nil, ErrInvalidTransition
	}
	return s.finalizeLocked(reason), nil
}

// Outcome returns the finalized snapshot, if the session has finished.
func (s *Session) Outcome() (*Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, s.outcome != nil
}

// finalizeLocked folds the attempt tracker into per-question details and
// recomputes the total score from scratch. The incremental path is never
// trusted: the stored total always derives from the recorded answers.
func (s *Session) finalizeLocked(reason EndReason) *Outcome {
	now := s.now()

	details := make([]models.QuestionDetail, 0, len(s.questions))
	total := 0
	for _, q := range s.questions {
		detail := models.QuestionDetail{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			QuestionType:  q.Type,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
		}

		if st := s.attempts[q.ID]; st != nil && st.AttemptsUsed > 0 {
			detail.UserAnswer = st.LastAnswer
			detail.Attempts = st.AttemptsUsed
			detail.CorrectAttempt = st.CorrectOnAttempt
			detail.IsCorrect = st.IsCorrect
			detail.TimeSpentSeconds = st.TimeSpentSeconds
			detail.Pending = st.Pending
		}
		// An unanswered question stays at attempts 0 / is_correct false with
		// a null user_answer.

		if detail.IsCorrect && q.Type != models.ShortAnswer {
			total += q.Points
		}
		details = append(details, detail)
	}

	elapsed := 0
	if !s.startedAt.IsZero() {
		elapsed = int(now.Sub(s.startedAt).Seconds())
		if s.deadline != nil {
			if limit := int(s.deadline.Sub(s.startedAt).Seconds()); elapsed > limit {
				elapsed = limit
			}
		}
	}

	s.outcome = &Outcome{
		QuizID:           s.cfg.QuizID,
		ParticipantName:  s.participantName,
		TotalScore:       total,
		TotalQuestions:   len(s.questions),
		Details:          details,
		TimeSpentSeconds: elapsed,
		CompletedAt:      now,
		EndReason:        reason,
	}
	s.state = StateThankYou
	return s.outcome
}
