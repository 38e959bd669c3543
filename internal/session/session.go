package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/grading"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

type State string

const (
	// StateNameEntry gates student sessions until a display name is set.
	StateNameEntry  State = "name_entry"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

var (
	ErrNotInProgress    = errors.New("session is not in progress")
	ErrAlreadySubmitted = errors.New("answer already submitted for this question")
	ErrNotSubmitted     = errors.New("current question has not been submitted")
	ErrNameRequired     = errors.New("student name required")
	ErrNotFound         = errors.New("session not found")
)

const celebrateThreshold = 70

// Session drives one exam attempt: one question at a time, submit then
// advance, with an optional countdown and anti-cheat guard. All methods
// are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	ID           string
	HomeworkID   string
	HomeworkType string
	Topic        string
	StudentView  bool

	settings  homework.Settings
	bank      []homework.Question // full bank, for restart reshuffles
	questions []homework.Question
	grader    *grading.Grader

	state       State
	studentName string
	idx         int
	submitted   bool
	lastCorrect bool
	score       int
	answers     []bool
	timedOut    bool

	remaining int // seconds left; meaningful only when timed
	startedAt time.Time
	timer     *countdown

	reporter *reporter
	guard    *Guard

	// set by the manager so ticks and completion reports run off it
	tickInterval time.Duration
}

// Start supplies the student name and moves a NameEntry session into
// InProgress, arming the countdown and anti-cheat guard.
func (s *Session) Start(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNameEntry {
		return ErrNotInProgress
	}
	if s.StudentView && isBlank(name) {
		return ErrNameRequired
	}
	s.studentName = name
	s.beginLocked()
	return nil
}

// SubmitResult is returned from SubmitAnswer; the key and explanation
// are revealed only once the question is answered.
type SubmitResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// SubmitAnswer grades the current question. A second submit before
// advancing is rejected even though the UI disables the action.
func (s *Session) SubmitAnswer(answer string) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return SubmitResult{}, ErrNotInProgress
	}
	if s.submitted {
		return SubmitResult{}, ErrAlreadySubmitted
	}
	q := s.questions[s.idx]
	correct := s.grader.Grade(s.HomeworkType, q, answer)
	if correct {
		s.score++
	}
	s.answers = append(s.answers, correct)
	s.submitted = true
	s.lastCorrect = correct
	return SubmitResult{Correct: correct, CorrectAnswer: q.CorrectAnswer, Explanation: q.Explanation}, nil
}

// Advance moves to the next question, or completes the session when the
// last question has been submitted. Advancing an unsubmitted question
// is rejected.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if !s.submitted {
		return ErrNotSubmitted
	}
	if s.idx < len(s.questions)-1 {
		s.idx++
		s.submitted = false
		s.lastCorrect = false
		return nil
	}
	s.completeLocked()
	return nil
}

// Restart rezeroes index, score, history and clock, reshuffles the
// question order, and returns to the initial state. Student sessions go
// back to name entry; teacher previews begin immediately.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.guard.Release()
	s.questions = homework.Randomize(s.bank, s.settings.QuestionLimit)
	s.idx = 0
	s.submitted = false
	s.lastCorrect = false
	s.score = 0
	s.answers = nil
	s.timedOut = false
	s.remaining = s.settings.TimerSeconds
	s.reporter.Reset()
	if s.StudentView {
		s.state = StateNameEntry
		s.studentName = ""
		return
	}
	s.beginLocked()
}

// beginLocked enters InProgress and arms the per-session resources.
func (s *Session) beginLocked() {
	s.state = StateInProgress
	s.startedAt = time.Now()
	s.remaining = s.settings.TimerSeconds
	if s.settings.AntiCheatEnabled {
		s.guard.Acquire()
	}
	if s.settings.TimerSeconds > 0 {
		s.startTimerLocked()
	}
}

// tick is invoked once per timer interval while InProgress. Reaching
// zero forces completion; an unsubmitted question is simply never
// recorded, it is not auto-submitted.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.timedOut = true
		s.completeLocked()
	}
}

func (s *Session) completeLocked() {
	s.state = StateCompleted
	s.stopTimerLocked()
	s.guard.Release()
	if s.StudentView && s.studentName != "" {
		spent := int(time.Since(s.startedAt) / time.Second)
		s.reporter.Report(homework.ExamSubmission{
			HomeworkID:     s.HomeworkID,
			StudentName:    s.studentName,
			Score:          s.score,
			TotalQuestions: len(s.questions),
			Percentage:     percentage(s.score, len(s.questions)),
			Answers:        append([]bool(nil), s.answers...),
			TimeSpentSec:   &spent,
		})
	}
}

// Snapshot is the client-facing view of a session. The answer key for
// the current question is withheld until it has been submitted.
type Snapshot struct {
	ID          string `json:"id"`
	State       State  `json:"state"`
	Topic       string `json:"topic"`
	Type        string `json:"type"`
	StudentName string `json:"studentName,omitempty"`

	QuestionIndex  int      `json:"questionIndex"`
	TotalQuestions int      `json:"totalQuestions"`
	Question       string   `json:"question,omitempty"`
	Options        []string `json:"options,omitempty"`
	Submitted      bool     `json:"submitted"`
	LastCorrect    bool     `json:"lastCorrect"`

	Score            int  `json:"score"`
	TimerSeconds     int  `json:"timerSeconds"`
	Remaining        int  `json:"remaining"`
	AntiCheatEnabled bool `json:"antiCheatEnabled"`

	// populated once completed
	Percentage int    `json:"percentage"`
	Answers    []bool `json:"answers,omitempty"`
	TimedOut   bool   `json:"timedOut,omitempty"`
	Celebrate  bool   `json:"celebrate,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:               s.ID,
		State:            s.state,
		Topic:            s.Topic,
		Type:             s.HomeworkType,
		StudentName:      s.studentName,
		QuestionIndex:    s.idx,
		TotalQuestions:   len(s.questions),
		Submitted:        s.submitted,
		LastCorrect:      s.lastCorrect,
		Score:            s.score,
		TimerSeconds:     s.settings.TimerSeconds,
		Remaining:        s.remaining,
		AntiCheatEnabled: s.settings.AntiCheatEnabled,
	}
	switch s.state {
	case StateInProgress:
		q := s.questions[s.idx]
		snap.Question = q.Question
		snap.Options = q.Options
	case StateCompleted:
		snap.Percentage = percentage(s.score, len(s.questions))
		snap.Answers = append([]bool(nil), s.answers...)
		snap.TimedOut = s.timedOut
		snap.Celebrate = snap.Percentage >= celebrateThreshold
		snap.Message = scoreMessage(snap.Percentage)
	}
	return snap
}

// HandleEvent routes a reported browser event (copy, paste, ...) to the
// anti-cheat guard.
func (s *Session) HandleEvent(kind string) EventResult {
	return s.guard.Handle(kind)
}

// Close releases the timer and guard on unmount paths.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.guard.Release()
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

func scoreMessage(pct int) string {
	switch {
	case pct == 100:
		return "Perfect Score!"
	case pct >= 90:
		return "Outstanding!"
	case pct >= 80:
		return "Great Job!"
	case pct >= 70:
		return "Good Work!"
	case pct >= 60:
		return "Nice Effort!"
	case pct >= 50:
		return "Keep Practicing!"
	default:
		return "Don't Give Up!"
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}
