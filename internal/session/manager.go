package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/grading"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

// HomeworkSource loads the persisted record a session is built from.
type HomeworkSource interface {
	GetHomework(ctx context.Context, id string) (homework.Homework, error)
}

// Manager owns the live sessions. One logical session per attempt; no
// cross-session coordination.
type Manager struct {
	source HomeworkSource
	sink   SubmissionSink
	grader *grading.Grader

	// tick interval for countdowns; tests shorten it
	interval time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

type Option func(*Manager)

// WithTickInterval shortens the countdown tick; tests use it to run
// timed sessions in milliseconds.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

func NewManager(source HomeworkSource, sink SubmissionSink, opts ...Option) *Manager {
	m := &Manager{
		source:   source,
		sink:     sink,
		grader:   grading.NewGrader(),
		interval: time.Second,
		sessions: map[string]*Session{},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start resolves settings from the stored record (never from the
// caller), randomizes the question list, and registers the session.
// Student sessions wait in NameEntry; teacher previews begin at once.
func (m *Manager) Start(ctx context.Context, homeworkID string, studentView bool) (*Session, error) {
	hw, err := m.source.GetHomework(ctx, homeworkID)
	if err != nil {
		return nil, err
	}
	settings := homework.ResolveSettings(hw)
	s := &Session{
		ID:           uuid.NewString(),
		HomeworkID:   hw.ID,
		HomeworkType: hw.Type,
		Topic:        hw.Topic,
		StudentView:  studentView,
		settings:     settings,
		bank:         hw.Questions,
		questions:    homework.Randomize(hw.Questions, settings.QuestionLimit),
		grader:       m.grader,
		state:        StateNameEntry,
		remaining:    settings.TimerSeconds,
		reporter:     newReporter(m.sink),
		guard:        NewGuard(settings.AntiCheatEnabled),
		tickInterval: m.interval,
	}
	if !studentView {
		s.mu.Lock()
		s.beginLocked()
		s.mu.Unlock()
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove closes the session and drops it from the registry; the
// unmount path, so timers and guards are always released.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}
