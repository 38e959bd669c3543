package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/session"
)

/* ---------------- fakes ---------------- */

type fakeSource struct {
	hw  homework.Homework
	err error
}

func (f *fakeSource) GetHomework(ctx context.Context, id string) (homework.Homework, error) {
	if f.err != nil {
		return homework.Homework{}, f.err
	}
	if id != f.hw.ID {
		return homework.Homework{}, homework.ErrNotFound
	}
	return f.hw, nil
}

type fakeSink struct {
	mu   sync.Mutex
	subs []homework.ExamSubmission
	ch   chan homework.ExamSubmission
}

func newFakeSink() *fakeSink {
	return &fakeSink{ch: make(chan homework.ExamSubmission, 4)}
}

func (f *fakeSink) PutSubmission(ctx context.Context, sub homework.ExamSubmission) error {
	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()
	f.ch <- sub
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// testHomework builds a short-answer bank where each question's key is
// derived from its text, so tests can answer correctly on purpose.
func testHomework(n int, opts ...func(*homework.Homework)) homework.Homework {
	hw := homework.Homework{
		ID:    "hw-1",
		Topic: "Irregular verbs",
		Type:  homework.TypeShortAnswer,
	}
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("q-%d", i+1)
		hw.Questions = append(hw.Questions, homework.Question{
			ID:            i + 1,
			Question:      text,
			CorrectAnswer: "ans-" + text,
			Explanation:   "because",
		})
	}
	for _, o := range opts {
		o(&hw)
	}
	return hw
}

func answerCurrent(t *testing.T, s *session.Session, correct bool) {
	t.Helper()
	snap := s.Snapshot()
	answer := "ans-" + snap.Question
	if !correct {
		answer = "wrong"
	}
	res, err := s.SubmitAnswer(answer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Correct != correct {
		t.Fatalf("submit graded %v, want %v", res.Correct, correct)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
}

/* ---------------- state machine ---------------- */

func TestAdvanceBeforeSubmitRejected(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(2)}, newFakeSink())
	s, err := mgr.Start(context.Background(), "hw-1", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); !errors.Is(err, session.ErrNotSubmitted) {
		t.Fatalf("advance before submit: got %v, want ErrNotSubmitted", err)
	}
}

func TestDoubleSubmitRejected(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(2)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", false)

	if _, err := s.SubmitAnswer("whatever"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := s.SubmitAnswer("whatever"); !errors.Is(err, session.ErrAlreadySubmitted) {
		t.Fatalf("second submit: got %v, want ErrAlreadySubmitted", err)
	}
}

func TestStudentSessionRequiresName(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(2)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", true)

	if snap := s.Snapshot(); snap.State != session.StateNameEntry {
		t.Fatalf("student session should wait in name entry, got %s", snap.State)
	}
	if _, err := s.SubmitAnswer("x"); !errors.Is(err, session.ErrNotInProgress) {
		t.Fatalf("submit before start: got %v, want ErrNotInProgress", err)
	}
	if err := s.Start("   "); !errors.Is(err, session.ErrNameRequired) {
		t.Fatalf("blank name: got %v, want ErrNameRequired", err)
	}
	if err := s.Start("Linh"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap := s.Snapshot(); snap.State != session.StateInProgress {
		t.Fatalf("state = %s, want in_progress", snap.State)
	}
}

func TestUnknownHomework(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(1)}, newFakeSink())
	if _, err := mgr.Start(context.Background(), "nope", false); !errors.Is(err, homework.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

/* ---------------- scoring ---------------- */

// Five questions capped at three, two answered correctly: the session
// presents exactly 3 of the 5 and finishes at score 2, 67%.
func TestStudentExamScenario(t *testing.T) {
	hw := testHomework(5, func(h *homework.Homework) { h.QuestionCount = 3 })
	sink := newFakeSink()
	mgr := session.NewManager(&fakeSource{hw: hw}, sink)

	s, _ := mgr.Start(context.Background(), "hw-1", true)
	if err := s.Start("Minh"); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); snap.TotalQuestions != 3 {
		t.Fatalf("session has %d questions, want 3", snap.TotalQuestions)
	}

	answerCurrent(t, s, true)
	answerCurrent(t, s, true)
	answerCurrent(t, s, false)

	snap := s.Snapshot()
	if snap.State != session.StateCompleted {
		t.Fatalf("state = %s, want completed", snap.State)
	}
	if snap.Score != 2 || snap.Percentage != 67 {
		t.Fatalf("score=%d pct=%d, want 2 and 67", snap.Score, snap.Percentage)
	}
	if snap.Celebrate {
		t.Error("67%% must not celebrate")
	}
	wantAnswers := []bool{true, true, false}
	for i, v := range wantAnswers {
		if snap.Answers[i] != v {
			t.Fatalf("answers = %v, want %v", snap.Answers, wantAnswers)
		}
	}

	select {
	case sub := <-sink.ch:
		if sub.HomeworkID != "hw-1" || sub.StudentName != "Minh" {
			t.Fatalf("submission identity wrong: %+v", sub)
		}
		if sub.Score != 2 || sub.TotalQuestions != 3 || sub.Percentage != 67 {
			t.Fatalf("submission score wrong: %+v", sub)
		}
		if sub.TimeSpentSec == nil {
			t.Fatal("submission missing time spent")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submission never reported")
	}
	if got := sink.count(); got != 1 {
		t.Fatalf("reported %d times, want exactly 1", got)
	}
}

func TestCelebrationAtSeventyPercent(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(3)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", false)
	answerCurrent(t, s, true)
	answerCurrent(t, s, true)
	answerCurrent(t, s, true)
	snap := s.Snapshot()
	if snap.Percentage != 100 || !snap.Celebrate {
		t.Fatalf("pct=%d celebrate=%v, want 100 and true", snap.Percentage, snap.Celebrate)
	}
}

func TestTeacherPreviewDoesNotReport(t *testing.T) {
	sink := newFakeSink()
	mgr := session.NewManager(&fakeSource{hw: testHomework(1)}, sink)
	s, _ := mgr.Start(context.Background(), "hw-1", false)
	answerCurrent(t, s, true)
	time.Sleep(50 * time.Millisecond)
	if sink.count() != 0 {
		t.Fatal("teacher preview must not create submissions")
	}
}

/* ---------------- restart ---------------- */

func TestRestartRezeroesCounters(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(2)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", false)
	answerCurrent(t, s, true)
	answerCurrent(t, s, true)
	if snap := s.Snapshot(); snap.State != session.StateCompleted {
		t.Fatalf("precondition: session should be completed, got %s", snap.State)
	}

	s.Restart()
	snap := s.Snapshot()
	if snap.State != session.StateInProgress {
		t.Fatalf("teacher restart should begin immediately, got %s", snap.State)
	}
	if snap.Score != 0 || snap.QuestionIndex != 0 || snap.Submitted || len(snap.Answers) != 0 {
		t.Fatalf("counters not rezeroed: %+v", snap)
	}
}

func TestStudentRestartReturnsToNameEntry(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(1)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", true)
	if err := s.Start("An"); err != nil {
		t.Fatal(err)
	}
	answerCurrent(t, s, true)

	s.Restart()
	snap := s.Snapshot()
	if snap.State != session.StateNameEntry {
		t.Fatalf("student restart should return to name entry, got %s", snap.State)
	}
	if snap.StudentName != "" {
		t.Fatalf("student name should be cleared, got %q", snap.StudentName)
	}
}

/* ---------------- timer ---------------- */

func TestTimerForcesCompletion(t *testing.T) {
	hw := testHomework(2, func(h *homework.Homework) { h.TimerMinutes = 1 })
	sink := newFakeSink()
	mgr := session.NewManager(&fakeSource{hw: hw}, sink,
		session.WithTickInterval(time.Millisecond))

	s, _ := mgr.Start(context.Background(), "hw-1", true)
	if err := s.Start("Bao"); err != nil {
		t.Fatal(err)
	}
	// Answer the first question, leave the second unsubmitted.
	snap := s.Snapshot()
	if _, err := s.SubmitAnswer("ans-" + snap.Question); err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		snap = s.Snapshot()
		if snap.State == session.StateCompleted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timer never forced completion")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !snap.TimedOut {
		t.Error("completion should be marked as timed out")
	}
	if snap.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", snap.Remaining)
	}
	// The unsubmitted question is not auto-submitted; only the first
	// answer is on record and the score reflects it.
	if snap.Score != 1 || len(snap.Answers) != 1 {
		t.Errorf("score=%d answers=%v; unsubmitted question must count as not-correct, not auto-submit",
			snap.Score, snap.Answers)
	}
	if snap.Percentage != 50 {
		t.Errorf("percentage = %d, want 50 (1 of 2)", snap.Percentage)
	}

	select {
	case sub := <-sink.ch:
		if sub.Score != 1 || sub.TotalQuestions != 2 {
			t.Fatalf("timed-out submission wrong: %+v", sub)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed-out session never reported")
	}
}

func TestUntimedSessionHasNoCountdown(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(1)}, newFakeSink(),
		session.WithTickInterval(time.Millisecond))
	s, _ := mgr.Start(context.Background(), "hw-1", false)
	time.Sleep(20 * time.Millisecond)
	if snap := s.Snapshot(); snap.State != session.StateInProgress {
		t.Fatalf("untimed session must not expire, got %s", snap.State)
	}
}

/* ---------------- anti-cheat guard ---------------- */

func TestGuardScopedToActiveSession(t *testing.T) {
	hw := testHomework(1, func(h *homework.Homework) { h.AntiCheat = true })
	mgr := session.NewManager(&fakeSource{hw: hw}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", true)

	if res := s.HandleEvent("copy"); res.Suppressed {
		t.Error("guard must not attach before the session starts")
	}
	if err := s.Start("Chi"); err != nil {
		t.Fatal(err)
	}
	res := s.HandleEvent("copy")
	if !res.Suppressed || res.Notice == "" {
		t.Fatalf("copy during exam: got %+v, want suppression with notice", res)
	}
	if res := s.HandleEvent("contextmenu"); !res.Suppressed || res.Notice != "" {
		t.Fatalf("contextmenu should suppress silently, got %+v", res)
	}
	if res := s.HandleEvent("keydown"); res.Suppressed {
		t.Error("unguarded events must pass through")
	}

	answerCurrent(t, s, true)
	if res := s.HandleEvent("paste"); res.Suppressed {
		t.Error("guard must detach once the session completes")
	}
}

func TestGuardDisabledWhenAntiCheatOff(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(1)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", false)
	if res := s.HandleEvent("copy"); res.Suppressed {
		t.Error("events must not be suppressed when anti-cheat is off")
	}
}

/* ---------------- manager ---------------- */

func TestManagerRemoveReleasesSession(t *testing.T) {
	mgr := session.NewManager(&fakeSource{hw: testHomework(1)}, newFakeSink())
	s, _ := mgr.Start(context.Background(), "hw-1", false)
	mgr.Remove(s.ID)
	if _, err := mgr.Get(s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after removal", err)
	}
}
