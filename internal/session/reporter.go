package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

// SubmissionSink persists a completed student result.
type SubmissionSink interface {
	PutSubmission(ctx context.Context, sub homework.ExamSubmission) error
}

// reporter hands the final score to persistence at most once per
// completion. Failures are logged, never retried; the student already
// has their score locally.
type reporter struct {
	sink SubmissionSink

	mu    sync.Mutex
	fired bool
}

func newReporter(sink SubmissionSink) *reporter { return &reporter{sink: sink} }

func (r *reporter) Report(sub homework.ExamSubmission) {
	r.mu.Lock()
	if r.fired || r.sink == nil {
		r.mu.Unlock()
		return
	}
	r.fired = true
	r.mu.Unlock()

	sub.ID = uuid.NewString()
	sub.SubmittedAt = time.Now().Unix()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.sink.PutSubmission(ctx, sub); err != nil {
			log.Printf("submission report failed (homework=%s student=%s): %v",
				sub.HomeworkID, sub.StudentName, err)
		}
	}()
}

// Reset re-arms the reporter for a restarted attempt.
func (r *reporter) Reset() {
	r.mu.Lock()
	r.fired = false
	r.mu.Unlock()
}
