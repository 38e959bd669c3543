package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/ai"
)

// Generator produces the daily challenge content.
type Generator interface {
	GenerateDailyQuestion(ctx context.Context) (ai.DailyQuestion, error)
}

// Ledger is the gamification service: daily question, points, streak
// and the power-up shop, keyed by user and calendar date.
type Ledger struct {
	store Store
	gen   Generator
	now   func() time.Time
}

func NewLedger(store Store, gen Generator) *Ledger {
	return &Ledger{store: store, gen: gen, now: time.Now}
}

const dateLayout = "2006-01-02"

func (l *Ledger) today() string { return l.now().Format(dateLayout) }

// GetOrCreateDaily returns today's question, generating and persisting
// one on first access. The unique (user, date) row in the store keeps
// concurrent first accesses down to a single persisted generation.
func (l *Ledger) GetOrCreateDaily(ctx context.Context, userID string) (DailyQuestion, error) {
	date := l.today()
	q, err := l.store.GetDailyQuestion(ctx, userID, date)
	if err == nil {
		return q.Redacted(), nil
	}
	if err != ErrNoDailyQuestion {
		return DailyQuestion{}, err
	}

	gen, err := l.gen.GenerateDailyQuestion(ctx)
	if err != nil {
		return DailyQuestion{}, fmt.Errorf("generate daily question: %w", err)
	}
	q, err = l.store.InsertDailyQuestion(ctx, DailyQuestion{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          date,
		Question:      gen.Question,
		Options:       gen.Options,
		CorrectAnswer: gen.CorrectAnswer,
		Explanation:   gen.Explanation,
		Topic:         gen.Topic,
	})
	if err != nil {
		return DailyQuestion{}, err
	}
	return q.Redacted(), nil
}

// AnswerDaily grades today's question, awards fixed points on a correct
// answer and applies the streak rule. The answered flag is terminal for
// the day; repeat attempts fail without touching stats.
func (l *Ledger) AnswerDaily(ctx context.Context, userID, questionID, answer string) (AnswerResult, error) {
	date := l.today()
	q, err := l.store.GetDailyQuestion(ctx, userID, date)
	if err != nil {
		return AnswerResult{}, err
	}
	if q.ID != questionID {
		return AnswerResult{}, ErrWrongQuestion
	}
	if q.Answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	correct := answer == q.CorrectAnswer
	if err := l.store.MarkAnswered(ctx, q.ID, userID, correct); err != nil {
		return AnswerResult{}, err
	}

	stats, err := l.store.GetStats(ctx, userID)
	if err != nil {
		return AnswerResult{}, err
	}
	stats.UserID = userID
	stats.TotalAnswered++
	points := 0
	if correct {
		stats.TotalCorrect++
		points = PointsPerDaily
		stats.Points += points
	}
	applyStreak(&stats, date, correct)
	if err := l.store.SaveStats(ctx, stats); err != nil {
		return AnswerResult{}, err
	}

	return AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		PointsEarned:  points,
		Stats:         stats,
	}, nil
}

// applyStreak implements the date-diff rule: a correct answer on the
// day right after the last activity extends the streak, a longer gap
// starts over at 1 (correct) or 0 (incorrect), and a same-day
// re-evaluation leaves the streak alone.
func applyStreak(stats *UserStats, date string, correct bool) {
	diff := daysBetween(stats.LastActivityDate, date)
	switch {
	case stats.LastActivityDate != "" && diff == 0:
		// same day: unchanged
	case correct && diff == 1:
		stats.CurrentStreak++
	case correct:
		stats.CurrentStreak = 1
	default:
		stats.CurrentStreak = 0
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastActivityDate = date
}

// daysBetween returns the calendar-day difference b-a, or -1 when a is
// unset or malformed.
func daysBetween(a, b string) int {
	if a == "" {
		return -1
	}
	ta, err := time.Parse(dateLayout, a)
	if err != nil {
		return -1
	}
	tb, err := time.Parse(dateLayout, b)
	if err != nil {
		return -1
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}

// Stats returns the running totals for a user.
func (l *Ledger) Stats(ctx context.Context, userID string) (UserStats, error) {
	stats, err := l.store.GetStats(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}
	stats.UserID = userID
	return stats, nil
}

// Powerups lists the user's inventory.
func (l *Ledger) Powerups(ctx context.Context, userID string) ([]UserPowerup, error) {
	return l.store.ListPowerups(ctx, userID)
}

// Buy debits the catalog price and increments the owned quantity.
func (l *Ledger) Buy(ctx context.Context, userID, powerupID string) error {
	p, ok := CatalogLookup(powerupID)
	if !ok {
		return ErrUnknownPowerup
	}
	return l.store.BuyPowerup(ctx, userID, p.ID, p.Price)
}

// Use consumes one unit. The gameplay effect of redemption is not
// wired up; using a power-up only decrements inventory.
func (l *Ledger) Use(ctx context.Context, userID, powerupID string) error {
	if _, ok := CatalogLookup(powerupID); !ok {
		return ErrUnknownPowerup
	}
	return l.store.UsePowerup(ctx, userID, powerupID)
}
