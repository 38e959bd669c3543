package game

import "context"

// Store is the persistence boundary for the gamification ledger. The
// answered-once and sufficient-points guarantees live in the store so
// they can lean on per-row update semantics.
type Store interface {
	GetDailyQuestion(ctx context.Context, userID, date string) (DailyQuestion, error)
	// InsertDailyQuestion is conflict-tolerant: when another request
	// already created today's row, the existing row wins and is
	// returned, so at most one generation is persisted per user/day.
	InsertDailyQuestion(ctx context.Context, q DailyQuestion) (DailyQuestion, error)
	// MarkAnswered flips answered exactly once; a second call returns
	// ErrAlreadyAnswered regardless of request interleaving.
	MarkAnswered(ctx context.Context, id, userID string, correct bool) error

	GetStats(ctx context.Context, userID string) (UserStats, error)
	SaveStats(ctx context.Context, stats UserStats) error

	ListPowerups(ctx context.Context, userID string) ([]UserPowerup, error)
	// BuyPowerup debits exactly price points and increments quantity in
	// one transaction; ErrInsufficientPoints leaves both unchanged.
	BuyPowerup(ctx context.Context, userID, powerupID string, price int) error
	// UsePowerup decrements quantity, removing the row at zero;
	// ErrPowerupUnavailable when none owned.
	UsePowerup(ctx context.Context, userID, powerupID string) error
}
