package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) GetDailyQuestion(ctx context.Context, userID, date string) (DailyQuestion, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,date,question,options_json,
		correct_answer,explanation,topic,answered,answered_correctly
		FROM daily_questions WHERE user_id=$1 AND date=$2`, userID, date)
	return scanDaily(row)
}

func (s *SQLStore) InsertDailyQuestion(ctx context.Context, q DailyQuestion) (DailyQuestion, error) {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return DailyQuestion{}, err
	}
	// ON CONFLICT DO NOTHING + re-select: concurrent first accesses
	// persist a single generation per (user, date).
	_, err = s.db.ExecContext(ctx, `INSERT INTO daily_questions
		(id,user_id,date,question,options_json,correct_answer,explanation,topic,answered,answered_correctly)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,FALSE,FALSE)
		ON CONFLICT (user_id,date) DO NOTHING`,
		q.ID, q.UserID, q.Date, q.Question, string(oj), q.CorrectAnswer, q.Explanation, q.Topic)
	if err != nil {
		return DailyQuestion{}, err
	}
	return s.GetDailyQuestion(ctx, q.UserID, q.Date)
}

func (s *SQLStore) MarkAnswered(ctx context.Context, id, userID string, correct bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE daily_questions
		SET answered=TRUE, answered_correctly=$1
		WHERE id=$2 AND user_id=$3 AND answered=FALSE`, correct, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyAnswered
	}
	return nil
}

func (s *SQLStore) GetStats(ctx context.Context, userID string) (UserStats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT points,current_streak,longest_streak,
		total_correct,total_answered,last_activity_date FROM user_stats WHERE user_id=$1`, userID)
	var st UserStats
	var last sql.NullString
	err := row.Scan(&st.Points, &st.CurrentStreak, &st.LongestStreak,
		&st.TotalCorrect, &st.TotalAnswered, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return UserStats{UserID: userID}, nil
	}
	if err != nil {
		return UserStats{}, err
	}
	st.UserID = userID
	st.LastActivityDate = last.String
	return st, nil
}

func (s *SQLStore) SaveStats(ctx context.Context, stats UserStats) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO user_stats
		(user_id,points,current_streak,longest_streak,total_correct,total_answered,last_activity_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (user_id) DO UPDATE SET
			points=EXCLUDED.points,
			current_streak=EXCLUDED.current_streak,
			longest_streak=EXCLUDED.longest_streak,
			total_correct=EXCLUDED.total_correct,
			total_answered=EXCLUDED.total_answered,
			last_activity_date=EXCLUDED.last_activity_date`,
		stats.UserID, stats.Points, stats.CurrentStreak, stats.LongestStreak,
		stats.TotalCorrect, stats.TotalAnswered, nullIfEmpty(stats.LastActivityDate))
	return err
}

func (s *SQLStore) ListPowerups(ctx context.Context, userID string) ([]UserPowerup, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id,powerup_id,quantity
		FROM user_powerups WHERE user_id=$1 ORDER BY powerup_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []UserPowerup{}
	for rows.Next() {
		var p UserPowerup
		if err := rows.Scan(&p.UserID, &p.PowerupID, &p.Quantity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) BuyPowerup(ctx context.Context, userID, powerupID string, price int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Conditional debit: zero rows means the balance cannot cover the
	// price, and the transaction leaves points and inventory untouched.
	res, err := tx.ExecContext(ctx, `UPDATE user_stats SET points=points-$1
		WHERE user_id=$2 AND points>=$1`, price, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientPoints
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO user_powerups (user_id,powerup_id,quantity)
		VALUES ($1,$2,1)
		ON CONFLICT (user_id,powerup_id) DO UPDATE SET quantity=user_powerups.quantity+1`,
		userID, powerupID)
	if err != nil {
		return fmt.Errorf("increment inventory: %w", err)
	}
	return tx.Commit()
}

func (s *SQLStore) UsePowerup(ctx context.Context, userID, powerupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE user_powerups SET quantity=quantity-1
		WHERE user_id=$1 AND powerup_id=$2 AND quantity>=1`, userID, powerupID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPowerupUnavailable
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM user_powerups
		WHERE user_id=$1 AND powerup_id=$2 AND quantity<=0`, userID, powerupID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func scanDaily(row *sql.Row) (DailyQuestion, error) {
	var q DailyQuestion
	var ojson string
	err := row.Scan(&q.ID, &q.UserID, &q.Date, &q.Question, &ojson,
		&q.CorrectAnswer, &q.Explanation, &q.Topic, &q.Answered, &q.AnsweredCorrectly)
	if errors.Is(err, sql.ErrNoRows) {
		return DailyQuestion{}, ErrNoDailyQuestion
	}
	if err != nil {
		return DailyQuestion{}, err
	}
	if err := json.Unmarshal([]byte(ojson), &q.Options); err != nil {
		return DailyQuestion{}, err
	}
	return q, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
