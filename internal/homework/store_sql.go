package homework

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutHomework(ctx context.Context, hw Homework) error {
	qj, err := json.Marshal(hw.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO homework
		(id,user_id,topic,difficulty,type,content_json,timer_minutes,question_count,anti_cheat,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		hw.ID, hw.UserID, hw.Topic, hw.Difficulty, hw.Type, string(qj),
		hw.TimerMinutes, hw.QuestionCount, hw.AntiCheat, hw.CreatedAt)
	return err
}

func (s *SQLStore) GetHomework(ctx context.Context, id string) (Homework, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,topic,difficulty,type,content_json,
		timer_minutes,question_count,anti_cheat,created_at FROM homework WHERE id=$1`, id)
	return scanHomework(row)
}

func (s *SQLStore) ListHomeworkByUser(ctx context.Context, userID string) ([]Homework, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,topic,difficulty,type,content_json,
		timer_minutes,question_count,anti_cheat,created_at FROM homework
		WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Homework{}
	for rows.Next() {
		hw, err := scanHomework(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, hw)
	}
	return out, rows.Err()
}

// DeleteHomework conflates absent and not-owned into ErrNotFound so a
// caller cannot probe for other users' records.
func (s *SQLStore) DeleteHomework(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM homework WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) PutSubmission(ctx context.Context, sub ExamSubmission) error {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return err
	}
	var spent sql.NullInt64
	if sub.TimeSpentSec != nil {
		spent = sql.NullInt64{Int64: int64(*sub.TimeSpentSec), Valid: true}
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exam_submissions
		(id,homework_id,student_name,score,total_questions,percentage,answers_json,time_spent_sec,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		sub.ID, sub.HomeworkID, sub.StudentName, sub.Score, sub.TotalQuestions,
		sub.Percentage, string(aj), spent, sub.SubmittedAt)
	return err
}

func (s *SQLStore) ListSubmissionsByOwner(ctx context.Context, ownerID string) ([]ExamSubmission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT s.id,s.homework_id,s.student_name,s.score,
		s.total_questions,s.percentage,s.answers_json,s.time_spent_sec,s.submitted_at
		FROM exam_submissions s JOIN homework h ON h.id = s.homework_id
		WHERE h.user_id=$1 ORDER BY s.submitted_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (s *SQLStore) ListSubmissionsByHomework(ctx context.Context, homeworkID string) ([]ExamSubmission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,homework_id,student_name,score,
		total_questions,percentage,answers_json,time_spent_sec,submitted_at
		FROM exam_submissions WHERE homework_id=$1 ORDER BY submitted_at DESC`, homeworkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (s *SQLStore) PutVocabularyWord(ctx context.Context, w VocabularyWord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO vocabulary_words
		(id,user_id,word,definition,example,category,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		w.ID, w.UserID, w.Word, w.Definition, w.Example, w.Category, w.CreatedAt)
	return err
}

func (s *SQLStore) ListVocabularyByUser(ctx context.Context, userID string) ([]VocabularyWord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,word,definition,example,category,created_at
		FROM vocabulary_words WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VocabularyWord{}
	for rows.Next() {
		var w VocabularyWord
		var example, category sql.NullString
		if err := rows.Scan(&w.ID, &w.UserID, &w.Word, &w.Definition, &example, &category, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Example = example.String
		w.Category = category.String
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteVocabularyWord(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM vocabulary_words WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHomework(row rowScanner) (Homework, error) {
	var hw Homework
	var qjson string
	err := row.Scan(&hw.ID, &hw.UserID, &hw.Topic, &hw.Difficulty, &hw.Type, &qjson,
		&hw.TimerMinutes, &hw.QuestionCount, &hw.AntiCheat, &hw.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Homework{}, ErrNotFound
	}
	if err != nil {
		return Homework{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &hw.Questions); err != nil {
		return Homework{}, err
	}
	return hw, nil
}

func collectSubmissions(rows *sql.Rows) ([]ExamSubmission, error) {
	out := []ExamSubmission{}
	for rows.Next() {
		var sub ExamSubmission
		var ajson string
		var spent sql.NullInt64
		if err := rows.Scan(&sub.ID, &sub.HomeworkID, &sub.StudentName, &sub.Score,
			&sub.TotalQuestions, &sub.Percentage, &ajson, &spent, &sub.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
			sub.Answers = nil
		}
		if spent.Valid {
			v := int(spent.Int64)
			sub.TimeSpentSec = &v
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
