package game

import "errors"

var (
	ErrNoDailyQuestion    = errors.New("no daily question for this date")
	ErrWrongQuestion      = errors.New("question is not today's challenge")
	ErrAlreadyAnswered    = errors.New("daily question already answered")
	ErrUnknownPowerup     = errors.New("unknown power-up")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrPowerupUnavailable = errors.New("power-up not owned")
)

// PointsPerDaily is the fixed award for a correct daily answer.
const PointsPerDaily = 10

// DailyQuestion is one per (user, calendar date), created lazily on
// first access and answered at most once.
type DailyQuestion struct {
	ID                string   `json:"id"`
	UserID            string   `json:"userId"`
	Date              string   `json:"date"` // YYYY-MM-DD
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	CorrectAnswer     string   `json:"correctAnswer,omitempty"`
	Explanation       string   `json:"explanation,omitempty"`
	Topic             string   `json:"topic"`
	Answered          bool     `json:"answered"`
	AnsweredCorrectly bool     `json:"answeredCorrectly"`
}

// Redacted hides the key and explanation until the question has been
// answered.
func (q DailyQuestion) Redacted() DailyQuestion {
	if !q.Answered {
		q.CorrectAnswer = ""
		q.Explanation = ""
	}
	return q
}

type UserStats struct {
	UserID           string `json:"userId"`
	Points           int    `json:"points"`
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	TotalCorrect     int    `json:"totalCorrect"`
	TotalAnswered    int    `json:"totalAnswered"`
	LastActivityDate string `json:"lastActivityDate,omitempty"` // YYYY-MM-DD
}

type UserPowerup struct {
	UserID    string `json:"userId"`
	PowerupID string `json:"powerupId"`
	Quantity  int    `json:"quantity"`
}

// AnswerResult is the payload for a graded daily answer.
type AnswerResult struct {
	Correct       bool      `json:"correct"`
	CorrectAnswer string    `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	PointsEarned  int       `json:"pointsEarned"`
	Stats         UserStats `json:"stats"`
}
