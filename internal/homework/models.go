package homework

import "errors"

// Difficulty and type enums match the values the generation prompt is
// built from; anything else is rejected at creation time.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"

	TypeMultipleChoice = "Multiple Choice"
	TypeFillBlanks     = "Fill in the blanks"
	TypeShortAnswer    = "Short Answer"
)

var ErrNotFound = errors.New("homework not found")

type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Homework is immutable after creation; exam settings are fixed at
// create time and never read back from the client.
type Homework struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Topic         string     `json:"topic"`
	Difficulty    string     `json:"difficulty"`
	Type          string     `json:"type"`
	Questions     []Question `json:"questions"`
	TimerMinutes  int        `json:"timerMinutes"`  // 0 = unlimited
	QuestionCount int        `json:"questionCount"` // 0 = all
	AntiCheat     bool       `json:"antiCheat"`
	CreatedAt     int64      `json:"createdAt"`
}

// ExamSubmission is write-once.
type ExamSubmission struct {
	ID             string `json:"id"`
	HomeworkID     string `json:"homeworkId"`
	StudentName    string `json:"studentName"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
	Answers        []bool `json:"answers"`
	TimeSpentSec   *int   `json:"timeSpent,omitempty"`
	SubmittedAt    int64  `json:"submittedAt"`
}

type VocabularyWord struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
	Category   string `json:"category,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// CreateInput is the teacher's creation request. Settings default to
// zero values (untimed, all questions, no anti-cheat).
type CreateInput struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	Type          string `json:"type"`
	TimerMinutes  int    `json:"timerMinutes"`
	QuestionCount int    `json:"questionCount"`
	AntiCheat     bool   `json:"antiCheat"`
}

// FieldError reports a validation failure with the offending field.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (in CreateInput) Validate() error {
	if in.Topic == "" {
		return &FieldError{Message: "topic is required", Field: "topic"}
	}
	switch in.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return &FieldError{Message: "unknown difficulty", Field: "difficulty"}
	}
	switch in.Type {
	case TypeMultipleChoice, TypeFillBlanks, TypeShortAnswer:
	default:
		return &FieldError{Message: "unknown type", Field: "type"}
	}
	if in.TimerMinutes < 0 {
		return &FieldError{Message: "must not be negative", Field: "timerMinutes"}
	}
	if in.QuestionCount < 0 {
		return &FieldError{Message: "must not be negative", Field: "questionCount"}
	}
	return nil
}
