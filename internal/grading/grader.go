package grading

import (
	"strings"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

// Strategy grades a single answer against a question.
type Strategy interface {
	Grade(q homework.Question, answer string) bool
}

// Grader routes by homework type to the correct Strategy.
type Grader struct {
	strategies map[string]Strategy
}

// NewGrader installs the built-in strategies: exact match for multiple
// choice (the answer is one of the stored option strings), trimmed
// case-insensitive match for free-text formats.
func NewGrader() *Grader {
	return &Grader{
		strategies: map[string]Strategy{
			homework.TypeMultipleChoice: exactStrategy{},
			homework.TypeFillBlanks:     freeTextStrategy{},
			homework.TypeShortAnswer:    freeTextStrategy{},
		},
	}
}

// Grade reports whether answer is correct for q under the rules of the
// given homework type. Unknown types fall back to free-text matching.
func (g *Grader) Grade(hwType string, q homework.Question, answer string) bool {
	s, ok := g.strategies[hwType]
	if !ok {
		s = freeTextStrategy{}
	}
	return s.Grade(q, answer)
}

type exactStrategy struct{}

func (exactStrategy) Grade(q homework.Question, answer string) bool {
	return answer == q.CorrectAnswer
}

type freeTextStrategy struct{}

func (freeTextStrategy) Grade(q homework.Question, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
}
