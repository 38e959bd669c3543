package grading_test

import (
	"testing"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/grading"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

func TestGradeMultipleChoiceIsExact(t *testing.T) {
	g := grading.NewGrader()
	q := homework.Question{CorrectAnswer: "went"}

	if !g.Grade(homework.TypeMultipleChoice, q, "went") {
		t.Error("exact option should match")
	}
	if g.Grade(homework.TypeMultipleChoice, q, "Went") {
		t.Error("multiple choice must not casefold; options are stored strings")
	}
	if g.Grade(homework.TypeMultipleChoice, q, " went ") {
		t.Error("multiple choice must not trim")
	}
}

func TestGradeFreeTextTrimsAndFoldsCase(t *testing.T) {
	g := grading.NewGrader()
	q := homework.Question{CorrectAnswer: "Went"}

	for _, hwType := range []string{homework.TypeFillBlanks, homework.TypeShortAnswer} {
		if !g.Grade(hwType, q, "went") {
			t.Errorf("%s: case-insensitive match expected", hwType)
		}
		if !g.Grade(hwType, q, "  WENT \n") {
			t.Errorf("%s: whitespace-trimmed match expected", hwType)
		}
		if g.Grade(hwType, q, "gone") {
			t.Errorf("%s: wrong answer accepted", hwType)
		}
	}
}
