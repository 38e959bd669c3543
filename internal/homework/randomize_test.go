package homework_test

import (
	"testing"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

func bank(n int) []homework.Question {
	qs := make([]homework.Question, n)
	for i := range qs {
		qs[i] = homework.Question{
			ID:            i + 1,
			Question:      "question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
		}
	}
	return qs
}

func TestRandomizeTruncates(t *testing.T) {
	qs := homework.Randomize(bank(5), 3)
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	seen := map[int]bool{}
	for _, q := range qs {
		if q.ID < 1 || q.ID > 5 {
			t.Fatalf("question %d not drawn from the bank", q.ID)
		}
		if seen[q.ID] {
			t.Fatalf("question %d repeated", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestRandomizeNoLimit(t *testing.T) {
	for _, limit := range []int{0, 5, 10} {
		qs := homework.Randomize(bank(5), limit)
		if len(qs) != 5 {
			t.Fatalf("limit=%d: got %d questions, want all 5", limit, len(qs))
		}
	}
}

func TestRandomizeKeepsFieldSet(t *testing.T) {
	qs := homework.Randomize(bank(4), 0)
	for _, q := range qs {
		if len(q.Options) != 4 {
			t.Fatalf("options lost in shuffle: %v", q.Options)
		}
		opts := map[string]bool{}
		for _, o := range q.Options {
			opts[o] = true
		}
		for _, want := range []string{"a", "b", "c", "d"} {
			if !opts[want] {
				t.Fatalf("option %q missing after shuffle", want)
			}
		}
		if q.CorrectAnswer != "a" {
			t.Fatalf("correct answer mutated: %q", q.CorrectAnswer)
		}
	}
}

func TestRandomizeDoesNotMutateBank(t *testing.T) {
	src := bank(5)
	_ = homework.Randomize(src, 2)
	for i, q := range src {
		if q.ID != i+1 {
			t.Fatalf("source bank reordered at %d", i)
		}
	}
}
