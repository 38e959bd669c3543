package homework_test

import (
	"testing"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

func TestResolveSettingsFromRecordOnly(t *testing.T) {
	hw := homework.Homework{
		TimerMinutes:  10,
		QuestionCount: 5,
		AntiCheat:     true,
	}
	s := homework.ResolveSettings(hw)
	if s.TimerSeconds != 600 {
		t.Errorf("TimerSeconds = %d, want 600", s.TimerSeconds)
	}
	if s.QuestionLimit != 5 {
		t.Errorf("QuestionLimit = %d, want 5", s.QuestionLimit)
	}
	if !s.AntiCheatEnabled {
		t.Error("AntiCheatEnabled = false, want true")
	}
}

func TestResolveSettingsZeroValues(t *testing.T) {
	s := homework.ResolveSettings(homework.Homework{})
	if s.TimerSeconds != 0 || s.QuestionLimit != 0 || s.AntiCheatEnabled {
		t.Errorf("zero record should resolve to unlimited/untimed, got %+v", s)
	}
}

func TestResolveSettingsClampsNegatives(t *testing.T) {
	s := homework.ResolveSettings(homework.Homework{TimerMinutes: -3, QuestionCount: -1})
	if s.TimerSeconds != 0 || s.QuestionLimit != 0 {
		t.Errorf("negatives should clamp to 0, got %+v", s)
	}
}

func TestCreateInputValidate(t *testing.T) {
	valid := homework.CreateInput{
		Topic:      "Phrasal verbs",
		Difficulty: homework.DifficultyIntermediate,
		Type:       homework.TypeMultipleChoice,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name  string
		in    homework.CreateInput
		field string
	}{
		{"missing topic", homework.CreateInput{Difficulty: homework.DifficultyBeginner, Type: homework.TypeShortAnswer}, "topic"},
		{"bad difficulty", homework.CreateInput{Topic: "x", Difficulty: "Expert", Type: homework.TypeShortAnswer}, "difficulty"},
		{"bad type", homework.CreateInput{Topic: "x", Difficulty: homework.DifficultyBeginner, Type: "Essay"}, "type"},
		{"negative timer", homework.CreateInput{Topic: "x", Difficulty: homework.DifficultyBeginner, Type: homework.TypeShortAnswer, TimerMinutes: -1}, "timerMinutes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			fe, ok := err.(*homework.FieldError)
			if !ok {
				t.Fatalf("want *FieldError, got %v", err)
			}
			if fe.Field != tc.field {
				t.Errorf("field = %q, want %q", fe.Field, tc.field)
			}
		})
	}
}
