package homework

// Settings are the effective exam parameters for one session.
type Settings struct {
	TimerSeconds     int  `json:"timerSeconds"`  // 0 = unlimited
	QuestionLimit    int  `json:"questionLimit"` // 0 = all
	AntiCheatEnabled bool `json:"antiCheatEnabled"`
}

// ResolveSettings derives session parameters from the persisted record
// only. Share links and session requests never carry these values, so a
// student cannot weaken the timer or anti-cheat settings.
func ResolveSettings(hw Homework) Settings {
	s := Settings{
		TimerSeconds:     hw.TimerMinutes * 60,
		QuestionLimit:    hw.QuestionCount,
		AntiCheatEnabled: hw.AntiCheat,
	}
	if s.TimerSeconds < 0 {
		s.TimerSeconds = 0
	}
	if s.QuestionLimit < 0 {
		s.QuestionLimit = 0
	}
	return s
}
