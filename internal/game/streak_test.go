package game

import "testing"

func TestApplyStreak(t *testing.T) {
	cases := []struct {
		name        string
		stats       UserStats
		date        string
		correct     bool
		wantCurrent int
		wantLongest int
	}{
		{"first ever correct", UserStats{}, "2026-08-28", true, 1, 1},
		{"first ever incorrect", UserStats{}, "2026-08-28", false, 0, 0},
		{"consecutive day extends",
			UserStats{CurrentStreak: 3, LongestStreak: 3, LastActivityDate: "2026-08-27"},
			"2026-08-28", true, 4, 4},
		{"gap restarts at one",
			UserStats{CurrentStreak: 5, LongestStreak: 5, LastActivityDate: "2026-08-20"},
			"2026-08-28", true, 1, 5},
		{"incorrect breaks streak",
			UserStats{CurrentStreak: 5, LongestStreak: 5, LastActivityDate: "2026-08-27"},
			"2026-08-28", false, 0, 5},
		{"same day leaves streak alone",
			UserStats{CurrentStreak: 2, LongestStreak: 4, LastActivityDate: "2026-08-28"},
			"2026-08-28", true, 2, 4},
		{"same day incorrect also unchanged",
			UserStats{CurrentStreak: 2, LongestStreak: 4, LastActivityDate: "2026-08-28"},
			"2026-08-28", false, 2, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := tc.stats
			applyStreak(&stats, tc.date, tc.correct)
			if stats.CurrentStreak != tc.wantCurrent {
				t.Errorf("current = %d, want %d", stats.CurrentStreak, tc.wantCurrent)
			}
			if stats.LongestStreak != tc.wantLongest {
				t.Errorf("longest = %d, want %d", stats.LongestStreak, tc.wantLongest)
			}
			if stats.LastActivityDate != tc.date {
				t.Errorf("lastActivity = %q, want %q", stats.LastActivityDate, tc.date)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2026-08-27", "2026-08-28", 1},
		{"2026-08-28", "2026-08-28", 0},
		{"2026-08-20", "2026-08-28", 8},
		{"2026-08-31", "2026-09-01", 1},
		{"", "2026-08-28", -1},
		{"garbage", "2026-08-28", -1},
	}
	for _, tc := range cases {
		if got := daysBetween(tc.a, tc.b); got != tc.want {
			t.Errorf("daysBetween(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
