package gamify_test

import (
	"testing"
	"time"

	"github.com/codehabit/codehabit-lms/internal/gamify"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, tc := range cases {
		if got := gamify.LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	// First activity ever.
	if got := gamify.NextStreak(0, 0, now); got != 1 {
		t.Errorf("first activity: got %d", got)
	}

	// Same calendar day keeps the streak.
	sameDay := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC).Unix()
	if got := gamify.NextStreak(4, sameDay, now); got != 4 {
		t.Errorf("same day: got %d", got)
	}
	if got := gamify.NextStreak(0, sameDay, now); got != 1 {
		t.Errorf("same day with zero streak: got %d", got)
	}

	// Consecutive day extends it.
	yesterday := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC).Unix()
	if got := gamify.NextStreak(4, yesterday, now); got != 5 {
		t.Errorf("next day: got %d", got)
	}

	// A gap resets to 1.
	twoDaysAgo := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC).Unix()
	if got := gamify.NextStreak(10, twoDaysAgo, now); got != 1 {
		t.Errorf("gap: got %d", got)
	}
}
