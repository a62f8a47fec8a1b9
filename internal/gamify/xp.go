// Package gamify holds the pure XP/level/streak rules. The storage layer
// applies them; nothing here touches the database.
package gamify

import "time"

// XPPerLevel is the flat level curve: level 1 at 0 XP, level 2 at 100, ...
const XPPerLevel = 100

// LevelForXP returns the level a user with the given XP total is on.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return 1 + xp/XPPerLevel
}

// NextStreak computes the streak-day count after activity at now, given the
// previous last-active unix timestamp (0 = never active).
//
// Same calendar day: streak unchanged. Next calendar day: streak+1.
// Any longer gap, or first activity: streak resets to 1.
func NextStreak(streak int, lastActiveAt int64, now time.Time) int {
	if lastActiveAt <= 0 {
		return 1
	}
	last := time.Unix(lastActiveAt, 0).UTC()
	today := now.UTC().Truncate(24 * time.Hour)
	lastDay := last.Truncate(24 * time.Hour)

	switch today.Sub(lastDay) {
	case 0:
		if streak < 1 {
			return 1
		}
		return streak
	case 24 * time.Hour:
		return streak + 1
	default:
		return 1
	}
}
