package engine

import (
	"time"

	"sunup/internal/storage"
)

// Reward is the XP and coin payout for one successful wake.
type Reward struct {
	XP    int
	Coins int
}

// RewardFor maps difficulty to payout. Unknown values get a small safe
// default rather than failing; a stored alarm always pays something.
func RewardFor(d Difficulty) Reward {
	switch d {
	case DifficultyEasy:
		return Reward{XP: 20, Coins: 5}
	case DifficultyMed:
		return Reward{XP: 35, Coins: 8}
	case DifficultyHard:
		return Reward{XP: 50, Coins: 12}
	default:
		return Reward{XP: 10, Coins: 2}
	}
}

// XPToNext is the cost of the level after the given one.
func XPToNext(level int) int {
	return 100 + level*50
}

const dateLayout = "2006-01-02"

// ApplySuccess folds one successful wake into the player state and
// returns the result. Pure: the caller supplies now and persists the
// returned player.
//
// Leveling carries over: a single reward may produce multiple level-ups.
// The streak uses local calendar days — a second success on the same day
// leaves it unchanged, a success the day after the last one extends it,
// anything else restarts it at 1.
func ApplySuccess(p storage.Player, a storage.Alarm, now time.Time) storage.Player {
	reward := RewardFor(Difficulty(a.Difficulty))

	p.XP += reward.XP
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		p.XPToNext = XPToNext(p.Level)
	}

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	switch p.LastSuccess {
	case "":
		p.StreakDays = 1
	case today:
		// Already counted today.
	case yesterday:
		p.StreakDays++
	default:
		p.StreakDays = 1
	}
	p.LastSuccess = today

	p.Coins += reward.Coins
	p.TotalWakes++
	return p
}
