package engine

import (
	"time"

	"sunup/internal/storage"
)

// NextOccurrence returns the next instant the alarm should ring,
// strictly after from. The reference is truncated to whole minutes; the
// alarm time is interpreted as wall-clock time in from's location.
//
// One-off alarms ring today if the time is still ahead, else tomorrow.
// Repeating alarms ring on the earliest weekday in RepeatDays whose
// target time is strictly after the reference, scanning the next seven
// days. An alarm whose time equals the reference minute exactly is not
// selected, which guards against re-firing inside the same minute.
func NextOccurrence(a storage.Alarm, from time.Time) time.Time {
	base := from.Truncate(time.Minute)
	target := time.Date(base.Year(), base.Month(), base.Day(), a.Hour, a.Minute, 0, 0, base.Location())

	if len(a.RepeatDays) == 0 {
		if target.After(base) {
			return target
		}
		return target.AddDate(0, 0, 1)
	}

	member := make(map[int]bool, len(a.RepeatDays))
	for _, d := range a.RepeatDays {
		member[d] = true
	}
	for offset := 0; offset < 7; offset++ {
		candidate := target.AddDate(0, 0, offset)
		if !member[int(candidate.Weekday())] {
			continue
		}
		if candidate.After(base) {
			return candidate
		}
	}

	// Unreachable for a valid RepeatDays set, but keep the contract total.
	return target.AddDate(0, 0, 7)
}
