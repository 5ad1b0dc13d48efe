package storage

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Alarm struct {
	ID            string
	Hour          int
	Minute        int
	Label         string
	Enabled       bool
	RepeatDays    []int // 0=Sunday..6=Saturday; empty means one-off
	SoundID       string
	Volume        float64
	SnoozeEnabled bool
	SnoozeMinutes int
	SnoozeMax     int
	SnoozeCount   int
	Difficulty    string
	CreatedAt     time.Time
}

// TimeOfDay renders the alarm time as "HH:MM".
func (a Alarm) TimeOfDay() string {
	var b strings.Builder
	if a.Hour < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(a.Hour))
	b.WriteByte(':')
	if a.Minute < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(a.Minute))
	return b.String()
}

type Player struct {
	Key         string
	Level       int
	XP          int
	XPToNext    int
	Coins       int
	StreakDays  int
	LastSuccess string // local calendar date "2006-01-02"; empty when never succeeded
	TotalWakes  int
}

// ScheduleEntry records one outstanding trigger. A row exists if and only
// if the alarm currently has a live trigger installed.
type ScheduleEntry struct {
	AlarmID string
	Handle  string
	FireAt  time.Time
}

type WakeRecord struct {
	ID           int64
	AlarmID      string
	WokeAt       time.Time
	Difficulty   string
	XPAwarded    int
	CoinsAwarded int
}

// encodeDays serializes weekday indices to the stored "0,3,5" form,
// sorted and deduplicated.
func encodeDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	uniq := make([]int, 0, len(days))
	seen := map[int]bool{}
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}
	sort.Ints(uniq)
	parts := make([]string, len(uniq))
	for i, d := range uniq {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return days
}
