package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDifficulty parses user input to a Difficulty.
// Supported: easy, med (medium), hard. Empty input returns the default.
func ParseDifficulty(input string) (Difficulty, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return DefaultDifficulty, nil
	case "easy":
		return DifficultyEasy, nil
	case "med", "medium":
		return DifficultyMed, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %q", input)
	}
}

// ParseTimeOfDay parses "HH:MM" (24-hour) into hour and minute.
func ParseTimeOfDay(input string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(input), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", input)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", input)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", input)
	}
	return hour, minute, nil
}

var dayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// ParseDays parses a repeat-day spec into weekday indices (0=Sunday).
// Accepts day names ("mon,wed,fri"), digits ("1,3,5"), the shorthands
// "daily", "weekdays" and "weekends", or "" / "once" for a one-off.
func ParseDays(input string) ([]int, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "once":
		return nil, nil
	case "daily":
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	case "weekdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekends":
		return []int{0, 6}, nil
	}

	seen := map[int]bool{}
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, ok := dayNames[part]
		if !ok {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid day %q", part)
			}
			d = n
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}
