package engine

import "fmt"

// ValidationError rejects a malformed alarm field before anything is
// persisted or scheduled.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned by edit-style operations on a missing alarm.
// Cancel-style operations treat a missing alarm as a no-op instead.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("alarm %q not found", e.ID)
}

// SnoozeExhaustedError rejects a snooze past the per-ring-cycle ceiling.
type SnoozeExhaustedError struct {
	Max int
}

func (e SnoozeExhaustedError) Error() string {
	if e.Max <= 0 {
		return "snoozing is not allowed for this alarm"
	}
	return fmt.Sprintf("no snoozes remaining (max %d)", e.Max)
}
