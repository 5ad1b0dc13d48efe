// Package notify abstracts the platform trigger service: something that
// can be asked to deliver a "fired" event at a wall-clock instant and
// hands back an opaque handle for later cancellation.
package notify

import "time"

// Firing is delivered when an installed trigger reaches its fire time.
type Firing struct {
	AlarmID string
	Handle  string
	At      time.Time
}

// Scheduler installs and cancels triggers. Cancel is idempotent:
// cancelling a handle that already fired or was never issued succeeds.
type Scheduler interface {
	Install(at time.Time, alarmID string) (handle string, err error)
	Cancel(handle string) error
}
