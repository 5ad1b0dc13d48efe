package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TimerScheduler is the in-process Scheduler used by the watch daemon
// and by tests. Each installed trigger is a time.Timer; firings are
// published on a buffered channel.
//
// Timers die with the process. The durable schedule table plus the
// startup reconcile pass re-install anything that was lost.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	fired  chan Firing
	closed bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[string]*time.Timer),
		fired:  make(chan Firing, 16),
	}
}

// Fired is the stream of trigger firings.
func (s *TimerScheduler) Fired() <-chan Firing {
	return s.fired
}

func (s *TimerScheduler) Install(at time.Time, alarmID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", fmt.Errorf("scheduler closed")
	}

	handle := uuid.NewString()
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(handle, alarmID, at)
	})
	return handle, nil
}

func (s *TimerScheduler) fire(handle, alarmID string, at time.Time) {
	s.mu.Lock()
	_, live := s.timers[handle]
	delete(s.timers, handle)
	closed := s.closed
	s.mu.Unlock()

	if !live || closed {
		return
	}
	select {
	case s.fired <- Firing{AlarmID: alarmID, Handle: handle, At: at}:
	default:
		slog.Warn("dropping firing, event channel full", "alarm_id", alarmID)
	}
}

// Cancel stops the trigger if it is still pending. Unknown or already
// fired handles are a successful no-op.
func (s *TimerScheduler) Cancel(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[handle]; ok {
		t.Stop()
		delete(s.timers, handle)
	}
	return nil
}

// Pending reports how many triggers are currently armed.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops all pending timers; the scheduler rejects new installs
// afterwards.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for h, t := range s.timers {
		t.Stop()
		delete(s.timers, h)
	}
}
