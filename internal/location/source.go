package location

import (
	"context"
	"sync"
	"time"

	"github.com/JunasVee/dynamits-driver/internal/domain"
)

// Fix is one device position reading.
type Fix struct {
	Position domain.Coordinates
	Accuracy float64
	Time     time.Time
}

// Update carries either a fix or a watch error; a watch error is not
// terminal, the stream continues.
type Update struct {
	Fix *Fix
	Err error
}

// Options mirror the device geolocation watch configuration.
type Options struct {
	HighAccuracy bool
	MaximumAge   time.Duration
	Timeout      time.Duration
}

func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		MaximumAge:   10 * time.Second,
		Timeout:      5 * time.Second,
	}
}

// Source is a continuous device position feed. Watch must stop delivering
// and release the subscription when ctx is cancelled.
type Source interface {
	Watch(ctx context.Context, opts Options) (<-chan Update, error)
}

// PushSource adapts externally pushed fixes (the browser shim posting
// device geolocation readings) into a Source. Only one watch is active at
// a time; fixes older than MaximumAge are dropped on delivery.
type PushSource struct {
	mu      sync.Mutex
	updates chan Update
	opts    Options
	watched bool
}

func NewPushSource() *PushSource {
	return &PushSource{}
}

func (s *PushSource) Watch(ctx context.Context, opts Options) (<-chan Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watched {
		return nil, errAlreadyWatching
	}

	s.updates = make(chan Update, 16)
	s.opts = opts
	s.watched = true
	updates := s.updates

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		close(s.updates)
		s.updates = nil
		s.watched = false
	}()

	return updates, nil
}

// Push delivers a fix to the active watcher. Fixes arriving with no watch
// in place, or staler than the configured maximum age, are discarded.
func (s *PushSource) Push(fix Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updates == nil {
		return
	}
	if s.opts.MaximumAge > 0 && !fix.Time.IsZero() && time.Since(fix.Time) > s.opts.MaximumAge {
		return
	}

	select {
	case s.updates <- Update{Fix: &fix}:
	default:
		// Watcher is behind; a newer fix will follow, drop this one.
	}
}

// PushError reports a device-side watch failure (permission denied,
// acquisition timeout) to the active watcher.
func (s *PushSource) PushError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updates == nil {
		return
	}
	select {
	case s.updates <- Update{Err: err}:
	default:
	}
}
