package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	"github.com/JunasVee/dynamits-driver/internal/maps"
)

type fakeSource struct {
	updates   chan Update
	WatchFunc func(ctx context.Context, opts Options) (<-chan Update, error)
}

func (f *fakeSource) Watch(ctx context.Context, opts Options) (<-chan Update, error) {
	if f.WatchFunc != nil {
		return f.WatchFunc(ctx, opts)
	}
	return f.updates, nil
}

func newRunningTracker(t *testing.T) (*Tracker, *fakeSource, *maps.StateSurface, context.CancelFunc) {
	t.Helper()

	surface := maps.NewStateSurface()
	source := &fakeSource{updates: make(chan Update)}
	tracker := NewTracker(surface, source, DefaultOptions(), maps.Icon{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tracker.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return tracker, source, surface, cancel
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func liveMarker(surface *maps.StateSurface) (maps.Marker, bool) {
	for _, m := range surface.Snapshot().Markers {
		if m.ID == LiveMarkerID {
			return m, true
		}
	}
	return maps.Marker{}, false
}

func TestRun_FirstFixAddsMarkerAndPans(t *testing.T) {
	_, source, surface, _ := newRunningTracker(t)

	pos := domain.Coordinates{Lat: -7.25, Lng: 112.76}
	source.updates <- Update{Fix: &Fix{Position: pos, Time: time.Now()}}

	waitFor(t, func() bool {
		_, ok := liveMarker(surface)
		return ok
	}, "expected live marker after first fix")

	snap := surface.Snapshot()
	if snap.Center == nil || *snap.Center != pos {
		t.Errorf("expected viewport panned to first fix, got %+v", snap.Center)
	}
}

func TestRun_LaterFixesRepositionWithoutPanning(t *testing.T) {
	_, source, surface, _ := newRunningTracker(t)

	first := domain.Coordinates{Lat: 1, Lng: 1}
	second := domain.Coordinates{Lat: 2, Lng: 2}

	source.updates <- Update{Fix: &Fix{Position: first, Time: time.Now()}}
	source.updates <- Update{Fix: &Fix{Position: second, Time: time.Now()}}

	waitFor(t, func() bool {
		m, ok := liveMarker(surface)
		return ok && m.Position == second
	}, "expected marker moved to second fix")

	// The driver's manual pan must not be fought: viewport stays on the
	// first fix.
	if center := surface.Snapshot().Center; center == nil || *center != first {
		t.Errorf("expected viewport still at first fix, got %+v", center)
	}
}

func TestRun_WatchErrorKeepsLastKnownMarker(t *testing.T) {
	tracker, source, surface, _ := newRunningTracker(t)

	pos := domain.Coordinates{Lat: 3, Lng: 4}
	source.updates <- Update{Fix: &Fix{Position: pos, Time: time.Now()}}
	waitFor(t, func() bool {
		_, ok := liveMarker(surface)
		return ok
	}, "expected live marker before the error")

	source.updates <- Update{Err: errors.New("permission denied")}
	// A follow-up fix proves the stream survived the error.
	next := domain.Coordinates{Lat: 5, Lng: 6}
	source.updates <- Update{Fix: &Fix{Position: next, Time: time.Now()}}

	waitFor(t, func() bool {
		m, ok := liveMarker(surface)
		return ok && m.Position == next
	}, "expected stream to continue past the watch error")

	if last, ok := tracker.LastFix(); !ok || last.Position != next {
		t.Errorf("expected last fix %+v, got %+v (ok=%v)", next, last.Position, ok)
	}
}

func TestRun_CancellationRemovesOwnMarkerOnly(t *testing.T) {
	_, source, surface, cancel := newRunningTracker(t)

	// A package marker owned by the marker controller shares the surface.
	surface.AddMarker(maps.Marker{ID: "p1", Position: domain.Coordinates{Lat: 9, Lng: 9}})

	source.updates <- Update{Fix: &Fix{Position: domain.Coordinates{Lat: 1, Lng: 2}, Time: time.Now()}}
	waitFor(t, func() bool {
		_, ok := liveMarker(surface)
		return ok
	}, "expected live marker before teardown")

	cancel()

	waitFor(t, func() bool {
		_, ok := liveMarker(surface)
		return !ok
	}, "expected live marker removed on teardown")

	if markers := surface.Snapshot().Markers; len(markers) != 1 || markers[0].ID != "p1" {
		t.Errorf("expected the controller's marker to survive, got %+v", markers)
	}
}

func TestRun_WatchStartFailure(t *testing.T) {
	source := &fakeSource{
		WatchFunc: func(ctx context.Context, opts Options) (<-chan Update, error) {
			return nil, errors.New("geolocation unavailable")
		},
	}
	tracker := NewTracker(maps.NewStateSurface(), source, DefaultOptions(), maps.Icon{}, zap.NewNop())

	err := tracker.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when the watch cannot start")
	}
}

func TestPushSource_DropsStaleFixes(t *testing.T) {
	source := NewPushSource()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := source.Watch(ctx, Options{MaximumAge: 10 * time.Second})
	if err != nil {
		t.Fatal(err)
	}

	source.Push(Fix{Position: domain.Coordinates{Lat: 1, Lng: 1}, Time: time.Now().Add(-time.Minute)})
	source.Push(Fix{Position: domain.Coordinates{Lat: 2, Lng: 2}, Time: time.Now()})

	update := <-updates
	if update.Fix == nil || update.Fix.Position.Lat != 2 {
		t.Errorf("expected only the fresh fix to be delivered, got %+v", update)
	}
}

func TestPushSource_SecondWatchRejected(t *testing.T) {
	source := NewPushSource()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := source.Watch(ctx, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := source.Watch(ctx, DefaultOptions()); err == nil {
		t.Fatal("expected second concurrent watch to be rejected")
	}
}

func TestPushSource_PushAfterCancelIsDiscarded(t *testing.T) {
	source := NewPushSource()
	ctx, cancel := context.WithCancel(context.Background())

	updates, err := source.Watch(ctx, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	cancel()
	waitFor(t, func() bool {
		select {
		case _, ok := <-updates:
			return !ok
		default:
			return false
		}
	}, "expected update channel closed after cancel")

	// Must not panic or deliver anywhere.
	source.Push(Fix{Position: domain.Coordinates{Lat: 1, Lng: 1}, Time: time.Now()})
}
