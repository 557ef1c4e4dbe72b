package location

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
	"github.com/JunasVee/dynamits-driver/internal/maps"
)

// LiveMarkerID identifies the distinguished current-location marker. The
// tracker owns this marker and nothing else on the shared surface.
const LiveMarkerID = "driver-live"

var errAlreadyWatching = errors.New("position watch already active")

// Tracker subscribes to continuous position updates and reflects the
// latest fix as a single marker. The viewport pans to the first fix only,
// so later fixes never fight the driver's manual pan and zoom.
type Tracker struct {
	surface maps.Surface
	source  Source
	opts    Options
	icon    maps.Icon
	logger  *zap.Logger

	mu        sync.Mutex
	panned    bool
	hasMarker bool
	last      Fix
}

func NewTracker(surface maps.Surface, source Source, opts Options, icon maps.Icon, logger *zap.Logger) *Tracker {
	return &Tracker{
		surface: surface,
		source:  source,
		opts:    opts,
		icon:    icon,
		logger:  logger,
	}
}

// Run consumes the position stream until ctx is cancelled, then releases
// the subscription and removes the tracker's own marker. Watch errors are
// reported and the last-known-good marker stays in place.
func (t *Tracker) Run(ctx context.Context) error {
	updates, err := t.source.Watch(ctx, t.opts)
	if err != nil {
		return apperrors.NewGeolocationError("starting position watch", err)
	}

	for {
		select {
		case <-ctx.Done():
			t.teardown()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				t.teardown()
				return nil
			}
			if update.Err != nil {
				gerr := apperrors.NewGeolocationError("position update failed", update.Err)
				t.logger.Warn("keeping last known location", zap.Error(gerr))
				continue
			}
			t.apply(*update.Fix)
		}
	}
}

// LastFix returns the most recent good fix, if any.
func (t *Tracker) LastFix() (Fix, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.hasMarker
}

func (t *Tracker) apply(fix Fix) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.hasMarker {
		t.surface.AddMarker(maps.Marker{
			ID:       LiveMarkerID,
			Position: fix.Position,
			Icon:     t.icon,
			Kind:     maps.MarkerKindLive,
		})
		t.hasMarker = true
	} else {
		t.surface.MoveMarker(LiveMarkerID, fix.Position)
	}

	if !t.panned {
		t.surface.PanTo(fix.Position)
		t.panned = true
	}

	t.last = fix
}

func (t *Tracker) teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hasMarker {
		t.surface.RemoveMarker(LiveMarkerID)
		t.hasMarker = false
	}
}
