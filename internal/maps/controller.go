package maps

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
)

// Entity is a geocoded input record for the marker controller. Coordinates
// stay raw: parsing them defensively on every render is the controller's
// safety policy, so malformed geodata can never crash the render path.
type Entity struct {
	ID        string
	Latitude  domain.Coordinate
	Longitude domain.Coordinate
	Overlay   Overlay
}

// Controller reconciles the map surface's package-marker set with an input
// collection on every render. It owns exactly the markers it created and
// never touches markers belonging to the live tracker.
type Controller struct {
	surface Surface
	icon    Icon
	logger  *zap.Logger

	mu       sync.Mutex
	markers  map[string]Marker
	handlers map[string]func()
}

func NewController(surface Surface, icon Icon, logger *zap.Logger) *Controller {
	return &Controller{
		surface:  surface,
		icon:     icon,
		logger:   logger,
		markers:  make(map[string]Marker),
		handlers: make(map[string]func()),
	}
}

// Render replaces the controller's marker set with one derived from the
// given collection. Entities whose coordinates do not parse are silently
// excluded. The diff against the previous set is applied atomically and
// the cluster layer is recomputed from scratch, so after any render the
// surface holds exactly the coordinate-valid entities of that render.
func (c *Controller) Render(entities []Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[string]Marker, len(entities))
	handlers := make(map[string]func(), len(entities))
	for _, entity := range entities {
		pos, err := domain.ParseCoordinates(entity.Latitude, entity.Longitude)
		if err != nil {
			c.logger.Debug("skipping unmappable entity",
				zap.String("entityId", entity.ID), zap.Error(err))
			continue
		}

		marker := Marker{
			ID:       entity.ID,
			Position: pos,
			Icon:     c.icon,
			Kind:     MarkerKindPackage,
		}
		next[marker.ID] = marker

		// Handlers are keyed by stable entity identity; each closure
		// captures its own entity value, so no loop-variable hazard
		// survives a re-render.
		overlay := entity.Overlay
		markerID := marker.ID
		handlers[markerID] = func() {
			c.surface.OpenOverlay(markerID, overlay)
		}
	}

	add, remove := reconcile(c.markers, next)
	for _, id := range remove {
		c.surface.RemoveMarker(id)
	}
	for _, m := range add {
		c.surface.AddMarker(m)
	}

	c.markers = next
	c.handlers = handlers

	if len(next) == 0 {
		c.surface.ClearCluster()
		return
	}
	c.surface.SetCluster(sortedIDs(next))
}

// HandleClick opens the detail overlay for a marker. Clicks arriving for
// markers removed by a newer render are ignored.
func (c *Controller) HandleClick(markerID string) bool {
	c.mu.Lock()
	handler, ok := c.handlers[markerID]
	c.mu.Unlock()
	if !ok {
		return false
	}
	handler()
	return true
}

// MarkerCount reports the number of markers currently owned.
func (c *Controller) MarkerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.markers)
}

// Teardown removes every owned marker and the cluster layer. Called when
// the owning view unmounts; guarantees no marker leaks onto the surface.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.markers {
		c.surface.RemoveMarker(id)
	}
	c.surface.ClearCluster()
	c.markers = make(map[string]Marker)
	c.handlers = make(map[string]func())
}

// reconcile diffs the previous marker set against the next one. Markers
// unchanged in position and icon are kept; anything else is torn down and
// rebuilt. Output order is deterministic.
func reconcile(prev, next map[string]Marker) (add []Marker, remove []string) {
	for id, old := range prev {
		replacement, ok := next[id]
		if !ok || replacement != old {
			remove = append(remove, id)
		}
	}
	for id, m := range next {
		old, ok := prev[id]
		if !ok || old != m {
			add = append(add, m)
		}
	}

	sort.Strings(remove)
	sort.Slice(add, func(i, j int) bool { return add[i].ID < add[j].ID })
	return add, remove
}

func sortedIDs(markers map[string]Marker) []string {
	ids := make([]string, 0, len(markers))
	for id := range markers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
