package maps

import (
	"sort"
	"sync"

	"github.com/JunasVee/dynamits-driver/internal/domain"
)

// Snapshot is the serialized map state the browser shim polls and renders
// with the mapping SDK.
type Snapshot struct {
	Center   *domain.Coordinates `json:"center,omitempty"`
	Markers  []Marker            `json:"markers"`
	Cluster  []string            `json:"cluster"`
	Overlay  *overlayState       `json:"overlay,omitempty"`
}

type overlayState struct {
	MarkerID string  `json:"markerId"`
	Overlay  Overlay `json:"overlay"`
}

// StateSurface is the production Surface: an authoritative server-side
// mirror of the browser map. All mutations are atomic under one lock so a
// snapshot never mixes two render passes.
type StateSurface struct {
	mu      sync.Mutex
	markers map[string]Marker
	cluster []string
	center  *domain.Coordinates
	overlay *overlayState
}

func NewStateSurface() *StateSurface {
	return &StateSurface{
		markers: make(map[string]Marker),
	}
}

func (s *StateSurface) AddMarker(m Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[m.ID] = m
}

func (s *StateSurface) MoveMarker(id string, pos domain.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.markers[id]
	if !ok {
		return
	}
	m.Position = pos
	s.markers[id] = m
}

func (s *StateSurface) RemoveMarker(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, id)
	if s.overlay != nil && s.overlay.MarkerID == id {
		s.overlay = nil
	}
}

func (s *StateSurface) SetCluster(markerIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cluster = append([]string(nil), markerIDs...)
}

func (s *StateSurface) ClearCluster() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cluster = nil
}

func (s *StateSurface) PanTo(pos domain.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = &pos
}

func (s *StateSurface) OpenOverlay(markerID string, o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[markerID]; !ok {
		return
	}
	s.overlay = &overlayState{MarkerID: markerID, Overlay: o}
}

// Snapshot returns a stable copy of the current map state, markers sorted
// by id for deterministic payloads.
func (s *StateSurface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	markers := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].ID < markers[j].ID })

	snap := Snapshot{
		Markers: markers,
		Cluster: append([]string(nil), s.cluster...),
	}
	if s.center != nil {
		center := *s.center
		snap.Center = &center
	}
	if s.overlay != nil {
		overlay := *s.overlay
		snap.Overlay = &overlay
	}
	return snap
}
