package maps

import "github.com/JunasVee/dynamits-driver/internal/domain"

type MarkerKind string

const (
	MarkerKindPackage MarkerKind = "package"
	MarkerKindLive    MarkerKind = "live"
)

type Icon struct {
	URL  string `json:"url,omitempty"`
	Size int    `json:"size,omitempty"`
}

// Marker is a render-only projection of a geocoded record. It is derived
// state: rebuilt whenever the source collection changes, never persisted.
type Marker struct {
	ID       string             `json:"id"`
	Position domain.Coordinates `json:"position"`
	Icon     Icon               `json:"icon"`
	Kind     MarkerKind         `json:"kind"`
}

// Overlay is the detail surface opened by a marker click: identity,
// status, description, both addresses, and an action control target.
type Overlay struct {
	PackageID       string `json:"packageId"`
	Status          string `json:"status"`
	Description     string `json:"description"`
	SenderAddress   string `json:"senderAddress"`
	ReceiverAddress string `json:"receiverAddress"`
	ClaimURL        string `json:"claimUrl,omitempty"`
}

// Surface is the external mapping capability: given coordinates it renders
// markers, groups a marker set into a density cluster layer, pans the
// viewport, and shows info overlays. The marker controller and the live
// tracker share one surface but each disposes only markers it owns.
type Surface interface {
	AddMarker(m Marker)
	MoveMarker(id string, pos domain.Coordinates)
	RemoveMarker(id string)
	SetCluster(markerIDs []string)
	ClearCluster()
	PanTo(pos domain.Coordinates)
	OpenOverlay(markerID string, o Overlay)
}
