package domain

type PackageStatus string

const (
	PackageStatusPending  PackageStatus = "pending"
	PackageStatusShipping PackageStatus = "shipping"
	PackageStatusDone     PackageStatus = "done"
)

// CanAdvanceTo reports whether a status transition is allowed. The client
// only ever moves a package forward: pending -> shipping -> done.
func (s PackageStatus) CanAdvanceTo(next PackageStatus) bool {
	switch s {
	case PackageStatusPending:
		return next == PackageStatusShipping
	case PackageStatusShipping:
		return next == PackageStatusDone
	default:
		return false
	}
}

// Package is a shipment record owned by the remote API. Field names mirror
// the wire shape; latitude/longitude stay raw until a render path parses
// them. Timestamps are kept as transmitted.
type Package struct {
	ID                string        `json:"id"`
	Description       string        `json:"description"`
	Weight            float64       `json:"weight"`
	Price             float64       `json:"price"`
	Status            PackageStatus `json:"status"`
	SenderName        string        `json:"sender_name"`
	SenderPhone       string        `json:"sender_phone"`
	SenderAddress     string        `json:"sender_address"`
	SenderLatitude    Coordinate    `json:"sender_latitude"`
	SenderLongitude   Coordinate    `json:"sender_longitude"`
	ReceiverName      string        `json:"receiver_name"`
	ReceiverPhone     string        `json:"receiver_phone"`
	ReceiverAddress   string        `json:"receiver_address"`
	ReceiverLatitude  Coordinate    `json:"receiver_latitude"`
	ReceiverLongitude Coordinate    `json:"receiver_longitude"`
	CreatedAt         string        `json:"created_at,omitempty"`
	UpdatedAt         string        `json:"updated_at,omitempty"`
}

// SenderCoordinates parses the pickup position used for map markers.
func (p Package) SenderCoordinates() (Coordinates, error) {
	return ParseCoordinates(p.SenderLatitude, p.SenderLongitude)
}

// ReceiverCoordinates parses the drop-off position shown on order cards.
func (p Package) ReceiverCoordinates() (Coordinates, error) {
	return ParseCoordinates(p.ReceiverLatitude, p.ReceiverLongitude)
}

// FilterPackages returns the packages matching a status, preserving order.
func FilterPackages(pkgs []Package, status PackageStatus) []Package {
	out := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}
