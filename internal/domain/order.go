package domain

type OrderStatus string

const (
	OrderStatusShipping OrderStatus = "shipping"
	OrderStatusDone     OrderStatus = "done"
)

// Order is a driver's claim on a package, created exactly once per claim
// and advanced to done when the delivery completes. The remote API embeds
// a snapshot of the claimed package under the "packages" key.
type Order struct {
	ID          string      `json:"id"`
	Status      OrderStatus `json:"status"`
	DriverID    string      `json:"driverId"`
	Packages    Package     `json:"packages"`
	StartedAt   string      `json:"startedAt,omitempty"`
	CompletedAt string      `json:"completedAt,omitempty"`
}

// FilterOrders returns the orders owned by a driver in a given status.
// Every list rendered to a driver goes through this filter.
func FilterOrders(orders []Order, driverID string, status OrderStatus) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.DriverID == driverID && o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
