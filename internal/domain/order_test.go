package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_UnmarshalWireShape(t *testing.T) {
	payload := `{
		"id": "o1",
		"status": "shipping",
		"driverId": "d1",
		"startedAt": "2024-05-01T08:30:00Z",
		"packages": {
			"id": "p1",
			"description": "fragile vase",
			"status": "shipping",
			"sender_name": "Andi",
			"sender_phone": "+62811111111",
			"sender_address": "Jl. Pemuda 1",
			"receiver_name": "Budi",
			"receiver_phone": "+62822222222",
			"receiver_address": "Jl. Darmo 2",
			"receiver_latitude": -7.28,
			"receiver_longitude": "112.73"
		}
	}`

	var order Order
	err := json.Unmarshal([]byte(payload), &order)

	assert.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, OrderStatusShipping, order.Status)
	assert.Equal(t, "d1", order.DriverID)
	assert.Equal(t, "2024-05-01T08:30:00Z", order.StartedAt)
	assert.Empty(t, order.CompletedAt)
	assert.Equal(t, "fragile vase", order.Packages.Description)

	coords, err := order.Packages.ReceiverCoordinates()
	assert.NoError(t, err)
	assert.Equal(t, -7.28, coords.Lat)
	assert.Equal(t, 112.73, coords.Lng)
}

func TestOrder_SnapshotWithoutCoordinates(t *testing.T) {
	order := Order{
		ID:       "o2",
		Status:   OrderStatusDone,
		DriverID: "d1",
		Packages: Package{ID: "p2", ReceiverLatitude: "", ReceiverLongitude: ""},
	}

	_, err := order.Packages.ReceiverCoordinates()
	assert.Error(t, err)
}
