package gateway

import (
	"context"
	"net/http"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

type createOrderRequest struct {
	PackageID string `json:"packageId"`
	DriverID  string `json:"driverId"`
}

type updateOrderRequest struct {
	DriverID string             `json:"driverId"`
	Status   domain.OrderStatus `json:"status"`
}

// ListOrders fetches every order known to the remote API. Views filter by
// driver identity and status client-side.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/orders", nil)
	if err != nil {
		return nil, apperrors.NewGatewayError("list orders", 0, "", err)
	}

	var orders []domain.Order
	if err := c.do("list orders", req, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// CreateOrder links a claimed package to the driver. The remote API is the
// authority on the created record; the client never fabricates order state.
func (c *Client) CreateOrder(ctx context.Context, packageID, driverID string) (domain.Order, error) {
	if packageID == "" || driverID == "" {
		return domain.Order{}, apperrors.NewValidationError("packageId and driverId are required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/orders", createOrderRequest{
		PackageID: packageID,
		DriverID:  driverID,
	})
	if err != nil {
		return domain.Order{}, apperrors.NewGatewayError("create order", 0, "", err)
	}

	var created domain.Order
	if err := c.do("create order", req, &created); err != nil {
		return domain.Order{}, err
	}

	return created, nil
}

// UpdateOrder advances an order's status. The driver id rides along for
// remote-side authorization.
func (c *Client) UpdateOrder(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error) {
	if orderID == "" || driverID == "" {
		return domain.Order{}, apperrors.NewValidationError("orderId and driverId are required")
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/api/v1/orders/"+orderID, updateOrderRequest{
		DriverID: driverID,
		Status:   status,
	})
	if err != nil {
		return domain.Order{}, apperrors.NewGatewayError("update order", 0, "", err)
	}

	var updated domain.Order
	if err := c.do("update order", req, &updated); err != nil {
		return domain.Order{}, err
	}

	return updated, nil
}
