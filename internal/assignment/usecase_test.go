package assignment

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

type mockGateway struct {
	ListOrdersFunc  func(ctx context.Context) ([]domain.Order, error)
	UpdateOrderFunc func(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error)
}

func (m *mockGateway) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return m.ListOrdersFunc(ctx)
}

func (m *mockGateway) UpdateOrder(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error) {
	return m.UpdateOrderFunc(ctx, orderID, driverID, status)
}

func testSession() domain.Session {
	return domain.Session{User: domain.User{DriverID: "d1", Name: "Eka"}, Token: "tok"}
}

func fixedOrders() []domain.Order {
	return []domain.Order{
		{ID: "o1", Status: domain.OrderStatusShipping, DriverID: "d1",
			StartedAt: "2026-08-20T09:30:00Z",
			Packages: domain.Package{ID: "p1", Description: "documents",
				SenderName: "Citra", SenderPhone: "081234567890",
				ReceiverAddress:  "Jl. Raya Darmo 5",
				ReceiverLatitude: "-7.29", ReceiverLongitude: "112.73"}},
		{ID: "o2", Status: domain.OrderStatusShipping, DriverID: "d2",
			Packages: domain.Package{ID: "p2"}},
		{ID: "o3", Status: domain.OrderStatusDone, DriverID: "d1",
			CompletedAt: "2026-08-21T14:05:00Z",
			Packages: domain.Package{ID: "p3", Description: "spare parts",
				ReceiverAddress:  "Jl. Diponegoro 12",
				ReceiverLatitude: "-7.28", ReceiverLongitude: "112.74"}},
		{ID: "o4", Status: domain.OrderStatusDone, DriverID: "d1",
			CompletedAt: "not-a-timestamp",
			Packages: domain.Package{ID: "p4",
				ReceiverLatitude: "", ReceiverLongitude: ""}},
		{ID: "o5", Status: domain.OrderStatusShipping, DriverID: "d1",
			Packages: domain.Package{ID: "p5", SenderPhone: "+6281200011122"}},
	}
}

func TestListAssignments_FiltersByDriverAndStatus(t *testing.T) {
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	resp, err := uc.ListAssignments(context.Background(), testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// o2 belongs to another driver, o3 and o4 are done.
	if resp.Count != 2 {
		t.Fatalf("expected 2 assignments, got %d", resp.Count)
	}
	if resp.Assignments[0].OrderID != "o1" || resp.Assignments[1].OrderID != "o5" {
		t.Errorf("unexpected assignment set: %+v", resp.Assignments)
	}
}

func TestListAssignments_ContactShortcuts(t *testing.T) {
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	resp, err := uc.ListAssignments(context.Background(), testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := resp.Assignments[0]
	if first.Contact.Tel != "tel:081234567890" {
		t.Errorf("unexpected tel shortcut: %q", first.Contact.Tel)
	}
	if first.Contact.SMS != "sms:081234567890" {
		t.Errorf("unexpected sms shortcut: %q", first.Contact.SMS)
	}
	// A local leading zero becomes the international prefix.
	if first.Contact.WhatsApp != "https://wa.me/6281234567890" {
		t.Errorf("unexpected whatsapp shortcut: %q", first.Contact.WhatsApp)
	}

	second := resp.Assignments[1]
	if second.Contact.WhatsApp != "https://wa.me/6281200011122" {
		t.Errorf("unexpected whatsapp shortcut: %q", second.Contact.WhatsApp)
	}

	if first.StartedAt != "20 Aug 2026, 09:30" {
		t.Errorf("unexpected startedAt: %q", first.StartedAt)
	}
	if first.RouteURL == "" {
		t.Error("expected a route link for parseable drop-off coordinates")
	}
}

func TestMarkDone_RemovesOrderFromSnapshot(t *testing.T) {
	var updatedID, updatedDriver string
	var updatedStatus domain.OrderStatus
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
		UpdateOrderFunc: func(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error) {
			updatedID, updatedDriver, updatedStatus = orderID, driverID, status
			return domain.Order{ID: orderID, Status: status, DriverID: driverID}, nil
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	if _, err := uc.ListAssignments(context.Background(), testSession()); err != nil {
		t.Fatalf("list: %v", err)
	}

	resp, err := uc.MarkDone(context.Background(), testSession(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedID != "o1" || updatedDriver != "d1" || updatedStatus != domain.OrderStatusDone {
		t.Errorf("unexpected remote update: %s %s %s", updatedID, updatedDriver, updatedStatus)
	}
	if len(resp.Assignments) != 1 || resp.Assignments[0].OrderID != "o5" {
		t.Errorf("expected only o5 to remain, got %+v", resp.Assignments)
	}
}

func TestMarkDone_RemoteFailureKeepsSnapshot(t *testing.T) {
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
		UpdateOrderFunc: func(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error) {
			return domain.Order{}, apperrors.NewGatewayError("update order", 500, "", nil)
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	if _, err := uc.ListAssignments(context.Background(), testSession()); err != nil {
		t.Fatalf("list: %v", err)
	}

	_, err := uc.MarkDone(context.Background(), testSession(), "o1")
	if _, ok := apperrors.IsGatewayError(err); !ok {
		t.Fatalf("expected GatewayError, got %v", err)
	}

	// Nothing was removed: gateway errors must not mutate the view.
	resp, err := uc.ListAssignments(context.Background(), testSession())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected snapshot untouched, got %+v", resp.Assignments)
	}
}

func TestMarkDone_UnknownOrder(t *testing.T) {
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	_, err := uc.MarkDone(context.Background(), testSession(), "o2")
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError for another driver's order, got %v", err)
	}
}

func TestMarkDone_FetchesWhenNoSnapshot(t *testing.T) {
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
		UpdateOrderFunc: func(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error) {
			return domain.Order{ID: orderID, Status: status}, nil
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	resp, err := uc.MarkDone(context.Background(), testSession(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Assignments) != 1 {
		t.Errorf("expected the fetched snapshot minus o1, got %+v", resp.Assignments)
	}
}

func TestHistory_CompletedOrdersOnly(t *testing.T) {
	gw := &mockGateway{
		ListOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return fixedOrders(), nil
		},
	}
	uc := NewUseCase(gw, zap.NewNop())

	resp, err := uc.History(context.Background(), testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("expected 2 history entries, got %d", resp.Count)
	}

	first := resp.Entries[0]
	if first.OrderID != "o3" || first.CompletedAt != "21 Aug 2026, 14:05" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.RouteURL == "" || first.Notice != "" {
		t.Errorf("expected a route link and no notice: %+v", first)
	}

	// o4 has no drop-off coordinates and an unparseable timestamp.
	second := resp.Entries[1]
	if second.CompletedAt != "not-a-timestamp" {
		t.Errorf("unparseable timestamps pass through, got %q", second.CompletedAt)
	}
	if second.RouteURL != "" || second.Notice == "" {
		t.Errorf("expected a coordinates notice and no route link: %+v", second)
	}
}

func TestHistory_MissingDriverIdentity(t *testing.T) {
	uc := NewUseCase(&mockGateway{}, zap.NewNop())

	_, err := uc.History(context.Background(), domain.Session{})
	if _, ok := apperrors.IsSessionError(err); !ok {
		t.Errorf("expected SessionError, got %v", err)
	}
}
