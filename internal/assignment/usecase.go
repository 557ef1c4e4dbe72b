package assignment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

type assignmentUseCase struct {
	gateway Gateway
	logger  *zap.Logger

	mu     sync.Mutex
	active map[string][]domain.Order
}

func NewUseCase(gateway Gateway, logger *zap.Logger) UseCase {
	return &assignmentUseCase{
		gateway: gateway,
		logger:  logger,
		active:  make(map[string][]domain.Order),
	}
}

// ListAssignments returns the driver's in-progress orders. The filtered
// snapshot is kept so a later mark-done can remove the order from the view
// without another round trip.
func (uc *assignmentUseCase) ListAssignments(ctx context.Context, sess domain.Session) (*AssignmentsResponse, error) {
	orders, err := uc.fetchActive(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &AssignmentsResponse{Assignments: uc.assignments(orders), Count: len(orders)}, nil
}

// MarkDone completes an order remotely, then removes it from the cached
// assignment snapshot. The remote API is the authority: nothing is removed
// until the update succeeds.
func (uc *assignmentUseCase) MarkDone(ctx context.Context, sess domain.Session, orderID string) (*MarkDoneResponse, error) {
	driverID := sess.DriverID()
	if driverID == "" {
		return nil, apperrors.NewSessionError("no authenticated driver", nil)
	}

	uc.mu.Lock()
	orders, cached := uc.active[driverID]
	uc.mu.Unlock()
	if !cached {
		fetched, err := uc.fetchActive(ctx, sess)
		if err != nil {
			return nil, err
		}
		orders = fetched
	}

	found := false
	for _, o := range orders {
		if o.ID == orderID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewNotFoundError("order is not an active assignment")
	}

	updated, err := uc.gateway.UpdateOrder(ctx, orderID, driverID, domain.OrderStatusDone)
	if err != nil {
		return nil, err
	}

	remaining := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID != orderID {
			remaining = append(remaining, o)
		}
	}
	uc.mu.Lock()
	uc.active[driverID] = remaining
	uc.mu.Unlock()

	uc.logger.Info("order completed",
		zap.String("driverId", driverID), zap.String("orderId", orderID))
	return &MarkDoneResponse{Order: updated, Assignments: uc.assignments(remaining)}, nil
}

// History returns the driver's completed orders, newest wire order kept
// as-is. Entries without parseable drop-off coordinates carry a notice
// instead of a route link.
func (uc *assignmentUseCase) History(ctx context.Context, sess domain.Session) (*HistoryResponse, error) {
	driverID := sess.DriverID()
	if driverID == "" {
		return nil, apperrors.NewSessionError("no authenticated driver", nil)
	}

	orders, err := uc.gateway.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	done := domain.FilterOrders(orders, driverID, domain.OrderStatusDone)

	entries := make([]HistoryEntryDTO, 0, len(done))
	for _, o := range done {
		entry := HistoryEntryDTO{
			OrderID:         o.ID,
			PackageID:       o.Packages.ID,
			Description:     o.Packages.Description,
			ReceiverAddress: o.Packages.ReceiverAddress,
			CompletedAt:     formatTimestamp(o.CompletedAt),
		}
		if pos, err := o.Packages.ReceiverCoordinates(); err == nil {
			entry.RouteURL = routeURL(pos)
		} else {
			entry.Notice = "drop-off coordinates unavailable"
		}
		entries = append(entries, entry)
	}

	return &HistoryResponse{Entries: entries, Count: len(entries)}, nil
}

func (uc *assignmentUseCase) fetchActive(ctx context.Context, sess domain.Session) ([]domain.Order, error) {
	driverID := sess.DriverID()
	if driverID == "" {
		return nil, apperrors.NewSessionError("no authenticated driver", nil)
	}

	orders, err := uc.gateway.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	active := domain.FilterOrders(orders, driverID, domain.OrderStatusShipping)

	uc.mu.Lock()
	uc.active[driverID] = active
	uc.mu.Unlock()
	return active, nil
}

func (uc *assignmentUseCase) assignments(orders []domain.Order) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(orders))
	for _, o := range orders {
		pkg := o.Packages
		dto := AssignmentDTO{
			OrderID:         o.ID,
			PackageID:       pkg.ID,
			Description:     pkg.Description,
			Weight:          pkg.Weight,
			Price:           pkg.Price,
			SenderName:      pkg.SenderName,
			SenderAddress:   pkg.SenderAddress,
			ReceiverName:    pkg.ReceiverName,
			ReceiverAddress: pkg.ReceiverAddress,
			StartedAt:       formatTimestamp(o.StartedAt),
			Contact: ContactDTO{
				Tel:      "tel:" + pkg.SenderPhone,
				SMS:      "sms:" + pkg.SenderPhone,
				WhatsApp: "https://wa.me/" + waNumber(pkg.SenderPhone),
			},
		}
		if pos, err := pkg.ReceiverCoordinates(); err == nil {
			dto.RouteURL = routeURL(pos)
		}
		out = append(out, dto)
	}
	return out
}

// waNumber turns a local phone number into the digits-only international
// form wa.me links expect. An Indonesian leading zero becomes 62.
func waNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}
	return digits
}

func routeURL(pos domain.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%g,%g", pos.Lat, pos.Lng)
}

// formatTimestamp renders a wire timestamp for the driver. Values that do
// not parse as RFC 3339 pass through unchanged.
func formatTimestamp(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format("02 Jan 2006, 15:04")
}
