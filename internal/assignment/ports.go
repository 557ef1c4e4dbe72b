package assignment

import (
	"context"

	"github.com/JunasVee/dynamits-driver/internal/domain"
)

type UseCase interface {
	ListAssignments(ctx context.Context, sess domain.Session) (*AssignmentsResponse, error)
	MarkDone(ctx context.Context, sess domain.Session, orderID string) (*MarkDoneResponse, error)
	History(ctx context.Context, sess domain.Session) (*HistoryResponse, error)
}

type Gateway interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, orderID, driverID string, status domain.OrderStatus) (domain.Order, error)
}
