package auth

import (
	"context"

	"github.com/JunasVee/dynamits-driver/internal/domain"
)

type Gateway interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
}

// Disposer tears down per-driver view state when a session ends.
type Disposer interface {
	Teardown(driverID string)
}
