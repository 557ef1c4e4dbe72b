package auth

import (
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/gateway"
	"github.com/JunasVee/dynamits-driver/internal/session"
)

func NewModule(client *gateway.Client, sessions *session.Accessor, disposer Disposer, logger *zap.Logger) *Controller {
	return NewController(client, sessions, disposer, logger)
}
