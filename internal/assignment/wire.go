package assignment

import (
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/gateway"
)

func NewModule(client *gateway.Client, logger *zap.Logger) *Controller {
	uc := NewUseCase(client, logger)
	return NewController(uc, logger)
}
