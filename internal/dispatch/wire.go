package dispatch

import (
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/claim"
	"github.com/JunasVee/dynamits-driver/internal/commons"
	"github.com/JunasVee/dynamits-driver/internal/gateway"
	"github.com/JunasVee/dynamits-driver/internal/journal"
)

type Module struct {
	Controller *Controller
	UseCase    UseCase
}

func NewModule(client *gateway.Client, workflow *claim.Workflow, jrnl *journal.Journal, settings *commons.MapSettings, sdk SDKConfig, logger *zap.Logger) *Module {
	uc := NewUseCase(client, workflow, jrnl, settings, sdk, logger)
	return &Module{
		Controller: NewController(uc, logger),
		UseCase:    uc,
	}
}
