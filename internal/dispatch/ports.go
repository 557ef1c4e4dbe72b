package dispatch

import (
	"context"

	"github.com/JunasVee/dynamits-driver/internal/claim"
	"github.com/JunasVee/dynamits-driver/internal/domain"
	"github.com/JunasVee/dynamits-driver/internal/journal"
)

type UseCase interface {
	OpenMap(ctx context.Context, sess domain.Session) (*MapViewResponse, error)
	ClickMarker(sess domain.Session, markerID string) (*MapViewResponse, error)
	ClaimPackage(ctx context.Context, sess domain.Session, packageID string) (*ClaimResponse, error)
	ClaimAttempts(ctx context.Context, sess domain.Session, packageID string) (*ClaimAttemptsResponse, error)
	PushLocation(sess domain.Session, req PushLocationRequest) error
	Teardown(driverID string)
}

type Gateway interface {
	ListPackages(ctx context.Context) ([]domain.Package, error)
}

type Claimer interface {
	Claim(ctx context.Context, pkg domain.Package, sess domain.Session) (claim.Result, error)
}

// Recorder exposes the locally journaled claim attempts for diagnostics.
type Recorder interface {
	History(ctx context.Context, packageID, driverID string) ([]journal.Attempt, error)
}
