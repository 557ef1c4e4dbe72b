package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/commons"
	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
	"github.com/JunasVee/dynamits-driver/internal/location"
	"github.com/JunasVee/dynamits-driver/internal/maps"
)

// viewState is one driver's live map: the surface mirror, the marker
// controller owning the package markers, and the location tracker owning
// the single live marker. It exists from the first map open until logout.
type viewState struct {
	surface    *maps.StateSurface
	controller *maps.Controller
	source     *location.PushSource
	cancel     context.CancelFunc

	mu       sync.Mutex
	packages map[string]domain.Package
}

type dispatchUseCase struct {
	gateway  Gateway
	claimer  Claimer
	recorder Recorder
	settings *commons.MapSettings
	sdk      SDKConfig
	logger   *zap.Logger

	mu     sync.Mutex
	states map[string]*viewState
}

func NewUseCase(gateway Gateway, claimer Claimer, recorder Recorder, settings *commons.MapSettings, sdk SDKConfig, logger *zap.Logger) UseCase {
	return &dispatchUseCase{
		gateway:  gateway,
		claimer:  claimer,
		recorder: recorder,
		settings: settings,
		sdk:      sdk,
		logger:   logger,
		states:   make(map[string]*viewState),
	}
}

// OpenMap fetches the package collection, reduces it to the pending set
// and reconciles the driver's map markers against it. The first open for
// a driver also starts the live-location tracker.
func (uc *dispatchUseCase) OpenMap(ctx context.Context, sess domain.Session) (*MapViewResponse, error) {
	driverID := sess.DriverID()
	if driverID == "" {
		return nil, apperrors.NewSessionError("no authenticated driver", nil)
	}

	packages, err := uc.gateway.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	pending := domain.FilterPackages(packages, domain.PackageStatusPending)

	state := uc.ensureState(driverID)
	state.setPackages(pending)
	state.controller.Render(uc.entities(pending))

	return uc.mapView(state, len(pending)), nil
}

// ClickMarker opens the info overlay for a package marker. Clicks on
// markers that no longer exist are ignored and the current view returned
// unchanged.
func (uc *dispatchUseCase) ClickMarker(sess domain.Session, markerID string) (*MapViewResponse, error) {
	state, ok := uc.state(sess.DriverID())
	if !ok {
		return nil, apperrors.NewNotFoundError("no open map for this driver")
	}

	if !state.controller.HandleClick(markerID) {
		uc.logger.Debug("click on absent marker ignored", zap.String("markerId", markerID))
	}

	state.mu.Lock()
	count := len(state.packages)
	state.mu.Unlock()
	return uc.mapView(state, count), nil
}

// ClaimPackage runs the claim workflow for a package on the driver's map,
// then re-renders the markers from the refreshed pending set. Packages no
// longer in the pending view are refetched before claiming, which keeps a
// half-finished claim reachable for resumption. A refresh failure leaves
// the markers stale and is reported as a warning rather than a claim
// failure.
func (uc *dispatchUseCase) ClaimPackage(ctx context.Context, sess domain.Session, packageID string) (*ClaimResponse, error) {
	state, ok := uc.state(sess.DriverID())
	if !ok {
		return nil, apperrors.NewNotFoundError("no open map for this driver")
	}

	pkg, ok := state.lookup(packageID)
	if !ok {
		// A claim that failed at the order-create step leaves the package
		// shipping and therefore off the pending view. Refetch so the
		// workflow sees the current remote record and can resume the
		// orphaned attempt.
		fetched, err := uc.gateway.ListPackages(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range fetched {
			if p.ID == packageID {
				pkg, ok = p, true
				break
			}
		}
		if !ok {
			return nil, apperrors.NewNotFoundError("package is not on the map")
		}
	}

	result, err := uc.claimer.Claim(ctx, pkg, sess)
	if err != nil {
		return nil, err
	}

	resp := &ClaimResponse{Order: result.Order, Resumed: result.Resumed}
	if result.RefreshErr != nil {
		uc.logger.Warn("pending refresh after claim failed, markers are stale",
			zap.String("packageId", packageID), zap.Error(result.RefreshErr))
		resp.Warning = "order created but the package list could not be refreshed"
	} else {
		state.setPackages(result.Pending)
		state.controller.Render(uc.entities(result.Pending))
	}

	resp.Map = state.surface.Snapshot()
	return resp, nil
}

// ClaimAttempts returns the locally journaled claim attempts for a
// package, newest first. Diagnostics only; the remote API stays the
// authority on package and order state.
func (uc *dispatchUseCase) ClaimAttempts(ctx context.Context, sess domain.Session, packageID string) (*ClaimAttemptsResponse, error) {
	driverID := sess.DriverID()
	if driverID == "" {
		return nil, apperrors.NewSessionError("no authenticated driver", nil)
	}

	attempts, err := uc.recorder.History(ctx, packageID, driverID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ClaimAttemptDTO, 0, len(attempts))
	for _, a := range attempts {
		dtos = append(dtos, ClaimAttemptDTO{
			AttemptID:  a.ID,
			State:      string(a.State),
			Error:      a.LastError,
			RecordedAt: a.UpdatedAt.Format(time.RFC3339),
		})
	}

	return &ClaimAttemptsResponse{PackageID: packageID, Attempts: dtos, Count: len(dtos)}, nil
}

// PushLocation feeds one browser geolocation fix into the driver's
// tracker. Coordinates are validated before they reach the map surface.
func (uc *dispatchUseCase) PushLocation(sess domain.Session, req PushLocationRequest) error {
	state, ok := uc.state(sess.DriverID())
	if !ok {
		return apperrors.NewNotFoundError("no open map for this driver")
	}

	pos, err := domain.ParseCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		return err
	}

	state.source.Push(location.Fix{
		Position: pos,
		Accuracy: req.Accuracy,
		Time:     time.Now(),
	})
	return nil
}

// Teardown disposes the driver's map state: the tracker stops and removes
// its live marker, the marker controller removes the package markers.
func (uc *dispatchUseCase) Teardown(driverID string) {
	uc.mu.Lock()
	state, ok := uc.states[driverID]
	delete(uc.states, driverID)
	uc.mu.Unlock()
	if !ok {
		return
	}

	state.cancel()
	state.controller.Teardown()
	uc.logger.Info("map view torn down", zap.String("driverId", driverID))
}

func (uc *dispatchUseCase) state(driverID string) (*viewState, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	state, ok := uc.states[driverID]
	return state, ok
}

func (uc *dispatchUseCase) ensureState(driverID string) *viewState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if state, ok := uc.states[driverID]; ok {
		return state
	}

	surface := maps.NewStateSurface()
	packageIcon := maps.Icon{URL: uc.settings.PackageIcon.URL, Size: uc.settings.PackageIcon.Size}
	liveIcon := maps.Icon{Size: uc.settings.LiveMarker.Scale}

	source := location.NewPushSource()
	tracker := location.NewTracker(surface, source, location.DefaultOptions(), liveIcon, uc.logger)

	ctx, cancel := context.WithCancel(context.Background())
	state := &viewState{
		surface:    surface,
		controller: maps.NewController(surface, packageIcon, uc.logger),
		source:     source,
		cancel:     cancel,
		packages:   make(map[string]domain.Package),
	}
	uc.states[driverID] = state

	go func() {
		err := tracker.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			uc.logger.Error("location tracker stopped", zap.String("driverId", driverID), zap.Error(err))
		}
	}()

	return state
}

func (uc *dispatchUseCase) entities(pending []domain.Package) []maps.Entity {
	entities := make([]maps.Entity, 0, len(pending))
	for _, pkg := range pending {
		entities = append(entities, maps.Entity{
			ID:        pkg.ID,
			Latitude:  pkg.SenderLatitude,
			Longitude: pkg.SenderLongitude,
			Overlay: maps.Overlay{
				PackageID:       pkg.ID,
				Status:          string(pkg.Status),
				Description:     pkg.Description,
				SenderAddress:   pkg.SenderAddress,
				ReceiverAddress: pkg.ReceiverAddress,
				ClaimURL:        "/api/v1/packages/" + pkg.ID + "/claim",
			},
		})
	}
	return entities
}

func (uc *dispatchUseCase) mapView(state *viewState, pendingCount int) *MapViewResponse {
	return &MapViewResponse{
		SDK:          uc.sdk,
		Settings:     uc.settings,
		Map:          state.surface.Snapshot(),
		PendingCount: pendingCount,
	}
}

func (s *viewState) setPackages(pending []domain.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages = make(map[string]domain.Package, len(pending))
	for _, pkg := range pending {
		s.packages[pkg.ID] = pkg
	}
}

func (s *viewState) lookup(packageID string) (domain.Package, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pkg, ok := s.packages[packageID]
	return pkg, ok
}
