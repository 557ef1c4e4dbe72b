package claim

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
	"github.com/JunasVee/dynamits-driver/internal/journal"
)

type Gateway interface {
	ListPackages(ctx context.Context) ([]domain.Package, error)
	UpdatePackage(ctx context.Context, pkg domain.Package) (domain.Package, error)
	CreateOrder(ctx context.Context, packageID, driverID string) (domain.Order, error)
}

type Journal interface {
	Begin(ctx context.Context, attemptID, packageID, driverID string) error
	Transition(ctx context.Context, attemptID string, state journal.State, lastError string) error
	LatestOrphan(ctx context.Context, packageID, driverID string) (journal.Attempt, bool, error)
}

// Result is the outcome of a successful claim. Pending is the refreshed
// pending collection; when the refetch itself fails the claim still
// succeeded, RefreshErr carries the failure, and the caller keeps its
// last successfully fetched list.
type Result struct {
	Order      domain.Order
	Pending    []domain.Package
	Resumed    bool
	RefreshErr error
}

// Workflow orchestrates a driver claiming a pending package: flip the
// package to shipping via a full-field update, create the order linking
// package and driver, then refetch the pending collection. The two writes
// are strictly sequenced and there is no rollback on partial failure; the
// remote service owns consistency.
type Workflow struct {
	gateway Gateway
	journal Journal
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewWorkflow(gateway Gateway, jrnl Journal, logger *zap.Logger) *Workflow {
	return &Workflow{
		gateway:  gateway,
		journal:  jrnl,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// InFlight reports whether a claim for the package is currently running.
// Views use this to disable the claim control until the attempt settles.
func (w *Workflow) InFlight(packageID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.inFlight[packageID]
	return ok
}

// Claim runs one attempt for the given package on behalf of the session's
// driver. The caller passes the package as last fetched: the remote update
// is a full replace, so every original field must ride along with the
// status change.
//
// A previous attempt that updated the package but failed to create its
// order left the package shipping with no order. Claiming it again resumes
// that attempt at the order-create step instead of re-issuing the update,
// keeping the one-order-per-claim invariant intact.
func (w *Workflow) Claim(ctx context.Context, pkg domain.Package, sess domain.Session) (Result, error) {
	if pkg.ID == "" {
		return Result{}, apperrors.NewValidationError("package id is required")
	}
	driverID := sess.DriverID()
	if driverID == "" {
		return Result{}, apperrors.NewSessionError("no authenticated driver", nil)
	}

	if !w.acquire(pkg.ID) {
		return Result{}, apperrors.NewConflictError("a claim for this package is already in flight")
	}
	defer w.release(pkg.ID)

	logger := w.logger.With(
		zap.String("packageId", pkg.ID),
		zap.String("driverId", driverID),
	)

	orphan, resumable, err := w.journal.LatestOrphan(ctx, pkg.ID, driverID)
	if err != nil {
		// Journal trouble never blocks a claim; worst case we lose the
		// resume shortcut.
		logger.Warn("journal lookup failed", zap.Error(err))
		resumable = false
	}

	if resumable {
		// The journal only records an orphan once the package update has
		// already succeeded remotely, so the package is shipping even when
		// the caller holds a stale pending copy. Re-issuing the update
		// would start a second attempt; skip straight to the order create.
		logger.Info("resuming orphaned claim attempt", zap.String("attemptId", orphan.ID))
		return w.createOrderAndRefresh(ctx, orphan.ID, pkg.ID, driverID, true, logger)
	}

	if pkg.Status != domain.PackageStatusPending {
		return Result{}, apperrors.NewConflictError("package is not pending")
	}

	attemptID := uuid.New().String()
	logger = logger.With(zap.String("attemptId", attemptID))
	logger.Info("claim started")

	w.record(logger, func() error {
		return w.journal.Begin(ctx, attemptID, pkg.ID, driverID)
	})

	updated := pkg
	updated.Status = domain.PackageStatusShipping
	if _, err := w.gateway.UpdatePackage(ctx, updated); err != nil {
		logger.Error("package update failed, no order created", zap.Error(err))
		w.record(logger, func() error {
			return w.journal.Transition(ctx, attemptID, journal.StateFailedUpdate, err.Error())
		})
		return Result{}, err
	}

	return w.createOrderAndRefresh(ctx, attemptID, pkg.ID, driverID, false, logger)
}

func (w *Workflow) createOrderAndRefresh(
	ctx context.Context,
	attemptID string,
	packageID string,
	driverID string,
	resumed bool,
	logger *zap.Logger,
) (Result, error) {
	w.record(logger, func() error {
		return w.journal.Transition(ctx, attemptID, journal.StateCreatingOrder, "")
	})

	order, err := w.gateway.CreateOrder(ctx, packageID, driverID)
	if err != nil {
		// The package is now shipping with no order: an orphaned state the
		// journal remembers so the driver can retry the claim.
		logger.Error("order creation failed, claim is resumable", zap.Error(err))
		w.record(logger, func() error {
			return w.journal.Transition(ctx, attemptID, journal.StateFailedOrder, err.Error())
		})
		return Result{}, err
	}

	w.record(logger, func() error {
		return w.journal.Transition(ctx, attemptID, journal.StateRefreshing, "")
	})

	result := Result{Order: order, Resumed: resumed}

	packages, err := w.gateway.ListPackages(ctx)
	if err != nil {
		// The claim itself succeeded; the caller keeps its last fetched
		// pending list.
		logger.Warn("pending refetch failed after claim", zap.Error(err))
		w.record(logger, func() error {
			return w.journal.Transition(ctx, attemptID, journal.StateFailedRefresh, err.Error())
		})
		result.RefreshErr = err
		return result, nil
	}

	result.Pending = domain.FilterPackages(packages, domain.PackageStatusPending)

	w.record(logger, func() error {
		return w.journal.Transition(ctx, attemptID, journal.StateCompleted, "")
	})
	logger.Info("claim completed", zap.String("orderId", order.ID))
	return result, nil
}

func (w *Workflow) acquire(packageID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[packageID]; ok {
		return false
	}
	w.inFlight[packageID] = struct{}{}
	return true
}

func (w *Workflow) release(packageID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, packageID)
}

// record runs a journal write, logging instead of failing: the journal is
// diagnostics and recovery state, never on the claim's critical path.
func (w *Workflow) record(logger *zap.Logger, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn("journal write failed", zap.Error(err))
	}
}
