package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// State is a claim-attempt lifecycle stage as recorded locally. Failure
// states keep the step that failed, which is what makes an orphaned
// attempt (package updated, order missing) recoverable later.
type State string

const (
	StateUpdatingPackage State = "updating_package"
	StateCreatingOrder   State = "creating_order"
	StateRefreshing      State = "refreshing"
	StateCompleted       State = "completed"
	StateFailedUpdate    State = "failed_update"
	StateFailedOrder     State = "failed_order"
	StateFailedRefresh   State = "failed_refresh"
)

// Attempt is one recorded claim attempt.
type Attempt struct {
	ID        string
	PackageID string
	DriverID  string
	State     State
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Journal is the sqlite-backed record of claim state machine transitions.
// It is client-side diagnostics and recovery state only; the remote API
// stays the authority on packages and orders.
type Journal struct {
	db *sql.DB
}

func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// InitSchema creates the journal table. Safe to call on every startup.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS claim_attempts (
		id         TEXT PRIMARY KEY,
		package_id TEXT NOT NULL,
		driver_id  TEXT NOT NULL,
		state      TEXT NOT NULL,
		last_error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_claim_attempts_package_driver
		ON claim_attempts (package_id, driver_id, updated_at);
	`)
	if err != nil {
		return fmt.Errorf("init journal schema: %w", err)
	}
	return nil
}

// Begin records a fresh attempt entering the package-update step.
func (j *Journal) Begin(ctx context.Context, attemptID, packageID, driverID string) error {
	now := time.Now().UTC()
	_, err := j.db.ExecContext(ctx, `
	INSERT INTO claim_attempts (id, package_id, driver_id, state, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		attemptID, packageID, driverID, StateUpdatingPackage, now, now)
	if err != nil {
		return fmt.Errorf("begin claim attempt: %w", err)
	}
	return nil
}

// Transition advances a recorded attempt to a new state.
func (j *Journal) Transition(ctx context.Context, attemptID string, state State, lastError string) error {
	res, err := j.db.ExecContext(ctx, `
	UPDATE claim_attempts SET state = ?, last_error = ?, updated_at = ? WHERE id = ?`,
		state, lastError, time.Now().UTC(), attemptID)
	if err != nil {
		return fmt.Errorf("transition claim attempt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("transition claim attempt: attempt %s not found", attemptID)
	}
	return nil
}

// LatestOrphan returns the most recent attempt for a package+driver pair
// that updated the package but never got its order created.
func (j *Journal) LatestOrphan(ctx context.Context, packageID, driverID string) (Attempt, bool, error) {
	row := j.db.QueryRowContext(ctx, `
	SELECT id, package_id, driver_id, state, last_error, created_at, updated_at
	FROM claim_attempts
	WHERE package_id = ? AND driver_id = ? AND state = ?
	ORDER BY updated_at DESC
	LIMIT 1`,
		packageID, driverID, StateFailedOrder)

	var a Attempt
	err := row.Scan(&a.ID, &a.PackageID, &a.DriverID, &a.State, &a.LastError, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return Attempt{}, false, nil
	}
	if err != nil {
		return Attempt{}, false, fmt.Errorf("query orphaned claim attempt: %w", err)
	}
	return a, true, nil
}

// History lists a driver's recorded attempts for a package, newest first.
func (j *Journal) History(ctx context.Context, packageID, driverID string) ([]Attempt, error) {
	rows, err := j.db.QueryContext(ctx, `
	SELECT id, package_id, driver_id, state, last_error, created_at, updated_at
	FROM claim_attempts
	WHERE package_id = ? AND driver_id = ?
	ORDER BY updated_at DESC`,
		packageID, driverID)
	if err != nil {
		return nil, fmt.Errorf("query claim attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.PackageID, &a.DriverID, &a.State, &a.LastError, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan claim attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claim attempts: %w", err)
	}
	return attempts, nil
}
