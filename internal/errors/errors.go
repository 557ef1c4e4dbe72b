package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

// SessionError marks a malformed or expired local session record.
// Callers recover by treating the driver as logged out.
type SessionError struct {
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		Message: message,
		Cause:   cause,
	}
}

func IsSessionError(err error) (*SessionError, bool) {
	if se, ok := err.(*SessionError); ok {
		return se, true
	}
	return nil, false
}

// GatewayError wraps a failed round-trip against the remote dynamits API:
// either a transport failure (Status == 0) or a non-2xx response.
type GatewayError struct {
	Op     string
	Status int
	Body   string
	Cause  error
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: remote returned %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

func NewGatewayError(op string, status int, body string, cause error) *GatewayError {
	return &GatewayError{
		Op:     op,
		Status: status,
		Body:   body,
		Cause:  cause,
	}
}

func IsGatewayError(err error) (*GatewayError, bool) {
	if ge, ok := err.(*GatewayError); ok {
		return ge, true
	}
	return nil, false
}

// GeolocationError reports a failed or timed-out position watch.
// The live tracker keeps its last-known marker when one occurs.
type GeolocationError struct {
	Message string
	Cause   error
}

func (e *GeolocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GeolocationError) Unwrap() error {
	return e.Cause
}

func NewGeolocationError(message string, cause error) *GeolocationError {
	return &GeolocationError{
		Message: message,
		Cause:   cause,
	}
}

func IsGeolocationError(err error) (*GeolocationError, bool) {
	if ge, ok := err.(*GeolocationError); ok {
		return ge, true
	}
	return nil, false
}

// CoordinateError marks an unparsable latitude/longitude pair. Entities
// carrying one are excluded from rendering, never surfaced to the driver.
type CoordinateError struct {
	Message string
}

func (e *CoordinateError) Error() string {
	return e.Message
}

func NewCoordinateError(message string) *CoordinateError {
	return &CoordinateError{Message: message}
}

func IsCoordinateError(err error) (*CoordinateError, bool) {
	if ce, ok := err.(*CoordinateError); ok {
		return ce, true
	}
	return nil, false
}

// ConflictError reports an operation rejected because of current state,
// e.g. claiming a package that already has a claim in flight.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if ne, ok := err.(*NotFoundError); ok {
		return ne, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	if ie, ok := err.(*InternalError); ok {
		return ie, true
	}
	return nil, false
}
