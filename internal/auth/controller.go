package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/commons"
	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
	"github.com/JunasVee/dynamits-driver/internal/session"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User domain.User `json:"user"`
}

type ProfileResponse struct {
	User domain.User `json:"user"`
}

type Controller struct {
	gateway  Gateway
	sessions *session.Accessor
	disposer Disposer
	logger   *zap.Logger
}

func NewController(gateway Gateway, sessions *session.Accessor, disposer Disposer, logger *zap.Logger) *Controller {
	return &Controller{
		gateway:  gateway,
		sessions: sessions,
		disposer: disposer,
		logger:   logger,
	}
}

// HandleLogin proxies the credential check to the remote API and stores
// the returned session in cookies. The remote rejection message passes
// through to the driver untouched.
func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	sess, err := c.gateway.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if ge, ok := apperrors.IsGatewayError(err); ok && ge.Body != "" && ge.Status < 500 {
			logger.Warn("login rejected", zap.String("email", req.Email))
			commons.WriteJSON(w, logger, http.StatusUnauthorized, commons.ErrorResponse{
				Error:   "LOGIN_REJECTED",
				Message: ge.Body,
			})
			return
		}
		commons.WriteError(w, logger, "login failed", err)
		return
	}

	if err := c.sessions.Save(w, sess); err != nil {
		commons.WriteError(w, logger, "saving session failed", err)
		return
	}

	logger.Info("driver logged in", zap.String("driverId", sess.DriverID()))
	commons.WriteJSON(w, logger, http.StatusOK, LoginResponse{User: sess.User})
}

// HandleLogout clears the session cookies and disposes the driver's map
// state. Logging out while not logged in is a no-op.
func (c *Controller) HandleLogout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	if sess, ok := c.sessions.Get(r); ok {
		c.disposer.Teardown(sess.DriverID())
		logger.Info("driver logged out", zap.String("driverId", sess.DriverID()))
	}
	c.sessions.Clear(w)

	w.WriteHeader(http.StatusNoContent)
}

// HandleProfile returns the authenticated driver's identity for the
// sidebar header.
func (c *Controller) HandleProfile(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, ok := session.FromContext(r.Context())
	if !ok {
		commons.WriteJSON(w, logger, http.StatusUnauthorized, commons.ErrorResponse{Error: "SESSION_ERROR", Message: "not authenticated"})
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, ProfileResponse{User: sess.User})
}
