package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/commons"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
	"github.com/JunasVee/dynamits-driver/internal/session"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleMapView(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, ok := session.FromContext(r.Context())
	if !ok {
		commons.WriteJSON(w, logger, http.StatusUnauthorized, commons.ErrorResponse{Error: "SESSION_ERROR", Message: "not authenticated"})
		return
	}

	resp, err := c.useCase.OpenMap(r.Context(), sess)
	if err != nil {
		commons.WriteError(w, logger, "open map failed", err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleMarkerClick(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	markerID := chi.URLParam(r, "markerId")
	if markerID == "" {
		commons.WriteValidationError(w, logger, "invalid markerId", apperrors.ValidationDetail{
			Field:   "markerId",
			Message: "markerId is required",
		})
		return
	}

	resp, err := c.useCase.ClickMarker(sess, markerID)
	if err != nil {
		commons.WriteError(w, logger, "marker click failed", err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleClaim(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	packageID := chi.URLParam(r, "packageId")
	if packageID == "" {
		commons.WriteValidationError(w, logger, "invalid packageId", apperrors.ValidationDetail{
			Field:   "packageId",
			Message: "packageId is required",
		})
		return
	}

	resp, err := c.useCase.ClaimPackage(r.Context(), sess, packageID)
	if err != nil {
		commons.WriteError(w, logger, "claim failed", err)
		return
	}

	logger.Info("package claimed",
		zap.String("packageId", packageID),
		zap.String("orderId", resp.Order.ID),
		zap.Bool("resumed", resp.Resumed))
	commons.WriteJSON(w, logger, http.StatusCreated, resp)
}

func (c *Controller) HandleClaimAttempts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	packageID := chi.URLParam(r, "packageId")
	if packageID == "" {
		commons.WriteValidationError(w, logger, "invalid packageId", apperrors.ValidationDetail{
			Field:   "packageId",
			Message: "packageId is required",
		})
		return
	}

	resp, err := c.useCase.ClaimAttempts(r.Context(), sess, packageID)
	if err != nil {
		commons.WriteError(w, logger, "claim attempts lookup failed", err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleLocation(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	var req PushLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.useCase.PushLocation(sess, req); err != nil {
		commons.WriteError(w, logger, "push location failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
