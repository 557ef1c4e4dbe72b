package assignment

import (
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

func (c *Controller) HandleListAssignments(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	resp, err := c.useCase.ListAssignments(r.Context(), sess)
	if err != nil {
		commons.WriteError(w, logger, "list assignments failed", err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleMarkDone(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		commons.WriteValidationError(w, logger, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId is required",
		})
		return
	}

	resp, err := c.useCase.MarkDone(r.Context(), sess, orderID)
	if err != nil {
		commons.WriteError(w, logger, "mark done failed", err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleHistory(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sess, _ := session.FromContext(r.Context())

	resp, err := c.useCase.History(r.Context(), sess)
	if err != nil {
		commons.WriteError(w, logger, "history failed", err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, resp)
}
