package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/assignment"
	"github.com/JunasVee/dynamits-driver/internal/auth"
	"github.com/JunasVee/dynamits-driver/internal/dispatch"
	"github.com/JunasVee/dynamits-driver/internal/session"
)

// NewRouter wires every driver-facing route. Login and logout stay outside
// the session guard; everything else requires an authenticated driver.
func NewRouter(
	authCtrl *auth.Controller,
	dispatchCtrl *dispatch.Controller,
	assignmentCtrl *assignment.Controller,
	sessions *session.Accessor,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authCtrl.HandleLogin)
		r.Post("/auth/logout", authCtrl.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Require)

			r.Get("/session", authCtrl.HandleProfile)

			r.Get("/map", dispatchCtrl.HandleMapView)
			r.Post("/map/markers/{markerId}/click", dispatchCtrl.HandleMarkerClick)
			r.Post("/packages/{packageId}/claim", dispatchCtrl.HandleClaim)
			r.Get("/packages/{packageId}/attempts", dispatchCtrl.HandleClaimAttempts)
			r.Post("/location", dispatchCtrl.HandleLocation)

			r.Get("/assignments", assignmentCtrl.HandleListAssignments)
			r.Post("/orders/{orderId}/done", assignmentCtrl.HandleMarkDone)
			r.Get("/history", assignmentCtrl.HandleHistory)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
