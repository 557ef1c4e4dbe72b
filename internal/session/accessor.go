package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

const (
	TokenCookie = "token"
	UserCookie  = "user"
)

type sessionKey struct{}

// WithSession stores the authenticated session in the request context.
func WithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext retrieves the session placed there by the guard middleware.
func FromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(domain.Session)
	return sess, ok
}

// Accessor is the explicit session provider injected into every component
// that needs driver identity. It reads and writes the two persisted cookie
// records (token + user) and never reaches the network.
type Accessor struct {
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

func NewAccessor(ttl time.Duration, secure bool, logger *zap.Logger) *Accessor {
	return &Accessor{
		ttl:    ttl,
		secure: secure,
		logger: logger,
	}
}

// Get parses the stored session. Malformed or expired records yield
// (zero, false): a logged-out state, never an error to the caller.
func (a *Accessor) Get(r *http.Request) (domain.Session, bool) {
	tokenCookie, err := r.Cookie(TokenCookie)
	if err != nil || tokenCookie.Value == "" {
		return domain.Session{}, false
	}

	userCookie, err := r.Cookie(UserCookie)
	if err != nil || userCookie.Value == "" {
		return domain.Session{}, false
	}

	raw, err := url.QueryUnescape(userCookie.Value)
	if err != nil {
		raw = userCookie.Value
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		serr := apperrors.NewSessionError("failed to parse user cookie", err)
		a.logger.Warn("treating session as absent", zap.Error(serr))
		return domain.Session{}, false
	}

	if user.DriverID == "" {
		a.logger.Warn("user cookie has no driverId, treating session as absent")
		return domain.Session{}, false
	}

	if expired(tokenCookie.Value) {
		serr := apperrors.NewSessionError("session token expired", nil)
		a.logger.Info("treating session as absent", zap.Error(serr), zap.String("driverId", user.DriverID))
		return domain.Session{}, false
	}

	return domain.Session{User: user, Token: tokenCookie.Value}, true
}

// Save persists the session as the token and user cookie pair with the
// configured multi-day expiry.
func (a *Accessor) Save(w http.ResponseWriter, sess domain.Session) error {
	encoded, err := json.Marshal(sess.User)
	if err != nil {
		return apperrors.NewSessionError("failed to encode user record", err)
	}

	maxAge := int(a.ttl.Seconds())
	http.SetCookie(w, a.cookie(TokenCookie, sess.Token, maxAge))
	http.SetCookie(w, a.cookie(UserCookie, url.QueryEscape(string(encoded)), maxAge))
	return nil
}

// Clear removes all session state.
func (a *Accessor) Clear(w http.ResponseWriter) {
	http.SetCookie(w, a.cookie(TokenCookie, "", -1))
	http.SetCookie(w, a.cookie(UserCookie, "", -1))
}

func (a *Accessor) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expired reports whether the token carries an exp claim in the past. The
// remote API owns the signing secret, so the claim set is read without
// verification; opaque tokens pass through and expire via cookie MaxAge.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
