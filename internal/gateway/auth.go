package gateway

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	} `json:"data"`
}

// Login authenticates a driver against the remote auth endpoint and
// returns the session to persist. A response with status=false is still a
// 200 on the wire; the remote message is surfaced through the error body.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, apperrors.NewValidationError("email and password are required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return domain.Session{}, apperrors.NewGatewayError("login", 0, "", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.Session{}, apperrors.NewGatewayError("login", 0, "", err)
	}
	defer resp.Body.Close()

	var result loginResponse
	if err := decodeJSON(resp, &result); err != nil {
		return domain.Session{}, apperrors.NewGatewayError("login", 0, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.Status {
		message := result.Message
		if message == "" {
			message = "authentication failed"
		}
		c.logger.Warn("login rejected", zap.Int("status", resp.StatusCode), zap.String("message", message))
		return domain.Session{}, apperrors.NewGatewayError("login", resp.StatusCode, message, nil)
	}

	return domain.Session{
		User:  result.Data.User,
		Token: result.Data.Token,
	}, nil
}
