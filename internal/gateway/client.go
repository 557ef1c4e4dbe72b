package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

// Client is the thin HTTP client over the remote dynamits API. Every
// operation is a single round-trip: no retries, no local caching. The
// remote service is the source of truth; callers decide recovery.
type Client struct {
	baseURL string
	session *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes the request and decodes the response into out (when out is
// non-nil). Transport failures and non-2xx responses become GatewayErrors
// tagged with op so call sites can log a meaningful operation name.
func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.session.Do(req)
	if err != nil {
		return apperrors.NewGatewayError(op, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return apperrors.NewGatewayError(op, resp.StatusCode, strings.TrimSpace(string(b)), nil)
	}

	if out == nil {
		return nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewGatewayError(op, 0, "", err)
	}

	if err := decodeData(b, out); err != nil {
		c.logger.Warn("unexpected response format", zap.String("op", op), zap.Error(err))
		return apperrors.NewGatewayError(op, 0, "", err)
	}

	return nil
}

func decodeJSON(resp *http.Response, out any) error {
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeData unwraps the API's {"data": ...} envelope when present and
// falls back to decoding the body directly.
func decodeData(body []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(body, out)
}
