package gateway

import (
	"context"
	"net/http"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

// ListPackages fetches every package known to the remote API. Filtering by
// status or geodata validity is the caller's concern.
func (c *Client) ListPackages(ctx context.Context) ([]domain.Package, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/packages", nil)
	if err != nil {
		return nil, apperrors.NewGatewayError("list packages", 0, "", err)
	}

	var packages []domain.Package
	if err := c.do("list packages", req, &packages); err != nil {
		return nil, err
	}

	return packages, nil
}

// UpdatePackage issues a full-field replace. The remote API nulls out any
// field missing from the body, so the caller must pass the complete
// package with only the intended changes applied.
func (c *Client) UpdatePackage(ctx context.Context, pkg domain.Package) (domain.Package, error) {
	if pkg.ID == "" {
		return domain.Package{}, apperrors.NewValidationError("package id is required")
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/api/v1/packages/"+pkg.ID, pkg)
	if err != nil {
		return domain.Package{}, apperrors.NewGatewayError("update package", 0, "", err)
	}

	var updated domain.Package
	if err := c.do("update package", req, &updated); err != nil {
		return domain.Package{}, err
	}

	return updated, nil
}
