package onboarding

import (
	"context"

	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/domain"
)

// catalogService is a side-effect-free pass-through to the plan endpoint;
// callers cache per their own needs.
type catalogService struct {
	client api.Client
}

// NewCatalogService creates a CatalogService over the given API client.
func NewCatalogService(client api.Client) CatalogService {
	return &catalogService{client: client}
}

func (c *catalogService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return c.client.ListPlans(ctx)
}
