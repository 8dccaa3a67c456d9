package catalog

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/cache"
	domain "github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// ActiveCatalog serves the sellable services and packages through the
// cache. Every catalog write must call Invalidate.
type ActiveCatalog struct {
	repo  domain.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewActiveCatalog(repo domain.Repository, c cache.Cache, ttl time.Duration) *ActiveCatalog {
	if c == nil {
		c = cache.NewNoop()
	}
	return &ActiveCatalog{repo: repo, cache: c, ttl: ttl}
}

func (a *ActiveCatalog) ActiveServices(ctx context.Context) ([]models.Service, error) {
	return cache.Remember(ctx, a.cache, cache.KeyActiveServices, a.ttl, func() ([]models.Service, error) {
		return a.repo.ListActiveServices(ctx)
	})
}

func (a *ActiveCatalog) ActivePackages(ctx context.Context) ([]models.Package, error) {
	return cache.Remember(ctx, a.cache, cache.KeyActivePackages, a.ttl, func() ([]models.Package, error) {
		return a.repo.ListActivePackages(ctx)
	})
}

func (a *ActiveCatalog) Invalidate(ctx context.Context) {
	cache.Invalidate(ctx, a.cache, cache.KeyActiveServices, cache.KeyActivePackages)
}
