package catalog

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	rules "github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
)

type ApplyPackageDiscounts struct {
	repo    rules.Repository
	tx      domain.Transactor
	catalog *ActiveCatalog
	audit   *audit.Dispatcher
}

func NewApplyPackageDiscounts(repo rules.Repository, tx domain.Transactor, catalog *ActiveCatalog, audit *audit.Dispatcher) *ApplyPackageDiscounts {
	return &ApplyPackageDiscounts{repo: repo, tx: tx, catalog: catalog, audit: audit}
}

// Execute reprices every package from its original price. Packages without
// an original price take their current price as the original first, so
// running it twice with the same percent is stable.
func (uc *ApplyPackageDiscounts) Execute(ctx context.Context, actor authz.Actor, percent float64) (int, error) {
	if err := authz.Require(actor, authz.PermCatalogWrite); err != nil {
		return 0, err
	}
	if err := rules.ValidateDiscountPercent(percent); err != nil {
		return 0, err
	}

	updated := 0
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		pkgs, err := uc.repo.ListPackages(ctx)
		if err != nil {
			return err
		}
		for i := range pkgs {
			p := &pkgs[i]
			if p.OriginalPrice == nil {
				orig := p.Price
				p.OriginalPrice = &orig
			}
			p.Price = rules.ApplyDiscount(*p.OriginalPrice, percent)
			if err := uc.repo.SavePackage(ctx, p, p.Services); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.catalog.Invalidate(ctx)
	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "package_discounts_applied",
		Entity:   "package",
		Metadata: map[string]any{"percent": percent, "packages": updated},
	})
	return updated, nil
}
