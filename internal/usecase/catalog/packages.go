package catalog

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	rules "github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type PackageInput struct {
	Name          string
	Description   string
	ServiceIDs    []uint
	TotalSessions int
	OriginalPrice *float64
	Price         float64
	IsActive      bool
}

// PackageView adds the derived discount fields to a package.
type PackageView struct {
	models.Package
	DiscountPercentage int  `json:"discount_percentage"`
	HasDiscount        bool `json:"has_discount"`
}

func NewPackageView(p models.Package) PackageView {
	return PackageView{
		Package:            p,
		DiscountPercentage: rules.DiscountPercentage(p.OriginalPrice, p.Price),
		HasDiscount:        rules.HasDiscount(p.OriginalPrice, p.Price),
	}
}

type Packages struct {
	repo    rules.Repository
	tx      domain.Transactor
	catalog *ActiveCatalog
	audit   *audit.Dispatcher
}

func NewPackages(repo rules.Repository, tx domain.Transactor, catalog *ActiveCatalog, audit *audit.Dispatcher) *Packages {
	return &Packages{repo: repo, tx: tx, catalog: catalog, audit: audit}
}

func (uc *Packages) List(ctx context.Context, activeOnly bool) ([]PackageView, error) {
	var (
		pkgs []models.Package
		err  error
	)
	if activeOnly {
		pkgs, err = uc.catalog.ActivePackages(ctx)
	} else {
		pkgs, err = uc.repo.ListPackages(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]PackageView, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, NewPackageView(p))
	}
	return out, nil
}

func (uc *Packages) Get(ctx context.Context, id uint) (*PackageView, error) {
	p, err := uc.repo.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewPackageView(*p)
	return &v, nil
}

// Save creates the package when id is 0, otherwise updates it. The package
// row and its service links are written in one transaction.
func (uc *Packages) Save(ctx context.Context, actor authz.Actor, id uint, in PackageInput) (*PackageView, error) {
	if err := authz.Require(actor, authz.PermCatalogWrite); err != nil {
		return nil, err
	}
	if err := validatePackage(in); err != nil {
		return nil, err
	}

	var p *models.Package
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if id == 0 {
			p = &models.Package{}
		} else {
			found, err := uc.repo.GetPackage(ctx, id)
			if err != nil {
				return err
			}
			p = found
		}

		ids := rules.Distinct(in.ServiceIDs)
		services, err := uc.repo.FindServices(ctx, ids)
		if err != nil {
			return err
		}
		if len(services) != len(ids) {
			return httperr.ErrNotFound("service_not_found")
		}

		p.Name = in.Name
		p.Description = in.Description
		p.TotalSessions = in.TotalSessions
		p.OriginalPrice = in.OriginalPrice
		p.Price = rules.Round2(in.Price)
		p.IsActive = in.IsActive

		return uc.repo.SavePackage(ctx, p, services)
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	action := "package_updated"
	if id == 0 {
		action = "package_created"
	}
	uc.audit.Dispatch(audit.Event{UserID: actor.UserID, Action: action, Entity: "package", EntityID: p.ID})

	v := NewPackageView(*p)
	return &v, nil
}

func (uc *Packages) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	if err := authz.Require(actor, authz.PermCatalogWrite); err != nil {
		return err
	}
	if err := uc.repo.DeletePackage(ctx, id); err != nil {
		return err
	}
	uc.catalog.Invalidate(ctx)
	uc.audit.Dispatch(audit.Event{UserID: actor.UserID, Action: "package_deleted", Entity: "package", EntityID: id})
	return nil
}

func validatePackage(in PackageInput) error {
	if in.Name == "" {
		return httperr.ErrBusinessMsg("invalid_name", "Name is required.")
	}
	if in.TotalSessions < 1 {
		return httperr.ErrBusinessMsg("invalid_sessions", "A package must include at least one session.")
	}
	if in.Price < 0 || (in.OriginalPrice != nil && *in.OriginalPrice < 0) {
		return httperr.ErrBusinessMsg("invalid_price", "Prices cannot be negative.")
	}
	return rules.ValidatePackageServices(in.ServiceIDs)
}
