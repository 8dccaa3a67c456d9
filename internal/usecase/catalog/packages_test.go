package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
)

var admin = authz.Actor{UserID: 1, Role: authz.RoleAdmin}

func newPackages(repo *fakeRepo) *Packages {
	return NewPackages(repo, fakeTx{}, NewActiveCatalog(repo, nil, time.Minute), nil)
}

func TestSavePackageEnforcesServiceCount(t *testing.T) {
	repo := newFakeRepo()
	repo.seedServices(6)
	uc := newPackages(repo)
	ctx := context.Background()

	orig := 500.0
	v, err := uc.Save(ctx, admin, 0, PackageInput{
		Name: "Glow", ServiceIDs: []uint{1, 2, 3}, TotalSessions: 6, OriginalPrice: &orig, Price: 400, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(v.Services) != 3 || v.DiscountPercentage != 20 || !v.HasDiscount {
		t.Fatalf("unexpected view %+v", v)
	}

	_, err = uc.Save(ctx, admin, v.ID, PackageInput{Name: "Glow", ServiceIDs: []uint{1, 2}, TotalSessions: 6, Price: 400})
	if !httperr.IsBusiness(err, "invalid_package_services") {
		t.Fatalf("expected invalid_package_services, got %v", err)
	}
	if len(repo.packages[v.ID].Services) != 3 {
		t.Fatalf("rejected update must keep the previous links")
	}

	_, err = uc.Save(ctx, admin, v.ID, PackageInput{Name: "Glow", ServiceIDs: []uint{1, 2, 3, 4, 5, 6}, TotalSessions: 6, Price: 400})
	if !httperr.IsBusiness(err, "invalid_package_services") {
		t.Fatalf("expected invalid_package_services for six services, got %v", err)
	}

	_, err = uc.Save(ctx, admin, v.ID, PackageInput{Name: "Glow", ServiceIDs: []uint{1, 2, 99}, TotalSessions: 6, Price: 400})
	if !httperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown service, got %v", err)
	}
}

func TestSavePackageAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.seedServices(3)
	_, err := newPackages(repo).Save(context.Background(), authz.Actor{UserID: 2, Role: authz.RoleStaff}, 0, PackageInput{})
	var fe httperr.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestApplyPackageDiscounts(t *testing.T) {
	repo := newFakeRepo()
	repo.seedServices(3)
	pk := newPackages(repo)
	ctx := context.Background()

	orig := 200.0
	a, _ := pk.Save(ctx, admin, 0, PackageInput{Name: "A", ServiceIDs: []uint{1, 2, 3}, TotalSessions: 3, Price: 150})
	b, _ := pk.Save(ctx, admin, 0, PackageInput{Name: "B", ServiceIDs: []uint{1, 2, 3}, TotalSessions: 3, OriginalPrice: &orig, Price: 200})

	uc := NewApplyPackageDiscounts(repo, fakeTx{}, NewActiveCatalog(repo, nil, time.Minute), nil)
	n, err := uc.Execute(ctx, admin, 20)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 packages updated, got %d %v", n, err)
	}

	if got := repo.packages[a.ID]; *got.OriginalPrice != 150 || got.Price != 120 {
		t.Fatalf("A: expected 150 -> 120, got %v -> %v", *got.OriginalPrice, got.Price)
	}
	if got := repo.packages[b.ID]; got.Price != 160 {
		t.Fatalf("B: expected 160, got %v", got.Price)
	}

	if _, err := uc.Execute(ctx, admin, 20); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if repo.packages[a.ID].Price != 120 {
		t.Fatalf("reapplying the same discount must be stable, got %v", repo.packages[a.ID].Price)
	}

	if _, err := uc.Execute(ctx, admin, 120); !httperr.IsBusiness(err, "invalid_discount") {
		t.Fatalf("expected invalid_discount, got %v", err)
	}
}
