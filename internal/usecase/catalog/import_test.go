package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
)

const catalogJSON = `{
  "services": [
    {"name": "HAIR MESO", "price": 120, "duration": 30},
    {"name": "EXOHAIR", "price": 150, "sessions_required": 3},
    {"name": "DEEP GLOW FACIAL", "price": 80},
    {"name": "CO2 LASER", "price": 300, "is_active": false}
  ],
  "packages": [
    {"name": "HAIR TREATMENT PLAN", "description": "3 hair meso $120 + 3 exohair $450", "total_sessions": 6},
    {"name": "GLOW PLAN", "price": 200, "description": "deep glow facial monthly", "products": "serum"},
    {"name": "MYSTERY", "description": "ask at the desk"}
  ]
}`

func newImport(repo *fakeRepo, files stringSource) *ImportCatalog {
	return NewImportCatalog(repo, fakeTx{}, files, NewActiveCatalog(repo, nil, time.Minute), nil)
}

func TestImportCatalog(t *testing.T) {
	repo := newFakeRepo()
	uc := newImport(repo, stringSource{"cleaned_data.json": catalogJSON})

	rep, err := uc.Execute(context.Background(), admin, "cleaned_data.json", false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rep.ServicesCreated != 4 || rep.PackagesCreated != 2 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(rep.PackagesSkipped) != 1 || rep.PackagesSkipped[0] != "MYSTERY" {
		t.Fatalf("package without price must be skipped, got %v", rep.PackagesSkipped)
	}

	hair, err := repo.FindPackageByName(context.Background(), "HAIR TREATMENT PLAN")
	if err != nil {
		t.Fatalf("hair plan: %v", err)
	}
	if *hair.OriginalPrice != 570 || hair.Price != 456 || hair.TotalSessions != 6 {
		t.Fatalf("expected 570 discounted to 456, got %v -> %v", *hair.OriginalPrice, hair.Price)
	}
	if len(hair.Services) != 3 || hair.Services[0].Name != "HAIR MESO" || hair.Services[1].Name != "EXOHAIR" {
		t.Fatalf("expected matched services first then padding, got %+v", hair.Services)
	}

	glow, _ := repo.FindPackageByName(context.Background(), "GLOW PLAN")
	if glow.Price != 160 || glow.TotalSessions != 4 {
		t.Fatalf("expected 160 over default 4 sessions, got %v / %d", glow.Price, glow.TotalSessions)
	}
	if glow.Description != "deep glow facial monthly\n\nProducts included: serum" {
		t.Fatalf("unexpected description %q", glow.Description)
	}

	meso, _ := repo.FindServiceByName(context.Background(), "HAIR MESO")
	if meso.Duration != 30 || meso.SessionsRequired != 1 {
		t.Fatalf("unexpected service defaults %+v", meso)
	}
	co2, _ := repo.FindServiceByName(context.Background(), "CO2 LASER")
	if co2.IsActive || co2.Duration != 45 {
		t.Fatalf("expected inactive service with default duration, got %+v", co2)
	}
}

func TestImportCatalogUpsertsByName(t *testing.T) {
	repo := newFakeRepo()
	uc := newImport(repo, stringSource{"f.json": catalogJSON})
	ctx := context.Background()

	if _, err := uc.Execute(ctx, admin, "f.json", false); err != nil {
		t.Fatalf("first import: %v", err)
	}
	rep, err := uc.Execute(ctx, admin, "f.json", false)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if rep.ServicesCreated != 0 || rep.ServicesUpdated != 4 || rep.PackagesUpdated != 2 {
		t.Fatalf("second import must update in place, got %+v", rep)
	}
	if len(repo.services) != 4 || len(repo.packages) != 2 {
		t.Fatalf("no duplicates expected, got %d services %d packages", len(repo.services), len(repo.packages))
	}

	if _, err := uc.Execute(ctx, admin, "f.json", true); err != nil || !repo.cleared {
		t.Fatalf("clear import: %v", err)
	}
}

func TestImportCatalogRejectsBadFiles(t *testing.T) {
	repo := newFakeRepo()
	uc := newImport(repo, stringSource{
		"broken.json":   `{"services": [`,
		"negative.json": `{"services": [{"name": "X", "price": -5}]}`,
	})
	ctx := context.Background()

	for _, f := range []string{"broken.json", "negative.json"} {
		if _, err := uc.Execute(ctx, admin, f, false); !httperr.IsBusiness(err, "invalid_import_file") {
			t.Fatalf("%s: expected invalid_import_file, got %v", f, err)
		}
	}
	if _, err := uc.Execute(ctx, admin, "missing.json", false); !httperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
