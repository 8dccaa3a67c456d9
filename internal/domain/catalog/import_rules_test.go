package catalog

import (
	"testing"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

func TestPackagePrice(t *testing.T) {
	explicit := 300.0
	if p, ok := PackagePrice(&explicit, "3 x $50"); !ok || p != 300 {
		t.Fatalf("explicit price wins, got %v %v", p, ok)
	}
	if p, ok := PackagePrice(nil, "3 hair meso $120 + 3 exosomes $450"); !ok || p != 570 {
		t.Fatalf("expected 570 from description, got %v %v", p, ok)
	}
	zero := 0.0
	if _, ok := PackagePrice(&zero, "no amounts here"); ok {
		t.Fatalf("expected no price")
	}
}

func TestMatchServices(t *testing.T) {
	services := []models.Service{
		{ID: 1, Name: "HAIR MESO"},
		{ID: 2, Name: "MESO SKIN BOOSTER"},
		{ID: 3, Name: "EXOHAIR"},
		{ID: 4, Name: "CO2 LASER"},
	}

	got := MatchServices("3 sessions of hair meso and exohair", services)

	ids := map[uint]bool{}
	for _, s := range got {
		ids[s.ID] = true
	}
	if !ids[1] || !ids[3] {
		t.Fatalf("expected HAIR MESO and EXOHAIR, got %v", got)
	}
	if ids[2] {
		t.Fatalf("MESO SKIN BOOSTER matches one term out of three and must not match")
	}
	if ids[4] {
		t.Fatalf("CO2 LASER must not match without \"laser\" in the text")
	}
}

func TestFitPackageServices(t *testing.T) {
	pool := []models.Service{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}}

	padded := FitPackageServices([]models.Service{{ID: 4}}, pool)
	if len(padded) != 3 || padded[0].ID != 4 || padded[1].ID != 1 || padded[2].ID != 2 {
		t.Fatalf("unexpected padding %v", padded)
	}

	trimmed := FitPackageServices(pool, pool)
	if len(trimmed) != 5 || trimmed[4].ID != 5 {
		t.Fatalf("expected first five services, got %v", trimmed)
	}

	deduped := FitPackageServices([]models.Service{{ID: 2}, {ID: 2}, {ID: 3}}, pool)
	if len(deduped) != 3 || deduped[2].ID != 1 {
		t.Fatalf("duplicates must collapse before padding, got %v", deduped)
	}
}
