package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

func TestAssignPackage(t *testing.T) {
	repo := newFakeRepo()
	repo.addPackage(1, 3, 10, 11, 12)
	repo.addPackage(2, 3, 10, 11, 12)
	repo.packages[2].IsActive = false

	uc := NewAssignPackage(repo, nil, time.UTC)
	uc.now = func() time.Time { return completedAt }
	ctx := context.Background()

	cp, err := uc.Execute(ctx, staffActor, 1, 1, "gift")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if cp.SessionsCompleted != 0 || cp.IsCompleted || !cp.AssignedDate.Equal(completedAt) {
		t.Fatalf("unexpected new package %+v", cp)
	}

	if _, err := uc.Execute(ctx, staffActor, 1, 1, ""); !httperr.IsBusiness(err, "already_assigned") {
		t.Fatalf("expected already_assigned, got %v", err)
	}
	if _, err := uc.Execute(ctx, staffActor, 1, 2, ""); !httperr.IsBusiness(err, "package_inactive") {
		t.Fatalf("expected package_inactive, got %v", err)
	}
	if _, err := uc.Execute(ctx, staffActor, 99, 1, ""); !httperr.IsNotFound(err) {
		t.Fatalf("expected client not found, got %v", err)
	}
}

func TestStartServiceSession(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(20, 6)
	uc := NewStartServiceSession(repo, nil, time.UTC)
	ctx := context.Background()

	ss, err := uc.Execute(ctx, staffActor, 1, 20, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if ss.ID == 0 || ss.Target() != 6 {
		t.Fatalf("unexpected session %+v", ss)
	}
	if _, err := uc.Execute(ctx, staffActor, 1, 20, ""); !httperr.IsBusiness(err, "already_tracking") {
		t.Fatalf("expected already_tracking, got %v", err)
	}
}

func TestClientProfile(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(20, 4)
	repo.addPackage(1, 3, 10, 11, 12)
	repo.addPackage(2, 3, 10, 11, 12)
	cp := models.ClientPackage{ID: 7, ClientID: 1, PackageID: 1}
	cp.SessionsCompleted = 1
	repo.cps[7] = &cp
	ss := models.ClientServiceSession{ID: 9, ClientID: 1, ServiceID: 20}
	ss.SessionsCompleted = 3
	repo.sessions[9] = &ss

	catalog := fakeCatalog{
		packages: []models.Package{*repo.packages[1], *repo.packages[2]},
		services: []models.Service{*repo.services[20]},
	}

	p, err := NewClientProfile(repo, catalog).Execute(context.Background(), staffActor, 1)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(p.Packages) != 1 || p.Packages[0].ProgressPercentage != 33 || p.Packages[0].RemainingSessions != 2 {
		t.Fatalf("unexpected packages %+v", p.Packages)
	}
	if len(p.ServiceSessions) != 1 || p.ServiceSessions[0].ProgressPercentage != 75 {
		t.Fatalf("unexpected sessions %+v", p.ServiceSessions)
	}
	if len(p.AssignablePackages) != 1 || p.AssignablePackages[0].ID != 2 {
		t.Fatalf("already assigned packages must not be offered, got %+v", p.AssignablePackages)
	}
}
