package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	track "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

var staffActor = authz.Actor{UserID: 3, Role: authz.RoleStaff}

func newCounters(repo *fakeRepo) *Counters {
	uc := NewCounters(repo, fakeTx{}, nil, time.UTC)
	uc.now = func() time.Time { return completedAt.Add(15 * time.Hour) }
	return uc
}

func intPtr(v int) *int { return &v }

func TestAddSessionThroughCompletion(t *testing.T) {
	repo := newFakeRepo()
	repo.addPackage(1, 3, 10, 11, 12)
	repo.cps[7] = &models.ClientPackage{ID: 7, ClientID: 1, PackageID: 1}
	uc := newCounters(repo)
	ctx := context.Background()

	v, err := uc.AddSession(ctx, staffActor, KindPackage, 7)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !v.Changed || v.Progress.SessionsCompleted != 1 || v.State != track.StateInProgress || v.ProgressPercent != 33 || v.RemainingSessions != 2 {
		t.Fatalf("unexpected view %+v", v)
	}

	uc.AddSession(ctx, staffActor, KindPackage, 7)
	v, _ = uc.AddSession(ctx, staffActor, KindPackage, 7)
	if v.State != track.StateCompleted || v.Progress.CompletedDate == nil || !v.Progress.CompletedDate.Equal(completedAt) {
		t.Fatalf("expected completion stamped with today, got %+v", v.Progress)
	}

	v, err = uc.AddSession(ctx, staffActor, KindPackage, 7)
	if err != nil {
		t.Fatalf("add on completed: %v", err)
	}
	if v.Changed || v.Progress.SessionsCompleted != 3 {
		t.Fatalf("add on completed must be a no-op, got %+v", v)
	}
	if repo.locks != 4 {
		t.Fatalf("every write must lock the row, got %d locks", repo.locks)
	}
}

func TestAdjustReconciles(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(20, 6)
	repo.sessions[9] = &models.ClientServiceSession{ID: 9, ClientID: 1, ServiceID: 20}
	uc := newCounters(repo)
	ctx := context.Background()

	v, err := uc.Adjust(ctx, staffActor, KindServiceSession, 9, Adjustment{SessionsCompleted: intPtr(6)})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !v.Progress.IsCompleted || v.Progress.CompletedDate == nil {
		t.Fatalf("expected completed after direct write, got %+v", v.Progress)
	}

	v, err = uc.Adjust(ctx, staffActor, KindServiceSession, 9, Adjustment{Action: "decrement"})
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if v.Progress.SessionsCompleted != 5 || v.Progress.IsCompleted || v.Progress.CompletedDate != nil {
		t.Fatalf("expected reopened at 5, got %+v", v.Progress)
	}

	v, _ = uc.Adjust(ctx, staffActor, KindServiceSession, 9, Adjustment{Action: "increment"})
	if !v.Progress.IsCompleted {
		t.Fatalf("increment back to target must complete, got %+v", v.Progress)
	}

	v, err = uc.Adjust(ctx, staffActor, KindServiceSession, 9, Adjustment{Action: "increment"})
	if err != nil {
		t.Fatalf("increment on completed: %v", err)
	}
	if v.Changed || v.Progress.SessionsCompleted != 6 || !v.Progress.IsCompleted {
		t.Fatalf("increment on completed must be a no-op, got %+v", v)
	}

	if _, err := uc.Adjust(ctx, staffActor, KindServiceSession, 9, Adjustment{Action: "double"}); !httperr.IsBusiness(err, "invalid_action") {
		t.Fatalf("expected invalid_action, got %v", err)
	}
	if _, err := uc.Adjust(ctx, staffActor, KindServiceSession, 9, Adjustment{SessionsCompleted: intPtr(-1)}); !httperr.IsBusiness(err, "invalid_sessions") {
		t.Fatalf("expected invalid_sessions, got %v", err)
	}
}

func TestDecrementAtZero(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(20, 6)
	repo.sessions[9] = &models.ClientServiceSession{ID: 9, ClientID: 1, ServiceID: 20}

	v, err := newCounters(repo).Adjust(context.Background(), staffActor, KindServiceSession, 9, Adjustment{Action: "decrement"})
	if err != nil || v.Changed || v.Progress.SessionsCompleted != 0 {
		t.Fatalf("decrement at zero must be a no-op, got %+v %v", v, err)
	}
}

func TestDeleteCounter(t *testing.T) {
	repo := newFakeRepo()
	repo.addPackage(1, 3, 10, 11, 12)
	repo.cps[7] = &models.ClientPackage{ID: 7, ClientID: 1, PackageID: 1}
	uc := newCounters(repo)

	if err := uc.Delete(context.Background(), staffActor, KindPackage, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(context.Background(), staffActor, KindPackage, 7); !httperr.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
