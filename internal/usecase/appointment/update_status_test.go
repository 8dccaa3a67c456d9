package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
)

func seedAppointment(t *testing.T, repo *fakeRepo) uint {
	t.Helper()
	repo.addService(10, "Laser", 45)
	ap, err := NewCreateAppointment(repo, &fakeTx{}, nil).Execute(context.Background(), staffActor, CreateAppointmentInput{
		ClientID: 1, ServiceID: 10, StaffID: 1, Date: "2026-06-01", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return ap.ID
}

func newStatusUC(repo *fakeRepo, tracker *fakeTracker) *UpdateAppointmentStatus {
	uc := NewUpdateAppointmentStatus(repo, &fakeTx{}, tracker, nil, time.UTC)
	uc.now = func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) }
	return uc
}

func TestCompletionInvokesTrackerOnce(t *testing.T) {
	repo := newFakeRepo()
	id := seedAppointment(t, repo)

	pkgID := uint(42)
	tracker := &fakeTracker{result: tracking.Result{Kind: tracking.ResultPackage, ClientPackageID: &pkgID, Added: true}}
	uc := newStatusUC(repo, tracker)

	res, err := uc.Execute(context.Background(), staffActor, id, "completed")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(tracker.events) != 1 {
		t.Fatalf("expected one completion event, got %d", len(tracker.events))
	}
	ev := tracker.events[0]
	if ev.ClientID != 1 || ev.ServiceID != 10 || ev.AppointmentID != id {
		t.Fatalf("unexpected event %+v", ev)
	}
	if res.Tracking == nil || res.Tracking.Kind != tracking.ResultPackage {
		t.Fatalf("expected tracking result in response, got %+v", res.Tracking)
	}

	stored := repo.appointments[id]
	if stored.Status != "completed" || stored.CompletedAt == nil {
		t.Fatalf("expected completed appointment, got %+v", stored)
	}
	if stored.ClientPackageID == nil || *stored.ClientPackageID != 42 {
		t.Fatalf("expected appointment linked to the credited package")
	}

	if _, err := uc.Execute(context.Background(), staffActor, id, "completed"); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("second completion must be rejected, got %v", err)
	}
	if len(tracker.events) != 1 {
		t.Fatalf("tracker must not run again, got %d events", len(tracker.events))
	}
}

func TestConfirmAndCancelDoNotTrack(t *testing.T) {
	repo := newFakeRepo()
	id := seedAppointment(t, repo)
	tracker := &fakeTracker{}
	uc := newStatusUC(repo, tracker)

	if _, err := uc.Execute(context.Background(), staffActor, id, "confirmed"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	res, err := uc.Execute(context.Background(), staffActor, id, "cancelled")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.Tracking != nil || len(tracker.events) != 0 {
		t.Fatalf("only completion may touch counters")
	}
	if repo.appointments[id].CancelledAt == nil {
		t.Fatalf("expected cancelled_at")
	}
}

func TestTrackerFailureKeepsStatus(t *testing.T) {
	repo := newFakeRepo()
	id := seedAppointment(t, repo)
	uc := newStatusUC(repo, &fakeTracker{err: errors.New("db down")})

	if _, err := uc.Execute(context.Background(), staffActor, id, "completed"); err == nil {
		t.Fatalf("expected tracker error to surface")
	}
	if repo.appointments[id].Status != "pending" {
		t.Fatalf("status must not be persisted when tracking fails, got %s", repo.appointments[id].Status)
	}
}
