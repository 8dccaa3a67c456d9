package tracking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	track "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

// Tracker credits completed appointments to the client's counters.
type Tracker struct {
	repo  track.Repository
	audit *audit.Dispatcher
}

func NewTracker(repo track.Repository, audit *audit.Dispatcher) *Tracker {
	return &Tracker{repo: repo, audit: audit}
}

// HandleAppointmentCompleted must run inside the transaction that stored
// the status change. Resolution order:
//  1. explicitly linked package, then linked service session
//  2. most recently assigned open package that includes the service
//  3. service session for multi-session services, created on first use
func (t *Tracker) HandleAppointmentCompleted(
	ctx context.Context,
	ev track.AppointmentCompleted,
) (track.Result, error) {

	today := timezone.DateOf(ev.CompletedAt)

	if ev.ClientPackageID != nil {
		cp, err := t.repo.LockClientPackage(ctx, *ev.ClientPackageID)
		if err != nil {
			return track.Result{}, err
		}
		return t.creditPackage(ctx, ev, cp, today)
	}

	if ev.ClientServiceSessionID != nil {
		ss, err := t.repo.LockServiceSession(ctx, *ev.ClientServiceSessionID)
		if err != nil {
			return track.Result{}, err
		}
		return t.creditSession(ctx, ev, ss, today)
	}

	cp, err := t.repo.LockOpenPackageForService(ctx, ev.ClientID, ev.ServiceID)
	switch {
	case err == nil:
		return t.creditPackage(ctx, ev, cp, today)
	case !httperr.IsNotFound(err):
		return track.Result{}, err
	}

	service, err := t.repo.GetService(ctx, ev.ServiceID)
	if err != nil {
		return track.Result{}, err
	}
	if !service.RequiresMultipleSessions() {
		return track.Result{Kind: track.ResultNone}, nil
	}

	ss, err := t.lockOrStartSession(ctx, ev.ClientID, ev.ServiceID, today)
	if err != nil {
		return track.Result{}, err
	}
	if ss.IsCompleted {
		return track.Result{Kind: track.ResultNone}, nil
	}
	return t.creditSession(ctx, ev, ss, today)
}

func (t *Tracker) lockOrStartSession(ctx context.Context, clientID, serviceID uint, today time.Time) (*models.ClientServiceSession, error) {
	ss, err := t.repo.LockServiceSessionFor(ctx, clientID, serviceID)
	if err == nil || !httperr.IsNotFound(err) {
		return ss, err
	}

	if err := t.repo.CreateServiceSession(ctx, &models.ClientServiceSession{
		ClientID:    clientID,
		ServiceID:   serviceID,
		StartedDate: today,
	}); err != nil {
		return nil, err
	}
	return t.repo.LockServiceSessionFor(ctx, clientID, serviceID)
}

func (t *Tracker) creditPackage(
	ctx context.Context,
	ev track.AppointmentCompleted,
	cp *models.ClientPackage,
	today time.Time,
) (track.Result, error) {

	added := track.AddSession(&cp.SessionProgress, cp.Target(), today)
	if added {
		if err := t.repo.UpdateClientPackage(ctx, cp); err != nil {
			return track.Result{}, err
		}
		t.dispatch(ev, "client_package", cp.ID, cp.SessionProgress)
	}

	id := cp.ID
	return track.Result{
		Kind:              track.ResultPackage,
		ClientPackageID:   &id,
		Added:             added,
		SessionsCompleted: cp.SessionsCompleted,
		Target:            cp.Target(),
		Completed:         cp.IsCompleted,
	}, nil
}

func (t *Tracker) creditSession(
	ctx context.Context,
	ev track.AppointmentCompleted,
	ss *models.ClientServiceSession,
	today time.Time,
) (track.Result, error) {

	added := track.AddSession(&ss.SessionProgress, ss.Target(), today)
	if added {
		if err := t.repo.UpdateServiceSession(ctx, ss); err != nil {
			return track.Result{}, err
		}
		t.dispatch(ev, "client_service_session", ss.ID, ss.SessionProgress)
	}

	id := ss.ID
	return track.Result{
		Kind:                   track.ResultServiceSession,
		ClientServiceSessionID: &id,
		Added:                  added,
		SessionsCompleted:      ss.SessionsCompleted,
		Target:                 ss.Target(),
		Completed:              ss.IsCompleted,
	}, nil
}

func (t *Tracker) dispatch(ev track.AppointmentCompleted, entity string, id uint, p models.SessionProgress) {
	t.audit.Dispatch(audit.Event{
		Action:   "session_auto_tracked",
		Entity:   entity,
		EntityID: id,
		Metadata: map[string]any{
			"appointment_id":     ev.AppointmentID,
			"sessions_completed": p.SessionsCompleted,
			"is_completed":       p.IsCompleted,
		},
	})
}
