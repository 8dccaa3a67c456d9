package tracking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	track "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

// CounterKind selects which counter table an operation targets.
type CounterKind string

const (
	KindPackage        CounterKind = "client_package"
	KindServiceSession CounterKind = "client_service_session"
)

// ======================================================
// INPUT
// ======================================================

// Adjustment is either a step (increment / decrement) or an absolute
// SessionsCompleted value.
type Adjustment struct {
	Action            string
	SessionsCompleted *int
}

// CounterView is the counter after a write.
type CounterView struct {
	Kind              CounterKind            `json:"kind"`
	ID                uint                   `json:"id"`
	Changed           bool                   `json:"changed"`
	Progress          models.SessionProgress `json:"progress"`
	Target            int                    `json:"target"`
	State             track.State            `json:"state"`
	ProgressPercent   int                    `json:"progress_percentage"`
	RemainingSessions int                    `json:"remaining_sessions"`
}

func newView(kind CounterKind, id uint, changed bool, p models.SessionProgress, target int) CounterView {
	return CounterView{
		Kind:              kind,
		ID:                id,
		Changed:           changed,
		Progress:          p,
		Target:            target,
		State:             track.StateOf(p),
		ProgressPercent:   track.Percentage(p.SessionsCompleted, target),
		RemainingSessions: track.Remaining(p.SessionsCompleted, target),
	}
}

// ======================================================
// USE CASE
// ======================================================

// Counters serves manual writes to package and service-session counters.
// Every write locks the row inside a transaction.
type Counters struct {
	repo  track.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewCounters(
	repo track.Repository,
	tx domain.Transactor,
	audit *audit.Dispatcher,
	loc *time.Location,
) *Counters {
	return &Counters{repo: repo, tx: tx, audit: audit, loc: loc, now: time.Now}
}

// AddSession is the explicit "add session" action: a no-op reported as
// Changed=false when the counter is already completed.
func (uc *Counters) AddSession(ctx context.Context, actor authz.Actor, kind CounterKind, id uint) (*CounterView, error) {
	return uc.write(ctx, actor, kind, id, "session_added", func(p *models.SessionProgress, target int, today time.Time) (bool, error) {
		return track.AddSession(p, target, today), nil
	})
}

// Adjust applies a manual correction and reconciles the completion flag.
// An increment on a completed counter is a no-op reported as Changed=false.
func (uc *Counters) Adjust(ctx context.Context, actor authz.Actor, kind CounterKind, id uint, adj Adjustment) (*CounterView, error) {
	apply, err := adjustment(adj)
	if err != nil {
		return nil, err
	}
	return uc.write(ctx, actor, kind, id, "sessions_adjusted", apply)
}

func adjustment(adj Adjustment) (func(*models.SessionProgress, int, time.Time) (bool, error), error) {
	if adj.SessionsCompleted != nil {
		n := *adj.SessionsCompleted
		if n < 0 {
			return nil, httperr.ErrBusinessMsg("invalid_sessions", "Sessions completed cannot be negative.")
		}
		return func(p *models.SessionProgress, target int, today time.Time) (bool, error) {
			changed := p.SessionsCompleted != n
			p.SessionsCompleted = n
			track.Reconcile(p, target, today)
			return changed, nil
		}, nil
	}

	switch adj.Action {
	case "increment":
		return func(p *models.SessionProgress, target int, today time.Time) (bool, error) {
			return track.AddSession(p, target, today), nil
		}, nil
	case "decrement":
		return func(p *models.SessionProgress, target int, today time.Time) (bool, error) {
			return track.RemoveSession(p, target, today), nil
		}, nil
	}
	return nil, httperr.ErrBusinessMsg("invalid_action", "Action must be increment or decrement.")
}

type progressFn func(p *models.SessionProgress, target int, today time.Time) (bool, error)

func (uc *Counters) write(
	ctx context.Context,
	actor authz.Actor,
	kind CounterKind,
	id uint,
	action string,
	apply progressFn,
) (*CounterView, error) {

	if err := authz.Require(actor, authz.PermTracking); err != nil {
		return nil, err
	}

	today := timezone.DateOf(uc.now().In(uc.loc))
	var view CounterView

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		switch kind {
		case KindPackage:
			cp, err := uc.repo.LockClientPackage(ctx, id)
			if err != nil {
				return err
			}
			changed, err := apply(&cp.SessionProgress, cp.Target(), today)
			if err != nil {
				return err
			}
			if changed {
				if err := uc.repo.UpdateClientPackage(ctx, cp); err != nil {
					return err
				}
			}
			view = newView(kind, cp.ID, changed, cp.SessionProgress, cp.Target())
			return nil

		case KindServiceSession:
			ss, err := uc.repo.LockServiceSession(ctx, id)
			if err != nil {
				return err
			}
			changed, err := apply(&ss.SessionProgress, ss.Target(), today)
			if err != nil {
				return err
			}
			if changed {
				if err := uc.repo.UpdateServiceSession(ctx, ss); err != nil {
					return err
				}
			}
			view = newView(kind, ss.ID, changed, ss.SessionProgress, ss.Target())
			return nil
		}
		return httperr.ErrBusiness("invalid_kind")
	})
	if err != nil {
		return nil, err
	}

	if view.Changed {
		uc.audit.Dispatch(audit.Event{
			UserID:   actor.UserID,
			Action:   action,
			Entity:   string(kind),
			EntityID: id,
			Metadata: map[string]any{
				"sessions_completed": view.Progress.SessionsCompleted,
				"is_completed":       view.Progress.IsCompleted,
			},
		})
	}

	return &view, nil
}

func (uc *Counters) Delete(ctx context.Context, actor authz.Actor, kind CounterKind, id uint) error {
	if err := authz.Require(actor, authz.PermTracking); err != nil {
		return err
	}

	var err error
	switch kind {
	case KindPackage:
		err = uc.repo.DeleteClientPackage(ctx, id)
	case KindServiceSession:
		err = uc.repo.DeleteServiceSession(ctx, id)
	default:
		err = httperr.ErrBusiness("invalid_kind")
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "tracking_deleted",
		Entity:   string(kind),
		EntityID: id,
	})
	return nil
}
