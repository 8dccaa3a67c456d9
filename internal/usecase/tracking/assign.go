package tracking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	track "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

type AssignPackage struct {
	repo  track.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewAssignPackage(repo track.Repository, audit *audit.Dispatcher, loc *time.Location) *AssignPackage {
	return &AssignPackage{repo: repo, audit: audit, loc: loc, now: time.Now}
}

func (uc *AssignPackage) Execute(
	ctx context.Context,
	actor authz.Actor,
	clientID uint,
	packageID uint,
	notes string,
) (*models.ClientPackage, error) {

	if err := authz.Require(actor, authz.PermTracking); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	pkg, err := uc.repo.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, httperr.ErrBusinessMsg("package_inactive", "This package is not currently offered.")
	}

	_, err = uc.repo.FindClientPackage(ctx, clientID, packageID)
	if err == nil {
		return nil, httperr.ErrBusinessMsg("already_assigned", "This package is already assigned to the client.")
	}
	if !httperr.IsNotFound(err) {
		return nil, err
	}

	cp := &models.ClientPackage{
		ClientID:     clientID,
		PackageID:    packageID,
		Package:      *pkg,
		AssignedDate: timezone.DateOf(uc.now().In(uc.loc)),
		Notes:        notes,
	}
	if err := uc.repo.CreateClientPackage(ctx, cp); err != nil {
		return nil, err
	}
	if cp.ID == 0 {
		return nil, httperr.ErrBusinessMsg("already_assigned", "This package is already assigned to the client.")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "package_assigned",
		Entity:   "client_package",
		EntityID: cp.ID,
		Metadata: map[string]any{"client_id": clientID, "package_id": packageID},
	})

	return cp, nil
}

type StartServiceSession struct {
	repo  track.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewStartServiceSession(repo track.Repository, audit *audit.Dispatcher, loc *time.Location) *StartServiceSession {
	return &StartServiceSession{repo: repo, audit: audit, loc: loc, now: time.Now}
}

func (uc *StartServiceSession) Execute(
	ctx context.Context,
	actor authz.Actor,
	clientID uint,
	serviceID uint,
	notes string,
) (*models.ClientServiceSession, error) {

	if err := authz.Require(actor, authz.PermTracking); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusinessMsg("service_inactive", "This service is not currently offered.")
	}

	_, err = uc.repo.FindServiceSession(ctx, clientID, serviceID)
	if err == nil {
		return nil, httperr.ErrBusinessMsg("already_tracking", "This service is already being tracked for the client.")
	}
	if !httperr.IsNotFound(err) {
		return nil, err
	}

	ss := &models.ClientServiceSession{
		ClientID:    clientID,
		ServiceID:   serviceID,
		Service:     *service,
		StartedDate: timezone.DateOf(uc.now().In(uc.loc)),
		Notes:       notes,
	}
	if err := uc.repo.CreateServiceSession(ctx, ss); err != nil {
		return nil, err
	}
	if ss.ID == 0 {
		// lost a race with a concurrent start
		return nil, httperr.ErrBusinessMsg("already_tracking", "This service is already being tracked for the client.")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "service_session_started",
		Entity:   "client_service_session",
		EntityID: ss.ID,
		Metadata: map[string]any{"client_id": clientID, "service_id": serviceID},
	})

	return ss, nil
}
