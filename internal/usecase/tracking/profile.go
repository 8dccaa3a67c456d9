package tracking

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	track "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/dto"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// CatalogReader lists what can currently be sold.
type CatalogReader interface {
	ActiveServices(ctx context.Context) ([]models.Service, error)
	ActivePackages(ctx context.Context) ([]models.Package, error)
}

type ClientProfile struct {
	repo    track.Repository
	catalog CatalogReader
}

func NewClientProfile(repo track.Repository, catalog CatalogReader) *ClientProfile {
	return &ClientProfile{repo: repo, catalog: catalog}
}

func (uc *ClientProfile) Execute(ctx context.Context, actor authz.Actor, clientID uint) (*dto.ClientProfileDTO, error) {
	if err := authz.Require(actor, authz.PermClientsManage); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	cps, err := uc.repo.ListClientPackages(ctx, clientID)
	if err != nil {
		return nil, err
	}
	sessions, err := uc.repo.ListServiceSessions(ctx, clientID)
	if err != nil {
		return nil, err
	}
	packages, err := uc.catalog.ActivePackages(ctx)
	if err != nil {
		return nil, err
	}
	services, err := uc.catalog.ActiveServices(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ClientProfileDTO{
		Client:             *client,
		Packages:           make([]dto.ClientPackageDTO, 0, len(cps)),
		ServiceSessions:    make([]dto.ServiceSessionDTO, 0, len(sessions)),
		AssignablePackages: []models.Package{},
		ActiveServices:     services,
	}

	assigned := make(map[uint]bool, len(cps))
	for _, cp := range cps {
		assigned[cp.PackageID] = true
		out.Packages = append(out.Packages, dto.ClientPackageDTO{
			ClientPackage: cp,
			ProgressDTO:   progressOf(cp.SessionProgress, cp.Target()),
		})
	}
	for _, ss := range sessions {
		out.ServiceSessions = append(out.ServiceSessions, dto.ServiceSessionDTO{
			ClientServiceSession: ss,
			ProgressDTO:          progressOf(ss.SessionProgress, ss.Target()),
		})
	}
	for _, p := range packages {
		if !assigned[p.ID] {
			out.AssignablePackages = append(out.AssignablePackages, p)
		}
	}
	if out.ActiveServices == nil {
		out.ActiveServices = []models.Service{}
	}

	return out, nil
}

func progressOf(p models.SessionProgress, target int) dto.ProgressDTO {
	return dto.ProgressDTO{
		Target:             target,
		ProgressPercentage: track.Percentage(p.SessionsCompleted, target),
		RemainingSessions:  track.Remaining(p.SessionsCompleted, target),
		State:              string(track.StateOf(p)),
	}
}
