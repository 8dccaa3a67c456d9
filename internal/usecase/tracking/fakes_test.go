package tracking

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	clients  map[uint]*models.Client
	packages map[uint]*models.Package
	services map[uint]*models.Service
	cps      map[uint]*models.ClientPackage
	sessions map[uint]*models.ClientServiceSession
	nextID   uint
	locks    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:  map[uint]*models.Client{1: {ID: 1, FirstName: "Ana", LastName: "Silva"}},
		packages: map[uint]*models.Package{},
		services: map[uint]*models.Service{},
		cps:      map[uint]*models.ClientPackage{},
		sessions: map[uint]*models.ClientServiceSession{},
		nextID:   500,
	}
}

func (f *fakeRepo) addService(id uint, sessions int) {
	f.services[id] = &models.Service{ID: id, Name: "svc", Duration: 30, SessionsRequired: sessions, IsActive: true}
}

func (f *fakeRepo) addPackage(id uint, total int, serviceIDs ...uint) {
	p := &models.Package{ID: id, Name: "pkg", TotalSessions: total, IsActive: true}
	for _, sid := range serviceIDs {
		p.Services = append(p.Services, models.Service{ID: sid})
	}
	f.packages[id] = p
}

func (f *fakeRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, httperr.ErrNotFound("client_not_found")
}

func (f *fakeRepo) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	if p, ok := f.packages[id]; ok {
		return p, nil
	}
	return nil, httperr.ErrNotFound("package_not_found")
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrNotFound("service_not_found")
}

func (f *fakeRepo) loadCP(cp models.ClientPackage) *models.ClientPackage {
	if p, ok := f.packages[cp.PackageID]; ok {
		cp.Package = *p
	}
	return &cp
}

func (f *fakeRepo) loadSS(ss models.ClientServiceSession) *models.ClientServiceSession {
	if s, ok := f.services[ss.ServiceID]; ok {
		ss.Service = *s
	}
	return &ss
}

func (f *fakeRepo) FindClientPackage(ctx context.Context, clientID, packageID uint) (*models.ClientPackage, error) {
	for _, cp := range f.cps {
		if cp.ClientID == clientID && cp.PackageID == packageID {
			return f.loadCP(*cp), nil
		}
	}
	return nil, httperr.ErrNotFound("client_package_not_found")
}

func (f *fakeRepo) CreateClientPackage(ctx context.Context, cp *models.ClientPackage) error {
	f.nextID++
	cp.ID = f.nextID
	stored := *cp
	f.cps[cp.ID] = &stored
	return nil
}

func (f *fakeRepo) LockClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error) {
	f.locks++
	cp, ok := f.cps[id]
	if !ok {
		return nil, httperr.ErrNotFound("client_package_not_found")
	}
	return f.loadCP(*cp), nil
}

func (f *fakeRepo) UpdateClientPackage(ctx context.Context, cp *models.ClientPackage) error {
	stored := *cp
	f.cps[cp.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteClientPackage(ctx context.Context, id uint) error {
	if _, ok := f.cps[id]; !ok {
		return httperr.ErrNotFound("client_package_not_found")
	}
	delete(f.cps, id)
	return nil
}

func (f *fakeRepo) ListClientPackages(ctx context.Context, clientID uint) ([]models.ClientPackage, error) {
	var out []models.ClientPackage
	for _, cp := range f.cps {
		if cp.ClientID == clientID {
			out = append(out, *f.loadCP(*cp))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) LockOpenPackageForService(ctx context.Context, clientID, serviceID uint) (*models.ClientPackage, error) {
	f.locks++
	var best *models.ClientPackage
	for _, cp := range f.cps {
		full := f.loadCP(*cp)
		if full.ClientID != clientID || full.IsCompleted || !full.Package.IncludesService(serviceID) {
			continue
		}
		if best == nil || full.AssignedDate.After(best.AssignedDate) ||
			(full.AssignedDate.Equal(best.AssignedDate) && full.ID > best.ID) {
			best = full
		}
	}
	if best == nil {
		return nil, httperr.ErrNotFound("client_package_not_found")
	}
	return best, nil
}

func (f *fakeRepo) FindServiceSession(ctx context.Context, clientID, serviceID uint) (*models.ClientServiceSession, error) {
	for _, ss := range f.sessions {
		if ss.ClientID == clientID && ss.ServiceID == serviceID {
			return f.loadSS(*ss), nil
		}
	}
	return nil, httperr.ErrNotFound("service_session_not_found")
}

func (f *fakeRepo) CreateServiceSession(ctx context.Context, s *models.ClientServiceSession) error {
	if _, err := f.FindServiceSession(ctx, s.ClientID, s.ServiceID); err == nil {
		return nil
	}
	f.nextID++
	s.ID = f.nextID
	stored := *s
	f.sessions[s.ID] = &stored
	return nil
}

func (f *fakeRepo) LockServiceSession(ctx context.Context, id uint) (*models.ClientServiceSession, error) {
	f.locks++
	ss, ok := f.sessions[id]
	if !ok {
		return nil, httperr.ErrNotFound("service_session_not_found")
	}
	return f.loadSS(*ss), nil
}

func (f *fakeRepo) LockServiceSessionFor(ctx context.Context, clientID, serviceID uint) (*models.ClientServiceSession, error) {
	f.locks++
	return f.FindServiceSession(ctx, clientID, serviceID)
}

func (f *fakeRepo) UpdateServiceSession(ctx context.Context, s *models.ClientServiceSession) error {
	stored := *s
	f.sessions[s.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteServiceSession(ctx context.Context, id uint) error {
	if _, ok := f.sessions[id]; !ok {
		return httperr.ErrNotFound("service_session_not_found")
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeRepo) ListServiceSessions(ctx context.Context, clientID uint) ([]models.ClientServiceSession, error) {
	var out []models.ClientServiceSession
	for _, ss := range f.sessions {
		if ss.ClientID == clientID {
			out = append(out, *f.loadSS(*ss))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCatalog struct {
	services []models.Service
	packages []models.Package
}

func (f fakeCatalog) ActiveServices(ctx context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f fakeCatalog) ActivePackages(ctx context.Context) ([]models.Package, error) {
	return f.packages, nil
}
