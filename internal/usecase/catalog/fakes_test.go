package catalog

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	services map[uint]*models.Service
	packages map[uint]*models.Package
	nextID   uint
	cleared  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{services: map[uint]*models.Service{}, packages: map[uint]*models.Package{}}
}

func (f *fakeRepo) seedServices(n int) {
	for i := 1; i <= n; i++ {
		f.nextID++
		f.services[f.nextID] = &models.Service{ID: f.nextID, Name: "svc", Duration: 30, SessionsRequired: 1, IsActive: true}
	}
}

func (f *fakeRepo) sortedServices(active bool) []models.Service {
	var out []models.Service
	for _, s := range f.services {
		if active && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRepo) sortedPackages(active bool) []models.Package {
	var out []models.Package
	for _, p := range f.packages {
		if active && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRepo) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	return f.sortedServices(true), nil
}

func (f *fakeRepo) ListActivePackages(ctx context.Context) ([]models.Package, error) {
	return f.sortedPackages(true), nil
}

func (f *fakeRepo) ListPackages(ctx context.Context) ([]models.Package, error) {
	return f.sortedPackages(false), nil
}

func (f *fakeRepo) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, httperr.ErrNotFound("package_not_found")
	}
	out := *p
	return &out, nil
}

func (f *fakeRepo) FindServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindServiceByName(ctx context.Context, name string) (*models.Service, error) {
	for _, s := range f.sortedServices(false) {
		if s.Name == name {
			out := s
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("service_not_found")
}

func (f *fakeRepo) FindPackageByName(ctx context.Context, name string) (*models.Package, error) {
	for _, p := range f.sortedPackages(false) {
		if p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("package_not_found")
}

func (f *fakeRepo) SaveService(ctx context.Context, s *models.Service) error {
	if s.ID == 0 {
		f.nextID++
		s.ID = f.nextID
	}
	stored := *s
	f.services[s.ID] = &stored
	return nil
}

func (f *fakeRepo) SavePackage(ctx context.Context, p *models.Package, services []models.Service) error {
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	}
	p.Services = services
	stored := *p
	f.packages[p.ID] = &stored
	return nil
}

func (f *fakeRepo) DeletePackage(ctx context.Context, id uint) error {
	if _, ok := f.packages[id]; !ok {
		return httperr.ErrNotFound("package_not_found")
	}
	delete(f.packages, id)
	return nil
}

func (f *fakeRepo) ClearCatalog(ctx context.Context) error {
	f.cleared = true
	f.services = map[uint]*models.Service{}
	f.packages = map[uint]*models.Package{}
	return nil
}

type stringSource map[string]string

func (s stringSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	body, ok := s[location]
	if !ok {
		return nil, httperr.ErrNotFound("file_not_found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}
