package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeRepo struct {
	clients      map[uint]*models.Client
	services     map[uint]*models.Service
	staff        map[uint]*models.StaffMember
	appointments map[uint]*models.Appointment
	availability map[uint]map[int]*models.StaffAvailability
	packages     map[uint]*models.ClientPackage
	sessions     map[uint]*models.ClientServiceSession
	nextID       uint
	locked       []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:      map[uint]*models.Client{1: {ID: 1, FirstName: "Ana", LastName: "Silva"}},
		services:     map[uint]*models.Service{},
		staff:        map[uint]*models.StaffMember{1: {ID: 1, FirstName: "Dr", LastName: "Lee", IsActive: true}},
		appointments: map[uint]*models.Appointment{},
		availability: map[uint]map[int]*models.StaffAvailability{},
		packages:     map[uint]*models.ClientPackage{},
		sessions:     map[uint]*models.ClientServiceSession{},
		nextID:       100,
	}
}

func (f *fakeRepo) addService(id uint, name string, duration int) *models.Service {
	s := &models.Service{ID: id, Name: name, Duration: duration, SessionsRequired: 1, IsActive: true}
	f.services[id] = s
	return s
}

func (f *fakeRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, httperr.ErrNotFound("client_not_found")
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrNotFound("service_not_found")
}

func (f *fakeRepo) GetStaff(ctx context.Context, id uint) (*models.StaffMember, error) {
	if s, ok := f.staff[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrNotFound("staff_not_found")
}

func (f *fakeRepo) LockStaff(ctx context.Context, id uint) (*models.StaffMember, error) {
	f.locked = append(f.locked, id)
	return f.GetStaff(ctx, id)
}

func (f *fakeRepo) GetClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error) {
	if cp, ok := f.packages[id]; ok {
		return cp, nil
	}
	return nil, httperr.ErrNotFound("client_package_not_found")
}

func (f *fakeRepo) GetServiceSession(ctx context.Context, id uint) (*models.ClientServiceSession, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrNotFound("service_session_not_found")
}

func (f *fakeRepo) withService(ap models.Appointment) models.Appointment {
	if s, ok := f.services[ap.ServiceID]; ok {
		ap.Service = *s
	}
	return ap
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	cp := f.withService(*ap)
	return &cp, nil
}

func (f *fakeRepo) LockAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return f.GetAppointment(ctx, id)
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) ListActiveForStaffDay(ctx context.Context, staffID uint, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StaffID != staffID || !ap.AppointmentDate.Equal(day) {
			continue
		}
		if ap.Status != "pending" && ap.Status != "confirmed" {
			continue
		}
		out = append(out, f.withService(*ap))
	}
	return out, nil
}

func (f *fakeRepo) GetAvailability(ctx context.Context, staffID uint, weekday int) (*models.StaffAvailability, error) {
	if w, ok := f.availability[staffID][weekday]; ok {
		return w, nil
	}
	return nil, httperr.ErrNotFound("availability_not_found")
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if staffID != 0 && ap.StaffID != staffID {
			continue
		}
		if ap.AppointmentDate.Before(start) || !ap.AppointmentDate.Before(end) {
			continue
		}
		out = append(out, f.withService(*ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeTracker struct {
	events []tracking.AppointmentCompleted
	result tracking.Result
	err    error
}

func (f *fakeTracker) HandleAppointmentCompleted(ctx context.Context, ev tracking.AppointmentCompleted) (tracking.Result, error) {
	f.events = append(f.events, ev)
	return f.result, f.err
}
