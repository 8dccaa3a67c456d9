package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type Repository interface {
	// -------- Catalog / clients --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// LockStaff loads the staff member with a row lock so concurrent
	// bookings for the same person are serialized.
	LockStaff(ctx context.Context, id uint) (*models.StaffMember, error)
	GetStaff(ctx context.Context, id uint) (*models.StaffMember, error)

	// Both preload what ValidateLinks needs.
	GetClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error)
	GetServiceSession(ctx context.Context, id uint) (*models.ClientServiceSession, error)

	// -------- Appointment (create / state change) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	LockAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Overlap / availability --------
	// ListActiveForStaffDay returns pending and confirmed appointments with
	// Service loaded.
	ListActiveForStaffDay(ctx context.Context, staffID uint, day time.Time) ([]models.Appointment, error)

	GetAvailability(ctx context.Context, staffID uint, weekday int) (*models.StaffAvailability, error)

	// ListAppointmentsForPeriod covers [start, end). staffID 0 means every
	// staff member.
	ListAppointmentsForPeriod(ctx context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error)
}
