package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

const dateLayout = "2006-01-02"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Client / Service / Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

func (r *AppointmentGormRepository) LockStaff(ctx context.Context, id uint) (*models.StaffMember, error) {
	var s models.StaffMember
	if err := conn(ctx, r.db).
		Clauses(forUpdate).
		First(&s, id).Error; err != nil {
		return nil, notFound(err, "staff_not_found")
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetStaff(ctx context.Context, id uint) (*models.StaffMember, error) {
	var s models.StaffMember
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, notFound(err, "staff_not_found")
	}
	return &s, nil
}

// --------------------------------------------------
// Tracking links
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error) {
	var cp models.ClientPackage
	if err := conn(ctx, r.db).
		Preload("Package.Services").
		First(&cp, id).Error; err != nil {
		return nil, notFound(err, "client_package_not_found")
	}
	return &cp, nil
}

func (r *AppointmentGormRepository) GetServiceSession(ctx context.Context, id uint) (*models.ClientServiceSession, error) {
	var ss models.ClientServiceSession
	if err := conn(ctx, r.db).
		Preload("Service").
		First(&ss, id).Error; err != nil {
		return nil, notFound(err, "service_session_not_found")
	}
	return &ss, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := conn(ctx, r.db).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) LockAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := conn(ctx, r.db).
		Clauses(forUpdate).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Overlap / Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForStaffDay(
	ctx context.Context,
	staffID uint,
	day time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := conn(ctx, r.db).
		Preload("Service").
		Where(
			"staff_id = ? AND appointment_date = ? AND status IN ?",
			staffID,
			day.Format(dateLayout),
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAvailability(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.StaffAvailability, error) {

	var av models.StaffAvailability
	if err := conn(ctx, r.db).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&av).Error; err != nil {
		return nil, notFound(err, "availability_not_found")
	}
	return &av, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := conn(ctx, r.db).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("appointment_date >= ? AND appointment_date < ?", start.Format(dateLayout), end.Format(dateLayout))
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC, appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
