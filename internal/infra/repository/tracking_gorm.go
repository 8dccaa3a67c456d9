package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type TrackingGormRepository struct {
	db *gorm.DB
}

func NewTrackingGormRepository(db *gorm.DB) *TrackingGormRepository {
	return &TrackingGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *TrackingGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

func (r *TrackingGormRepository) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	var p models.Package
	if err := conn(ctx, r.db).Preload("Services").First(&p, id).Error; err != nil {
		return nil, notFound(err, "package_not_found")
	}
	return &p, nil
}

func (r *TrackingGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

// --------------------------------------------------
// Client packages
// --------------------------------------------------

func (r *TrackingGormRepository) FindClientPackage(ctx context.Context, clientID, packageID uint) (*models.ClientPackage, error) {
	var cp models.ClientPackage
	if err := conn(ctx, r.db).
		Preload("Package").
		Where("client_id = ? AND package_id = ?", clientID, packageID).
		First(&cp).Error; err != nil {
		return nil, notFound(err, "client_package_not_found")
	}
	return &cp, nil
}

// CreateClientPackage leaves cp.ID at 0 when the client already holds the
// package.
func (r *TrackingGormRepository) CreateClientPackage(ctx context.Context, cp *models.ClientPackage) error {
	return conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cp).Error
}

func (r *TrackingGormRepository) LockClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error) {
	var cp models.ClientPackage
	if err := conn(ctx, r.db).
		Clauses(forUpdate).
		Preload("Package").
		First(&cp, id).Error; err != nil {
		return nil, notFound(err, "client_package_not_found")
	}
	return &cp, nil
}

func (r *TrackingGormRepository) UpdateClientPackage(ctx context.Context, cp *models.ClientPackage) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(cp).Error
}

func (r *TrackingGormRepository) DeleteClientPackage(ctx context.Context, id uint) error {
	return deleted(conn(ctx, r.db).Delete(&models.ClientPackage{}, id), "client_package_not_found")
}

func (r *TrackingGormRepository) ListClientPackages(ctx context.Context, clientID uint) ([]models.ClientPackage, error) {
	var out []models.ClientPackage
	if err := conn(ctx, r.db).
		Preload("Package.Services").
		Where("client_id = ?", clientID).
		Order("assigned_date DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TrackingGormRepository) LockOpenPackageForService(ctx context.Context, clientID, serviceID uint) (*models.ClientPackage, error) {
	var cp models.ClientPackage
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "client_packages"}}).
		Preload("Package").
		Joins("JOIN package_services ps ON ps.package_id = client_packages.package_id").
		Where("client_packages.client_id = ? AND ps.service_id = ? AND client_packages.is_completed = ?", clientID, serviceID, false).
		Order("client_packages.assigned_date DESC, client_packages.id DESC").
		Take(&cp).Error; err != nil {
		return nil, notFound(err, "client_package_not_found")
	}
	return &cp, nil
}

// --------------------------------------------------
// Service sessions
// --------------------------------------------------

func (r *TrackingGormRepository) FindServiceSession(ctx context.Context, clientID, serviceID uint) (*models.ClientServiceSession, error) {
	var ss models.ClientServiceSession
	if err := conn(ctx, r.db).
		Preload("Service").
		Where("client_id = ? AND service_id = ?", clientID, serviceID).
		First(&ss).Error; err != nil {
		return nil, notFound(err, "service_session_not_found")
	}
	return &ss, nil
}

// CreateServiceSession leaves s.ID at 0 when the client already tracks the
// service.
func (r *TrackingGormRepository) CreateServiceSession(ctx context.Context, s *models.ClientServiceSession) error {
	return conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(s).Error
}

func (r *TrackingGormRepository) LockServiceSession(ctx context.Context, id uint) (*models.ClientServiceSession, error) {
	var ss models.ClientServiceSession
	if err := conn(ctx, r.db).
		Clauses(forUpdate).
		Preload("Service").
		First(&ss, id).Error; err != nil {
		return nil, notFound(err, "service_session_not_found")
	}
	return &ss, nil
}

func (r *TrackingGormRepository) LockServiceSessionFor(ctx context.Context, clientID, serviceID uint) (*models.ClientServiceSession, error) {
	var ss models.ClientServiceSession
	if err := conn(ctx, r.db).
		Clauses(forUpdate).
		Preload("Service").
		Where("client_id = ? AND service_id = ?", clientID, serviceID).
		First(&ss).Error; err != nil {
		return nil, notFound(err, "service_session_not_found")
	}
	return &ss, nil
}

func (r *TrackingGormRepository) UpdateServiceSession(ctx context.Context, s *models.ClientServiceSession) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(s).Error
}

func (r *TrackingGormRepository) DeleteServiceSession(ctx context.Context, id uint) error {
	return deleted(conn(ctx, r.db).Delete(&models.ClientServiceSession{}, id), "service_session_not_found")
}

func (r *TrackingGormRepository) ListServiceSessions(ctx context.Context, clientID uint) ([]models.ClientServiceSession, error) {
	var out []models.ClientServiceSession
	if err := conn(ctx, r.db).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("started_date DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*TrackingGormRepository)(nil)
