package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *CatalogGormRepository) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) ListActivePackages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	if err := conn(ctx, r.db).
		Preload("Services").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) ListPackages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	if err := conn(ctx, r.db).
		Preload("Services").
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	var p models.Package
	if err := conn(ctx, r.db).Preload("Services").First(&p, id).Error; err != nil {
		return nil, notFound(err, "package_not_found")
	}
	return &p, nil
}

func (r *CatalogGormRepository) FindServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Service
	if err := conn(ctx, r.db).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) FindServiceByName(ctx context.Context, name string) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

func (r *CatalogGormRepository) FindPackageByName(ctx context.Context, name string) (*models.Package, error) {
	var p models.Package
	if err := conn(ctx, r.db).
		Preload("Services").
		Where("name = ?", name).
		First(&p).Error; err != nil {
		return nil, notFound(err, "package_not_found")
	}
	return &p, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *CatalogGormRepository) SaveService(ctx context.Context, s *models.Service) error {
	return conn(ctx, r.db).Save(s).Error
}

func (r *CatalogGormRepository) SavePackage(ctx context.Context, p *models.Package, services []models.Service) error {
	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Save(p).Error; err != nil {
		return err
	}
	if err := db.Model(p).Association("Services").Replace(services); err != nil {
		return err
	}
	p.Services = services
	return nil
}

func (r *CatalogGormRepository) DeletePackage(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)

	p, err := r.GetPackage(ctx, id)
	if err != nil {
		return err
	}
	return db.Select("Services").Delete(p).Error
}

// ClearCatalog removes packages, their links and services. Rows that
// reference a service cascade with it.
func (r *CatalogGormRepository) ClearCatalog(ctx context.Context) error {
	db := conn(ctx, r.db)
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})

	if err := db.Exec("DELETE FROM package_services").Error; err != nil {
		return err
	}
	if err := all.Delete(&models.Package{}).Error; err != nil {
		return err
	}
	return all.Delete(&models.Service{}).Error
}

// Compile-time check
var _ domain.Repository = (*CatalogGormRepository)(nil)
