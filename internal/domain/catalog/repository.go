package catalog

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type Repository interface {
	ListActiveServices(ctx context.Context) ([]models.Service, error)
	// Package reads preload Services.
	ListActivePackages(ctx context.Context) ([]models.Package, error)
	ListPackages(ctx context.Context) ([]models.Package, error)
	GetPackage(ctx context.Context, id uint) (*models.Package, error)

	FindServices(ctx context.Context, ids []uint) ([]models.Service, error)
	FindServiceByName(ctx context.Context, name string) (*models.Service, error)
	FindPackageByName(ctx context.Context, name string) (*models.Package, error)

	SaveService(ctx context.Context, s *models.Service) error
	// SavePackage creates or updates p and replaces its service links.
	SavePackage(ctx context.Context, p *models.Package, services []models.Service) error
	DeletePackage(ctx context.Context, id uint) error

	// ClearCatalog removes every package and service.
	ClearCatalog(ctx context.Context) error
}
