package tracking

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// Repository persists session counters. The Lock* methods take a row lock
// and must run inside a transaction.
type Repository interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetPackage(ctx context.Context, id uint) (*models.Package, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Client packages --------
	FindClientPackage(ctx context.Context, clientID, packageID uint) (*models.ClientPackage, error)
	CreateClientPackage(ctx context.Context, cp *models.ClientPackage) error
	LockClientPackage(ctx context.Context, id uint) (*models.ClientPackage, error)
	UpdateClientPackage(ctx context.Context, cp *models.ClientPackage) error
	DeleteClientPackage(ctx context.Context, id uint) error
	ListClientPackages(ctx context.Context, clientID uint) ([]models.ClientPackage, error)

	// LockOpenPackageForService returns the most recently assigned
	// incomplete package of the client that includes the service, or a
	// NotFoundError.
	LockOpenPackageForService(ctx context.Context, clientID, serviceID uint) (*models.ClientPackage, error)

	// -------- Service sessions --------
	FindServiceSession(ctx context.Context, clientID, serviceID uint) (*models.ClientServiceSession, error)
	CreateServiceSession(ctx context.Context, s *models.ClientServiceSession) error
	LockServiceSession(ctx context.Context, id uint) (*models.ClientServiceSession, error)
	LockServiceSessionFor(ctx context.Context, clientID, serviceID uint) (*models.ClientServiceSession, error)
	UpdateServiceSession(ctx context.Context, s *models.ClientServiceSession) error
	DeleteServiceSession(ctx context.Context, id uint) error
	ListServiceSessions(ctx context.Context, clientID uint) ([]models.ClientServiceSession, error)
}
