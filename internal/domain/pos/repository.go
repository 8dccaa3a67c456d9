package pos

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type Repository interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// -------- Orders --------
	CreateOrder(ctx context.Context, o *models.Order) error
	// GetOrder preloads Client and Items with their product or service.
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	LockOrder(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
	// ListOrders covers created_at in [from, to); zero bounds are open.
	ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error)

	// -------- Items --------
	CreateItem(ctx context.Context, it *models.OrderItem) error
	GetItem(ctx context.Context, orderID, itemID uint) (*models.OrderItem, error)
	UpdateItem(ctx context.Context, it *models.OrderItem) error
	DeleteItem(ctx context.Context, orderID, itemID uint) error
	ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
}
