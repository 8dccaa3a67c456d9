package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/skin-clinic/internal/domain/pos"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type POSGormRepository struct {
	db *gorm.DB
}

func NewPOSGormRepository(db *gorm.DB) *POSGormRepository {
	return &POSGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *POSGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := conn(ctx, r.db).First(&c, id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &c, nil
}

func (r *POSGormRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, notFound(err, "product_not_found")
	}
	return &p, nil
}

func (r *POSGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

func (r *POSGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := conn(ctx, r.db).First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (r *POSGormRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(o).Error
}

func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Preload("Items.Service")
}

func (r *POSGormRepository) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := withOrderDetails(conn(ctx, r.db)).First(&o, id).Error; err != nil {
		return nil, notFound(err, "order_not_found")
	}
	return &o, nil
}

func (r *POSGormRepository) LockOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := conn(ctx, r.db).Clauses(forUpdate).First(&o, id).Error; err != nil {
		return nil, notFound(err, "order_not_found")
	}
	return &o, nil
}

func (r *POSGormRepository) UpdateOrder(ctx context.Context, o *models.Order) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(o).Error
}

func (r *POSGormRepository) ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	q := withOrderDetails(conn(ctx, r.db))
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}

	var out []models.Order
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (r *POSGormRepository) CreateItem(ctx context.Context, it *models.OrderItem) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(it).Error
}

func (r *POSGormRepository) GetItem(ctx context.Context, orderID, itemID uint) (*models.OrderItem, error) {
	var it models.OrderItem
	if err := conn(ctx, r.db).
		Preload("Product").
		Preload("Service").
		Where("order_id = ?", orderID).
		First(&it, itemID).Error; err != nil {
		return nil, notFound(err, "order_item_not_found")
	}
	return &it, nil
}

func (r *POSGormRepository) UpdateItem(ctx context.Context, it *models.OrderItem) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(it).Error
}

func (r *POSGormRepository) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	res := conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}, itemID)
	return deleted(res, "order_item_not_found")
}

func (r *POSGormRepository) ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var out []models.OrderItem
	if err := conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*POSGormRepository)(nil)
