package pos

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	clients      map[uint]*models.Client
	products     map[uint]*models.Product
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	orders       map[uint]*models.Order
	items        map[uint]*models.OrderItem
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:      map[uint]*models.Client{1: {ID: 1, FirstName: "Ana", LastName: "Silva"}},
		products:     map[uint]*models.Product{3: {ID: 3, Name: "Serum", Price: 10, IsActive: true}},
		services:     map[uint]*models.Service{7: {ID: 7, Name: "Facial", Price: 50, Duration: 60, IsActive: true}},
		appointments: map[uint]*models.Appointment{20: {ID: 20, ServiceID: 7}},
		orders:       map[uint]*models.Order{},
		items:        map[uint]*models.OrderItem{},
		nextID:       100,
	}
}

func (f *fakeRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, httperr.ErrNotFound("client_not_found")
}

func (f *fakeRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, httperr.ErrNotFound("product_not_found")
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, httperr.ErrNotFound("service_not_found")
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		return a, nil
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (f *fakeRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	f.nextID++
	o.ID = f.nextID
	o.CreatedAt = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stored := *o
	f.orders[o.ID] = &stored
	return nil
}

func (f *fakeRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, httperr.ErrNotFound("order_not_found")
	}
	out := *o
	out.Items, _ = f.ListItems(ctx, id)
	return &out, nil
}

func (f *fakeRepo) LockOrder(ctx context.Context, id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, httperr.ErrNotFound("order_not_found")
	}
	out := *o
	return &out, nil
}

func (f *fakeRepo) UpdateOrder(ctx context.Context, o *models.Order) error {
	stored := *o
	stored.Items = nil
	f.orders[o.ID] = &stored
	return nil
}

func (f *fakeRepo) ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var out []models.Order
	for id := range f.orders {
		o, _ := f.GetOrder(ctx, id)
		if !from.IsZero() && o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !o.CreatedAt.Before(to) {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) CreateItem(ctx context.Context, it *models.OrderItem) error {
	f.nextID++
	it.ID = f.nextID
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeRepo) GetItem(ctx context.Context, orderID, itemID uint) (*models.OrderItem, error) {
	it, ok := f.items[itemID]
	if !ok || it.OrderID != orderID {
		return nil, httperr.ErrNotFound("order_item_not_found")
	}
	out := *it
	return &out, nil
}

func (f *fakeRepo) UpdateItem(ctx context.Context, it *models.OrderItem) error {
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteItem(ctx context.Context, orderID, itemID uint) error {
	if _, err := f.GetItem(ctx, orderID, itemID); err != nil {
		return err
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeRepo) ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var out []models.OrderItem
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
