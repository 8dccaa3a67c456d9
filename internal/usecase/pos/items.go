package pos

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	posdomain "github.com/BruksfildServices01/skin-clinic/internal/domain/pos"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// ItemInput describes one order line. UnitPrice defaults to the current
// catalog price of the product or service.
type ItemInput struct {
	ProductID     *uint
	ServiceID     *uint
	AppointmentID *uint
	Quantity      int
	UnitPrice     *float64
}

// ItemPatch leaves nil fields unchanged.
type ItemPatch struct {
	Quantity  *int
	UnitPrice *float64
}

type OrderItems struct {
	repo  posdomain.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
}

func NewOrderItems(repo posdomain.Repository, tx domain.Transactor, audit *audit.Dispatcher) *OrderItems {
	return &OrderItems{repo: repo, tx: tx, audit: audit}
}

func (uc *OrderItems) Add(ctx context.Context, actor authz.Actor, orderID uint, in ItemInput) (*models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.repo.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		item, err := buildItem(ctx, uc.repo, in)
		if err != nil {
			return err
		}
		item.OrderID = o.ID
		if err := uc.repo.CreateItem(ctx, item); err != nil {
			return err
		}
		return recompute(ctx, uc.repo, o)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(actor, "order_item_added", orderID)
	return uc.repo.GetOrder(ctx, orderID)
}

func (uc *OrderItems) Update(ctx context.Context, actor authz.Actor, orderID, itemID uint, in ItemPatch) (*models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.repo.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		item, err := uc.repo.GetItem(ctx, orderID, itemID)
		if err != nil {
			return err
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}

		var appt *models.Appointment
		if item.AppointmentID != nil {
			if appt, err = uc.repo.GetAppointment(ctx, *item.AppointmentID); err != nil {
				return err
			}
		}
		if err := posdomain.ValidateItem(item, appt); err != nil {
			return err
		}
		item.Subtotal = posdomain.Subtotal(item.Quantity, item.UnitPrice)

		if err := uc.repo.UpdateItem(ctx, item); err != nil {
			return err
		}
		return recompute(ctx, uc.repo, o)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(actor, "order_item_updated", orderID)
	return uc.repo.GetOrder(ctx, orderID)
}

func (uc *OrderItems) Remove(ctx context.Context, actor authz.Actor, orderID, itemID uint) (*models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.repo.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := uc.repo.DeleteItem(ctx, orderID, itemID); err != nil {
			return err
		}
		return recompute(ctx, uc.repo, o)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(actor, "order_item_removed", orderID)
	return uc.repo.GetOrder(ctx, orderID)
}

func (uc *OrderItems) dispatch(actor authz.Actor, action string, orderID uint) {
	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   action,
		Entity:   "order",
		EntityID: orderID,
	})
}

// buildItem resolves the catalog entry, fills the default price and
// validates the line.
func buildItem(ctx context.Context, repo posdomain.Repository, in ItemInput) (*models.OrderItem, error) {
	item := &models.OrderItem{
		ProductID:     in.ProductID,
		ServiceID:     in.ServiceID,
		AppointmentID: in.AppointmentID,
		Quantity:      in.Quantity,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	var catalogPrice float64
	switch {
	case in.ProductID != nil && in.ServiceID != nil:
		// rejected by ValidateItem below
	case in.ProductID != nil:
		p, err := repo.GetProduct(ctx, *in.ProductID)
		if err != nil {
			return nil, err
		}
		catalogPrice = p.Price
	case in.ServiceID != nil:
		s, err := repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		catalogPrice = s.Price
	}

	item.UnitPrice = catalogPrice
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}

	var appt *models.Appointment
	if in.AppointmentID != nil {
		a, err := repo.GetAppointment(ctx, *in.AppointmentID)
		if err != nil {
			return nil, err
		}
		appt = a
	}

	if err := posdomain.ValidateItem(item, appt); err != nil {
		return nil, err
	}
	item.Subtotal = posdomain.Subtotal(item.Quantity, item.UnitPrice)
	return item, nil
}

// recompute re-sums every line of the order; o must be locked.
func recompute(ctx context.Context, repo posdomain.Repository, o *models.Order) error {
	items, err := repo.ListItems(ctx, o.ID)
	if err != nil {
		return err
	}
	o.TotalPrice = posdomain.Total(items)
	return repo.UpdateOrder(ctx, o)
}
