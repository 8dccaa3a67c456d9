package pos

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	posdomain "github.com/BruksfildServices01/skin-clinic/internal/domain/pos"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateOrderInput struct {
	ClientID      *uint
	PaymentMethod string
	PaymentStatus string
	Notes         string
	Items         []ItemInput
}

type CreateOrder struct {
	repo  posdomain.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
}

func NewCreateOrder(repo posdomain.Repository, tx domain.Transactor, audit *audit.Dispatcher) *CreateOrder {
	return &CreateOrder{repo: repo, tx: tx, audit: audit}
}

// Execute stores the order and its initial lines in one transaction.
func (uc *CreateOrder) Execute(ctx context.Context, actor authz.Actor, in CreateOrderInput) (*models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}

	method, status, err := posdomain.NormalizePayment(in.PaymentMethod, in.PaymentStatus)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		ClientID:      in.ClientID,
		PaymentMethod: method,
		PaymentStatus: status,
		Notes:         in.Notes,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if in.ClientID != nil {
			if _, err := uc.repo.GetClient(ctx, *in.ClientID); err != nil {
				return err
			}
		}
		if err := uc.repo.CreateOrder(ctx, o); err != nil {
			return err
		}
		for _, line := range in.Items {
			item, err := buildItem(ctx, uc.repo, line)
			if err != nil {
				return err
			}
			item.OrderID = o.ID
			if err := uc.repo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return recompute(ctx, uc.repo, o)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: o.ID,
		Metadata: map[string]any{"total_price": o.TotalPrice, "items": len(in.Items)},
	})

	return uc.repo.GetOrder(ctx, o.ID)
}

// ======================================================
// PAYMENT
// ======================================================

type UpdatePayment struct {
	repo  posdomain.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
}

func NewUpdatePayment(repo posdomain.Repository, tx domain.Transactor, audit *audit.Dispatcher) *UpdatePayment {
	return &UpdatePayment{repo: repo, tx: tx, audit: audit}
}

func (uc *UpdatePayment) Execute(ctx context.Context, actor authz.Actor, orderID uint, method, status string) (*models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}
	if method == "" && status == "" {
		return nil, httperr.ErrBusinessMsg("nothing_to_change", "Provide a payment method or status.")
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.repo.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if method == "" {
			method = o.PaymentMethod
		}
		if status == "" {
			status = o.PaymentStatus
		}
		m, s, err := posdomain.NormalizePayment(method, status)
		if err != nil {
			return err
		}
		o.PaymentMethod, o.PaymentStatus = m, s
		return uc.repo.UpdateOrder(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "order_payment_updated",
		Entity:   "order",
		EntityID: orderID,
		Metadata: map[string]any{"payment_method": method, "payment_status": status},
	})

	return uc.repo.GetOrder(ctx, orderID)
}

// ======================================================
// READ
// ======================================================

type ListOrders struct {
	repo posdomain.Repository
}

func NewListOrders(repo posdomain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(ctx context.Context, actor authz.Actor, from, to time.Time) ([]models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, httperr.ErrBusinessMsg("invalid_range", "from must be before to.")
	}
	return uc.repo.ListOrders(ctx, from, to)
}

func (uc *ListOrders) Get(ctx context.Context, actor authz.Actor, id uint) (*models.Order, error) {
	if err := authz.Require(actor, authz.PermPOS); err != nil {
		return nil, err
	}
	return uc.repo.GetOrder(ctx, id)
}
