package pos

import (
	"github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

var paymentMethods = map[string]bool{
	"cash":   true,
	"card":   true,
	"credit": true,
	"other":  true,
}

var paymentStatuses = map[string]bool{
	"pending":  true,
	"paid":     true,
	"refunded": true,
}

// NormalizePayment fills defaults and rejects unknown values.
func NormalizePayment(method, status string) (string, string, error) {
	if method == "" {
		method = "cash"
	}
	if status == "" {
		status = "paid"
	}
	if !paymentMethods[method] {
		return "", "", httperr.ErrBusinessMsg("invalid_payment_method", "Payment method must be cash, card, credit or other")
	}
	if !paymentStatuses[status] {
		return "", "", httperr.ErrBusinessMsg("invalid_payment_status", "Payment status must be pending, paid or refunded")
	}
	return method, status, nil
}

// ValidateItem enforces the line shape: exactly one of product or service,
// a positive quantity, and a linked appointment for the same service.
func ValidateItem(item *models.OrderItem, appt *models.Appointment) error {
	hasProduct := item.ProductID != nil
	hasService := item.ServiceID != nil

	if hasProduct == hasService {
		return httperr.ErrBusinessMsg("invalid_item", "An order item must reference exactly one product or service")
	}
	if item.Quantity < 1 {
		return httperr.ErrBusinessMsg("invalid_quantity", "Quantity must be at least 1")
	}
	if item.UnitPrice < 0 {
		return httperr.ErrBusinessMsg("invalid_price", "Unit price cannot be negative")
	}

	if item.AppointmentID != nil {
		if !hasService {
			return httperr.ErrBusinessMsg("invalid_item", "Only service items can be linked to an appointment")
		}
		if appt == nil || appt.ServiceID != *item.ServiceID {
			return httperr.ErrBusinessMsg("appointment_service_mismatch", "Appointment service does not match the item service")
		}
	}
	return nil
}

func Subtotal(quantity int, unitPrice float64) float64 {
	return catalog.Round2(float64(quantity) * unitPrice)
}

// Total is the sum of the given line subtotals.
func Total(items []models.OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal
	}
	return catalog.Round2(sum)
}
