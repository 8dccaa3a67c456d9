package pos

import (
	"testing"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestValidateItem(t *testing.T) {
	appt := &models.Appointment{ServiceID: 7}

	cases := []struct {
		name string
		item models.OrderItem
		appt *models.Appointment
		code string
	}{
		{"product ok", models.OrderItem{ProductID: uintPtr(1), Quantity: 2, UnitPrice: 10}, nil, ""},
		{"service ok", models.OrderItem{ServiceID: uintPtr(7), Quantity: 1, UnitPrice: 50}, nil, ""},
		{"neither", models.OrderItem{Quantity: 1}, nil, "invalid_item"},
		{"both", models.OrderItem{ProductID: uintPtr(1), ServiceID: uintPtr(7), Quantity: 1}, nil, "invalid_item"},
		{"zero qty", models.OrderItem{ProductID: uintPtr(1)}, nil, "invalid_quantity"},
		{"appointment match", models.OrderItem{ServiceID: uintPtr(7), AppointmentID: uintPtr(3), Quantity: 1}, appt, ""},
		{"appointment mismatch", models.OrderItem{ServiceID: uintPtr(8), AppointmentID: uintPtr(3), Quantity: 1}, appt, "appointment_service_mismatch"},
		{"product with appointment", models.OrderItem{ProductID: uintPtr(1), AppointmentID: uintPtr(3), Quantity: 1}, appt, "invalid_item"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateItem(&tc.item, tc.appt)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	items := []models.OrderItem{
		{Subtotal: Subtotal(2, 10)},
		{Subtotal: Subtotal(1, 50)},
	}
	if got := Total(items); got != 70 {
		t.Fatalf("expected 70, got %v", got)
	}

	items = items[1:]
	if got := Total(items); got != 50 {
		t.Fatalf("expected 50 after removal, got %v", got)
	}
	if Total(nil) != 0 {
		t.Fatalf("empty order totals 0")
	}
}

func TestNormalizePayment(t *testing.T) {
	m, s, err := NormalizePayment("", "")
	if err != nil || m != "cash" || s != "paid" {
		t.Fatalf("expected defaults cash/paid, got %s/%s %v", m, s, err)
	}
	if _, _, err := NormalizePayment("bitcoin", ""); !httperr.IsBusiness(err, "invalid_payment_method") {
		t.Fatalf("expected invalid_payment_method, got %v", err)
	}
	if _, _, err := NormalizePayment("card", "void"); !httperr.IsBusiness(err, "invalid_payment_status") {
		t.Fatalf("expected invalid_payment_status, got %v", err)
	}
}
