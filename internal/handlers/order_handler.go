package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	ucPOS "github.com/BruksfildServices01/skin-clinic/internal/usecase/pos"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderHandler struct {
	create  *ucPOS.CreateOrder
	payment *ucPOS.UpdatePayment
	list    *ucPOS.ListOrders
	items   *ucPOS.OrderItems
	export  *ucPOS.ExportSales
	loc     *time.Location
}

func NewOrderHandler(
	create *ucPOS.CreateOrder,
	payment *ucPOS.UpdatePayment,
	list *ucPOS.ListOrders,
	items *ucPOS.OrderItems,
	export *ucPOS.ExportSales,
	loc *time.Location,
) *OrderHandler {
	return &OrderHandler{
		create:  create,
		payment: payment,
		list:    list,
		items:   items,
		export:  export,
		loc:     loc,
	}
}

// --------- Requests ---------

type OrderItemRequest struct {
	ProductID     *uint    `json:"product_id"`
	ServiceID     *uint    `json:"service_id"`
	AppointmentID *uint    `json:"appointment_id"`
	Quantity      int      `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice     *float64 `json:"unit_price" binding:"omitempty,min=0"`
}

func (r OrderItemRequest) input() ucPOS.ItemInput {
	return ucPOS.ItemInput{
		ProductID:     r.ProductID,
		ServiceID:     r.ServiceID,
		AppointmentID: r.AppointmentID,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
	}
}

type CreateOrderRequest struct {
	ClientID      *uint              `json:"client_id"`
	PaymentMethod string             `json:"payment_method" binding:"omitempty,oneof=cash card credit other"`
	PaymentStatus string             `json:"payment_status" binding:"omitempty,oneof=pending paid refunded"`
	Notes         string             `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

type UpdatePaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash card credit other"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,oneof=pending paid refunded"`
}

type UpdateItemRequest struct {
	Quantity  *int     `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,min=0"`
}

// --------- Orders ---------

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucPOS.CreateOrderInput{
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, it.input())
	}

	o, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), in)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_order")
		return
	}
	httpresp.Created(c, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	from, to, ok := dayRange(c, h.loc)
	if !ok {
		return
	}

	orders, err := h.list.Execute(c.Request.Context(), middleware.Actor(c), from, to)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_orders")
		return
	}
	httpresp.List(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.list.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_order")
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.payment.Execute(c.Request.Context(), middleware.Actor(c), id, req.PaymentMethod, req.PaymentStatus)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_payment")
		return
	}
	httpresp.OK(c, o)
}

// Export streams the sales report for the range as an xlsx workbook.
func (h *OrderHandler) Export(c *gin.Context) {
	from, to, ok := dayRange(c, h.loc)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.export.Execute(c.Request.Context(), middleware.Actor(c), from, to, &buf); err != nil {
		httperr.Respond(c, err, "failed_to_export_sales")
		return
	}

	name := fmt.Sprintf("sales-%s.xlsx", time.Now().In(h.loc).Format("20060102-1504"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// --------- Items ---------

func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req OrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.items.Add(c.Request.Context(), middleware.Actor(c), id, req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_add_item")
		return
	}
	httpresp.Created(c, o)
}

func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.items.Update(c.Request.Context(), middleware.Actor(c), id, itemID, ucPOS.ItemPatch{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_item")
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	o, err := h.items.Remove(c.Request.Context(), middleware.Actor(c), id, itemID)
	if err != nil {
		httperr.Respond(c, err, "failed_to_remove_item")
		return
	}
	httpresp.OK(c, o)
}
