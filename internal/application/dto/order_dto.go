package dto

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
	PageRequest
}

// Values parámetros de query para el backend.
func (f OrderFilter) Values() url.Values {
	v := url.Values{}
	setString(v, "status", f.Status)
	setString(v, "search", strings.TrimSpace(f.Search))
	f.PageRequest.apply(v)
	return v
}

// ChangeStatusRequest entrada para cambiar el estado de un pedido.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending ready shipped delivered cancelled"`
}

// StatusPayload cuerpo que viaja al backend.
type StatusPayload struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	Refid     string          `json:"refid"`
	Title     string          `json:"title"`
	Brand     string          `json:"brand"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string              `json:"id"`
	OrderID     int64               `json:"orderId,omitempty"`
	OrderNumber string              `json:"orderNumber"`
	Status      string              `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	Next        []string            `json:"next"`
	Customer    CustomerResponse    `json:"customer"`
	Items       []OrderItemResponse `json:"items"`
	Totals      TotalsResponse      `json:"totals"`
	CreatedAt   *time.Time          `json:"createdAt,omitempty"`
}

// CustomerResponse datos del cliente.
type CustomerResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
}

// TotalsResponse totales del pedido.
type TotalsResponse struct {
	ItemsCount int             `json:"itemsCount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
}

// OrderListResponse lista de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToOrderResponse mapea la entidad a la salida HTTP. Next lista los estados a
// los que se puede pasar desde el actual.
func ToOrderResponse(o entity.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			Refid:     it.Refid,
			Title:     it.Title,
			Brand:     it.Brand,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		}
	}
	next := make([]string, 0, 2)
	for _, s := range o.Status.Next() {
		next = append(next, string(s))
	}
	return OrderResponse{
		ID:          o.ID,
		OrderID:     o.OrderID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		Next:        next,
		Customer: CustomerResponse{
			Name:    o.Customer.Name,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
			Note:    o.Customer.Note,
		},
		Items: items,
		Totals: TotalsResponse{
			ItemsCount: o.Totals.ItemsCount,
			Subtotal:   o.Totals.Subtotal,
			Total:      o.Totals.Total,
		},
		CreatedAt: optTime(o.CreatedAt),
	}
}
