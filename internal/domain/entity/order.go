package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/subastas-admin/internal/domain"
)

// OrderStatus estado de un pedido. Enum cerrado de cinco valores.
type OrderStatus string

// Estados válidos del pedido.
const (
	OrderPending   OrderStatus = "pending"
	OrderReady     OrderStatus = "ready"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions tabla de transiciones: estados siguientes válidos por estado actual.
// delivered y cancelled son terminales.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderReady, OrderCancelled},
	OrderReady:     {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered, OrderCancelled},
	OrderDelivered: nil,
	OrderCancelled: nil,
}

// ParseOrderStatus convierte un texto al enum. ok=false si no es uno de los cinco.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderTransitions[st]
	return st, ok
}

// Valid indica si el estado pertenece al enum.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal indica si ya no admite transiciones.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// Next devuelve los estados alcanzables desde s.
func (s OrderStatus) Next() []OrderStatus {
	return append([]OrderStatus(nil), orderTransitions[s]...)
}

// CanTransitionTo indica si la tabla permite pasar de s a next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// CheckTransition devuelve domain.ErrInvalidTransition si el paso no está en la tabla.
func CheckTransition(from, to OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// Label etiqueta en español para mostrar en el panel y en las etiquetas PDF.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pendiente"
	case OrderReady:
		return "Listo para envío"
	case OrderShipped:
		return "Enviado"
	case OrderDelivered:
		return "Entregado"
	case OrderCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Customer datos del cliente capturados al momento de la compra (no es referencia viva al usuario).
type Customer struct {
	Name    string
	Phone   string
	Address string
	Note    string
}

// OrderItem línea de un pedido.
type OrderItem struct {
	Refid     string
	Title     string
	Brand     string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// Totals agregados del pedido; nunca quedan indefinidos tras normalizar.
type Totals struct {
	ItemsCount int
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
}

// Order pedido normalizado.
type Order struct {
	ID          string
	OrderID     int64 // identificador numérico opcional
	OrderNumber string
	Status      OrderStatus
	Customer    Customer
	Items       []OrderItem
	Totals      Totals
	CreatedAt   time.Time
}

// Key identidad usada por el estado local.
func (o Order) Key() string { return o.ID }

// Clone devuelve una copia con su propio slice de líneas.
func (o Order) Clone() Order {
	if o.Items != nil {
		o.Items = append([]OrderItem(nil), o.Items...)
	}
	return o
}

// ComputeTotals deriva los totales desde las líneas: subtotal = Σ unitPrice·quantity,
// total = subtotal, itemsCount = Σ quantity.
func ComputeTotals(items []OrderItem) Totals {
	t := Totals{Subtotal: decimal.Zero}
	for _, it := range items {
		t.ItemsCount += it.Quantity
		t.Subtotal = t.Subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	t.Total = t.Subtotal
	return t
}
