package wire

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// RawOrderEvent carga del evento "orden actualizada": {orderId, status, order}.
type RawOrderEvent struct {
	OrderID ID              `json:"orderId"`
	ID      ID              `json:"id"`
	MongoID ID              `json:"_id"`
	Status  Text            `json:"status"`
	Estado  Text            `json:"estado"`
	Order   json.RawMessage `json:"order"`
}

// OrderEvent evento ya decodificado. Status conserva el valor recibido aunque
// no pertenezca al enum; quien lo aplica decide si lo descarta.
type OrderEvent struct {
	OrderID string
	Status  entity.OrderStatus
	Order   *entity.Order
}

// DecodeOrderEvent decodifica la carga de un evento. Si falta el id o el estado
// se toman de la orden embebida.
func DecodeOrderEvent(data []byte) OrderEvent {
	raw := decodeObject[RawOrderEvent](data)
	ev := OrderEvent{
		OrderID: string(first(raw.OrderID, raw.ID, raw.MongoID)),
		Status:  entity.OrderStatus(strings.ToLower(strings.TrimSpace(string(first(raw.Status, raw.Estado))))),
	}
	if o := bytes.TrimSpace(raw.Order); len(o) > 0 && o[0] == '{' {
		var ro RawOrder
		if json.Unmarshal(o, &ro) == nil {
			order := NormalizeOrder(ro)
			ev.Order = &order
			if ev.OrderID == "" {
				ev.OrderID = order.ID
			}
			if ev.Status == "" {
				if st, ok := entity.ParseOrderStatus(string(first(ro.Status, ro.Estado))); ok {
					ev.Status = st
				}
			}
		}
	}
	return ev
}
