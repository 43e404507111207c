package ports

import (
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// OrderStatusEvent evento "orden actualizada" recibido por el canal push.
type OrderStatusEvent struct {
	OrderID string
	Status  entity.OrderStatus
	Order   *entity.Order // orden completa si vino en el evento; puede ser nil
}

// OrderEventSource canal de eventos de órdenes. Subscribe devuelve la función
// que cancela la suscripción.
type OrderEventSource interface {
	Subscribe(fn func(OrderStatusEvent)) (unsubscribe func())
}
