package ports

import (
	"context"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// OrderDocumentRenderer genera documentos imprimibles a partir de un pedido ya
// normalizado. Es una proyección de solo lectura: no modifica el pedido.
type OrderDocumentRenderer interface {
	ShippingLabel(ctx context.Context, order entity.Order) ([]byte, error)
	OrderSummary(ctx context.Context, order entity.Order) ([]byte, error)
}
