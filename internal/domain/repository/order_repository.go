package repository

import "github.com/jhoicas/subastas-admin/internal/domain/entity"

// OrderRepository define el puerto para los pedidos. Los pedidos no se crean
// desde el panel; Create existe por uniformidad del puerto.
type OrderRepository interface {
	Repository[entity.Order]
}
