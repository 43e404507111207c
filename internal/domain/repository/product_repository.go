package repository

import "github.com/jhoicas/subastas-admin/internal/domain/entity"

// ProductRepository define el puerto para los productos/lotes (DIP).
type ProductRepository interface {
	Repository[entity.Product]
}
