package repository

import "github.com/jhoicas/subastas-admin/internal/domain/entity"

// CategoryRepository define el puerto para las categorías y su plantilla de especificaciones.
type CategoryRepository interface {
	Repository[entity.Category]
}
