package repository

import "github.com/jhoicas/subastas-admin/internal/domain/entity"

// UserRepository define el puerto para los usuarios de la plataforma.
type UserRepository interface {
	Repository[entity.User]
}
