package wire

import (
	"strings"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// RawUser variante de cable de un usuario.
type RawUser struct {
	ID      ID   `json:"id"`
	MongoID ID   `json:"_id"`
	Name    Text `json:"name"`
	Nombre  Text `json:"nombre"`
	Email   Text `json:"email"`
	Correo  Text `json:"correo"`
	Role    Text `json:"role"`
	Rol     Text `json:"rol"`
	Activo  Flag `json:"activo"`
	Active  Flag `json:"active"`
	Picture Text `json:"picture"`
	Avatar  Text `json:"avatar"`

	CreatedAt Time `json:"createdAt"`
	UpdatedAt Time `json:"updatedAt"`
}

// NormalizeUser convierte la variante de cable en la entidad canónica.
// Un rol desconocido se degrada a "user"; el id cae al email si falta.
func NormalizeUser(raw RawUser) entity.User {
	email := strings.ToLower(string(first(raw.Email, raw.Correo)))
	id := string(first(raw.ID, raw.MongoID))
	if id == "" {
		id = email
	}
	role := entity.Role(strings.ToLower(string(first(raw.Role, raw.Rol))))
	if !role.Valid() {
		role = entity.RoleUser
	}
	return entity.User{
		ID:        id,
		Name:      string(first(raw.Name, raw.Nombre)),
		Email:     email,
		Role:      role,
		Activo:    activeFlag(raw.Activo, raw.Active),
		Picture:   string(first(raw.Picture, raw.Avatar)),
		CreatedAt: raw.CreatedAt.Time,
		UpdatedAt: raw.UpdatedAt.Time,
	}
}

// DecodeUser decodifica un usuario (con o sin sobre). Nunca falla.
func DecodeUser(body []byte) entity.User {
	return NormalizeUser(decodeObject[RawUser](body))
}

// DecodeUsers decodifica un listado de usuarios. Nunca falla.
func DecodeUsers(body []byte) []entity.User {
	return decodeList(body, DecodeUser)
}
