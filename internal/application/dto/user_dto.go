package dto

import (
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Role   string `json:"role,omitempty"`
	Search string `json:"search,omitempty"`
	Activo *bool  `json:"activo,omitempty"`
	PageRequest
}

// Values parámetros de query para el backend.
func (f UserFilter) Values() url.Values {
	v := url.Values{}
	setString(v, "role", f.Role)
	setString(v, "search", strings.TrimSpace(f.Search))
	setBool(v, "activo", f.Activo)
	f.PageRequest.apply(v)
	return v
}

// CreateUserRequest entrada para crear un usuario. La autenticación la lleva el backend.
type CreateUserRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200,safetext"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required,oneof=user admin"`
	Activo  bool   `json:"activo"`
	Picture string `json:"picture,omitempty" validate:"omitempty,url"`
}

// UpdateUserRequest actualización parcial de un usuario.
type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200,safetext"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Activo  *bool   `json:"activo,omitempty"`
	Picture *string `json:"picture,omitempty" validate:"omitempty,url"`
}

// ChangeRoleRequest entrada para cambiar el rol.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Activo    bool       `json:"activo"`
	Picture   string     `json:"picture,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UserListResponse lista de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToUserResponse mapea la entidad a la salida HTTP.
func ToUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Activo:    u.Activo,
		Picture:   u.Picture,
		CreatedAt: optTime(u.CreatedAt),
		UpdatedAt: optTime(u.UpdatedAt),
	}
}
