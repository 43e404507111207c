package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de usuarios (protegido).
type UserHandler struct {
	page *usecase.UsersPage
}

// NewUserHandler construye el handler.
func NewUserHandler(page *usecase.UsersPage) *UserHandler {
	return &UserHandler{page: page}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "Rol"  Enums(user, admin)
// @Param        search  query  string  false  "Texto buscado"
// @Param        activo  query  bool    false  "Solo activos/inactivos"
// @Param        force   query  bool    false  "Ignorar caché"
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	f := dto.UserFilter{
		Role:        c.Query("role"),
		Search:      c.Query("search"),
		Activo:      queryBool(c, "activo"),
		PageRequest: pageRequest(c),
	}
	st := h.page.List(c.UserContext(), f, c.QueryBool("force", false))
	if st.Err != "" {
		return listFailed(c, st.Err)
	}
	items := make([]dto.UserResponse, len(st.Data))
	for i, u := range st.Data {
		items[i] = dto.ToUserResponse(u)
	}
	return c.JSON(dto.UserListResponse{Items: items, Page: pageResponse(f.PageRequest, len(items), st.FromCache)})
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(*out))
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToUserResponse(*out))
}

// ToggleActivo godoc
// @Summary      Activar/desactivar usuario (optimista)
// @Tags         users
// @Security     Bearer
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ToggleRequest  false  "Valor; vacío invierte el actual"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/users/{id}/activo [patch]
func (h *UserHandler) ToggleActivo(c *fiber.Ctx) error {
	value, err := toggleBody(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.page.ToggleActivo(c.UserContext(), c.Params("id"), value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToUserResponse(out))
}

// ChangeRole godoc
// @Summary      Cambiar rol (optimista)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ChangeRoleRequest  true  "Nuevo rol"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.ChangeRole(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToUserResponse(out))
}
