package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP de categorías (protegido).
type CategoryHandler struct {
	page *usecase.CategoriesPage
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(page *usecase.CategoriesPage) *CategoryHandler {
	return &CategoryHandler{page: page}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        activo  query  bool  false  "Solo activas/inactivas"
// @Param        force   query  bool  false  "Ignorar caché"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	st := h.page.List(c.UserContext(), dto.CategoryFilter{Activo: queryBool(c, "activo")}, c.QueryBool("force", false))
	if st.Err != "" {
		return listFailed(c, st.Err)
	}
	items := make([]dto.CategoryResponse, len(st.Data))
	for i, cat := range st.Data {
		items[i] = dto.ToCategoryResponse(cat)
	}
	return c.JSON(dto.CategoryListResponse{Items: items, Page: pageResponse(dto.PageRequest{}, len(items), st.FromCache)})
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre, orden y plantilla"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCategoryResponse(*out))
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryResponse(*out))
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.page.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleActivo godoc
// @Summary      Activar/desactivar categoría (optimista)
// @Tags         categories
// @Security     Bearer
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.ToggleRequest  false  "Valor; vacío invierte el actual"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/categories/{id}/activo [patch]
func (h *CategoryHandler) ToggleActivo(c *fiber.Ctx) error {
	value, err := toggleBody(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.page.ToggleActivo(c.UserContext(), c.Params("id"), value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryResponse(out))
}
