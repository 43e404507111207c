package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP de productos/lotes (protegido).
type ProductHandler struct {
	page *usecase.ProductsPage
	desc *usecase.DescriptionUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(page *usecase.ProductsPage, desc *usecase.DescriptionUseCase) *ProductHandler {
	return &ProductHandler{page: page, desc: desc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Texto buscado"
// @Param        category  query  string  false  "Categoría"
// @Param        minPrice  query  number  false  "Precio mínimo"
// @Param        maxPrice  query  number  false  "Precio máximo"
// @Param        activo    query  bool    false  "Solo activos/inactivos"
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        force     query  bool    false  "Ignorar caché"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := dto.ProductFilter{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		MinPrice:    queryDecimal(c, "minPrice"),
		MaxPrice:    queryDecimal(c, "maxPrice"),
		Activo:      queryBool(c, "activo"),
		Sort:        c.Query("sort"),
		PageRequest: pageRequest(c),
	}
	st := h.page.List(c.UserContext(), f, c.QueryBool("force", false))
	if st.Err != "" {
		return listFailed(c, st.Err)
	}
	items := make([]dto.ProductResponse, len(st.Data))
	for i, p := range st.Data {
		items[i] = dto.ToProductResponse(p)
	}
	return c.JSON(dto.ProductListResponse{Items: items, Page: pageResponse(f.PageRequest, len(items), st.FromCache)})
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(*out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(*out))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.page.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleActivo godoc
// @Summary      Activar/desactivar producto (optimista)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ToggleRequest  false  "Valor; vacío invierte el actual"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id}/activo [patch]
func (h *ProductHandler) ToggleActivo(c *fiber.Ctx) error {
	value, err := toggleBody(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.page.ToggleActivo(c.UserContext(), c.Params("id"), value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(out))
}

// ToggleDestacado godoc
// @Summary      Destacar producto (optimista)
// @Tags         products
// @Security     Bearer
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ToggleRequest  false  "Valor; vacío invierte el actual"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id}/destacado [patch]
func (h *ProductHandler) ToggleDestacado(c *fiber.Ctx) error {
	value, err := toggleBody(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.page.ToggleDestacado(c.UserContext(), c.Params("id"), value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(out))
}

// Describe godoc
// @Summary      Generar descripción con IA
// @Description  Redacta el texto comercial del producto. Timeout interno de 10 s.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescriptionRequest  true  "Título, marca, categoría y notas"
// @Success      200   {object}  dto.DescriptionResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products/description [post]
func (h *ProductHandler) Describe(c *fiber.Ctx) error {
	var in dto.DescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.desc.Generate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
