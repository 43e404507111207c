package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	page *usecase.OrdersPage
}

// NewOrderHandler construye el handler.
func NewOrderHandler(page *usecase.OrdersPage) *OrderHandler {
	return &OrderHandler{page: page}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"  Enums(pending, ready, shipped, delivered, cancelled)
// @Param        search  query  string  false  "Texto buscado"
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Límite"
// @Param        force   query  bool    false  "Ignorar caché"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f := dto.OrderFilter{Status: c.Query("status"), Search: c.Query("search"), PageRequest: pageRequest(c)}
	st := h.page.List(c.UserContext(), f, c.QueryBool("force", false))
	if st.Err != "" {
		return listFailed(c, st.Err)
	}
	items := make([]dto.OrderResponse, len(st.Data))
	for i, o := range st.Data {
		items[i] = dto.ToOrderResponse(o)
	}
	return c.JSON(dto.OrderListResponse{Items: items, Page: pageResponse(f.PageRequest, len(items), st.FromCache)})
}

// ChangeStatus godoc
// @Summary      Cambiar estado del pedido (optimista)
// @Description  Solo se permiten las transiciones de la tabla de estados; el resto devuelve 409.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.page.ChangeStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(out))
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.page.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Label godoc
// @Summary      Etiqueta de envío en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/label [get]
func (h *OrderHandler) Label(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.page.Label(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, fmt.Sprintf("etiqueta-%s.pdf", id), pdf)
}

// Summary godoc
// @Summary      Resumen del pedido en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Router       /api/orders/{id}/summary [get]
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.page.Summary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, fmt.Sprintf("pedido-%s.pdf", id), pdf)
}

func sendPDF(c *fiber.Ctx, name string, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Send(pdf)
}
