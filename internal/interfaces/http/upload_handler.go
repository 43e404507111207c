package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
)

// UploadHandler subida de imágenes de producto (protegido).
type UploadHandler struct {
	uc *usecase.ImageUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.ImageUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Image godoc
// @Summary      Subir imagen
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen (jpeg, png, webp, gif)"
// @Success      201   {object}  dto.UploadResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Router       /api/uploads/images [post]
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()

	url, err := h.uc.Upload(c.UserContext(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{URL: url})
}

// NoticeHandler avisos (toasts y banners) pendientes del panel.
type NoticeHandler struct {
	notices *state.Notices
}

// NewNoticeHandler construye el handler.
func NewNoticeHandler(n *state.Notices) *NoticeHandler {
	return &NoticeHandler{notices: n}
}

// List godoc
// @Summary      Avisos vigentes
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NoticeResponse
// @Router       /api/notices [get]
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ToNoticeResponses(h.notices.List()))
}

// Dismiss godoc
// @Summary      Descartar aviso
// @Tags         notices
// @Security     Bearer
// @Param        id  path  string  true  "ID del aviso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notices/{id} [delete]
func (h *NoticeHandler) Dismiss(c *fiber.Ctx) error {
	if !h.notices.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aviso no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
