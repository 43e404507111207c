package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/repository"
	"github.com/jhoicas/subastas-admin/pkg/logger"
)

// imageTypes tipos MIME aceptados para imágenes de producto.
var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ImageUseCase valida y sube imágenes de producto. El contenido se identifica
// por sus bytes, no por la extensión ni por el Content-Type del cliente.
type ImageUseCase struct {
	store    repository.ImageStore
	maxBytes int64
	log      *logger.Logger
}

// NewImageUseCase construye el caso de uso con el límite de tamaño dado.
func NewImageUseCase(store repository.ImageStore, maxBytes int64, log *logger.Logger) *ImageUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImageUseCase{store: store, maxBytes: maxBytes, log: log.Component("images")}
}

// Upload lee como máximo maxBytes+1 bytes de r, comprueba el tipo y devuelve la URL.
func (uc *ImageUseCase) Upload(ctx context.Context, original string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, uc.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("usecase: leer imagen: %w", err)
	}
	if int64(len(data)) > uc.maxBytes {
		return "", fmt.Errorf("usecase: imagen %q: %w", original, domain.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), imageTypes...) {
		return "", fmt.Errorf("usecase: imagen %q (%s): %w", original, mt.String(), domain.ErrUnsupportedMedia)
	}

	name := uuid.NewString() + mt.Extension()
	url, err := uc.store.Upload(ctx, name, mt.String(), data)
	if err != nil {
		return "", fmt.Errorf("usecase: subir imagen: %w", err)
	}
	uc.log.Info().Str("file", name).Str("original", path.Base(strings.ReplaceAll(original, "\\", "/"))).Int("bytes", len(data)).Msg("imagen subida")
	return url, nil
}
