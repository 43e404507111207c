package repository

import "context"

// ImageStore sube imágenes al backend y devuelve su URL estable.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}
