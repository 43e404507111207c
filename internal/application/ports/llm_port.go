package ports

import (
	"context"
)

// DescriptionRequest datos mínimos para redactar la descripción de un producto.
type DescriptionRequest struct {
	Title    string
	Brand    string
	Category string
	Notes    string
}

// LLMService define el puerto de salida para los servicios de generación de texto.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz; la
// aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// GenerateProductDescription redacta el texto comercial de un producto.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateProductDescription(ctx context.Context, req DescriptionRequest) (string, error)
}
