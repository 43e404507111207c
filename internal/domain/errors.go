package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrFileTooLarge       = errors.New("el archivo supera el tamaño máximo")
	ErrUnsupportedMedia   = errors.New("tipo de archivo no permitido")
	ErrUnsafeText         = errors.New("el texto contiene contenido no permitido")
	ErrServiceUnavailable = errors.New("servicio no disponible")
)
