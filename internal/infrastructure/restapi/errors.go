package restapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jhoicas/subastas-admin/internal/domain"
)

// HTTPError respuesta no 2xx del backend.
type HTTPError struct {
	Status     int
	StatusText string
	Message    string // mensaje del cuerpo, si el backend dio uno
}

// Error devuelve el mensaje del backend o, si no lo hay, "Error <status>: <statusText>".
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Error %d: %s", e.Status, e.StatusText)
}

// Unwrap relaciona el status con el sentinel de dominio equivalente.
func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusRequestEntityTooLarge:
		return domain.ErrFileTooLarge
	case http.StatusUnsupportedMediaType:
		return domain.ErrUnsupportedMedia
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrServiceUnavailable
	}
	return nil
}

// Temporary indica si el fallo es del lado del servidor (cuenta para el circuit breaker).
func (e *HTTPError) Temporary() bool { return e.Status >= 500 }

type errorBody struct {
	Message string          `json:"message"`
	Msg     string          `json:"msg"`
	Error   json.RawMessage `json:"error"`
}

// newHTTPError construye el error a partir del status y del cuerpo de la respuesta.
func newHTTPError(status int, body []byte) *HTTPError {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = "Unknown"
	}
	return &HTTPError{Status: status, StatusText: statusText, Message: bodyMessage(body)}
}

func bodyMessage(body []byte) string {
	var eb errorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return ""
	}
	if msg := strings.TrimSpace(first(eb.Message, eb.Msg)); msg != "" {
		return msg
	}
	if len(eb.Error) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(eb.Error, &s) == nil {
		return strings.TrimSpace(s)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(eb.Error, &nested) == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

func first(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
