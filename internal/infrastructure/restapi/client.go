// Package restapi es el cliente del backend REST de la plataforma de subastas.
// Las rutas siguen la convención /<database>/<colección>[/<id>]; las respuestas
// pueden venir con sobre {"data": ...} o sin él y se normalizan en el paquete wire.
package restapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/pkg/config"
	"github.com/jhoicas/subastas-admin/pkg/jwt"
	"github.com/jhoicas/subastas-admin/pkg/logger"
	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

const (
	breakerName    = "restapi"
	uploadsPath    = "uploads"
	maxBodyBytes   = 8 << 20
	tokenRefreshIn = time.Minute
)

// Client cliente HTTP del backend con circuit breaker.
type Client struct {
	baseURL  string
	database string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
	log      *logger.Logger

	staticToken string
	jwtCfg      config.JWTConfig

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewClient construye el cliente. Si api.Token está vacío y hay JWT.Secret,
// firma un token de servicio con rol admin y lo renueva antes de que venza.
func NewClient(api config.APIConfig, jwtCfg config.JWTConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := api.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:     strings.TrimRight(api.BaseURL, "/"),
		database:    api.Database,
		http:        &http.Client{Timeout: timeout},
		log:         log.Component("restapi"),
		staticToken: api.Token,
		jwtCfg:      jwtCfg,
	}
	metrics.RemoteBreakerState.Set(0)
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return counts.ConsecutiveFailures >= 5
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Los 4xx son respuestas válidas del backend, no fallos de disponibilidad.
		IsSuccessful: func(err error) bool {
			var he *HTTPError
			if errors.As(err, &he) {
				return !he.Temporary()
			}
			return err == nil
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			c.log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker cambia de estado")
			metrics.RemoteBreakerState.Set(float64(to))
		},
	})
	return c
}

// Path construye /<database>/<collection>[/<id>].
func (c *Client) Path(collection, id string) string {
	p := "/" + url.PathEscape(c.database) + "/" + url.PathEscape(collection)
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

// Do ejecuta una petición JSON y devuelve el cuerpo de la respuesta 2xx.
// Los parámetros de query vacíos no se envían.
func (c *Client) Do(ctx context.Context, method, collection, id string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("restapi: serializar cuerpo: %w", err)
		}
		payload = b
	}
	target := c.baseURL + c.Path(collection, id)
	if q := query.Encode(); q != "" {
		target += "?" + q
	}
	return c.send(ctx, method, target, func() (io.Reader, string) {
		if payload == nil {
			return nil, ""
		}
		return bytes.NewReader(payload), "application/json"
	})
}

// Upload sube un archivo como multipart (campo "file") a /<database>/uploads.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("restapi: crear parte multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("restapi: escribir archivo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("restapi: cerrar multipart: %w", err)
	}
	body := buf.Bytes()
	return c.send(ctx, http.MethodPost, c.baseURL+c.Path(uploadsPath, ""), func() (io.Reader, string) {
		return bytes.NewReader(body), mw.FormDataContentType()
	})
}

func (c *Client) send(ctx context.Context, method, target string, body func() (io.Reader, string)) ([]byte, error) {
	reqID := uuid.NewString()
	start := time.Now()

	out, err := c.cb.Execute(func() ([]byte, error) {
		rd, ctype := body()
		req, err := http.NewRequestWithContext(ctx, method, target, rd)
		if err != nil {
			return nil, fmt.Errorf("restapi: crear request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", reqID)
		if ctype != "" {
			req.Header.Set("Content-Type", ctype)
		}
		token, err := c.bearer()
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("restapi: %s %s: %w", method, target, ctx.Err())
			}
			return nil, fmt.Errorf("restapi: %s %s: %w: %w", method, target, domain.ErrServiceUnavailable, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("restapi: leer respuesta: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, newHTTPError(resp.StatusCode, raw)
		}
		return raw, nil
	})

	log := c.log.Request(reqID)
	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("method", method).Str("url", target).Dur("elapsed", time.Since(start)).Msg("backend")

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("restapi: %w: %w", domain.ErrServiceUnavailable, err)
	}
	return out, err
}

// bearer devuelve el token fijo o uno de servicio firmado con JWT.
func (c *Client) bearer() (string, error) {
	if c.staticToken != "" {
		return c.staticToken, nil
	}
	if c.jwtCfg.Secret == "" {
		return "", nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Until(c.tokenExp) > tokenRefreshIn {
		return c.token, nil
	}
	exp := c.jwtCfg.Expiration
	if exp <= 0 {
		exp = 60
	}
	tok, expiresAt, err := jwt.ServiceToken(c.jwtCfg.Secret, c.jwtCfg.ServiceUser, c.jwtCfg.Issuer, time.Duration(exp)*time.Minute)
	if err != nil {
		return "", fmt.Errorf("restapi: firmar token de servicio: %w", err)
	}
	c.token = tok
	c.tokenExp = expiresAt
	return tok, nil
}
