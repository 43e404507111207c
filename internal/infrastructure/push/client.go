// Package push es el cliente del canal de notificaciones en tiempo real.
//
// Al conectar anuncia la sala "admin" y consume únicamente el evento
// "orderUpdated". Acepta marcos {"event": ..., "data": ...} y el formato de
// arreglo [evento, datos] (con o sin el prefijo numérico de Socket.IO). La
// reconexión es automática con reintentos acotados y retardo fijo; los eventos
// emitidos mientras no hubo conexión no se recuperan.
package push

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/wire"
	"github.com/jhoicas/subastas-admin/pkg/config"
	"github.com/jhoicas/subastas-admin/pkg/logger"
	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

// EventOrderUpdated único evento entrante que se procesa.
const EventOrderUpdated = "orderUpdated"

const (
	eventJoin          = "join"
	defaultReadTimeout = 90 * time.Second
	writeTimeout       = 5 * time.Second
)

var _ ports.OrderEventSource = (*Client)(nil)

// Frame marco saliente y forma objeto de los entrantes.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client conexión websocket con reconexión.
type Client struct {
	url         string
	room        string
	attempts    int
	delay       time.Duration
	readTimeout time.Duration
	dialer      *websocket.Dialer
	log         *logger.Logger

	subMu  sync.RWMutex
	subs   map[int]func(ports.OrderStatusEvent)
	nextID int

	connMu sync.Mutex
	conn   *websocket.Conn

	onGiveUp func(error)
}

// NewClient construye el cliente; no conecta hasta Run.
func NewClient(cfg config.PushConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	room := cfg.Room
	if room == "" {
		room = "admin"
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		url:         cfg.URL,
		room:        room,
		attempts:    attempts,
		delay:       delay,
		readTimeout: readTimeout,
		dialer:      &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:         log.Component("push"),
		subs:        make(map[int]func(ports.OrderStatusEvent)),
	}
}

// OnGiveUp registra la función que se llama cuando se agotan los reintentos.
func (c *Client) OnGiveUp(fn func(error)) { c.onGiveUp = fn }

// Subscribe registra fn para cada evento de orden. Devuelve la cancelación.
func (c *Client) Subscribe(fn func(ports.OrderStatusEvent)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()
	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// Run mantiene la conexión hasta que ctx termine. Cada caída abre un nuevo
// ciclo de hasta attempts intentos de conexión separados por el retardo fijo;
// si todos fallan devuelve el último error.
func (c *Client) Run(ctx context.Context) error {
	for {
		err := backoff.RetryNotify(func() error {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return c.connect(ctx)
		}, c.policy(ctx), func(err error, wait time.Duration) {
			c.log.Warn().Err(err).Dur("retry_in", wait).Msg("canal push no disponible, reintentando")
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error().Err(err).Int("attempts", c.attempts).Msg("canal push: reintentos agotados")
			if c.onGiveUp != nil {
				c.onGiveUp(err)
			}
			return fmt.Errorf("push: conectar: %w", err)
		}

		readErr := c.readLoop(ctx)
		c.closeConnection()
		if ctx.Err() != nil {
			return nil
		}
		c.log.Warn().Err(readErr).Msg("canal push desconectado")
	}
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.delay), uint64(c.attempts-1)), ctx)
}

func (c *Client) connect(ctx context.Context) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket dial (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("websocket dial: %w", err)
	}

	room, _ := json.Marshal(c.room)
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(Frame{Event: eventJoin, Data: room}); err != nil {
		_ = conn.Close()
		return fmt.Errorf("anunciar sala %s: %w", c.room, err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	c.log.Info().Str("url", c.url).Str("room", c.room).Msg("canal push conectado")
	return nil
}

func (c *Client) readLoop(ctx context.Context) error {
	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return errors.New("sin conexión")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.closeConnection()
		case <-done:
		}
	}()

	// los ping/pong de control también mantienen viva la conexión
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeTimeout))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	})

	for {
		_ = conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if bytes.Equal(bytes.TrimSpace(msg), []byte("2")) {
			// ping de engine.io
			c.write(websocket.TextMessage, []byte("3"))
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) write(kind int, data []byte) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(kind, data); err != nil {
		c.log.Debug().Err(err).Msg("no se pudo escribir en el canal push")
	}
}

// handle decodifica un marco y lo entrega a los suscriptores si es orderUpdated.
func (c *Client) handle(msg []byte) {
	name, data, ok := ParseFrame(msg)
	if !ok {
		metrics.PushEvents.WithLabelValues("unknown", "invalid").Inc()
		c.log.Debug().Int("bytes", len(msg)).Msg("marco push no reconocido")
		return
	}
	if name != EventOrderUpdated {
		metrics.PushEvents.WithLabelValues(name, "ignored").Inc()
		return
	}
	ev := wire.DecodeOrderEvent(data)
	out := ports.OrderStatusEvent{OrderID: ev.OrderID, Status: ev.Status, Order: ev.Order}

	c.subMu.RLock()
	subs := make([]func(ports.OrderStatusEvent), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.RUnlock()
	for _, fn := range subs {
		fn(out)
	}
}

// ParseFrame extrae nombre y datos de un marco entrante.
func ParseFrame(msg []byte) (string, []byte, bool) {
	msg = bytes.TrimSpace(msg)
	// prefijo de tipo de paquete de Socket.IO ("42[...]")
	i := 0
	for i < len(msg) && msg[i] >= '0' && msg[i] <= '9' {
		i++
	}
	msg = msg[i:]
	if len(msg) == 0 {
		return "", nil, false
	}
	switch msg[0] {
	case '{':
		var f Frame
		if json.Unmarshal(msg, &f) != nil || f.Event == "" {
			return "", nil, false
		}
		return f.Event, f.Data, true
	case '[':
		var arr []json.RawMessage
		if json.Unmarshal(msg, &arr) != nil || len(arr) == 0 {
			return "", nil, false
		}
		var name string
		if json.Unmarshal(arr[0], &name) != nil || name == "" {
			return "", nil, false
		}
		var data []byte
		if len(arr) > 1 {
			data = arr[1]
		}
		return name, data, true
	}
	return "", nil, false
}

func (c *Client) closeConnection() {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return
	}
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	_ = c.conn.Close()
	c.conn = nil
}

// Connected indica si hay una conexión abierta.
func (c *Client) Connected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn != nil
}
