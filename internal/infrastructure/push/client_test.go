package push_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/push"
	"github.com/jhoicas/subastas-admin/pkg/config"
)

func TestParseFrame(t *testing.T) {
	cases := []struct {
		in   string
		name string
		ok   bool
	}{
		{`{"event":"orderUpdated","data":{"orderId":"o1"}}`, "orderUpdated", true},
		{`["orderUpdated",{"orderId":"o1"}]`, "orderUpdated", true},
		{`42["orderUpdated",{"orderId":"o1"}]`, "orderUpdated", true},
		{`["connected"]`, "connected", true},
		{`{"data":1}`, "", false},
		{`[]`, "", false},
		{`hola`, "", false},
		{``, "", false},
	}
	for _, tc := range cases {
		name, _, ok := push.ParseFrame([]byte(tc.in))
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.name, name, tc.in)
	}
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClient_UneSalaYEntregaEventos(t *testing.T) {
	joined := make(chan push.Frame, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var f push.Frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		joined <- f
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"bidPlaced","data":{}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`["orderUpdated",{"orderId":"o1","status":"shipped"}]`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"orderUpdated","data":{"orderId":{"$oid":"o2"},"status":"delivered"}}`))
		// mantener abierta hasta que el cliente cierre
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := push.NewClient(config.PushConfig{URL: wsURL(srv), MaxRetries: 1, RetryDelay: 10 * time.Millisecond}, nil)
	got := make(chan ports.OrderStatusEvent, 4)
	unsub := c.Subscribe(func(ev ports.OrderStatusEvent) { got <- ev })
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case f := <-joined:
		assert.Equal(t, "join", f.Event)
		assert.JSONEq(t, `"admin"`, string(f.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("el cliente no anunció la sala")
	}

	var evs []ports.OrderStatusEvent
	for len(evs) < 2 {
		select {
		case ev := <-got:
			evs = append(evs, ev)
		case <-time.After(2 * time.Second):
			t.Fatal("no llegaron los eventos")
		}
	}
	assert.Equal(t, ports.OrderStatusEvent{OrderID: "o1", Status: entity.OrderShipped}, evs[0])
	assert.Equal(t, "o2", evs[1].OrderID)
	assert.Equal(t, entity.OrderDelivered, evs[1].Status)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó tras cancelar")
	}
	assert.False(t, c.Connected())
}

func TestClient_ReintentosAgotados(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		dials.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := push.NewClient(config.PushConfig{URL: wsURL(srv), MaxRetries: 2, RetryDelay: 5 * time.Millisecond}, nil)
	var gaveUp error
	c.OnGiveUp(func(err error) { gaveUp = err })

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.Error(t, gaveUp)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(2), dials.Load(), "MaxRetries cuenta el total de intentos")
}

func TestClient_PingMantieneLaConexion(t *testing.T) {
	var conns atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conns.Add(1)
		var f push.Frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		// canal sin datos más allá del plazo de lectura, solo pings de control
		for i := 0; i < 10; i++ {
			if err := conn.WriteControl(websocket.PingMessage, []byte("hb"), time.Now().Add(time.Second)); err != nil {
				return
			}
			time.Sleep(30 * time.Millisecond)
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`["orderUpdated",{"orderId":"o1","status":"ready"}]`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := push.NewClient(config.PushConfig{
		URL:         wsURL(srv),
		MaxRetries:  3,
		RetryDelay:  5 * time.Millisecond,
		ReadTimeout: 100 * time.Millisecond,
	}, nil)
	got := make(chan ports.OrderStatusEvent, 1)
	defer c.Subscribe(func(ev ports.OrderStatusEvent) { got <- ev })()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	select {
	case ev := <-got:
		assert.Equal(t, entity.OrderReady, ev.Status)
	case <-time.After(3 * time.Second):
		t.Fatal("no llegó el evento")
	}
	assert.Equal(t, int32(1), conns.Load(), "los ping renuevan el plazo de lectura; no hubo reconexión")
}
