package restapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/restapi"
	"github.com/jhoicas/subastas-admin/pkg/config"
	pkgjwt "github.com/jhoicas/subastas-admin/pkg/jwt"
)

func newClient(t *testing.T, h http.HandlerFunc) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return restapi.NewClient(config.APIConfig{BaseURL: srv.URL + "/", Database: "subastas", Token: "tok"}, config.JWTConfig{}, nil)
}

func TestClient_PathYCabeceras(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subastas/products", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "search=reloj", r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"data":[{"_id":{"$oid":"p1"},"title":"Reloj","price":"10"}]}`)
	})

	repo := restapi.NewProductRepository(c)
	items, err := repo.List(context.Background(), url.Values{"search": {"reloj"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "10", items[0].Price.String())
}

func TestClient_SinParametrosNoHayQuery(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `[]`)
	})
	items, err := restapi.NewCategoryRepository(c).List(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_ErrorSintetizado(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := restapi.NewOrderRepository(c).GetByID(context.Background(), "o1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Error 404: Not Found")

	var he *restapi.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 404, he.Status)
}

func TestClient_MensajeDelCuerpo(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":{"message":"El refid ya existe"}}`)
	})
	_, err := restapi.NewProductRepository(c).Create(context.Background(), map[string]string{"title": "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "El refid ya existe")
}

func TestClient_UpdateUsaPatchYCuerpoJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/subastas/orders/o1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"shipped"}`, string(b))
		_, _ = io.WriteString(w, `{"id":"o1","status":"shipped","items":[]}`)
	})
	o, err := restapi.NewOrderRepository(c).Update(context.Background(), "o1", map[string]string{"status": "shipped"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, o.Status)
}

func TestClient_BreakerNoCuenta4xx(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})
	repo := restapi.NewUserRepository(c)
	for i := 0; i < 12; i++ {
		_, err := repo.GetByID(context.Background(), "u1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, int32(12), calls.Load(), "los 4xx no abren el circuito")
}

func TestClient_BreakerAbreCon5xx(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	repo := restapi.NewUserRepository(c)
	for i := 0; i < 8; i++ {
		_ = repo.Delete(context.Background(), "u1")
	}
	assert.Equal(t, int32(5), calls.Load())
	err := repo.Delete(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestClient_TokenDeServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		sub, role, err := pkgjwt.Parse("secreto", tok)
		assert.NoError(t, err)
		assert.Equal(t, "admin-panel", sub)
		assert.Equal(t, "admin", role)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := restapi.NewClient(
		config.APIConfig{BaseURL: srv.URL, Database: "subastas"},
		config.JWTConfig{Secret: "secreto", ServiceUser: "admin-panel", Issuer: "subastas-admin", Expiration: 60},
		nil,
	)
	_, err := restapi.NewUserRepository(c).List(context.Background(), nil)
	require.NoError(t, err)
}

func TestImageStore_Upload(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subastas/uploads", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "foto.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"data":{"url":"https://cdn.example.com/foto.png"}}`)
	})

	u, err := restapi.NewImageStore(c).Upload(context.Background(), "foto.png", "image/png", []byte("\x89PNG"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/foto.png", u)
}
