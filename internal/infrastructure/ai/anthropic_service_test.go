package ai_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/ai"
)

func TestGenerateProductDescription_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clave", r.Header.Get("x-api-key"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "Reloj Omega")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"`+"```json\\n{\\\"detail\\\": \\\"Un reloj clásico.\\\"}\\n```"+`"}]}`)
	}))
	defer srv.Close()

	svc := ai.NewAnthropicService("clave", "modelo").WithEndpoint(srv.URL)
	got, err := svc.GenerateProductDescription(context.Background(), ports.DescriptionRequest{Title: "Reloj Omega"})
	require.NoError(t, err)
	assert.Equal(t, "Un reloj clásico.", got)
}

func TestGenerateProductDescription_SinClave(t *testing.T) {
	_, err := ai.NewAnthropicService("", "modelo").GenerateProductDescription(context.Background(), ports.DescriptionRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestGenerateProductDescription_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"type":"overloaded_error","message":"Overloaded"}}`)
	}))
	defer srv.Close()

	_, err := ai.NewAnthropicService("clave", "modelo").WithEndpoint(srv.URL).
		GenerateProductDescription(context.Background(), ports.DescriptionRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "overloaded_error")
}
