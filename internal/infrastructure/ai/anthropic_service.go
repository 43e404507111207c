package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/domain"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	maxDetailLen = 1200

	anthropicSystemPrompt = `Eres redactor de una casa de subastas. Escribes descripciones comerciales breves, en español neutro,
para lotes y productos del catálogo.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown) con esta estructura exacta:
{
  "detail": "<descripción de 2 a 4 frases, sin precios, sin HTML, máximo 800 caracteres>"
}

Reglas:
- No inventes medidas, materiales ni fechas que no aparezcan en los datos.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
type AnthropicService struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven domain.ErrServiceUnavailable en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicMessagesURL,
		httpClient: &http.Client{
			// El use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// WithEndpoint cambia la URL de la API (tests, proxies).
func (s *AnthropicService) WithEndpoint(url string) *AnthropicService {
	s.endpoint = url
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type descriptionPayload struct {
	Detail string `json:"detail"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque venga envuelto en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// GenerateProductDescription envía los datos del producto a Claude y devuelve
// el texto comercial ya recortado.
func (s *AnthropicService) GenerateProductDescription(ctx context.Context, in ports.DescriptionRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: AI_ANTHROPIC_API_KEY no configurado: %w", domain.ErrServiceUnavailable)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Título: %s\n", in.Title)
	if in.Brand != "" {
		fmt.Fprintf(&b, "Marca: %s\n", in.Brand)
	}
	if in.Category != "" {
		fmt.Fprintf(&b, "Categoría: %s\n", in.Category)
	}
	if in.Notes != "" {
		fmt.Fprintf(&b, "Notas del administrador: %s\n", in.Notes)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 512,
		System:    anthropicSystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: b.String()}},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w: %w", domain.ErrServiceUnavailable, ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s: %w", errResp.Error.Type, errResp.Error.Message, domain.ErrServiceUnavailable)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}

	rawText := anthResp.Content[0].Text
	detail := rawText
	if clean := extractJSON(rawText); clean != "" {
		var p descriptionPayload
		if err := json.Unmarshal([]byte(clean), &p); err == nil && p.Detail != "" {
			detail = p.Detail
		}
	}
	return truncate(strings.TrimSpace(detail), maxDetailLen), nil
}

// extractJSON extrae el primer objeto JSON de un texto libre: primero quita
// los bloques markdown y luego busca el primer {...}.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
