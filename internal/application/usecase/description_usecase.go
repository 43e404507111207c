package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/application/validation"
	"github.com/jhoicas/subastas-admin/internal/domain"
	"github.com/jhoicas/subastas-admin/pkg/logger"
)

const descriptionTimeout = 10 * time.Second

// DescriptionUseCase redacta la descripción comercial de un producto con IA.
// Aplica un timeout de 10 segundos en cada llamada al LLM para que la latencia
// externa no bloquee las goroutines del servidor.
type DescriptionUseCase struct {
	llm     ports.LLMService
	notices *state.Notices
	log     *logger.Logger
	timeout time.Duration
}

// NewDescriptionUseCase construye el caso de uso. llm nil deja el servicio como no disponible.
func NewDescriptionUseCase(llm ports.LLMService, notices *state.Notices, log *logger.Logger) *DescriptionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if notices == nil {
		notices = state.NewNotices(0)
	}
	return &DescriptionUseCase{llm: llm, notices: notices, log: log.Component("description"), timeout: descriptionTimeout}
}

// Generate valida la entrada y delega en el LLM. Si el servicio falla se
// publica un banner y se devuelve un error que envuelve ErrServiceUnavailable.
func (uc *DescriptionUseCase) Generate(ctx context.Context, req dto.DescriptionRequest) (*dto.DescriptionResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if uc.llm == nil {
		return nil, uc.unavailable(fmt.Errorf("usecase: descripción IA: %w", domain.ErrServiceUnavailable))
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.llm.GenerateProductDescription(ctx, ports.DescriptionRequest{
		Title:    strings.TrimSpace(req.Title),
		Brand:    strings.TrimSpace(req.Brand),
		Category: strings.TrimSpace(req.Category),
		Notes:    strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return nil, uc.unavailable(fmt.Errorf("usecase: descripción IA: %w", err))
	}
	return &dto.DescriptionResponse{Detail: text}, nil
}

func (uc *DescriptionUseCase) unavailable(err error) error {
	uc.log.Warn().Err(err).Msg("servicio de descripciones no disponible")
	uc.notices.Banner("warn", "El asistente de descripciones no está disponible en este momento.")
	return err
}
