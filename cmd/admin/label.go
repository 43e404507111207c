package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	infrapdf "github.com/jhoicas/subastas-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/restapi"
	"github.com/jhoicas/subastas-admin/pkg/config"
	"github.com/jhoicas/subastas-admin/pkg/logger"
)

func labelCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "label <orderID>",
		Short: "Descarga un pedido y escribe su etiqueta de envío en PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			id := args[0]
			if out == "" {
				out = fmt.Sprintf("etiqueta-%s.pdf", id)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name, Output: cmd.ErrOrStderr()})

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout+5*time.Second)
			defer cancel()

			order, err := restapi.NewOrderRepository(restapi.NewClient(cfg.API, cfg.JWT, log)).GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("obtener pedido %s: %w", id, err)
			}
			pdf, err := infrapdf.NewMarotoRenderer(cfg.App.Name).ShippingLabel(ctx, *order)
			if err != nil {
				return fmt.Errorf("generar etiqueta: %w", err)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			log.Info().Str("order", id).Str("file", out).Int("bytes", len(pdf)).Msg("etiqueta generada")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "archivo de salida (por defecto etiqueta-<id>.pdf)")
	return cmd
}
