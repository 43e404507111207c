package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jhoicas/subastas-admin/internal/application/cache"
	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
	infraai "github.com/jhoicas/subastas-admin/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/subastas-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/push"
	"github.com/jhoicas/subastas-admin/internal/infrastructure/restapi"
	httpRouter "github.com/jhoicas/subastas-admin/internal/interfaces/http"
	"github.com/jhoicas/subastas-admin/pkg/config"
	"github.com/jhoicas/subastas-admin/pkg/logger"
	"github.com/jhoicas/subastas-admin/pkg/metrics"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el gateway HTTP y el canal push",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando panel")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		return err
	}

	notices := state.NewNotices(0)
	deps := usecase.Deps{
		Caches:  cache.NewService(log, nil),
		Notices: notices,
		Log:     log,
	}

	rest := restapi.NewClient(cfg.API, cfg.JWT, log)
	productsPage := usecase.NewProductsPage(restapi.NewProductRepository(rest), cfg.Cache.ProductsTTL, cfg.Search.Debounce, deps)
	categoriesPage := usecase.NewCategoriesPage(restapi.NewCategoryRepository(rest), cfg.Cache.CategoriesTTL, deps)
	ordersPage := usecase.NewOrdersPage(restapi.NewOrderRepository(rest), cfg.Cache.OrdersTTL, cfg.Search.Debounce,
		infrapdf.NewMarotoRenderer(cfg.App.Name), deps)
	usersPage := usecase.NewUsersPage(restapi.NewUserRepository(rest), cfg.Cache.UsersTTL, deps)
	imageUC := usecase.NewImageUseCase(restapi.NewImageStore(rest), cfg.Upload.MaxBytes, log)

	var llm ports.LLMService
	if cfg.AI.AnthropicAPIKey != "" {
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	} else {
		log.Warn().Msg("AI_ANTHROPIC_API_KEY vacío: generación de descripciones deshabilitada")
	}
	descriptionUC := usecase.NewDescriptionUseCase(llm, notices, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Push.Enabled() {
		pc := push.NewClient(cfg.Push, log)
		pc.OnGiveUp(func(err error) {
			notices.Banner("error", "Se perdió la conexión en tiempo real con los pedidos. Recarga para reintentar.")
		})
		ordersPage.StartPush(pc)
		go func() {
			if err := pc.Run(ctx); err != nil {
				log.Error().Err(err).Msg("canal push finalizado")
			}
		}()
	} else {
		log.Warn().Msg("PUSH_URL vacío: sin actualizaciones de pedidos en tiempo real")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 64*1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(recover.New())

	if cfg.HTTP.Docs {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Subastas Admin API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Products:    productsPage,
		Categories:  categoriesPage,
		Orders:      ordersPage,
		Users:       usersPage,
		Images:      imageUC,
		Description: descriptionUC,
		Notices:     notices,
		Metrics:     reg,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	productsPage.Close()
	categoriesPage.Close()
	ordersPage.Close()
	usersPage.Close()

	log.Info().Msg("panel detenido")
	return nil
}
