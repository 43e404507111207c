package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/subastas-admin/internal/application/state"
	"github.com/jhoicas/subastas-admin/internal/application/usecase"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Products    *usecase.ProductsPage
	Categories  *usecase.CategoriesPage
	Orders      *usecase.OrdersPage
	Users       *usecase.UsersPage
	Images      *usecase.ImageUseCase
	Description *usecase.DescriptionUseCase
	Notices     *state.Notices
	Metrics     prometheus.Gatherer
	JWTSecret   string
	AppName     string
}

// Router registra las rutas del gateway del panel.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// Todo lo de /api exige Bearer Token con rol admin
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(string(entity.RoleAdmin)))

	productHandler := NewProductHandler(deps.Products, deps.Description)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/description", productHandler.Describe)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/activo", productHandler.ToggleActivo)
	products.Patch("/:id/destacado", productHandler.ToggleDestacado)

	categoryHandler := NewCategoryHandler(deps.Categories)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Patch("/:id/activo", categoryHandler.ToggleActivo)

	orderHandler := NewOrderHandler(deps.Orders)
	orders := api.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Patch("/:id/status", orderHandler.ChangeStatus)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Get("/:id/label", orderHandler.Label)
	orders.Get("/:id/summary", orderHandler.Summary)

	userHandler := NewUserHandler(deps.Users)
	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/activo", userHandler.ToggleActivo)
	users.Patch("/:id/role", userHandler.ChangeRole)

	uploadHandler := NewUploadHandler(deps.Images)
	api.Post("/uploads/images", uploadHandler.Image)

	noticeHandler := NewNoticeHandler(deps.Notices)
	api.Get("/notices", noticeHandler.List)
	api.Delete("/notices/:id", noticeHandler.Dismiss)
}
