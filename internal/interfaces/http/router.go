package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/dental-inventario/internal/application/auth"
	"github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/application/report"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *inventory.ProductUseCase
	PurchaseUC *inventory.PurchaseUseCase
	UsageUC    *inventory.UsageUseCase
	ReturnUC   *inventory.DocumentUseCase
	OrderUC    *inventory.DocumentUseCase
	ReportUC   *report.UseCase
	JWTSecret  string
	Service    string
	Mode       string // "postgres" o "demo"
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service, "mode": deps.Mode})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/inventario")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	movementHandler := NewMovementHandler(deps.PurchaseUC, deps.UsageUC)
	purchases := protected.Group("/compras")
	purchases.Get("/", movementHandler.ListPurchases)
	purchases.Post("/", movementHandler.RegisterPurchase)
	purchases.Delete("/:id", RequireRole(entity.RoleAdmin), movementHandler.DeletePurchase)

	usage := protected.Group("/consumos")
	usage.Get("/", movementHandler.ListUsage)
	usage.Post("/", movementHandler.RegisterUsage)

	registerDocuments(protected.Group("/devoluciones"), NewDocumentHandler(deps.ReturnUC))
	registerDocuments(protected.Group("/pedidos"), NewDocumentHandler(deps.OrderUC))

	reports := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/:tipo", reportHandler.Get)
	reports.Get("/:tipo/pdf", reportHandler.PDF)
}

func registerDocuments(g fiber.Router, h *DocumentHandler) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Patch("/:id/estado", h.ChangeStatus)
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user", GetUsername(c)).
			Msg("request")
		return err
	}
}
