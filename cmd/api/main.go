package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/dental-inventario/docs"
	"github.com/jhoicas/dental-inventario/internal/application/auth"
	"github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/application/report"
	domaininv "github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
	"github.com/jhoicas/dental-inventario/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/dental-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/dental-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/dental-inventario/internal/interfaces/http"
	"github.com/jhoicas/dental-inventario/pkg/config"
	"github.com/jhoicas/dental-inventario/pkg/logger"
)

const devJWTSecret = "dev-secret-no-usar-en-produccion"

// backend repositorios y transacciones de la fuente de datos elegida.
type backend struct {
	mode      string
	tx        inventory.TxRunner
	snapshots repository.SnapshotLoader
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	usage     repository.UsageRepository
	returns   repository.ReturnRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	lg := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	lg.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		lg.Warn().Msg("JWT_SECRET vacío, se usa un secreto de desarrollo")
		cfg.JWT.Secret = devJWTSecret
	}

	loc := cfg.App.Location()
	clock := inventory.SystemClock(loc)

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, lg, clock)
	if err != nil {
		lg.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	classifier := domaininv.NewClassifier(cfg.Report.ExpiringDays)

	productUC := inventory.NewProductUseCase(be.tx, be.products, classifier, clock, lg.Component("productos"))
	purchaseUC := inventory.NewPurchaseUseCase(be.tx, be.purchases, clock, lg.Component("compras"))
	usageUC := inventory.NewUsageUseCase(be.tx, be.usage, clock, lg.Component("consumos"))
	returnUC := inventory.NewReturnUseCase(be.tx, be.returns, clock, lg.Component("devoluciones"))
	orderUC := inventory.NewOrderUseCase(be.tx, be.orders, clock, lg.Component("pedidos"))

	assembler := report.NewAssembler(classifier, cfg.Report.TopN)
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := report.NewUseCase(be.snapshots, assembler, pdfGenerator, clock, lg.Component("reportes"))

	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, lg.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Dental API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		PurchaseUC: purchaseUC,
		UsageUC:    usageUC,
		ReturnUC:   returnUC,
		OrderUC:    orderUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
		Service:    cfg.App.Name,
		Mode:       be.mode,
		Log:        lg.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			lg.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("apagado del servidor")
	}

	lg.Info().Msg("aplicación detenida")
}

// openBackend conecta a PostgreSQL si está configurado; si no, arranca con datos de demo en memoria.
func openBackend(ctx context.Context, cfg *config.Config, lg *logger.Logger, clock inventory.Clock) (*backend, error) {
	if !cfg.DB.Configured() {
		store, err := memory.NewDemoStore(clock())
		if err != nil {
			return nil, err
		}
		lg.Warn().
			Str("admin", memory.DemoAdminUser).
			Str("asistente", memory.DemoAssistantUser).
			Str("area", memory.DemoAssistantArea).
			Msg("modo demo: datos en memoria, se pierden al reiniciar")
		return &backend{
			mode:      "demo",
			tx:        store,
			snapshots: store,
			products:  store.Products(),
			purchases: store.Purchases(),
			usage:     store.Usage(),
			returns:   store.Returns(),
			orders:    store.Orders(),
			users:     store.Users(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, lg.Component("postgres"))
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	runner := postgres.NewTxRunner(pool)
	return &backend{
		mode:      "postgres",
		tx:        runner,
		snapshots: runner,
		products:  runner.Products(),
		purchases: runner.Purchases(),
		usage:     runner.Usage(),
		returns:   runner.Returns(),
		orders:    runner.Orders(),
		users:     runner.Users(),
		close:     pool.Close,
	}, nil
}
