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
	"github.com/jhoicas/sucursal-api/internal/application/analytics"
	"github.com/jhoicas/sucursal-api/internal/application/auth"
	"github.com/jhoicas/sucursal-api/internal/application/billing"
	"github.com/jhoicas/sucursal-api/internal/application/report"
	"github.com/jhoicas/sucursal-api/internal/application/transfer"
	"github.com/jhoicas/sucursal-api/internal/application/usecase"
	"github.com/jhoicas/sucursal-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sucursal-api/internal/interfaces/http"
	"github.com/jhoicas/sucursal-api/pkg/config"
	"github.com/jhoicas/sucursal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, branchRepo, txRunner)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	movementUC := usecase.NewMovementUseCase(movementRepo)
	transferUC := transfer.NewUseCase(txRunner, productRepo, branchRepo, transferRepo, userRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, productRepo, branchRepo, invoiceRepo)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, branchRepo, invoiceRepo)
	reportUC := report.NewUseCase(invoiceRepo, paymentRepo, productRepo)
	dashboardUC := analytics.NewDashboardUseCase(invoiceRepo, productRepo, paymentRepo, userRepo, branchRepo)
	authUC := auth.NewUseCase(userRepo, branchRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sucursal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		BranchUC:    branchUC,
		UserUC:      userUC,
		MovementUC:  movementUC,
		TransferUC:  transferUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
