package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/application/analytics"
	"github.com/jhoicas/sucursal-api/internal/application/auth"
	"github.com/jhoicas/sucursal-api/internal/application/billing"
	"github.com/jhoicas/sucursal-api/internal/application/report"
	"github.com/jhoicas/sucursal-api/internal/application/transfer"
	"github.com/jhoicas/sucursal-api/internal/application/usecase"
	"github.com/jhoicas/sucursal-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	BranchUC    *usecase.BranchUseCase
	UserUC      *usecase.UserUseCase
	MovementUC  *usecase.MovementUseCase
	TransferUC  *transfer.UseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	ReportUC    *report.UseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manageRoles := RequireRole(entity.RoleAdmin, entity.RoleManager)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/stock", productHandler.AdjustStock)
	products.Delete("/:id", manageRoles, productHandler.Delete)

	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", manageRoles, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", manageRoles, branchHandler.Delete)

	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	// Static route before the :id wildcard.
	transfers.Get("/stats", transferHandler.Stats)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id/cancel", transferHandler.Cancel)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", manageRoles, invoiceHandler.Delete)

	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)

	movements := protected.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/profit-loss", reportHandler.ProfitLoss)
	reports.Get("/payments", reportHandler.Payments)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
