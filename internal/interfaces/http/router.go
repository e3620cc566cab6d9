package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratera/pos-api/internal/application/auth"
	"github.com/stratera/pos-api/internal/application/reports"
	"github.com/stratera/pos-api/internal/application/sales"
	"github.com/stratera/pos-api/internal/application/usecase"
	"github.com/stratera/pos-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CheckoutUC   *sales.CheckoutUseCase
	ReceiptPDFUC *sales.ReceiptPDFUseCase
	ReportUC     *reports.ReportUseCase
	ExportUC     *reports.ExportUseCase
	DashboardUC  *reports.DashboardUseCase
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	UserUC       *usecase.UserUseCase
	SettingsUC   *usecase.SettingsUseCase
	ActivityUC   *usecase.ActivityUseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registers the API routes. Everything except login sits behind the
// auth middleware; management surfaces additionally require manager or admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)

	manager := RequireRole(entity.RoleManager)
	admin := RequireRole() // admin passes implicitly

	// Sales (any authenticated role can ring a sale)
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.ReceiptPDFUC, deps.DashboardUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.ReceiptPDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Reports and exports (manager+)
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	reportsGroup := protected.Group("/reports", manager)
	reportsGroup.Get("/summary", reportHandler.Summary)
	reportsGroup.Get("/top-products", reportHandler.TopProducts)
	reportsGroup.Get("/payment-methods", reportHandler.PaymentMethods)
	reportsGroup.Get("/daily-trend", reportHandler.DailyTrend)
	reportsGroup.Get("/stock-status", reportHandler.StockStatus)
	reportsGroup.Get("/export/sales", reportHandler.ExportSales)
	reportsGroup.Get("/export/inventory", reportHandler.ExportInventory)

	// Products: reads for everyone, writes for manager+
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)
	products.Post("/:id/restock", manager, productHandler.Restock)

	// Categories: reads for everyone, writes for manager+
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Put("/:id", manager, categoryHandler.Update)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Suppliers (manager+)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers", manager)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Users (admin only)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admin)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Settings: read for everyone, update for admin
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", admin, settingsHandler.Update)

	// Activity trail (manager+)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", manager, activityHandler.List)
}
