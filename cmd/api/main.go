package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shop-pos/internal/handler"
	"go-shop-pos/internal/middleware"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/service"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Product{}, &model.Supplier{}, &model.Customer{},
		&model.Sale{}, &model.Expense{}, &model.AuditLog{},
	); err != nil {
		log.Fatal("Failed to migrate schema. \n", err)
	}

	// 3. Setup websocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// 5. Seed default admin if the user table is empty
	seedDefaultAdmin(userRepo)

	authService := service.NewAuthService(userRepo, auditRepo)
	userService := service.NewUserService(userRepo, auditRepo)
	catalogService := service.NewCatalogService(productRepo, auditRepo, wsHub)
	saleService := service.NewSaleService(productRepo, saleRepo, auditRepo, db, wsHub)
	recordService := service.NewRecordService(expenseRepo, supplierRepo, customerRepo, auditRepo)
	reportService := service.NewReportService(reportRepo, saleRepo, expenseRepo)
	exportService := service.NewExportService(productRepo, saleRepo, expenseRepo, userRepo, supplierRepo, customerRepo, auditRepo, os.Getenv("EXPORT_DIR"))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	saleHandler := handler.NewSaleHandler(saleService)
	recordHandler := handler.NewRecordHandler(recordService)
	reportHandler := handler.NewReportHandler(reportService)
	exportHandler := handler.NewExportHandler(exportService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Shop POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/reset-password", authHandler.ResetPassword)

	// Dashboard and reports (read-only)
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/reports/sales", reportHandler.GetSalesReport)
	protected.Get("/reports/expenses", reportHandler.GetExpenseReport)

	// Catalog and stock
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Post("/products/:sku/adjust-stock", saleHandler.AdjustStock)

	// Sales
	protected.Get("/sales", saleHandler.GetSales)
	protected.Post("/sales", saleHandler.CreateSale)

	// Reference ledgers
	protected.Get("/expenses", recordHandler.GetExpenses)
	protected.Post("/expenses", recordHandler.CreateExpense)
	protected.Get("/suppliers", recordHandler.GetSuppliers)
	protected.Post("/suppliers", recordHandler.CreateSupplier)
	protected.Get("/customers", recordHandler.GetCustomers)
	protected.Post("/customers", recordHandler.CreateCustomer)

	// User management (ADMIN only)
	protected.Get("/users", middleware.RequireRole(model.RoleAdmin), userHandler.GetUsers)
	protected.Post("/users", middleware.RequireRole(model.RoleAdmin), userHandler.CreateUser)

	// Audit log viewer
	protected.Get("/audit-logs", auditHandler.GetAuditLogs)

	// Data export
	protected.Post("/exports", exportHandler.CreateExport)

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaultAdmin creates the default admin account if no users exist yet.
// Deployments must change this password before going live.
func seedDefaultAdmin(userRepo repository.UserRepository) {
	count, err := userRepo.Count()
	if err != nil {
		log.Printf("Warning: failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin := &model.User{
		Username: "admin",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin / admin123")
	}
}
