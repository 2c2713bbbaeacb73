package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"dealership-backend/internal/handler"
	"dealership-backend/internal/middleware"
	"dealership-backend/internal/model"
	"dealership-backend/internal/repository"
	"dealership-backend/internal/service"
	"dealership-backend/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{},
		&model.Car{},
		&model.CarPhoto{},
		&model.Customer{},
		&model.CustomerInterest{},
		&model.TestDrive{},
		&model.Expense{},
		&model.Sale{},
	)

	// 3. Seed default owner account
	seedOwner(db)

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	carRepo := repository.NewCarRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	testDriveRepo := repository.NewTestDriveRepo(db)
	txm := repository.NewTxManager(db)

	authService := service.NewAuthService(userRepo)
	carService := service.NewCarService(carRepo)
	customerService := service.NewCustomerService(customerRepo)
	expenseService := service.NewExpenseService(expenseRepo, carRepo)
	saleService := service.NewSaleService(saleRepo, carRepo, customerRepo, txm)
	testDriveService := service.NewTestDriveService(testDriveRepo, carRepo, customerRepo)
	dashboardService := service.NewDashboardService(carRepo, saleRepo, customerRepo)

	authHandler := handler.NewAuthHandler(authService)
	carHandler := handler.NewCarHandler(carService)
	customerHandler := handler.NewCustomerHandler(customerService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	saleHandler := handler.NewSaleHandler(saleService)
	testDriveHandler := handler.NewTestDriveHandler(testDriveService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	userHandler := handler.NewUserHandler(userRepo)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Dealership Backoffice v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Cars
	protected.Get("/cars", carHandler.GetCars)
	protected.Get("/cars/:id", carHandler.GetCar)
	protected.Post("/cars", middleware.RequireNotRoles(model.RoleViewer, model.RoleMechanic), carHandler.CreateCar)
	protected.Put("/cars/:id", middleware.RequireNotRoles(model.RoleViewer), carHandler.UpdateCar)
	protected.Delete("/cars/:id", middleware.RequireRoles(model.RoleOwner), carHandler.DeleteCar)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Post("/customers", middleware.RequireNotRoles(model.RoleViewer), customerHandler.CreateCustomer)
	protected.Put("/customers/:id", middleware.RequireNotRoles(model.RoleViewer), customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequireRoles(model.RoleOwner), customerHandler.DeleteCustomer)

	// Expenses
	protected.Get("/expenses", expenseHandler.GetExpenses)
	protected.Post("/expenses", middleware.RequireNotRoles(model.RoleViewer), expenseHandler.CreateExpense)
	protected.Put("/expenses/:id", middleware.RequireNotRoles(model.RoleViewer), expenseHandler.UpdateExpense)
	protected.Delete("/expenses/:id", middleware.RequireRoles(model.RoleOwner, model.RoleSalesperson), expenseHandler.DeleteExpense)

	// Sales
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", middleware.RequireNotRoles(model.RoleViewer, model.RoleMechanic), saleHandler.CreateSale)
	protected.Put("/sales/:id", middleware.RequireNotRoles(model.RoleViewer), saleHandler.UpdateSale)
	protected.Delete("/sales/:id", middleware.RequireRoles(model.RoleOwner), saleHandler.DeleteSale)

	// Reports
	protected.Get("/reports/sales", saleHandler.SalesReport)

	// Test drives
	protected.Get("/test-drives", testDriveHandler.GetTestDrives)
	protected.Post("/test-drives", middleware.RequireNotRoles(model.RoleViewer), testDriveHandler.CreateTestDrive)

	// Users (assignment dropdowns)
	protected.Get("/users", userHandler.GetUsers)

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}

// seedOwner creates the default OWNER account on first boot so the
// stand has a working login before any users are registered.
func seedOwner(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("SEED_OWNER_EMAIL")
	if email == "" {
		email = "owner@dealership.local"
	}
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("SEED_OWNER_PASSWORD")
	if password == "" {
		password = "owner123"
	}

	owner := &model.User{
		Name:  "Owner",
		Email: email,
		Role:  model.RoleOwner,
	}
	if err := owner.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}

	if err := userRepo.Create(owner); err != nil {
		log.Printf("Warning: Failed to create owner user: %v", err)
	} else {
		log.Printf("✅ Owner user created: %s", email)
	}
}
