package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-marketplace-ws/internal/cache"
	"go-marketplace-ws/internal/config"
	"go-marketplace-ws/internal/handler"
	"go-marketplace-ws/internal/middleware"
	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"
	"go-marketplace-ws/internal/service"
	"go-marketplace-ws/internal/ws"
	"go-marketplace-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.Connect(cfg.PostgresDSN)
	// Auto Migrate (use a dedicated migration tool for production rollouts)
	db.AutoMigrate(
		&model.Organization{}, &model.Branch{}, &model.BranchHours{},
		&model.ProductGroup{}, &model.Product{},
		&model.Order{}, &model.OrderItem{}, &model.CartItem{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Optional redis-backed storefront cache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = cache.New(cfg.RedisAddr)
	}
	storefront := cache.NewStorefront(rdb, cfg.StorefrontCacheTTL)

	// 6. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	orgRepo := repository.NewOrganizationRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	cartRepo := repository.NewCartRepo(db)
	hoursRepo := repository.NewHoursRepo(db)
	stockStore := repository.NewStockStore(db)

	authService := service.NewAuthService(userRepo, roleRepo, privilegeRepo)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)
	catalogService := service.NewCatalogService(productRepo, db, storefront, wsHub)
	cartService := service.NewCartService(cartRepo, productRepo)
	hoursService := service.NewHoursService(hoursRepo, orgRepo)
	stockService := service.NewStockService(stockStore)
	orderService := service.NewOrderService(orderRepo, cartRepo, orgRepo, hoursService, stockService, storefront, wsHub)
	dashService := service.NewDashboardService(orderRepo, productRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	orgHandler := handler.NewOrganizationHandler(orgRepo)
	hoursHandler := handler.NewHoursHandler(hoursService)
	dashHandler := handler.NewDashboardHandler(dashService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Marketplace Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Customer storefront browsing needs no account
	api.Get("/branches/:branchId/storefront", catalogHandler.Storefront)
	api.Get("/branches/:branchId/hours", hoursHandler.GetBranchHours)

	// Pure pre-flight check for status-change UIs
	api.Post("/orders/validate-transition", orderHandler.ValidateTransition)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Cart + checkout (customer)
	protected.Get("/cart", middleware.RequirePrivilege("cart:use"), cartHandler.GetCart)
	protected.Post("/cart", middleware.RequirePrivilege("cart:use"), cartHandler.AddLine)
	protected.Put("/cart/:id", middleware.RequirePrivilege("cart:use"), cartHandler.UpdateLine)
	protected.Delete("/cart/:id", middleware.RequirePrivilege("cart:use"), cartHandler.RemoveLine)
	protected.Delete("/cart", middleware.RequirePrivilege("cart:use"), cartHandler.ClearCart)
	protected.Post("/orders/checkout", middleware.RequirePrivilege("order:place"), orderHandler.Checkout)
	protected.Get("/orders/mine", middleware.RequirePrivilege("order:view"), orderHandler.GetMyOrders)
	protected.Get("/orders/:id", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)

	// Seller order management
	protected.Get("/branches/:branchId/orders", middleware.RequirePrivilege("order:update_status"), orderHandler.GetBranchOrders)
	protected.Put("/orders/:id/status", middleware.RequirePrivilege("order:update_status"), orderHandler.UpdateStatus)

	// Catalog management (seller)
	seller := protected.Group("", middleware.RequireOrganization())
	seller.Get("/products", middleware.RequirePrivilege("product:view"), catalogHandler.GetProducts)
	seller.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	seller.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	seller.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)
	seller.Post("/product-groups", middleware.RequirePrivilege("product:create"), catalogHandler.CreateGroup)
	seller.Get("/product-groups/:id", middleware.RequirePrivilege("product:view"), catalogHandler.GetGroup)

	// Tenancy + hours
	protected.Post("/organizations", middleware.RequirePrivilege("user:create"), orgHandler.CreateOrganization)
	protected.Get("/organizations/:id", middleware.RequirePrivilege("organization:view"), orgHandler.GetOrganization)
	seller.Post("/branches", middleware.RequirePrivilege("branch:manage"), orgHandler.CreateBranch)
	seller.Get("/branches", middleware.RequirePrivilege("branch:manage"), orgHandler.GetBranches)
	seller.Post("/branch-hours", middleware.RequirePrivilege("hours:manage"), hoursHandler.SetWindow)
	seller.Delete("/branch-hours/:id", middleware.RequirePrivilege("hours:manage"), hoursHandler.DeleteWindow)

	// Dashboard
	seller.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStats)
	seller.Get("/dashboard/order-counts", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetOrderCounts)
	seller.Get("/dashboard/revenue", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetRevenueSeries)
	seller.Get("/dashboard/low-stock", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetLowStock)

	// User management (admin)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles + privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
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

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
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
	if rdb != nil {
		_ = rdb.Close()
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("ADMIN role assigned all privileges")
	}

	// SELLER and CUSTOMER get their scoped sets
	sellerRole, err := roleRepo.FindByCode(model.RoleSeller)
	if err == nil && len(sellerRole.Privileges) == 0 {
		sellerPrivileges, _ := privilegeRepo.FindByCodes(model.SellerPrivilegeCodes)
		db.Model(sellerRole).Association("Privileges").Replace(sellerPrivileges)
		log.Println("SELLER role assigned catalog/order privileges")
	}

	customerRole, err := roleRepo.FindByCode(model.RoleCustomer)
	if err == nil && len(customerRole.Privileges) == 0 {
		customerPrivileges, _ := privilegeRepo.FindByCodes(model.CustomerPrivilegeCodes)
		db.Model(customerRole).Association("Privileges").Replace(customerPrivileges)
		log.Println("CUSTOMER role assigned cart/order privileges")
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Platform Administrator",
			RoleID:     &adminRole.ID,
			IsActive:   true,
			Privileges: adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (ADMIN)")
		}
	}
}
