// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"fwp/internal/handlers"
	"fwp/internal/middleware"
	"fwp/internal/models"
	"fwp/internal/repositories"
	"fwp/internal/services/auth"
	"fwp/internal/services/card"
	"fwp/internal/services/settlement"
	"fwp/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App) {
	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)

	// Initialize services in dependency order
	authService := auth.NewService(userRepo)
	cardService := card.NewService()
	walletService := wallet.NewService(walletRepo, repositories.CacheService, cardService)
	settlementService := settlement.NewService(walletRepo, repositories.CacheService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	adminHandler := handlers.NewAdminHandler(settlementService, walletService, walletRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(userRepo)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)

	setupWalletRoutes(protected, walletHandler)
	setupAdminRoutes(protected, adminHandler)
}

func setupWalletRoutes(router fiber.Router, h *handlers.WalletHandler) {
	wallet := router.Group("/wallet")

	wallet.Get("/", middleware.HasPermission(models.PermissionWalletRead), h.GetWallet)
	wallet.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), h.GetTransactions)
	wallet.Get("/transactions/:transactionId", middleware.HasPermission(models.PermissionTransactionRead), h.GetTransaction)
	wallet.Post("/deposit", middleware.HasPermission(models.PermissionWalletWrite), h.RequestDeposit)
	wallet.Post("/withdraw", middleware.HasPermission(models.PermissionWalletWrite), h.RequestWithdrawal)
	wallet.Put("/withdrawal-method", middleware.HasPermission(models.PermissionWalletWrite), h.UpdateWithdrawalMethod)
	wallet.Put("/pin", middleware.HasPermission(models.PermissionWalletWrite), h.SetPin)
	wallet.Post("/verify-pin", middleware.HasPermission(models.PermissionWalletRead), h.VerifyPin)
}

func setupAdminRoutes(router fiber.Router, h *handlers.AdminHandler) {
	admin := router.Group("/admin", middleware.AdminAuthMiddleware)

	admin.Get("/settlements", h.ListSettlements)
	admin.Put("/settlements/:transactionId/approve", h.ApproveSettlement)
	admin.Put("/settlements/:transactionId/reject", h.RejectSettlement)

	admin.Get("/wallets", h.ListWallets)
	admin.Post("/wallets/:userId/earnings", h.CreditEarnings)
	admin.Get("/summary", h.GetSummary)
}
