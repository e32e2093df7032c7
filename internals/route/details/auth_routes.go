package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	authController "kelasku_backend/internals/features/users/auth/controller"
	"kelasku_backend/internals/middlewares"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// AuthRoutes: endpoint publik register/login + endpoint akun ber-token.
func AuthRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	ctrl := authController.NewAuthController(db, cfg)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db, cfg.JWTSecret))
	protected.Get("/verify", ctrl.Verify)
	protected.Get("/profile", ctrl.GetProfile)
	protected.Patch("/profile", ctrl.UpdateProfile)
	protected.Delete("/delete-user", ctrl.DeleteUser)
}
