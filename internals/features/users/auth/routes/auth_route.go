package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "lombaku_backend/internals/features/users/auth/controller"
	"lombaku_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik /api/auth dengan rate limiter khusus.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	api.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}

// AuthUserRoutes: endpoint auth yang butuh token valid.
func AuthUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	user.Post("/logout", ctrl.Logout)
	user.Get("/me", ctrl.Me)
}
