package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	registrationController "lombaku_backend/internals/features/registrations/registration/controller"
	authMiddleware "lombaku_backend/internals/middlewares/auth"
)

func RegistrationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := registrationController.NewRegistrationController(db)

	registrations := user.Group("/registrations")
	registrations.Get("/", ctrl.ListMine)
	registrations.Get("/:id", ctrl.Detail)

	// Mendaftar lomba menuntut profil lengkap & terverifikasi.
	registrations.Post("/",
		authMiddleware.ProfileRequired(db),
		authMiddleware.VerificationRequired(db),
		ctrl.Register)
}

func RegistrationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := registrationController.NewRegistrationController(db)

	admin.Get("/competitions/:id/registrations", ctrl.ListByCompetition)
}
