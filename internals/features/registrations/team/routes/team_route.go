package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teamController "lombaku_backend/internals/features/registrations/team/controller"
	authMiddleware "lombaku_backend/internals/middlewares/auth"
)

func TeamUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := teamController.NewTeamController(db)

	teams := user.Group("/teams")
	teams.Get("/", ctrl.ListMine)
	teams.Get("/:id", ctrl.Detail)
	teams.Get("/:id/completeness", ctrl.Completeness)

	// Membentuk/mendaftarkan tim menuntut profil lengkap & terverifikasi.
	teams.Post("/", authMiddleware.ProfileRequired(db), authMiddleware.VerificationRequired(db), ctrl.Create)
	teams.Post("/:id/members", authMiddleware.ProfileRequired(db), ctrl.AddMember)
	teams.Delete("/:id/members/:user_id", ctrl.RemoveMember)
	teams.Post("/:id/register", authMiddleware.VerificationRequired(db), ctrl.Register)
}
