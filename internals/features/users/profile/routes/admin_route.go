package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileController "lombaku_backend/internals/features/users/profile/controller"
)

func ProfileAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := profileController.NewProfileController(db)

	verifications := admin.Group("/verifications")
	verifications.Get("/", ctrl.ListAwaitingVerification)
	verifications.Patch("/:user_id/approve", ctrl.Verify)
	verifications.Patch("/:user_id/revoke", ctrl.Revoke)
}
