package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileController "lombaku_backend/internals/features/users/profile/controller"
)

func ProfileUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := profileController.NewProfileController(db)

	profile := user.Group("/profile")
	profile.Get("/", ctrl.GetMine)
	profile.Put("/", ctrl.SaveMine)
	profile.Get("/missing-fields", ctrl.MissingFields)
	profile.Post("/documents/:jenis", ctrl.UploadDocument)
}
