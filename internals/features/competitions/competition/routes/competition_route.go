package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	competitionController "lombaku_backend/internals/features/competitions/competition/controller"
)

func CompetitionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := competitionController.NewCompetitionController(db)

	competitions := user.Group("/competitions")
	competitions.Get("/", ctrl.List)
	competitions.Get("/:id", ctrl.Detail)
	competitions.Get("/:id/eligibility", ctrl.CheckMyEligibility)
}

func CompetitionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := competitionController.NewCompetitionController(db)

	competitions := admin.Group("/competitions")
	competitions.Post("/", ctrl.Create)
	competitions.Put("/:id", ctrl.Update)
	competitions.Delete("/:id", ctrl.Delete)
}
