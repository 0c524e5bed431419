package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "lombaku_backend/internals/features/registrations/payment/controller"
)

func PaymentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	payment := user.Group("/registrations/:id/payment")
	payment.Get("/", ctrl.GetMine)
	payment.Post("/proof", ctrl.UploadProof)
	payment.Put("/proof", ctrl.EditProof)
	payment.Post("/snap", ctrl.CreateSnapLink)
}

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	admin.Get("/payments/pending", ctrl.ListAwaitingReview)
	admin.Post("/payments/cleanup-overdue", ctrl.CleanupOverdue)
	admin.Patch("/registrations/:id/payment/approve", ctrl.Approve)
	admin.Patch("/registrations/:id/payment/reject", ctrl.Reject)
}
