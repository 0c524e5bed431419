package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	competitionRoutes "lombaku_backend/internals/features/competitions/competition/routes"
	paymentRoutes "lombaku_backend/internals/features/registrations/payment/routes"
	registrationRoutes "lombaku_backend/internals/features/registrations/registration/routes"
	teamRoutes "lombaku_backend/internals/features/registrations/team/routes"
	authRoutes "lombaku_backend/internals/features/users/auth/routes"
	profileRoutes "lombaku_backend/internals/features/users/profile/routes"
	authMiddleware "lombaku_backend/internals/middlewares/auth"
)

// SetupRoutes merangkai seluruh endpoint:
//   - /api/auth : publik (register, login) dengan rate limiter khusus
//   - /api/u    : user login (profil, kompetisi, tim, registrasi, pembayaran)
//   - /api/a    : admin (verifikasi, kelola kompetisi, review pembayaran)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up AUTH routes...")
	auth := app.Group("/api/auth")
	authRoutes.AuthRoutes(auth, db)

	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	authRoutes.AuthUserRoutes(user, db)
	profileRoutes.ProfileUserRoutes(user, db)
	competitionRoutes.CompetitionUserRoutes(user, db)
	teamRoutes.TeamUserRoutes(user, db)
	registrationRoutes.RegistrationUserRoutes(user, db)
	paymentRoutes.PaymentUserRoutes(user, db)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db), authMiddleware.IsAdmin())
	profileRoutes.ProfileAdminRoutes(admin, db)
	competitionRoutes.CompetitionAdminRoutes(admin, db)
	registrationRoutes.RegistrationAdminRoutes(admin, db)
	paymentRoutes.PaymentAdminRoutes(admin, db)

	log.Println("✅ Semua route terpasang")
}
