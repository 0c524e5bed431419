// Guard eksplisit pengganti decorator profile_required / verification_required
// di portal lama: dicek di awal handler chain, bukan di dalam handler.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileModel "lombaku_backend/internals/features/users/profile/model"
	helper "lombaku_backend/internals/helpers"
)

// IsAdmin memastikan flag is_admin dari token. Authorization di level boundary;
// service hanya melakukan validasi bisnis.
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helper.IsAdminFromToken(c) {
			return fiber.NewError(fiber.StatusForbidden, "Hanya admin yang dapat mengakses fitur ini")
		}
		return c.Next()
	}
}

// ProfileRequired memblokir user yang profilnya belum 100% lengkap.
// Admin di-bypass, mengikuti perilaku portal lama.
func ProfileRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.IsAdminFromToken(c) {
			return c.Next()
		}
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}

		var p profileModel.UserProfileModel
		if err := db.First(&p, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusForbidden, "Anda harus membuat profil terlebih dahulu")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if p.CompletionPercentage() < 100 {
			return fiber.NewError(fiber.StatusForbidden,
				"Anda harus melengkapi profil hingga 100% sebelum dapat mengakses fitur ini")
		}
		return c.Next()
	}
}

// VerificationRequired memblokir user yang profilnya belum diverifikasi admin.
func VerificationRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.IsAdminFromToken(c) {
			return c.Next()
		}
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}

		var p profileModel.UserProfileModel
		if err := db.First(&p, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusForbidden, "Anda harus membuat profil terlebih dahulu")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if p.CompletionPercentage() < 100 {
			return fiber.NewError(fiber.StatusForbidden,
				"Anda harus melengkapi profil hingga 100% dan menunggu verifikasi admin")
		}
		if !p.IsVerified {
			return fiber.NewError(fiber.StatusForbidden,
				"Profil Anda sedang dalam proses verifikasi admin. Silakan tunggu konfirmasi")
		}
		return c.Next()
	}
}
