package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"lombaku_backend/internals/configs"
	authModel "lombaku_backend/internals/features/users/auth/model"
)

const accessTTLDefault = 24 * time.Hour

// CreateAccessToken menerbitkan JWT HS256 berisi klaim yang dibaca middleware
// auth: user_id, is_admin, exp, iat.
func CreateAccessToken(user *authModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTTLDefault).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	return token, nil
}

// TokenExpiry membaca klaim exp dari token tanpa memverifikasi signature.
// Dipakai saat logout untuk menentukan sampai kapan token perlu di-blacklist;
// token yang tidak bisa dibaca dianggap hidup sepanjang TTL default.
func TokenExpiry(rawToken string) time.Time {
	parser := jwt.Parser{SkipClaimsValidation: true}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawToken, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0)
		}
	}
	return time.Now().Add(accessTTLDefault)
}
