// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

// AuthMiddleware memverifikasi bearer JWT lalu me-load user dari DB.
// Identitas hasil resolve ditaruh di Locals untuk handler berikutnya;
// scope kepemilikan selalu diturunkan ulang per request dari sini.
func AuthMiddleware(db *gorm.DB, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := helper.ExtractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims, err := helper.ParseUserToken(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, helper.ErrTokenExpired) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		// Token valid saja belum cukup; user harus masih ada di DB.
		var user userModel.UserModel
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("role", user.Role)
		c.Locals("user_name", user.Name)
		return c.Next()
	}
}
