// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

// RequireRole menolak request dengan role berbeda (403).
// Dipasang setelah AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.GetRoleFromLocals(c) != role {
			return helper.JsonError(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

func IsTeacher() fiber.Handler { return RequireRole(userModel.RoleTeacher) }
func IsStudent() fiber.Handler { return RequireRole(userModel.RoleStudent) }
