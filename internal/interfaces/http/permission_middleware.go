package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
)

// RequirePermission devuelve un middleware Fiber que exige el permiso p en el token.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole y LocalPermissions).
//
// Comportamiento:
//   - 401 Unauthorized → token sin rol (sesión emitida antes del esquema de permisos).
//   - 403 Forbidden    → el rol no incluye el permiso; el handler no se ejecuta.
func RequirePermission(p authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye un rol",
			})
		}
		if !GetPermissions(c).Has(p) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene el permiso '" + string(p) + "'",
			})
		}
		return c.Next()
	}
}
