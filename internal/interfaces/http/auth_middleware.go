package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Locals keys para la empresa autenticada en Fiber.
const (
	LocalCompany   = "empresa"
	LocalCompanyID = "company_id"
)

// SessionMiddleware valida el Bearer Token contra la sesión vigente de la empresa y la inyecta en c.Locals.
// Un token bien firmado pero reemplazado por un login posterior (o cerrado con logout) responde 401.
func SessionMiddleware(auth AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "Token requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "Token requerido"})
		}
		company, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalCompany, company)
		c.Locals(LocalCompanyID, company.ID)
		return c.Next()
	}
}

// GetCompany devuelve la empresa autenticada (después de SessionMiddleware).
func GetCompany(c *fiber.Ctx) *entity.Company {
	v, _ := c.Locals(LocalCompany).(*entity.Company)
	return v
}

// GetCompanyID devuelve el id de la empresa autenticada (después de SessionMiddleware).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
