package middleware

import (
	"strings"

	"folhacred/internal/config"
	"folhacred/internal/core/domain"
	"folhacred/internal/pkg/jwt"
	"folhacred/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set account info in context
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("tipo", claims.Tipo)

		return c.Next()
	}
}

// TipoMiddleware creates account-kind authorization middleware
func TipoMiddleware(allowed ...domain.Tipo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tipo, ok := c.Locals("tipo").(domain.Tipo)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, t := range allowed {
			if tipo == t {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// FuncionarioOnly middleware allows only employee accounts
func FuncionarioOnly() fiber.Handler {
	return TipoMiddleware(domain.TipoFuncionario)
}

// EmpresaOnly middleware allows only company accounts
func EmpresaOnly() fiber.Handler {
	return TipoMiddleware(domain.TipoEmpresa)
}
