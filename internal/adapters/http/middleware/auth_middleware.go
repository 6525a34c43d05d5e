package middleware

import (
	"errors"
	"strings"

	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/config"
	"patitas-adopciones/internal/pkg/jwt"
	"patitas-adopciones/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// APIAuth guards the JSON API with a bearer token. On success the
// authenticated user is stored in c.Locals("user").
func APIAuth(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			return response.Unauthorized(c, "Token no proporcionado")
		}

		claims, err := jwt.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Token expirado")
			}
			return response.Unauthorized(c, "Token inválido")
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Usuario no encontrado")
			}
			return response.InternalServerError(c, "Error interno")
		}

		if !user.Activo {
			return response.Unauthorized(c, "Cuenta desactivada")
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)

		return c.Next()
	}
}
