package handlers

import (
	"errors"

	"patitas-adopciones/internal/core/services"
	"patitas-adopciones/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// APIAuthHandler handles the JSON authentication endpoints
type APIAuthHandler struct {
	authService *services.AuthService
}

// NewAPIAuthHandler creates a new API auth handler
func NewAPIAuthHandler(authService *services.AuthService) *APIAuthHandler {
	return &APIAuthHandler{authService: authService}
}

// APILoginRequest represents the login request body
type APILoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a bearer token
// @Summary Login
// @Description Autenticación de usuario, devuelve JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body APILoginRequest true "Credenciales"
// @Success 200 {object} services.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /api/auth/login [post]
func (h *APIAuthHandler) Login(c *fiber.Ctx) error {
	var req APILoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Email y password son requeridos")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email y password son requeridos")
	}

	result, err := h.authService.LoginWithToken(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Credenciales inválidas")
		case errors.Is(err, services.ErrAccountDisabled):
			return response.Unauthorized(c, "Cuenta desactivada")
		default:
			return response.InternalServerError(c, "Error interno")
		}
	}

	return response.JSON(c, result)
}
