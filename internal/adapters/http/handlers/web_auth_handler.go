package handlers

import (
	"errors"
	"fmt"

	"patitas-adopciones/internal/adapters/http/middleware"
	"patitas-adopciones/internal/core/services"
	"patitas-adopciones/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
)

// WebAuthHandler handles the server-rendered auth pages
type WebAuthHandler struct {
	authService *services.AuthService
	sess        *middleware.Session
}

// NewWebAuthHandler creates a new web auth handler
func NewWebAuthHandler(authService *services.AuthService, sess *middleware.Session) *WebAuthHandler {
	return &WebAuthHandler{
		authService: authService,
		sess:        sess,
	}
}

// RegisterPage renders the registration form
func (h *WebAuthHandler) RegisterPage(c *fiber.Ctx) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect("/")
	}
	return c.Render("auth/registro", viewData(c, h.sess, nil))
}

// Register processes the registration form
func (h *WebAuthHandler) Register(c *fiber.Ctx) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect("/")
	}

	email := c.FormValue("email")
	nombre := c.FormValue("nombre")
	pass := c.FormValue("password")
	passConfirm := c.FormValue("password_confirm")

	if email == "" || nombre == "" || pass == "" {
		h.sess.Flash(c, "danger", "Email, nombre y contraseña son obligatorios.")
		return c.Render("auth/registro", viewData(c, h.sess, nil))
	}

	if pass != passConfirm {
		h.sess.Flash(c, "danger", "Las contraseñas no coinciden.")
		return c.Render("auth/registro", viewData(c, h.sess, nil))
	}

	if !password.Validate(pass) {
		h.sess.Flash(c, "danger", "La contraseña debe tener al menos 6 caracteres.")
		return c.Render("auth/registro", viewData(c, h.sess, nil))
	}

	_, err := h.authService.Register(c.Context(), &services.RegisterInput{
		Email:     email,
		Nombre:    nombre,
		Password:  pass,
		Telefono:  c.FormValue("telefono"),
		Direccion: c.FormValue("direccion"),
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			h.sess.Flash(c, "warning", "El email ya está registrado. Intenta iniciar sesión.")
			return c.Redirect("/auth/login")
		}
		h.sess.Flash(c, "danger", "Error al crear usuario.")
		return c.Render("auth/registro", viewData(c, h.sess, nil))
	}

	h.sess.Flash(c, "success", "¡Registro exitoso! Ya puedes iniciar sesión.")
	return c.Redirect("/auth/login")
}

// LoginPage renders the login form
func (h *WebAuthHandler) LoginPage(c *fiber.Ctx) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect("/")
	}
	return c.Render("auth/login", viewData(c, h.sess, fiber.Map{
		"Next": middleware.SafeNext(c.Query("next")),
	}))
}

// Login processes the login form
func (h *WebAuthHandler) Login(c *fiber.Ctx) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect("/")
	}

	email := c.FormValue("email")
	pass := c.FormValue("password")
	remember := c.FormValue("remember") != ""

	if email == "" || pass == "" {
		h.sess.Flash(c, "danger", "Email y contraseña son obligatorios.")
		return c.Render("auth/login", viewData(c, h.sess, nil))
	}

	user, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    email,
		Password: pass,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.sess.Flash(c, "danger", "Email o contraseña incorrectos.")
		case errors.Is(err, services.ErrAccountDisabled):
			h.sess.Flash(c, "warning", "Tu cuenta ha sido desactivada. Contacta al administrador.")
		default:
			h.sess.Flash(c, "danger", "Error al iniciar sesión.")
		}
		return c.Render("auth/login", viewData(c, h.sess, nil))
	}

	if err := h.sess.Login(c, user.ID, remember); err != nil {
		h.sess.Flash(c, "danger", "Error al iniciar sesión.")
		return c.Render("auth/login", viewData(c, h.sess, nil))
	}

	h.sess.Flash(c, "success", fmt.Sprintf("¡Bienvenido, %s!", user.Nombre))

	if next := middleware.SafeNext(c.Query("next")); next != "" {
		return c.Redirect(next)
	}
	return c.Redirect("/")
}

// Logout closes the session
func (h *WebAuthHandler) Logout(c *fiber.Ctx) error {
	h.sess.Logout(c)
	h.sess.Flash(c, "info", "Has cerrado sesión correctamente.")
	return c.Redirect("/")
}
