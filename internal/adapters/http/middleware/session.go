package middleware

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session manages cookie sessions for the server-rendered pages
type Session struct {
	store *session.Store
	cfg   *config.Config
}

// NewSession creates the session store for page routes
func NewSession(cfg *config.Config) *Session {
	store := session.New(session.Config{
		KeyLookup:      "cookie:session_id",
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieSameSite: "Lax",
	})

	return &Session{store: store, cfg: cfg}
}

// LoadUser attaches the logged-in user to the request context. Stale
// sessions (deleted or deactivated accounts) are destroyed.
func (s *Session) LoadUser(userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.store.Get(c)
		if err != nil {
			return c.Next()
		}

		userID, ok := sess.Get("user_id").(uint)
		if !ok {
			return c.Next()
		}

		user, err := userRepo.GetByID(c.Context(), userID)
		if err != nil || !user.Activo {
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Next()
			}
			sess.Destroy()
			return c.Next()
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireLogin redirects anonymous visitors to the login page,
// remembering where they were going
func (s *Session) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect("/auth/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		return c.Next()
	}
}

// AdminRequired rejects non-admin users with a flash message
func (s *Session) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Redirect("/auth/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		if !user.IsAdmin() {
			s.Flash(c, "danger", "No tienes permisos para acceder a esta sección")
			return c.Redirect("/mascotas/")
		}
		return c.Next()
	}
}

// Login records the user in the session. With remember the session
// outlives the browser restart for the configured number of days.
func (s *Session) Login(c *fiber.Ctx, userID uint, remember bool) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}

	sess.Set("user_id", userID)
	if remember {
		sess.SetExpiry(time.Duration(s.cfg.Session.RememberDays) * 24 * time.Hour)
	}

	return sess.Save()
}

// Logout destroys the session
func (s *Session) Logout(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Flash queues a one-shot message for the next rendered page
func (s *Session) Flash(c *fiber.Ctx, category, message string) {
	sess, err := s.store.Get(c)
	if err != nil {
		return
	}

	flashes := decodeFlashes(sess.Get("_flashes"))
	flashes = append(flashes, Flash{Category: category, Message: message})

	if data, err := json.Marshal(flashes); err == nil {
		sess.Set("_flashes", string(data))
		sess.Save()
	}
}

// Flashes pops all queued flash messages
func (s *Session) Flashes(c *fiber.Ctx) []Flash {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil
	}

	flashes := decodeFlashes(sess.Get("_flashes"))
	if flashes != nil {
		sess.Delete("_flashes")
		sess.Save()
	}
	return flashes
}

// decodeFlashes parses the JSON flash list stored in the session
func decodeFlashes(raw interface{}) []Flash {
	data, ok := raw.(string)
	if !ok || data == "" {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal([]byte(data), &flashes); err != nil {
		return nil
	}
	return flashes
}

// CurrentUser returns the logged-in user attached by LoadUser, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// SafeNext validates a post-login redirect target. Only relative paths
// within the site are allowed; browsers treat both //host and /\host
// as scheme-relative URLs.
func SafeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, `/\`) {
		return next
	}
	return ""
}
