package handlers

import (
	"patitas-adopciones/internal/adapters/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// viewData builds the base template data for a page render: the
// logged-in user (or nil) and any queued flash messages
func viewData(c *fiber.Ctx, sess *middleware.Session, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["User"] = middleware.CurrentUser(c)
	data["Flashes"] = sess.Flashes(c)
	return data
}
