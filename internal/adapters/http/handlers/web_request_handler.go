package handlers

import (
	"errors"
	"fmt"

	"patitas-adopciones/internal/adapters/http/middleware"
	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// WebRequestHandler handles the adoption request pages
type WebRequestHandler struct {
	requestService *services.RequestService
	petService     *services.PetService
	sess           *middleware.Session
}

// NewWebRequestHandler creates a new web request handler
func NewWebRequestHandler(requestService *services.RequestService, petService *services.PetService, sess *middleware.Session) *WebRequestHandler {
	return &WebRequestHandler{
		requestService: requestService,
		petService:     petService,
		sess:           sess,
	}
}

// NewPage renders the questionnaire form for a pet
func (h *WebRequestHandler) NewPage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	pet, err := h.loadPet(c)
	if err != nil {
		return err
	}

	if !pet.IsAvailable() {
		h.sess.Flash(c, "warning", "Esta mascota ya no está disponible para adopción.")
		return c.Redirect(fmt.Sprintf("/mascotas/%d", pet.ID))
	}

	requested, err := h.requestService.HasRequested(c.Context(), user.ID, pet.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if requested {
		h.sess.Flash(c, "info", "Ya has enviado una solicitud para esta mascota.")
		return c.Redirect("/solicitudes/mis-solicitudes")
	}

	return c.Render("solicitudes/nueva", viewData(c, h.sess, fiber.Map{
		"Mascota": pet,
	}))
}

// Create processes the questionnaire form and files the request
func (h *WebRequestHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	pet, err := h.loadPet(c)
	if err != nil {
		return err
	}

	questionnaire := models.Questionnaire{
		"vivienda_tipo":          c.FormValue("vivienda_tipo"),
		"vivienda_propia":        c.FormValue("vivienda_propia"),
		"tiene_jardin":           c.FormValue("tiene_jardin") == "si",
		"tiene_mascotas":         c.FormValue("tiene_mascotas") == "si",
		"mascotas_detalles":      c.FormValue("mascotas_detalles"),
		"experiencia_previa":     c.FormValue("experiencia_previa"),
		"horas_solo":             c.FormValue("horas_solo"),
		"motivo_adopcion":        c.FormValue("motivo_adopcion"),
		"compromiso_gastos":      c.FormValue("compromiso_gastos") == "si",
		"compromiso_tiempo":      c.FormValue("compromiso_tiempo") == "si",
		"emergencia_veterinaria": c.FormValue("emergencia_veterinaria"),
		"referencias":            c.FormValue("referencias"),
	}

	_, err = h.requestService.Create(c.Context(), user.ID, pet.ID, questionnaire)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPetNotAvailable):
			h.sess.Flash(c, "warning", "Esta mascota ya no está disponible para adopción.")
			return c.Redirect(fmt.Sprintf("/mascotas/%d", pet.ID))
		case errors.Is(err, services.ErrAlreadyRequested):
			h.sess.Flash(c, "info", "Ya has enviado una solicitud para esta mascota.")
			return c.Redirect("/solicitudes/mis-solicitudes")
		default:
			h.sess.Flash(c, "danger", "Error al enviar la solicitud.")
			return c.Redirect(fmt.Sprintf("/solicitudes/nueva/%d", pet.ID))
		}
	}

	h.sess.Flash(c, "success", fmt.Sprintf("¡Solicitud enviada con éxito para %s! Revisaremos tu solicitud pronto.", pet.Nombre))
	return c.Redirect("/solicitudes/mis-solicitudes")
}

// Mine lists the current user's requests, newest first
func (h *WebRequestHandler) Mine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	requests, err := h.requestService.ListMine(c.Context(), user.ID, true)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("solicitudes/mis_solicitudes", viewData(c, h.sess, fiber.Map{
		"Solicitudes": requests,
	}))
}

// Detail shows one request to its owner or an admin
func (h *WebRequestHandler) Detail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	request, err := h.requestService.GetForUser(c.Context(), uint(id), user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return fiber.ErrNotFound
		case errors.Is(err, services.ErrRequestForbidden):
			h.sess.Flash(c, "danger", "No tienes permiso para ver esta solicitud.")
			return c.Redirect("/solicitudes/mis-solicitudes")
		default:
			return fiber.ErrInternalServerError
		}
	}

	return c.Render("solicitudes/detalle", viewData(c, h.sess, fiber.Map{
		"Solicitud": request,
	}))
}

// AdminList shows every request to administrators
func (h *WebRequestHandler) AdminList(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin() {
		h.sess.Flash(c, "danger", "No tienes permisos para acceder a esta página.")
		return c.Redirect("/solicitudes/mis-solicitudes")
	}

	estado := c.Query("estado")

	requests, err := h.requestService.AdminList(c.Context(), estado)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("solicitudes/admin/lista", viewData(c, h.sess, fiber.Map{
		"Solicitudes":  requests,
		"EstadoFiltro": estado,
	}))
}

// AdminReviewPage shows the full request to an administrator
func (h *WebRequestHandler) AdminReviewPage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin() {
		h.sess.Flash(c, "danger", "No tienes permisos para acceder a esta página.")
		return c.Redirect("/solicitudes/mis-solicitudes")
	}

	request, err := h.loadRequest(c, user)
	if err != nil {
		return err
	}

	return c.Render("solicitudes/admin/revisar", viewData(c, h.sess, fiber.Map{
		"Solicitud": request,
	}))
}

// AdminDecide approves or rejects a pending request
func (h *WebRequestHandler) AdminDecide(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin() {
		h.sess.Flash(c, "danger", "No tienes permisos para acceder a esta página.")
		return c.Redirect("/solicitudes/mis-solicitudes")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.ErrNotFound
	}

	accion := c.FormValue("accion")
	comentarios := c.FormValue("comentarios")

	switch accion {
	case "aprobar":
		request, err := h.requestService.Approve(c.Context(), uint(id), user.ID, comentarios)
		if err != nil {
			return h.decideError(c, err)
		}
		h.sess.Flash(c, "success", fmt.Sprintf("Solicitud aprobada. %s ha adoptado a %s.",
			request.Usuario.Nombre, request.Mascota.Nombre))
	case "rechazar":
		if _, err := h.requestService.Reject(c.Context(), uint(id), user.ID, comentarios); err != nil {
			return h.decideError(c, err)
		}
		h.sess.Flash(c, "info", "Solicitud rechazada.")
	default:
		h.sess.Flash(c, "danger", "Acción no válida.")
		return c.Redirect(fmt.Sprintf("/solicitudes/admin/revisar/%d", id))
	}

	return c.Redirect("/solicitudes/admin")
}

// decideError maps decision failures to flashes
func (h *WebRequestHandler) decideError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrRequestNotFound):
		return fiber.ErrNotFound
	case errors.Is(err, services.ErrAlreadyDecided):
		h.sess.Flash(c, "warning", "Esta solicitud ya fue revisada.")
		return c.Redirect("/solicitudes/admin")
	default:
		h.sess.Flash(c, "danger", "Error al revisar la solicitud.")
		return c.Redirect("/solicitudes/admin")
	}
}

// loadRequest fetches the request named in the route for an admin
func (h *WebRequestHandler) loadRequest(c *fiber.Ctx, user *models.User) (*models.AdoptionRequest, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrNotFound
	}

	request, err := h.requestService.GetForUser(c.Context(), uint(id), user)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, fiber.ErrInternalServerError
	}
	return request, nil
}

// loadPet fetches the pet named in the route, 404 on miss
func (h *WebRequestHandler) loadPet(c *fiber.Ctx) (*models.Pet, error) {
	id, err := c.ParamsInt("mascota_id")
	if err != nil || id < 1 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mascota no encontrada")
	}

	pet, err := h.petService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Mascota no encontrada")
		}
		return nil, fiber.ErrInternalServerError
	}
	return pet, nil
}
