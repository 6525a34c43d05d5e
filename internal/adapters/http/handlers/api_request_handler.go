package handlers

import (
	"errors"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/core/services"
	"patitas-adopciones/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// APIRequestHandler handles the JSON adoption request endpoints
type APIRequestHandler struct {
	requestService *services.RequestService
}

// NewAPIRequestHandler creates a new API request handler
func NewAPIRequestHandler(requestService *services.RequestService) *APIRequestHandler {
	return &APIRequestHandler{requestService: requestService}
}

// CreateRequestBody represents the request creation body
type CreateRequestBody struct {
	MascotaID    uint                 `json:"mascota_id"`
	Cuestionario models.Questionnaire `json:"cuestionario"`
}

// Mine returns the caller's adoption requests in submission order
// @Summary My requests
// @Description Devuelve las solicitudes del usuario actual
// @Tags solicitudes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.RequestResponse
// @Failure 401 {object} response.ErrorBody
// @Router /api/solicitudes/mias [get]
func (h *APIRequestHandler) Mine(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Token no proporcionado")
	}

	requests, err := h.requestService.ListMine(c.Context(), user.ID, false)
	if err != nil {
		return response.InternalServerError(c, "Error interno")
	}

	out := make([]*models.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, r.ToResponse())
	}
	return response.JSON(c, out)
}

// Create files an adoption request for an available pet
// @Summary Create request
// @Description Crea una solicitud de adopción para una mascota disponible
// @Tags solicitudes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestBody true "Solicitud"
// @Success 201 {object} models.RequestResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /api/solicitudes/ [post]
func (h *APIRequestHandler) Create(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Token no proporcionado")
	}

	var body CreateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Datos inválidos")
	}

	if body.MascotaID == 0 || body.Cuestionario == nil {
		return response.BadRequest(c, "Datos inválidos")
	}

	request, err := h.requestService.Create(c.Context(), user.ID, body.MascotaID, body.Cuestionario)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPetNotFound):
			return response.NotFound(c, "Mascota no encontrada")
		case errors.Is(err, services.ErrPetNotAvailable):
			return response.BadRequest(c, "Mascota no disponible")
		case errors.Is(err, services.ErrAlreadyRequested):
			return response.Conflict(c, "Ya has enviado una solicitud para esta mascota")
		default:
			return response.InternalServerError(c, "Error interno")
		}
	}

	return response.Created(c, request.ToResponse())
}
