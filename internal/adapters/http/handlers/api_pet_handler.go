package handlers

import (
	"errors"
	"strconv"

	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/core/services"
	"patitas-adopciones/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// APIPetHandler handles the public JSON pet endpoints
type APIPetHandler struct {
	petService *services.PetService
}

// NewAPIPetHandler creates a new API pet handler
func NewAPIPetHandler(petService *services.PetService) *APIPetHandler {
	return &APIPetHandler{petService: petService}
}

// List returns the pets available for adoption
// @Summary List available pets
// @Description Lista todas las mascotas disponibles para adopción
// @Tags mascotas
// @Produce json
// @Param especie query string false "Filtrar por especie"
// @Param raza query string false "Filtrar por raza"
// @Param edad_aprox query int false "Filtrar por años"
// @Param tamano query string false "Filtrar por tamaño"
// @Success 200 {array} models.Pet
// @Router /api/mascotas/ [get]
func (h *APIPetHandler) List(c *fiber.Ctx) error {
	filter := &repositories.CatalogFilter{
		Especie: c.Query("especie"),
		Raza:    c.Query("raza"),
		Tamano:  c.Query("tamano"),
	}

	if raw := c.Query("edad_aprox"); raw != "" {
		if edad, err := strconv.Atoi(raw); err == nil {
			filter.Edad = &edad
		}
	}

	pets, _, err := h.petService.Catalog(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Error interno")
	}

	return response.JSON(c, pets)
}

// Get returns one pet by id
// @Summary Get pet
// @Description Obtiene el detalle de una mascota por ID
// @Tags mascotas
// @Produce json
// @Param id path int true "ID de la mascota"
// @Success 200 {object} models.Pet
// @Failure 404 {object} response.ErrorBody
// @Router /api/mascotas/{id} [get]
func (h *APIPetHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, "Mascota no encontrada")
	}

	pet, err := h.petService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			return response.NotFound(c, "Mascota no encontrada")
		}
		return response.InternalServerError(c, "Error interno")
	}

	return response.JSON(c, pet)
}
