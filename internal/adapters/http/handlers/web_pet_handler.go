package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"patitas-adopciones/internal/adapters/http/middleware"
	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// WebPetHandler handles the public catalog and the admin pet pages
type WebPetHandler struct {
	petService *services.PetService
	storage    services.PhotoStorage
	sess       *middleware.Session
}

// NewWebPetHandler creates a new web pet handler
func NewWebPetHandler(petService *services.PetService, storage services.PhotoStorage, sess *middleware.Session) *WebPetHandler {
	return &WebPetHandler{
		petService: petService,
		storage:    storage,
		sess:       sess,
	}
}

// Catalog renders the public catalog of available pets
func (h *WebPetHandler) Catalog(c *fiber.Ctx) error {
	filter := &repositories.CatalogFilter{
		Especie: c.Query("especie"),
		Tamano:  c.Query("tamano"),
		Sexo:    c.Query("sexo"),
	}

	edadFiltro := c.Query("edad")
	if edadFiltro != "" {
		// Non-numeric age filters are silently ignored
		if edad, err := strconv.Atoi(edadFiltro); err == nil {
			filter.EdadMax = &edad
		}
	}

	pets, species, err := h.petService.Catalog(c.Context(), filter)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("mascotas/catalogo", viewData(c, h.sess, fiber.Map{
		"Mascotas":      pets,
		"Especies":      species,
		"EspecieFiltro": filter.Especie,
		"TamanoFiltro":  filter.Tamano,
		"SexoFiltro":    filter.Sexo,
		"EdadFiltro":    edadFiltro,
	}))
}

// Detail renders one pet. Any state is viewable.
func (h *WebPetHandler) Detail(c *fiber.Ctx) error {
	pet, err := h.loadPet(c)
	if err != nil {
		return err
	}

	return c.Render("mascotas/detalle", viewData(c, h.sess, fiber.Map{
		"Mascota": pet,
	}))
}

// AdminList renders the admin panel with every pet
func (h *WebPetHandler) AdminList(c *fiber.Ctx) error {
	filter := &repositories.AdminListFilter{
		Estado:  c.Query("estado"),
		OrderBy: c.Query("orden", "id"),
		Desc:    c.Query("dir", "asc") == "desc",
	}

	pets, err := h.petService.AdminList(c.Context(), filter)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Render("mascotas/admin/lista", viewData(c, h.sess, fiber.Map{
		"Mascotas":     pets,
		"EstadoFiltro": filter.Estado,
		"OrdenCampo":   filter.OrderBy,
		"OrdenDir":     c.Query("dir", "asc"),
	}))
}

// AdminNewPage renders the empty pet form
func (h *WebPetHandler) AdminNewPage(c *fiber.Ctx) error {
	return c.Render("mascotas/admin/form", viewData(c, h.sess, fiber.Map{
		"Mascota": nil,
	}))
}

// AdminCreate processes the pet creation form
func (h *WebPetHandler) AdminCreate(c *fiber.Ctx) error {
	input := h.formInput(c)

	if err := h.attachPhoto(c, input); err != nil {
		h.sess.Flash(c, "danger", "Error al subir la foto.")
		return c.Render("mascotas/admin/form", viewData(c, h.sess, fiber.Map{"Mascota": nil}))
	}

	pet, err := h.petService.Create(c.Context(), input)
	if err != nil {
		if verr, ok := services.AsValidation(err); ok {
			h.sess.Flash(c, "danger", verr.Message)
		} else {
			h.sess.Flash(c, "danger", "Error al crear la mascota.")
		}
		return c.Render("mascotas/admin/form", viewData(c, h.sess, fiber.Map{"Mascota": nil}))
	}

	h.sess.Flash(c, "success", fmt.Sprintf("Mascota %q creada exitosamente.", pet.Nombre))
	return c.Redirect("/mascotas/admin")
}

// AdminEditPage renders the pet form with current values
func (h *WebPetHandler) AdminEditPage(c *fiber.Ctx) error {
	pet, err := h.loadPet(c)
	if err != nil {
		return err
	}

	return c.Render("mascotas/admin/form", viewData(c, h.sess, fiber.Map{
		"Mascota": pet,
	}))
}

// AdminUpdate processes the pet edit form
func (h *WebPetHandler) AdminUpdate(c *fiber.Ctx) error {
	pet, err := h.loadPet(c)
	if err != nil {
		return err
	}

	input := h.formInput(c)
	input.Estado = c.FormValue("estado")

	oldPhoto := ""
	if pet.FotoURL != nil {
		oldPhoto = *pet.FotoURL
	}

	if err := h.attachPhoto(c, input); err != nil {
		h.sess.Flash(c, "danger", "Error al subir la foto.")
		return c.Render("mascotas/admin/form", viewData(c, h.sess, fiber.Map{"Mascota": pet}))
	}

	updated, err := h.petService.Update(c.Context(), pet.ID, input)
	if err != nil {
		if verr, ok := services.AsValidation(err); ok {
			h.sess.Flash(c, "danger", verr.Message)
		} else {
			h.sess.Flash(c, "danger", "Error al actualizar la mascota.")
		}
		return c.Render("mascotas/admin/form", viewData(c, h.sess, fiber.Map{"Mascota": pet}))
	}

	// The replaced photo is removed best-effort once the row is saved
	if h.storage != nil && oldPhoto != "" && input.FotoURL != oldPhoto {
		h.storage.Delete(c.Context(), oldPhoto)
	}

	h.sess.Flash(c, "success", fmt.Sprintf("Mascota %q actualizada exitosamente.", updated.Nombre))
	return c.Redirect("/mascotas/admin")
}

// AdminDelete removes a pet without adoption requests
func (h *WebPetHandler) AdminDelete(c *fiber.Ctx) error {
	pet, err := h.loadPet(c)
	if err != nil {
		return err
	}

	if err := h.petService.Delete(c.Context(), pet.ID); err != nil {
		if errors.Is(err, services.ErrPetHasRequests) {
			h.sess.Flash(c, "danger", fmt.Sprintf("No se puede eliminar %q porque tiene solicitudes de adopción asociadas.", pet.Nombre))
		} else {
			h.sess.Flash(c, "danger", "Error al eliminar la mascota.")
		}
		return c.Redirect("/mascotas/admin")
	}

	if h.storage != nil && pet.FotoURL != nil {
		h.storage.Delete(c.Context(), *pet.FotoURL)
	}

	h.sess.Flash(c, "success", fmt.Sprintf("Mascota %q eliminada exitosamente.", pet.Nombre))
	return c.Redirect("/mascotas/admin")
}

// loadPet fetches the pet named in the route, 404 on miss
func (h *WebPetHandler) loadPet(c *fiber.Ctx) (*models.Pet, error) {
	id, err := c.ParamsInt("id")
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

// formInput reads the pet form fields
func (h *WebPetHandler) formInput(c *fiber.Ctx) *services.PetInput {
	return &services.PetInput{
		Nombre:       c.FormValue("nombre"),
		Especie:      c.FormValue("especie"),
		Raza:         c.FormValue("raza"),
		EdadAprox:    c.FormValue("edad_aprox"),
		Sexo:         c.FormValue("sexo"),
		Tamano:       c.FormValue("tamano"),
		Descripcion:  c.FormValue("descripcion"),
		FotoURL:      c.FormValue("foto_url"),
		Vacunado:     c.FormValue("vacunado") == "on",
		Esterilizado: c.FormValue("esterilizado") == "on",
	}
}

// attachPhoto uploads the multipart foto field, if any, and points the
// input's photo URL at the stored object. Upload happens before the DB
// write so a storage failure never leaves a half-saved pet.
func (h *WebPetHandler) attachPhoto(c *fiber.Ctx, input *services.PetInput) error {
	if h.storage == nil || !h.storage.IsEnabled() {
		return nil
	}

	header, err := c.FormFile("foto")
	if err != nil || header == nil {
		return nil
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := h.storage.Upload(c.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		return err
	}

	input.FotoURL = url
	return nil
}
