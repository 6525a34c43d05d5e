package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Pet service errors
var (
	ErrPetNotFound    = errors.New("pet not found")
	ErrPetHasRequests = errors.New("pet has adoption requests")
)

// ValidationError carries a user-correctable message for a bad field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation reports whether err is a validation error
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

// PetService handles pet catalog and admin CRUD business logic
type PetService struct {
	petRepo     repositories.PetRepository
	requestRepo repositories.RequestRepository
}

// NewPetService creates a new pet service
func NewPetService(petRepo repositories.PetRepository, requestRepo repositories.RequestRepository) *PetService {
	return &PetService{
		petRepo:     petRepo,
		requestRepo: requestRepo,
	}
}

// PetInput enumerates every settable pet field. Numeric fields arrive
// raw from the form and are validated here.
type PetInput struct {
	Nombre       string
	Especie      string
	Raza         string
	EdadAprox    string
	Sexo         string
	Tamano       string
	Descripcion  string
	FotoURL      string
	Estado       string
	Vacunado     bool
	Esterilizado bool
}

// validate checks the input and returns the parsed age, or nil when blank
func (in *PetInput) validate() (*int, error) {
	if len(strings.TrimSpace(in.Nombre)) < 2 {
		return nil, &ValidationError{Message: "El nombre debe tener al menos 2 caracteres."}
	}
	if len(strings.TrimSpace(in.Especie)) < 2 {
		return nil, &ValidationError{Message: "La especie es obligatoria."}
	}
	if len(strings.TrimSpace(in.Descripcion)) < 10 {
		return nil, &ValidationError{Message: "La descripción debe tener al menos 10 caracteres."}
	}

	raw := strings.TrimSpace(in.EdadAprox)
	if raw == "" {
		return nil, nil
	}
	edad, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ValidationError{Message: "La edad debe ser un número válido."}
	}
	if edad < 0 || edad > 30 {
		return nil, &ValidationError{Message: "La edad debe estar entre 0 y 30 años."}
	}
	return &edad, nil
}

// apply copies the validated input onto a pet row. Blank optional
// fields are normalized to NULL.
func (in *PetInput) apply(pet *models.Pet, edad *int) {
	pet.Nombre = strings.TrimSpace(in.Nombre)
	pet.Especie = strings.TrimSpace(in.Especie)
	pet.Descripcion = strings.TrimSpace(in.Descripcion)
	pet.EdadAprox = edad
	pet.Raza = optional(in.Raza)
	pet.Sexo = optional(in.Sexo)
	pet.Tamano = optional(in.Tamano)
	pet.FotoURL = optional(in.FotoURL)
	pet.Vacunado = in.Vacunado
	pet.Esterilizado = in.Esterilizado
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Catalog lists available pets through the given filter, plus the
// distinct species present for the filter UI
func (s *PetService) Catalog(ctx context.Context, filter *repositories.CatalogFilter) ([]*models.Pet, []string, error) {
	pets, err := s.petRepo.ListAvailable(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	species, err := s.petRepo.ListSpecies(ctx)
	if err != nil {
		return nil, nil, err
	}

	return pets, species, nil
}

// GetByID gets a pet by ID
func (s *PetService) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

// AdminList lists all pets for the admin panel
func (s *PetService) AdminList(ctx context.Context, filter *repositories.AdminListFilter) ([]*models.Pet, error) {
	return s.petRepo.ListAdmin(ctx, filter)
}

// Create validates and persists a new pet. New pets always start
// available, whatever the input says.
func (s *PetService) Create(ctx context.Context, input *PetInput) (*models.Pet, error) {
	edad, err := input.validate()
	if err != nil {
		return nil, err
	}

	pet := &models.Pet{Estado: models.PetAvailable}
	input.apply(pet, edad)

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	log.Printf("✅ Pet created: %s (%s)", pet.Nombre, pet.Especie)
	return pet, nil
}

// Update validates and persists changes to a pet. The state may be set
// to any of the three values; anything else falls back to disponible.
func (s *PetService) Update(ctx context.Context, id uint, input *PetInput) (*models.Pet, error) {
	pet, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	edad, err := input.validate()
	if err != nil {
		return nil, err
	}

	input.apply(pet, edad)
	if models.ValidPetState(input.Estado) {
		pet.Estado = input.Estado
	} else {
		pet.Estado = models.PetAvailable
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}

	return pet, nil
}

// Delete removes a pet. Refused while any adoption request references
// it, whatever the request state.
func (s *PetService) Delete(ctx context.Context, id uint) error {
	pet, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.requestRepo.CountByPet(ctx, pet.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPetHasRequests
	}

	if err := s.petRepo.Delete(ctx, pet.ID); err != nil {
		return err
	}

	log.Printf("✅ Pet deleted: %s", pet.Nombre)
	return nil
}
