package repositories

import (
	"context"

	"patitas-adopciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Allow-list of admin sort keys mapped to their columns. Anything else
// falls back to ascending by id.
var adminSortColumns = map[string]string{
	"id":      "id",
	"nombre":  "nombre",
	"especie": "especie",
	"raza":    "raza",
	"edad":    "edad_aprox",
	"tamano":  "tamano",
	"estado":  "estado",
}

// petRepository implements PetRepository interface
type petRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

// Create creates a new pet
func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

// GetByID gets a pet by ID
func (r *petRepository) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	var pet models.Pet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pet).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

// Update updates a pet
func (r *petRepository) Update(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

// Delete deletes a pet
func (r *petRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Pet{}, id).Error
}

// ListAvailable lists available pets, newest arrivals first
func (r *petRepository) ListAvailable(ctx context.Context, filter *CatalogFilter) ([]*models.Pet, error) {
	query := r.db.WithContext(ctx).Where("estado = ?", models.PetAvailable)

	if filter != nil {
		if filter.Especie != "" {
			query = query.Where("especie = ?", filter.Especie)
		}
		if filter.Raza != "" {
			query = query.Where("raza = ?", filter.Raza)
		}
		if filter.Sexo != "" {
			query = query.Where("sexo = ?", filter.Sexo)
		}
		if filter.Tamano != "" {
			query = query.Where("tamano = ?", filter.Tamano)
		}
		if filter.EdadMax != nil {
			query = query.Where("edad_aprox <= ?", *filter.EdadMax)
		}
		if filter.Edad != nil {
			query = query.Where("edad_aprox = ?", *filter.Edad)
		}
	}

	var pets []*models.Pet
	err := query.Order("fecha_ingreso DESC").Find(&pets).Error
	return pets, err
}

// ListSpecies returns the distinct non-empty species among available
// pets, alphabetically. Used to build the catalog filter UI.
func (r *petRepository) ListSpecies(ctx context.Context) ([]string, error) {
	var species []string
	err := r.db.WithContext(ctx).Model(&models.Pet{}).
		Where("estado = ? AND especie <> ''", models.PetAvailable).
		Distinct("especie").
		Order("especie ASC").
		Pluck("especie", &species).Error
	return species, err
}

// ListAdmin lists all pets regardless of state, with optional state
// filter and sorting
func (r *petRepository) ListAdmin(ctx context.Context, filter *AdminListFilter) ([]*models.Pet, error) {
	query := r.db.WithContext(ctx).Model(&models.Pet{})

	order := "id ASC"
	if filter != nil {
		if filter.Estado != "" {
			query = query.Where("estado = ?", filter.Estado)
		}
		if column, ok := adminSortColumns[filter.OrderBy]; ok {
			if filter.Desc {
				order = column + " DESC"
			} else {
				order = column + " ASC"
			}
		}
	}

	var pets []*models.Pet
	err := query.Order(order).Find(&pets).Error
	return pets, err
}
