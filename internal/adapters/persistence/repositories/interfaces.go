package repositories

import (
	"context"

	"patitas-adopciones/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	ListAdmins(ctx context.Context) ([]*models.User, error)
}

// CatalogFilter narrows the public pet listings. Zero values mean "no filter".
type CatalogFilter struct {
	Especie string
	Raza    string
	Sexo    string
	Tamano  string
	// EdadMax is an inclusive upper bound (page catalog)
	EdadMax *int
	// Edad is an exact match (API listing)
	Edad *int
}

// AdminListFilter controls the admin pet listing
type AdminListFilter struct {
	Estado  string
	OrderBy string
	Desc    bool
}

// PetRepository defines pet repository interface
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id uint) (*models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id uint) error
	ListAvailable(ctx context.Context, filter *CatalogFilter) ([]*models.Pet, error)
	ListSpecies(ctx context.Context) ([]string, error)
	ListAdmin(ctx context.Context, filter *AdminListFilter) ([]*models.Pet, error)
}

// RequestRepository defines adoption request repository interface
type RequestRepository interface {
	GetByID(ctx context.Context, id uint) (*models.AdoptionRequest, error)
	GetByUserAndPet(ctx context.Context, userID, petID uint) (*models.AdoptionRequest, error)
	ListByUser(ctx context.Context, userID uint, newestFirst bool) ([]*models.AdoptionRequest, error)
	ListAll(ctx context.Context, estado string) ([]*models.AdoptionRequest, error)
	CountByPet(ctx context.Context, petID uint) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}
