package repositories

import (
	"context"

	"patitas-adopciones/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new adoption request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// GetByID gets a request by ID with its user, pet and reviewer loaded
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.AdoptionRequest, error) {
	var request models.AdoptionRequest
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Mascota").
		Preload("Revisor").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByUserAndPet gets the request a user filed for a pet, if any
func (r *requestRepository) GetByUserAndPet(ctx context.Context, userID, petID uint) (*models.AdoptionRequest, error) {
	var request models.AdoptionRequest
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND mascota_id = ?", userID, petID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByUser lists a user's requests ordered by submission time.
// The page shows newest first; the API keeps ascending order.
func (r *requestRepository) ListByUser(ctx context.Context, userID uint, newestFirst bool) ([]*models.AdoptionRequest, error) {
	order := "fecha_solicitud ASC"
	if newestFirst {
		order = "fecha_solicitud DESC"
	}

	var requests []*models.AdoptionRequest
	err := r.db.WithContext(ctx).
		Preload("Mascota").
		Where("usuario_id = ?", userID).
		Order(order).
		Find(&requests).Error
	return requests, err
}

// ListAll lists all requests, optionally filtered by state, newest first
func (r *requestRepository) ListAll(ctx context.Context, estado string) ([]*models.AdoptionRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Mascota")

	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var requests []*models.AdoptionRequest
	err := query.Order("fecha_solicitud DESC").Find(&requests).Error
	return requests, err
}

// CountByPet counts the requests filed for a pet, in any state
func (r *requestRepository) CountByPet(ctx context.Context, petID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdoptionRequest{}).
		Where("mascota_id = ?", petID).
		Count(&count).Error
	return count, err
}

// CountPending counts requests still awaiting review
func (r *requestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdoptionRequest{}).
		Where("estado = ?", models.RequestPending).
		Count(&count).Error
	return count, err
}
