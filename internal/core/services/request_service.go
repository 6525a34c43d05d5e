package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Request service errors
var (
	ErrPetNotAvailable  = errors.New("pet not available")
	ErrAlreadyRequested = errors.New("user already requested this pet")
	ErrRequestNotFound  = errors.New("request not found")
	ErrRequestForbidden = errors.New("request not visible to this user")
	ErrAlreadyDecided   = errors.New("request already decided")
)

// RequestService handles the adoption request workflow. Two-row
// mutations (create + flip pet, approve + mark adopted) run inside a
// single database transaction so partial state never becomes visible.
type RequestService struct {
	db            *gorm.DB
	requestRepo   repositories.RequestRepository
	petRepo       repositories.PetRepository
	notifyService *NotificationService
}

// NewRequestService creates a new request service
func NewRequestService(
	db *gorm.DB,
	requestRepo repositories.RequestRepository,
	petRepo repositories.PetRepository,
	notifyService *NotificationService,
) *RequestService {
	return &RequestService{
		db:            db,
		requestRepo:   requestRepo,
		petRepo:       petRepo,
		notifyService: notifyService,
	}
}

// Create files an adoption request for an available pet and flips the
// pet to en_proceso atomically. The (usuario, mascota) unique index is
// the authority under concurrent duplicate submissions.
func (s *RequestService) Create(ctx context.Context, userID, petID uint, questionnaire models.Questionnaire) (*models.AdoptionRequest, error) {
	pet, err := s.petRepo.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	if !pet.IsAvailable() {
		return nil, ErrPetNotAvailable
	}

	if _, err := s.requestRepo.GetByUserAndPet(ctx, userID, petID); err == nil {
		return nil, ErrAlreadyRequested
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if questionnaire == nil {
		questionnaire = models.Questionnaire{}
	}

	request := &models.AdoptionRequest{
		UsuarioID:    userID,
		MascotaID:    petID,
		Estado:       models.RequestPending,
		Cuestionario: questionnaire,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		return tx.Model(&models.Pet{}).
			Where("id = ?", petID).
			Update("estado", models.PetInProcess).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRequested
		}
		return nil, err
	}

	log.Printf("✅ Request #%d created: user %d → pet %d", request.ID, userID, petID)
	return request, nil
}

// HasRequested reports whether the user already applied for the pet
func (s *RequestService) HasRequested(ctx context.Context, userID, petID uint) (bool, error) {
	_, err := s.requestRepo.GetByUserAndPet(ctx, userID, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetForUser gets a request visible to the given user: its owner or
// any admin
func (s *RequestService) GetForUser(ctx context.Context, id uint, user *models.User) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if !user.IsAdmin() && request.UsuarioID != user.ID {
		return nil, ErrRequestForbidden
	}

	return request, nil
}

// ListMine lists the caller's requests. The page shows them newest
// first; the API keeps submission order.
func (s *RequestService) ListMine(ctx context.Context, userID uint, newestFirst bool) ([]*models.AdoptionRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID, newestFirst)
}

// AdminList lists all requests, optionally filtered by state
func (s *RequestService) AdminList(ctx context.Context, estado string) ([]*models.AdoptionRequest, error) {
	return s.requestRepo.ListAll(ctx, estado)
}

// Approve marks a pending request approved, records the reviewer and
// marks the pet adopted, all in one transaction
func (s *RequestService) Approve(ctx context.Context, requestID, adminID uint, comment string) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if !request.IsPending() {
		return nil, ErrAlreadyDecided
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AdoptionRequest{}).
			Where("id = ?", request.ID).
			Updates(decision(models.RequestApproved, adminID, comment)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Pet{}).
			Where("id = ?", request.MascotaID).
			Update("estado", models.PetAdopted).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Request #%d approved by admin %d", request.ID, adminID)

	request, err = s.requestRepo.GetByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	if s.notifyService != nil {
		s.notifyService.NotifyDecision(request)
	}

	return request, nil
}

// Reject marks a pending request rejected and records the reviewer.
// The pet state is left untouched: a rejected request does not release
// the pet back to disponible.
func (s *RequestService) Reject(ctx context.Context, requestID, adminID uint, comment string) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if !request.IsPending() {
		return nil, ErrAlreadyDecided
	}

	if err := s.db.WithContext(ctx).Model(&models.AdoptionRequest{}).
		Where("id = ?", request.ID).
		Updates(decision(models.RequestRejected, adminID, comment)).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Request #%d rejected by admin %d", request.ID, adminID)

	request, err = s.requestRepo.GetByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	if s.notifyService != nil {
		s.notifyService.NotifyDecision(request)
	}

	return request, nil
}

// decision builds the review column updates for a decided request
func decision(estado string, adminID uint, comment string) map[string]interface{} {
	updates := map[string]interface{}{
		"estado":         estado,
		"revisado_por":   adminID,
		"fecha_revision": time.Now(),
	}
	if comment = strings.TrimSpace(comment); comment != "" {
		updates["comentarios_admin"] = comment
	}
	return updates
}
