package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/config"
	"patitas-adopciones/internal/pkg/jwt"
	"patitas-adopciones/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email     string
	Nombre    string
	Password  string
	Telefono  string
	Direccion string
}

// LoginInput represents login input
type LoginInput struct {
	Email    string
	Password string
}

// TokenResponse represents the API login payload
type TokenResponse struct {
	Token string               `json:"token"`
	User  *models.UserResponse `json:"user"`
}

// NormalizeEmail lowercases and trims an email so it can serve as the
// login identifier
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new adoptant account. Role is always fixed to
// adoptante on self-registration; admins are seeded.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Nombre:       strings.TrimSpace(input.Nombre),
		PasswordHash: hashedPassword,
		Rol:          models.RoleAdoptant,
		Activo:       true,
	}
	if telefono := strings.TrimSpace(input.Telefono); telefono != "" {
		user.Telefono = &telefono
	}
	if direccion := strings.TrimSpace(input.Direccion); direccion != "" {
		user.Direccion = &direccion
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Activo {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

// LoginWithToken authenticates a user and issues an API bearer token
func (s *AuthService) LoginWithToken(ctx context.Context, input *LoginInput) (*TokenResponse, error) {
	user, err := s.Login(ctx, input)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Rol, s.cfg.JWT.Secret, s.cfg.JWT.ExpirationHours)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ API token issued for user: %s", user.Email)

	return &TokenResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
